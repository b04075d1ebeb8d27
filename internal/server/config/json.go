package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/pwakit/internal/flagx"
	"github.com/mitchellh/mapstructure"
)

// parseJson overlays values from the JSON file named by -c / -config.
// Only keys present in the file are applied; durations accept "1h30m"
// strings as well as integer nanoseconds.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var raw map[string]any
	if err := json.Unmarshal(file, &raw); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	return decodeMap(raw, config)
}

func decodeMap(raw map[string]any, config *Config) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           config,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}
