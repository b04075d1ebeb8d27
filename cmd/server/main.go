package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/pwakit/internal/flagx"
	"github.com/dmitrijs2005/pwakit/internal/server"
	"github.com/dmitrijs2005/pwakit/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if cmd := flagx.Positional(os.Args[1:], config.ValueFlags); len(cmd) > 0 {
		switch cmd[0] {
		case "uninstall":
			err = app.Uninstall(ctx)
			if cerr := app.Close(ctx); err == nil {
				err = cerr
			}
			if err != nil {
				log.Fatalf("%v", err)
			}
			return
		default:
			_ = app.Close(ctx)
			log.Fatalf("unknown command %q", cmd[0])
		}
	}

	app.Run(ctx)

}
