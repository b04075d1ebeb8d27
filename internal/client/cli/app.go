// Package cli implements the pwakit admin command line: password hashing
// for the server config and icon maintenance over gRPC.
package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/pwakit/internal/client/client"
	"github.com/dmitrijs2005/pwakit/internal/client/config"
	"github.com/dmitrijs2005/pwakit/internal/cryptox"
	"github.com/dmitrijs2005/pwakit/internal/flagx"
	"github.com/dmitrijs2005/pwakit/internal/server/models"
)

var (
	ErrUsage            = errors.New("usage error")
	ErrPasswordMismatch = errors.New("passwords do not match")
)

const usage = `Usage: pwakit-cli [-a addr] [-t token] [-T timeout] [-c config.json] <command>

Commands:
  hash-password    print admin password salt and hash for the server config
  login            print an access token for the admin password
  icons [prefix]   list the manifest icons
  resync           align tracked icons with the storage
  delete <path>    delete one icon (asks for confirmation, -y skips it)
`

// IconClient is the remote icon service as seen by the CLI.
type IconClient interface {
	Login(ctx context.Context, password string) (string, error)
	ListIcons(ctx context.Context, prefix string) ([]models.Icon, error)
	Resync(ctx context.Context) (models.ResyncResult, error)
	DeleteIcon(ctx context.Context, path string) (string, error)
	SetAccessToken(token string)
	Close() error
}

type App struct {
	config    *config.Config
	out       io.Writer
	reader    *bufio.Reader
	newClient func(addr string) (IconClient, error)
}

func NewApp(c *config.Config, in io.Reader, out io.Writer) *App {
	return &App{
		config: c,
		out:    out,
		reader: bufio.NewReader(in),
		newClient: func(addr string) (IconClient, error) {
			return client.NewIconClient(addr)
		},
	}
}

// Run executes the command found in args.
func (a *App) Run(ctx context.Context, args []string) error {
	pos := flagx.Positional(args, config.ValueFlags)
	if len(pos) == 0 {
		fmt.Fprint(a.out, usage)
		return ErrUsage
	}

	cmd, rest := pos[0], pos[1:]
	switch cmd {
	case "help":
		fmt.Fprint(a.out, usage)
		return nil
	case "hash-password":
		return a.hashPassword()
	case "login":
		return a.withClient(ctx, a.login)
	case "icons":
		prefix := "/"
		if len(rest) > 0 {
			prefix = rest[0]
		}
		return a.withClient(ctx, func(ctx context.Context, c IconClient) error { return a.icons(ctx, c, prefix) })
	case "resync":
		return a.withClient(ctx, a.resync)
	case "delete":
		if len(rest) != 1 {
			fmt.Fprint(a.out, usage)
			return ErrUsage
		}
		return a.withClient(ctx, func(ctx context.Context, c IconClient) error {
			return a.delete(ctx, c, rest[0], hasFlag(args, "-y"))
		})
	default:
		fmt.Fprintf(a.out, "Unknown command: %s\n%s", cmd, usage)
		return ErrUsage
	}
}

func hasFlag(args []string, flag string) bool {
	for _, arg := range args {
		if arg == flag {
			return true
		}
	}
	return false
}

func (a *App) withClient(ctx context.Context, fn func(context.Context, IconClient) error) error {
	c, err := a.newClient(a.config.ServerEndpointAddr)
	if err != nil {
		return err
	}
	defer c.Close()

	if a.config.AccessToken != "" {
		c.SetAccessToken(a.config.AccessToken)
	}

	if a.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.config.Timeout)
		defer cancel()
	}
	return fn(ctx, c)
}

func (a *App) hashPassword() error {
	pw, err := GetPassword("Enter password: ", a.out)
	if err != nil {
		return err
	}
	defer cryptox.Wipe(pw)

	again, err := GetPassword("Repeat password: ", a.out)
	if err != nil {
		return err
	}
	defer cryptox.Wipe(again)

	if len(pw) == 0 || !bytes.Equal(pw, again) {
		return ErrPasswordMismatch
	}

	salt, hash, err := cryptox.HashPasswordHex(pw)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "PWAKIT_ADMIN_PASSWORD_SALT=%s\nPWAKIT_ADMIN_PASSWORD_HASH=%s\n", salt, hash)
	return nil
}

func (a *App) login(ctx context.Context, c IconClient) error {
	pw, err := GetPassword("Enter password: ", a.out)
	if err != nil {
		return err
	}
	defer cryptox.Wipe(pw)

	token, err := c.Login(ctx, string(pw))
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, token)
	return nil
}

func (a *App) icons(ctx context.Context, c IconClient, prefix string) error {
	icons, err := c.ListIcons(ctx, prefix)
	if err != nil {
		return err
	}
	if len(icons) == 0 {
		fmt.Fprintln(a.out, "No icons.")
		return nil
	}
	for _, icon := range icons {
		fmt.Fprintf(a.out, "%-10s %s\n", icon.Sizes, icon.Src)
	}
	return nil
}

func (a *App) resync(ctx context.Context, c IconClient) error {
	res, err := c.Resync(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "tracked: %d, untracked: %d, skipped: %d\n", len(res.Tracked), len(res.Untracked), len(res.Skipped))
	for _, p := range res.Tracked {
		fmt.Fprintf(a.out, "  + %s\n", p)
	}
	for _, p := range res.Untracked {
		fmt.Fprintf(a.out, "  - %s\n", p)
	}
	for _, p := range res.Skipped {
		fmt.Fprintf(a.out, "  ! %s\n", p)
	}
	return nil
}

func (a *App) delete(ctx context.Context, c IconClient, path string, yes bool) error {
	if !yes {
		answer, err := GetSimpleText(a.reader, fmt.Sprintf("Delete %s? [y/N]", path), a.out)
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
			fmt.Fprintln(a.out, "Cancelled.")
			return nil
		}
	}

	name, err := c.DeleteIcon(ctx, path)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s has been deleted.\n", name)
	return nil
}
