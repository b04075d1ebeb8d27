package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/pwakit/internal/client/config"
	"github.com/dmitrijs2005/pwakit/internal/cryptox"
	"github.com/dmitrijs2005/pwakit/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	token     string
	icons     []models.Icon
	resync    models.ResyncResult
	deleteErr error

	gotToken    string
	gotPassword string
	gotPrefix   string
	gotDelete   string
	hadDeadline bool
	closed      bool
}

func (f *fakeClient) Login(_ context.Context, password string) (string, error) {
	f.gotPassword = password
	return f.token, nil
}

func (f *fakeClient) ListIcons(ctx context.Context, prefix string) ([]models.Icon, error) {
	_, f.hadDeadline = ctx.Deadline()
	f.gotPrefix = prefix
	return f.icons, nil
}

func (f *fakeClient) Resync(context.Context) (models.ResyncResult, error) {
	return f.resync, nil
}

func (f *fakeClient) DeleteIcon(_ context.Context, path string) (string, error) {
	f.gotDelete = path
	if f.deleteErr != nil {
		return "", f.deleteErr
	}
	return strings.TrimPrefix(path, "images/site_icons/"), nil
}

func (f *fakeClient) SetAccessToken(token string) { f.gotToken = token }
func (f *fakeClient) Close() error                { f.closed = true; return nil }

func newTestApp(t *testing.T, in string, fc *fakeClient) (*App, *bytes.Buffer) {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.AccessToken = "tok"

	var out bytes.Buffer
	a := NewApp(cfg, strings.NewReader(in), &out)
	a.newClient = func(string) (IconClient, error) { return fc, nil }
	return a, &out
}

func stubPasswords(t *testing.T, pws ...string) {
	t.Helper()
	old := readPassword
	t.Cleanup(func() { readPassword = old })
	readPassword = func(int) ([]byte, error) {
		if len(pws) == 0 {
			return nil, errors.New("no more input")
		}
		pw := pws[0]
		pws = pws[1:]
		return []byte(pw), nil
	}
}

func TestRun_Usage(t *testing.T) {
	a, out := newTestApp(t, "", &fakeClient{})

	assert.ErrorIs(t, a.Run(context.Background(), nil), ErrUsage)
	assert.Contains(t, out.String(), "Commands:")

	assert.ErrorIs(t, a.Run(context.Background(), []string{"frobnicate"}), ErrUsage)
	assert.ErrorIs(t, a.Run(context.Background(), []string{"delete"}), ErrUsage)
	assert.NoError(t, a.Run(context.Background(), []string{"help"}))
}

func TestRun_HashPassword(t *testing.T) {
	stubPasswords(t, "hunter2", "hunter2")
	a, out := newTestApp(t, "", &fakeClient{})

	require.NoError(t, a.Run(context.Background(), []string{"hash-password"}))

	var salt, hash string
	for _, line := range strings.Split(out.String(), "\n") {
		if v, ok := strings.CutPrefix(line, "PWAKIT_ADMIN_PASSWORD_SALT="); ok {
			salt = v
		}
		if v, ok := strings.CutPrefix(line, "PWAKIT_ADMIN_PASSWORD_HASH="); ok {
			hash = v
		}
	}
	assert.True(t, cryptox.VerifyPassword([]byte("hunter2"), salt, hash))
}

func TestRun_HashPasswordMismatch(t *testing.T) {
	stubPasswords(t, "hunter2", "hunter3")
	a, _ := newTestApp(t, "", &fakeClient{})
	assert.ErrorIs(t, a.Run(context.Background(), []string{"hash-password"}), ErrPasswordMismatch)
}

func TestRun_Login(t *testing.T) {
	stubPasswords(t, "pw")
	fc := &fakeClient{token: "fresh"}
	a, out := newTestApp(t, "", fc)

	require.NoError(t, a.Run(context.Background(), []string{"-a", "host:1", "login"}))
	assert.Equal(t, "pw", fc.gotPassword)
	assert.Contains(t, out.String(), "fresh\n")
	assert.True(t, fc.closed)
}

func TestRun_Icons(t *testing.T) {
	fc := &fakeClient{icons: []models.Icon{{Src: "/forum/images/site_icons/a.png", Sizes: "192x192", Type: "image/png"}}}
	a, out := newTestApp(t, "", fc)
	a.config.Timeout = time.Second

	require.NoError(t, a.Run(context.Background(), []string{"icons", "/forum/"}))
	assert.Equal(t, "/forum/", fc.gotPrefix)
	assert.Equal(t, "tok", fc.gotToken)
	assert.True(t, fc.hadDeadline)
	assert.Contains(t, out.String(), "192x192    /forum/images/site_icons/a.png")
}

func TestRun_Resync(t *testing.T) {
	fc := &fakeClient{resync: models.ResyncResult{Tracked: []string{"a.png"}, Untracked: []string{"b.png"}, Skipped: []string{"c.png"}}}
	a, out := newTestApp(t, "", fc)

	require.NoError(t, a.Run(context.Background(), []string{"resync"}))
	assert.Equal(t, "tracked: 1, untracked: 1, skipped: 1\n  + a.png\n  - b.png\n  ! c.png\n", out.String())
}

func TestRun_Delete(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		input      string
		wantDelete string
		wantOut    string
	}{
		{"confirmed", []string{"delete", "images/site_icons/a.png"}, "y\n", "images/site_icons/a.png", "a.png has been deleted."},
		{"declined", []string{"delete", "images/site_icons/a.png"}, "n\n", "", "Cancelled."},
		{"no answer", []string{"delete", "images/site_icons/a.png"}, "", "", "Cancelled."},
		{"skip prompt", []string{"delete", "-y", "images/site_icons/a.png"}, "", "images/site_icons/a.png", "a.png has been deleted."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := &fakeClient{}
			a, out := newTestApp(t, tt.input, fc)

			require.NoError(t, a.Run(context.Background(), tt.args))
			assert.Equal(t, tt.wantDelete, fc.gotDelete)
			assert.Contains(t, out.String(), tt.wantOut)
		})
	}
}

func TestRun_DeleteError(t *testing.T) {
	boom := errors.New("boom")
	a, _ := newTestApp(t, "", &fakeClient{deleteErr: boom})
	assert.ErrorIs(t, a.Run(context.Background(), []string{"delete", "-y", "x.png"}), boom)
}
