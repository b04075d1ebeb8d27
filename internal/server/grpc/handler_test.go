package grpc

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/dmitrijs2005/pwakit/internal/common"
	"github.com/dmitrijs2005/pwakit/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func TestLogin(t *testing.T) {
	s := newServer(t, &fakeIcons{}, &fakeAuth{token: "T"})
	resp, err := s.Login(context.Background(), wrapperspb.String("pw"))
	require.NoError(t, err)
	assert.Equal(t, "T", resp.GetValue())

	s = newServer(t, &fakeIcons{}, &fakeAuth{err: common.ErrorUnauthorized})
	_, err = s.Login(context.Background(), wrapperspb.String("pw"))
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	s = newServer(t, &fakeIcons{}, &fakeAuth{err: errors.New("boom")})
	_, err = s.Login(context.Background(), wrapperspb.String("pw"))
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestListIcons(t *testing.T) {
	icons := &fakeIcons{icons: []models.Icon{
		{Src: "/images/site_icons/a.png", Sizes: "192x192", Type: "image/png"},
	}}
	s := newServer(t, icons, &fakeAuth{})

	resp, err := s.ListIcons(context.Background(), wrapperspb.String("/"))
	require.NoError(t, err)
	assert.Equal(t, "/", icons.gotPrefix)
	assert.Equal(t, map[string]any{
		"icons": []any{map[string]any{"src": "/images/site_icons/a.png", "sizes": "192x192", "type": "image/png"}},
	}, resp.AsMap())
}

func TestResync(t *testing.T) {
	icons := &fakeIcons{resync: models.ResyncResult{Tracked: []string{"a.png"}, Untracked: []string{"b.png"}}}
	s := newServer(t, icons, &fakeAuth{})

	resp, err := s.Resync(context.Background(), &emptypb.Empty{})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"tracked":   []any{"a.png"},
		"untracked": []any{"b.png"},
		"skipped":   []any{},
	}, resp.AsMap())
}

func TestDeleteIcon_ErrorCodes(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode codes.Code
	}{
		{"not found", common.NotFound("delete", "a.png"), codes.NotFound},
		{"empty path", common.ErrEmptyPath, codes.InvalidArgument},
		{"invalid name", common.ErrInvalidName, codes.InvalidArgument},
		{"storage", &common.StorageError{Op: "delete", Path: "a.png", Err: errors.New("denied")}, codes.Unavailable},
		{"other", errors.New("boom"), codes.Internal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newServer(t, &fakeIcons{deleteErr: tt.err}, &fakeAuth{})
			_, err := s.DeleteIcon(context.Background(), wrapperspb.String("images/site_icons/a.png"))
			assert.Equal(t, tt.wantCode, status.Code(err))
			assert.Equal(t, s.translator.Error(tt.err), status.Convert(err).Message())
		})
	}
}

// dialBuf serves s over an in-memory listener.
func dialBuf(t *testing.T, s *GRPCServer) *grpc.ClientConn {
	t.Helper()
	lis := bufconn.Listen(1 << 20)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		cancel()
		<-done
	})
	return conn
}

func TestServiceDesc_EndToEnd(t *testing.T) {
	icons := &fakeIcons{deleted: "a.png"}
	s := newServer(t, icons, &fakeAuth{})
	conn := dialBuf(t, s)
	ctx := context.Background()

	out := new(wrapperspb.StringValue)
	err := conn.Invoke(ctx, DeleteIconMethod, wrapperspb.String("images/site_icons/a.png"), out)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
	assert.Empty(t, icons.gotDelete)

	authed := metadata.AppendToOutgoingContext(ctx, common.AccessTokenHeaderName, "tok")
	require.NoError(t, conn.Invoke(authed, DeleteIconMethod, wrapperspb.String("images/site_icons/a.png"), out))
	assert.Equal(t, "a.png", out.GetValue())
	assert.Equal(t, "images/site_icons/a.png", icons.gotDelete)

	list := new(structpb.Struct)
	require.NoError(t, conn.Invoke(ctx, ListIconsMethod, wrapperspb.String("/"), list))
	assert.Equal(t, []any{}, list.AsMap()["icons"])
}
