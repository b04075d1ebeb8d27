// Package client talks to the pwakit gRPC icon service. The service uses
// protobuf well-known types only, so calls go through ClientConn.Invoke
// with the method names declared by the server package.
package client

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/pwakit/internal/common"
	iconrpc "github.com/dmitrijs2005/pwakit/internal/server/grpc"
	"github.com/dmitrijs2005/pwakit/internal/server/models"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	accessToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if s.accessToken != "" {
		ctx = withAccessToken(ctx, s.accessToken)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

func NewIconClient(endpointURL string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}

	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, opts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	return c, nil
}

// SetAccessToken sets the token sent with every following call.
func (s *GRPCClient) SetAccessToken(token string) {
	s.accessToken = token
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

// Login exchanges the admin password for an access token and keeps it for
// later calls.
func (s *GRPCClient) Login(ctx context.Context, password string) (string, error) {
	out := new(wrapperspb.StringValue)
	if err := s.conn.Invoke(ctx, iconrpc.LoginMethod, wrapperspb.String(password), out); err != nil {
		return "", s.mapError(err)
	}
	s.accessToken = out.GetValue()
	return s.accessToken, nil
}

func (s *GRPCClient) ListIcons(ctx context.Context, prefix string) ([]models.Icon, error) {
	out := new(structpb.Struct)
	if err := s.conn.Invoke(ctx, iconrpc.ListIconsMethod, wrapperspb.String(prefix), out); err != nil {
		return nil, s.mapError(err)
	}

	list := out.GetFields()["icons"].GetListValue().GetValues()
	icons := make([]models.Icon, 0, len(list))
	for _, v := range list {
		f := v.GetStructValue().GetFields()
		icons = append(icons, models.Icon{
			Src:   f["src"].GetStringValue(),
			Sizes: f["sizes"].GetStringValue(),
			Type:  f["type"].GetStringValue(),
		})
	}
	return icons, nil
}

func (s *GRPCClient) Resync(ctx context.Context) (models.ResyncResult, error) {
	out := new(structpb.Struct)
	if err := s.conn.Invoke(ctx, iconrpc.ResyncMethod, &emptypb.Empty{}, out); err != nil {
		return models.ResyncResult{}, s.mapError(err)
	}

	f := out.GetFields()
	return models.ResyncResult{
		Tracked:   stringList(f["tracked"]),
		Untracked: stringList(f["untracked"]),
		Skipped:   stringList(f["skipped"]),
	}, nil
}

func stringList(v *structpb.Value) []string {
	values := v.GetListValue().GetValues()
	out := make([]string, 0, len(values))
	for _, x := range values {
		out = append(out, x.GetStringValue())
	}
	return out
}

// DeleteIcon removes one icon and returns the deleted name.
func (s *GRPCClient) DeleteIcon(ctx context.Context, path string) (string, error) {
	out := new(wrapperspb.StringValue)
	if err := s.conn.Invoke(ctx, iconrpc.DeleteIconMethod, wrapperspb.String(path), out); err != nil {
		return "", s.mapError(err)
	}
	return out.GetValue(), nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return fmt.Errorf("%w: %s", ErrUnavailable, st.Message())
	case codes.NotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, st.Message())
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalid, st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
