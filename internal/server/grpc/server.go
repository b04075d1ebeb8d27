package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/pwakit/internal/i18n"
	"github.com/dmitrijs2005/pwakit/internal/logging"
	"github.com/dmitrijs2005/pwakit/internal/server/models"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
)

// IconManager is the part of the icon service exposed over gRPC.
type IconManager interface {
	Icons(ctx context.Context, prefix string) ([]models.Icon, error)
	Resync(ctx context.Context) (models.ResyncResult, error)
	Delete(ctx context.Context, raw string) (string, error)
}

// Authenticator checks the admin password and access tokens.
type Authenticator interface {
	Login(ctx context.Context, password string) (string, error)
	Authenticate(token string) error
}

type GRPCServer struct {
	address    string
	icons      IconManager
	auth       Authenticator
	translator *i18n.Translator
	logger     logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, icons IconManager, auth Authenticator, tr *i18n.Translator) *GRPCServer {
	return &GRPCServer{
		address:    a,
		logger:     l.With("module", "grpc_server"),
		icons:      icons,
		auth:       auth,
		translator: tr,
	}
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on listen until ctx is done.
func (s *GRPCServer) Serve(ctx context.Context, listen net.Listener) error {
	srv := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(s.accessTokenInterceptor),
	)

	RegisterIconServiceServer(srv, s)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
