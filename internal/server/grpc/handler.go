package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/pwakit/internal/common"
	"github.com/dmitrijs2005/pwakit/internal/i18n"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func (s *GRPCServer) Login(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {

	token, err := s.auth.Login(ctx, req.GetValue())
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			return nil, status.Error(codes.Unauthenticated, s.translator.Lang(i18n.LoginError))
		}
		return nil, s.mapError(ctx, err)
	}

	return wrapperspb.String(token), nil
}

func (s *GRPCServer) ListIcons(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {

	icons, err := s.icons.Icons(ctx, req.GetValue())
	if err != nil {
		return nil, s.mapError(ctx, err)
	}

	list := make([]any, 0, len(icons))
	for _, icon := range icons {
		list = append(list, map[string]any{
			"src":   icon.Src,
			"sizes": icon.Sizes,
			"type":  icon.Type,
		})
	}

	out, err := structpb.NewStruct(map[string]any{"icons": list})
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

func (s *GRPCServer) Resync(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {

	s.logger.Info(ctx, "Resync request")

	res, err := s.icons.Resync(ctx)
	if err != nil {
		return nil, s.mapError(ctx, err)
	}

	out, err := structpb.NewStruct(map[string]any{
		"tracked":   stringList(res.Tracked),
		"untracked": stringList(res.Untracked),
		"skipped":   stringList(res.Skipped),
	})
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

func (s *GRPCServer) DeleteIcon(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {

	name, err := s.icons.Delete(ctx, req.GetValue())
	if err != nil {
		return nil, s.mapError(ctx, err)
	}

	s.logger.Info(ctx, "Deleted", "path", name)
	return wrapperspb.String(name), nil
}

func stringList(xs []string) []any {
	out := make([]any, 0, len(xs))
	for _, x := range xs {
		out = append(out, x)
	}
	return out
}

// mapError turns a service error into a status carrying the translated
// message.
func (s *GRPCServer) mapError(ctx context.Context, err error) error {
	msg := s.translator.Error(err)

	var se *common.StorageError
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, msg)
	case errors.Is(err, common.ErrEmptyPath), errors.Is(err, common.ErrInvalidName):
		return status.Error(codes.InvalidArgument, msg)
	case errors.As(err, &se):
		s.logger.Error(ctx, "storage failure", "error", err)
		return status.Error(codes.Unavailable, msg)
	default:
		s.logger.Error(ctx, err.Error())
		return status.Error(codes.Internal, msg)
	}
}
