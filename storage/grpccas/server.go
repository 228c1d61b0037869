package grpccas

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"xdao.co/catid/catid"
	"xdao.co/catid/cidutil"
	"xdao.co/catid/storage"
)

// Server exposes a storage.CAS over the CAS gRPC service.
type Server struct {
	UnimplementedCASServer
	CAS storage.CAS

	// Logger receives one debug record per request; nil disables logging.
	Logger *slog.Logger
}

func (s *Server) Put(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.StringValue, error) {
	if s == nil || s.CAS == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing CAS")
	}
	b := in.GetValue()
	expected := cidutil.ContentIDOf(b)
	id, err := s.CAS.Put(b)
	if err != nil {
		s.log(ctx, "put", expected, err)
		return nil, mapErr(err)
	}
	if id != expected {
		s.log(ctx, "put", expected, storage.ErrIDMismatch)
		return nil, status.Error(codes.DataLoss, storage.ErrIDMismatch.Error())
	}
	s.log(ctx, "put", id, nil, slog.Int("bytes", len(b)))
	return wrapperspb.String(id.Base16()), nil
}

func (s *Server) Get(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.BytesValue, error) {
	if s == nil || s.CAS == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing CAS")
	}
	id, err := catid.ParseContentID(in.GetValue())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, storage.ErrInvalidID.Error())
	}
	b, err := s.CAS.Get(id)
	if err != nil {
		s.log(ctx, "get", id, err)
		return nil, mapErr(err)
	}
	if cidutil.ContentIDOf(b) != id {
		s.log(ctx, "get", id, storage.ErrIDMismatch)
		return nil, status.Error(codes.DataLoss, storage.ErrIDMismatch.Error())
	}
	s.log(ctx, "get", id, nil, slog.Int("bytes", len(b)))
	return wrapperspb.Bytes(b), nil
}

func (s *Server) Has(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.BoolValue, error) {
	if s == nil || s.CAS == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing CAS")
	}
	id, err := catid.ParseContentID(in.GetValue())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, storage.ErrInvalidID.Error())
	}
	ok := s.CAS.Has(id)
	s.log(ctx, "has", id, nil, slog.Bool("present", ok))
	return wrapperspb.Bool(ok), nil
}

func (s *Server) log(ctx context.Context, op string, id catid.ContentID, err error, attrs ...slog.Attr) {
	if s.Logger == nil {
		return
	}
	attrs = append(attrs, slog.String("op", op), slog.String("content_id", id.Base16()))
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.Logger.LogAttrs(ctx, slog.LevelWarn, "cas request failed", attrs...)
		return
	}
	s.Logger.LogAttrs(ctx, slog.LevelDebug, "cas request", attrs...)
}

func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, storage.ErrNotFound):
		return status.Error(codes.NotFound, storage.ErrNotFound.Error())
	case errors.Is(err, storage.ErrInvalidID):
		return status.Error(codes.InvalidArgument, storage.ErrInvalidID.Error())
	case errors.Is(err, storage.ErrIDMismatch):
		return status.Error(codes.DataLoss, storage.ErrIDMismatch.Error())
	case errors.Is(err, storage.ErrImmutable):
		return status.Error(codes.AlreadyExists, storage.ErrImmutable.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
