// Package grpcserver implements the PostingService gRPC server.
//
// It delegates all business logic to form.Controller and handles only the
// gRPC transport concerns: metadata extraction, error mapping, and
// conversion of domain values to protobuf Structs.
package grpcserver

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"jobmate/posting-service/internal/extract"
	"jobmate/posting-service/internal/form"
)

const recruiterKey = "x-recruiter-id"

// Server implements PostingServiceServer.
type Server struct {
	ctrl      *form.Controller
	extractor *extract.Extractor
	log       *zap.Logger
}

// NewServer constructs a gRPC Server backed by the given controller.
func NewServer(ctrl *form.Controller, extractor *extract.Extractor, log *zap.Logger) *Server {
	if extractor == nil {
		extractor = extract.New()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{ctrl: ctrl, extractor: extractor, log: log.Named("grpc")}
}

// ─── RPC implementations ──────────────────────────────────────────────────────

// Extract runs the extraction engine over the given text without touching
// the live form.
func (s *Server) Extract(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	if _, err := recruiterFromCtx(ctx); err != nil {
		return nil, err
	}
	return toStruct(s.extractor.Extract(req.GetValue()))
}

// Validate recomputes the errors of the live form and returns its state.
func (s *Server) Validate(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	if _, err := recruiterFromCtx(ctx); err != nil {
		return nil, err
	}
	return toStruct(s.ctrl.Validate())
}

// Submit submits the live form, queueing it when the API is unavailable.
func (s *Server) Submit(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	recruiter, err := recruiterFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	res, err := s.ctrl.Submit(ctx)
	if err != nil {
		return nil, s.toGRPCError(err)
	}
	s.log.Info("submit", zap.String("recruiter", recruiter), zap.String("outcome", string(res.Outcome)))
	return toStruct(res)
}

// Status reports API reachability and the offline queue.
func (s *Server) Status(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	if _, err := recruiterFromCtx(ctx); err != nil {
		return nil, err
	}
	st, err := s.ctrl.Status(ctx)
	if err != nil {
		return nil, s.toGRPCError(err)
	}
	return toStruct(st)
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

// recruiterFromCtx extracts the caller identity from gRPC metadata.
func recruiterFromCtx(ctx context.Context) (string, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, "missing metadata")
	}
	vals := md.Get(recruiterKey)
	if len(vals) == 0 || vals[0] == "" {
		return "", status.Error(codes.Unauthenticated, "missing x-recruiter-id metadata")
	}
	return vals[0], nil
}

// toGRPCError maps domain errors to gRPC status errors.
func (s *Server) toGRPCError(err error) error {
	switch {
	case errors.Is(err, form.ErrUnknownField),
		errors.Is(err, form.ErrInvalidValue),
		errors.Is(err, form.ErrUnsupportedDocument):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, form.ErrNoImport):
		return status.Error(codes.FailedPrecondition, err.Error())
	}
	s.log.Error("rpc failed", zap.Error(err))
	return status.Error(codes.Internal, "internal server error")
}

// toStruct converts a JSON-tagged domain value to a protobuf Struct.
func toStruct(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, status.Error(codes.Internal, "encode response")
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(raw, out); err != nil {
		return nil, status.Error(codes.Internal, "encode response")
	}
	return out, nil
}
