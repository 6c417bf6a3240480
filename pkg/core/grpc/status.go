package grpc

import (
	"context"
	"errors"

	kerror "github.com/msto63/kairos/foundation/core/error"
	"github.com/msto63/kairos/pkg/core/health"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// CodeFor maps an error code to the gRPC status code returned to callers
func CodeFor(code kerror.Code) codes.Code {
	switch code {
	case kerror.CodeInvalidPattern,
		kerror.CodeInvalidNumber,
		kerror.CodeTooMuchGranularity,
		kerror.CodeParseMismatch,
		kerror.CodeIllegalSetting,
		kerror.CodeInvalidLocale,
		kerror.CodeUnknownZone,
		kerror.CodeInvalidInput:
		return codes.InvalidArgument
	case kerror.CodeNotFound:
		return codes.NotFound
	default:
		return codes.Internal
	}
}

// ToStatus converts err into a gRPC status error. Errors that already carry a
// status are returned unchanged.
func ToStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}
	return status.Error(CodeFor(kerror.GetCode(err)), err.Error())
}

// ServingStatus maps a health status to the gRPC health protocol. Degraded
// services still serve.
func ServingStatus(s health.Status) healthpb.HealthCheckResponse_ServingStatus {
	switch s {
	case health.StatusHealthy, health.StatusDegraded:
		return healthpb.HealthCheckResponse_SERVING
	case health.StatusUnhealthy:
		return healthpb.HealthCheckResponse_NOT_SERVING
	default:
		return healthpb.HealthCheckResponse_UNKNOWN
	}
}
