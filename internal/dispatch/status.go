package dispatch

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/alanyoungcy/marketsrpc/internal/domain"
)

// Code classifies err for the RPC boundary.
func Code(err error) codes.Code {
	if err == nil {
		return codes.OK
	}
	if s, ok := status.FromError(err); ok {
		return s.Code()
	}
	switch {
	case errors.Is(err, context.Canceled):
		return codes.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		return codes.DeadlineExceeded
	}
	switch domain.KindOf(err) {
	case domain.KindValidation, domain.KindDecode:
		return codes.InvalidArgument
	}
	return codes.Unavailable
}

// Status converts err into a gRPC status error. Store and unclassified
// failures do not leak their detail to the caller.
func Status(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	code := Code(err)
	msg := err.Error()
	if code == codes.Unavailable {
		msg = "store unavailable"
	}
	return status.Error(code, msg)
}

func requireAddress(field, v string) error {
	if v == "" {
		return domain.Validation(field, domain.ErrRequired)
	}
	return checkAddress(field, v)
}

// checkAddress accepts an empty value, which means the filter is unset.
func checkAddress(field, v string) error {
	if v != "" && !common.IsHexAddress(v) {
		return domain.Validationf(field, "not a hex address: %q", v)
	}
	return nil
}
