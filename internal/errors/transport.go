package errors

import (
	"context"
	"errors"
	"net"
)

// MapTransportError maps failures from outbound ERP API calls to AppError instances.
// It handles:
// - context cancellation → Canceled
// - context deadline and net timeouts → BackendUnreachable
// - other net.Error values (DNS, refused, reset) → BackendUnreachable
//
// Errors that are already AppErrors are returned unchanged; anything else is returned as-is.
func MapTransportError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return err
	}

	if errors.Is(err, context.Canceled) {
		return &AppError{
			Code:    ErrCodeCanceled,
			Message: "Request was canceled.",
			Cause:   err,
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return BackendUnreachable(err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return BackendUnreachable(err)
	}

	return err
}
