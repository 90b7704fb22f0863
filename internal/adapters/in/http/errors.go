package http

import (
	"errors"
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/policy"
	"fulfillment/internal/core/domain/model/status"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// writeError maps domain and use-case errors onto HTTP status codes:
//
//	422 invalid transition
//	423 another employee's unexpired lock (with remaining seconds)
//	409 version conflict, shrunken pool, disabled policy, protected status
//	404 missing object
//	400 everything the caller could have validated
func writeError(ctx echo.Context, err error) error {
	var lockErr *order.AlreadyLockedError
	if errors.As(err, &lockErr) {
		return ctx.JSON(http.StatusLocked, Error{
			Code:             http.StatusLocked,
			Message:          err.Error(),
			RemainingSeconds: int64(lockErr.Remaining / time.Second),
		})
	}

	var code int
	switch {
	case errors.Is(err, status.ErrInvalidTransition):
		code = http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrVersionIsInvalid),
		errors.Is(err, commands.ErrInsufficientPool),
		errors.Is(err, commands.ErrStatusCodeTaken),
		errors.Is(err, commands.ErrStatusIsSystem),
		errors.Is(err, commands.ErrStatusInUse),
		errors.Is(err, order.ErrAlreadyAssigned),
		errors.Is(err, policy.ErrPolicyDisabled):
		code = http.StatusConflict
	case errors.Is(err, services.ErrDuplicateOrderAssignment),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	default:
		code = http.StatusInternalServerError
	}

	return ctx.JSON(code, Error{Code: code, Message: err.Error()})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
