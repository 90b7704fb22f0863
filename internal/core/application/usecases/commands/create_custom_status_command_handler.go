package commands

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/status"
	"fulfillment/internal/pkg/errs"
)

// ErrStatusCodeTaken is returned when a custom status reuses a code already
// present in the catalog.
var ErrStatusCodeTaken = errors.New("status code is already in the catalog")

// CreateCustomStatusCommandHandler adds a custom status to the catalog.
type CreateCustomStatusCommandHandler struct {
	uowFactory StatusUoWFactory
}

// NewCreateCustomStatusCommandHandler creates a handler for status creation.
func NewCreateCustomStatusCommandHandler(uowFactory StatusUoWFactory) CreateCustomStatusCommandHandler {
	return CreateCustomStatusCommandHandler{uowFactory: uowFactory}
}

// Handle persists the custom status after checking code uniqueness.
func (h CreateCustomStatusCommandHandler) Handle(ctx context.Context, cmd CreateCustomStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	statusRepo := uow.StatusRepository()

	if _, err := statusRepo.GetByCode(ctx, cmd.Code()); err == nil {
		return fmt.Errorf("%w: %s", ErrStatusCodeTaken, cmd.Code())
	} else if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	s, err := status.NewCustomStatus(cmd.StatusID(), cmd.Code(), cmd.Name(), cmd.Color(), cmd.SortOrder())
	if err != nil {
		return err
	}

	if err := statusRepo.Add(ctx, s); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
