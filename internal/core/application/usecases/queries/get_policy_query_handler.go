package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"fulfillment/internal/core/domain/model/status"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetPolicyQueryHandler reads the singleton policy row with direct SQL.
type GetPolicyQueryHandler struct {
	db *gorm.DB
}

// NewGetPolicyQueryHandler creates a handler for policy queries.
func NewGetPolicyQueryHandler(db *gorm.DB) GetPolicyQueryHandler {
	return GetPolicyQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ObjectNotFoundError when no policy
// has been saved yet.
func (h GetPolicyQueryHandler) Handle(
	ctx context.Context,
	query GetPolicyQuery,
) (GetPolicyQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetPolicyQueryResponse{}, err
	}

	var resp GetPolicyQueryResponse
	var autoMoveStatus, triggerStatus string
	var retryStatuses, confirmationStatuses []byte

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			enabled,
			max_retries,
			retry_interval_minutes,
			auto_move_status,
			retry_statuses,
			confirmation_statuses,
			working_hours_enabled,
			working_hours_start,
			working_hours_end,
			notify_employee,
			notify_admin,
			auto_send_to_shipping,
			trigger_status,
			require_payment_confirm,
			partial_payment_threshold,
			version
		FROM retry_policies
		LIMIT 1
	`).Row()

	err := row.Scan(
		&resp.Enabled,
		&resp.MaxRetries,
		&resp.RetryIntervalMinutes,
		&autoMoveStatus,
		&retryStatuses,
		&confirmationStatuses,
		&resp.WorkingHoursEnabled,
		&resp.WorkingHoursStart,
		&resp.WorkingHoursEnd,
		&resp.NotifyEmployee,
		&resp.NotifyAdmin,
		&resp.AutoSendToShipping,
		&triggerStatus,
		&resp.RequirePaymentConfirm,
		&resp.PartialPaymentThreshold,
		&resp.Version,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetPolicyQueryResponse{}, errs.NewObjectNotFoundError("retry policy", "singleton")
	}
	if err != nil {
		return GetPolicyQueryResponse{}, err
	}

	resp.AutoMoveStatus = status.Code(autoMoveStatus)
	resp.TriggerStatus = status.Code(triggerStatus)

	if err = json.Unmarshal(retryStatuses, &resp.RetryStatuses); err != nil {
		return GetPolicyQueryResponse{}, err
	}
	if err = json.Unmarshal(confirmationStatuses, &resp.ConfirmationStatuses); err != nil {
		return GetPolicyQueryResponse{}, err
	}

	return resp, nil
}
