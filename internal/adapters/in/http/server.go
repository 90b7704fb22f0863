// Package http exposes the fulfillment workflow over an echo JSON API.
package http

import (
	"errors"
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/policy"
	"fulfillment/internal/core/domain/model/status"
	"fulfillment/internal/core/domain/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler        commands.CreateOrderCommandHandler
	transitionHandler         commands.TransitionOrderCommandHandler
	acquireLockHandler        commands.AcquireLockCommandHandler
	releaseLockHandler        commands.ReleaseLockCommandHandler
	nextOrderHandler          commands.NextOrderCommandHandler
	decideOrderHandler        commands.DecideOrderCommandHandler
	distributeManualHandler   commands.DistributeManualCommandHandler
	distributeAutoHandler     commands.DistributeAutoCommandHandler
	savePolicyHandler         commands.SavePolicyCommandHandler
	createCustomStatusHandler commands.CreateCustomStatusCommandHandler
	deleteCustomStatusHandler commands.DeleteCustomStatusCommandHandler

	// Query handlers
	getFreeOrdersHandler       queries.GetFreeOrdersQueryHandler
	previewDistributionHandler queries.PreviewDistributionQueryHandler
	getPolicyHandler           queries.GetPolicyQueryHandler
	getStatusesHandler         queries.GetStatusesQueryHandler
	getStatusHistoryHandler    queries.GetStatusHistoryQueryHandler

	// lockTTL is the default claim duration used when a request does not
	// override it.
	lockTTL time.Duration
}

// NewServer creates the HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	transitionHandler commands.TransitionOrderCommandHandler,
	acquireLockHandler commands.AcquireLockCommandHandler,
	releaseLockHandler commands.ReleaseLockCommandHandler,
	nextOrderHandler commands.NextOrderCommandHandler,
	decideOrderHandler commands.DecideOrderCommandHandler,
	distributeManualHandler commands.DistributeManualCommandHandler,
	distributeAutoHandler commands.DistributeAutoCommandHandler,
	savePolicyHandler commands.SavePolicyCommandHandler,
	createCustomStatusHandler commands.CreateCustomStatusCommandHandler,
	deleteCustomStatusHandler commands.DeleteCustomStatusCommandHandler,
	getFreeOrdersHandler queries.GetFreeOrdersQueryHandler,
	previewDistributionHandler queries.PreviewDistributionQueryHandler,
	getPolicyHandler queries.GetPolicyQueryHandler,
	getStatusesHandler queries.GetStatusesQueryHandler,
	getStatusHistoryHandler queries.GetStatusHistoryQueryHandler,
	lockTTL time.Duration,
) *Server {
	return &Server{
		createOrderHandler:         createOrderHandler,
		transitionHandler:          transitionHandler,
		acquireLockHandler:         acquireLockHandler,
		releaseLockHandler:         releaseLockHandler,
		nextOrderHandler:           nextOrderHandler,
		decideOrderHandler:         decideOrderHandler,
		distributeManualHandler:    distributeManualHandler,
		distributeAutoHandler:      distributeAutoHandler,
		savePolicyHandler:          savePolicyHandler,
		createCustomStatusHandler:  createCustomStatusHandler,
		deleteCustomStatusHandler:  deleteCustomStatusHandler,
		getFreeOrdersHandler:       getFreeOrdersHandler,
		previewDistributionHandler: previewDistributionHandler,
		getPolicyHandler:           getPolicyHandler,
		getStatusesHandler:         getStatusesHandler,
		getStatusHistoryHandler:    getStatusHistoryHandler,
		lockTTL:                    lockTTL,
	}
}

// RegisterRoutes mounts every endpoint under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:id/transition", s.TransitionOrder)
	api.POST("/orders/:id/lock/acquire", s.AcquireLock)
	api.POST("/orders/:id/lock/release", s.ReleaseLock)
	api.GET("/orders/:id/history", s.GetStatusHistory)

	api.GET("/queue/next", s.NextOrder)
	api.POST("/queue/decide", s.DecideOrder)

	api.GET("/pool/free", s.GetFreeOrders)

	api.POST("/distribute/manual", s.DistributeManual)
	api.GET("/distribute/auto/preview", s.PreviewDistribution)
	api.POST("/distribute/auto/commit", s.DistributeAuto)

	api.GET("/policy", s.GetPolicy)
	api.POST("/policy", s.SavePolicy)

	api.GET("/statuses", s.GetStatuses)
	api.POST("/statuses", s.CreateCustomStatus)
	api.DELETE("/statuses/:id", s.DeleteCustomStatus)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req NewOrder
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	items := make([]order.LineItem, 0, len(req.Items))
	total := int64(0)
	for _, wireItem := range req.Items {
		item, err := order.NewLineItem(wireItem.ProductName, wireItem.Quantity, wireItem.UnitPrice)
		if err != nil {
			return writeError(ctx, err)
		}
		items = append(items, item)
		total += item.Total()
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, req.Number,
		req.CustomerName, req.CustomerPhone, req.Address,
		items, total, req.DepositAmount,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": orderID.String()})
}

// TransitionOrder handles POST /api/v1/orders/:id/transition.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req TransitionRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	statusID, err := kernel.UUIDFromBytes(req.StatusID[:])
	if err != nil {
		return badRequest(ctx, "Invalid status id")
	}

	var employeeID *kernel.UUID
	if req.EmployeeID != nil {
		id, idErr := kernel.UUIDFromBytes((*req.EmployeeID)[:])
		if idErr != nil {
			return badRequest(ctx, "Invalid employee id")
		}
		employeeID = &id
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, statusID, req.Notes, req.Actor, employeeID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.transitionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AcquireLock handles POST /api/v1/orders/:id/lock/acquire.
func (s *Server) AcquireLock(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req AcquireLockRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	employeeID, err := kernel.UUIDFromBytes(req.EmployeeID[:])
	if err != nil {
		return badRequest(ctx, "Invalid employee id")
	}

	ttl := s.lockTTL
	if req.TTLMinutes > 0 {
		ttl = time.Duration(req.TTLMinutes) * time.Minute
	}

	cmd, err := commands.NewAcquireLockCommand(orderID, employeeID, ttl)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.acquireLockHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReleaseLock handles POST /api/v1/orders/:id/lock/release.
func (s *Server) ReleaseLock(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewReleaseLockCommand(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.releaseLockHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// NextOrder handles GET /api/v1/queue/next. An empty queue is 204, not an
// error: the agent simply has nothing to work on right now.
func (s *Server) NextOrder(ctx echo.Context) error {
	employeeID, err := kernel.UUIDFromString(ctx.QueryParam("employeeId"))
	if err != nil {
		return badRequest(ctx, "Invalid employee id")
	}

	cmd, err := commands.NewNextOrderCommand(employeeID, s.lockTTL)
	if err != nil {
		return writeError(ctx, err)
	}

	o, err := s.nextOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		if errors.Is(err, commands.ErrQueueEmpty) {
			return ctx.NoContent(http.StatusNoContent)
		}
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, queuedOrderFromDomain(o))
}

// DecideOrder handles POST /api/v1/queue/decide.
func (s *Server) DecideOrder(ctx echo.Context) error {
	var req DecideRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID, err := kernel.UUIDFromBytes(req.OrderID[:])
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}
	employeeID, err := kernel.UUIDFromBytes(req.EmployeeID[:])
	if err != nil {
		return badRequest(ctx, "Invalid employee id")
	}
	statusID, err := kernel.UUIDFromBytes(req.StatusID[:])
	if err != nil {
		return badRequest(ctx, "Invalid status id")
	}

	cmd, err := commands.NewDecideOrderCommand(orderID, employeeID, statusID, req.Notes)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.decideOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, DecideResponse{RetryExhausted: result.RetryExhausted})
}

// GetFreeOrders handles GET /api/v1/pool/free.
func (s *Server) GetFreeOrders(ctx echo.Context) error {
	codes := statusCodes(ctx.QueryParams()["status"])
	from, to, err := timeRange(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid time bound")
	}

	query, err := queries.NewGetFreeOrdersQuery(codes, from, to)
	if err != nil {
		return writeError(ctx, err)
	}

	orders, err := s.getFreeOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]FreeOrder, len(orders))
	for i, o := range orders {
		response[i] = FreeOrder{
			ID:           o.ID.Bytes(),
			Number:       o.Number,
			CustomerName: o.CustomerName,
			StatusCode:   string(o.StatusCode),
			TotalAmount:  o.TotalAmount,
			CreatedAt:    o.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// DistributeManual handles POST /api/v1/distribute/manual.
func (s *Server) DistributeManual(ctx echo.Context) error {
	var req ManualDistributionRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	blocks := make([]services.ManualBlock, 0, len(req.Blocks))
	for _, wireBlock := range req.Blocks {
		employeeID, err := kernel.UUIDFromBytes(wireBlock.EmployeeID[:])
		if err != nil {
			return badRequest(ctx, "Invalid employee id")
		}

		orderIDs := make([]kernel.UUID, 0, len(wireBlock.OrderIDs))
		for _, raw := range wireBlock.OrderIDs {
			orderID, idErr := kernel.UUIDFromBytes(raw[:])
			if idErr != nil {
				return badRequest(ctx, "Invalid order id")
			}
			orderIDs = append(orderIDs, orderID)
		}

		blocks = append(blocks, services.ManualBlock{EmployeeID: employeeID, OrderIDs: orderIDs})
	}

	cmd, err := commands.NewDistributeManualCommand(blocks)
	if err != nil {
		return writeError(ctx, err)
	}

	results, err := s.distributeManualHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]ManualBlockOutcome, len(results))
	for i, result := range results {
		response[i] = ManualBlockOutcome{
			EmployeeID: result.EmployeeID.Bytes(),
			Assigned:   rawUUIDs(result.Assigned),
			Stale:      rawUUIDs(result.Stale),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// PreviewDistribution handles GET /api/v1/distribute/auto/preview.
func (s *Server) PreviewDistribution(ctx echo.Context) error {
	codes := statusCodes(ctx.QueryParams()["status"])
	from, to, err := timeRange(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid time bound")
	}
	orderCount, err := intParam(ctx, "orderCount")
	if err != nil {
		return badRequest(ctx, "Invalid orderCount")
	}
	employeeCount, err := intParam(ctx, "employeeCount")
	if err != nil {
		return badRequest(ctx, "Invalid employeeCount")
	}

	query, err := queries.NewPreviewDistributionQuery(codes, from, to, orderCount, employeeCount)
	if err != nil {
		return writeError(ctx, err)
	}

	plan, err := s.previewDistributionHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, previewFromPlan(plan))
}

// DistributeAuto handles POST /api/v1/distribute/auto/commit.
func (s *Server) DistributeAuto(ctx echo.Context) error {
	var req AutoDistributionRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	codes := statusCodes(req.StatusCodes)
	var from, to time.Time
	if req.From != nil {
		from = *req.From
	}
	if req.To != nil {
		to = *req.To
	}

	cmd, err := commands.NewDistributeAutoCommand(
		codes, from, to,
		req.OrderCount, req.EmployeeCount, req.ExpectedOrderCount,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.distributeAutoHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, AutoDistributionResponse{
		TotalAssigned:          result.TotalAssigned,
		EmployeesParticipating: result.EmployeesParticipating,
	})
}

// GetPolicy handles GET /api/v1/policy.
func (s *Server) GetPolicy(ctx echo.Context) error {
	query := queries.NewGetPolicyQuery()

	pol, err := s.getPolicyHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Policy{
		Enabled:                 pol.Enabled,
		MaxRetries:              pol.MaxRetries,
		RetryIntervalMinutes:    pol.RetryIntervalMinutes,
		AutoMoveStatus:          string(pol.AutoMoveStatus),
		RetryStatuses:           rawCodes(pol.RetryStatuses),
		ConfirmationStatuses:    rawCodes(pol.ConfirmationStatuses),
		WorkingHoursEnabled:     pol.WorkingHoursEnabled,
		WorkingHoursStart:       pol.WorkingHoursStart,
		WorkingHoursEnd:         pol.WorkingHoursEnd,
		NotifyEmployee:          pol.NotifyEmployee,
		NotifyAdmin:             pol.NotifyAdmin,
		AutoSendToShipping:      pol.AutoSendToShipping,
		TriggerStatus:           string(pol.TriggerStatus),
		RequirePaymentConfirm:   pol.RequirePaymentConfirm,
		PartialPaymentThreshold: pol.PartialPaymentThreshold,
		Version:                 pol.Version,
	})
}

// SavePolicy handles POST /api/v1/policy.
func (s *Server) SavePolicy(ctx echo.Context) error {
	var req Policy
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	pol, err := policy.NewRetryPolicy(
		req.Enabled,
		req.MaxRetries,
		time.Duration(req.RetryIntervalMinutes)*time.Minute,
		status.Code(req.AutoMoveStatus),
		statusCodes(req.RetryStatuses),
		statusCodes(req.ConfirmationStatuses),
		policy.WorkingHours{
			Enabled: req.WorkingHoursEnabled,
			Start:   req.WorkingHoursStart,
			End:     req.WorkingHoursEnd,
		},
		req.NotifyEmployee,
		req.NotifyAdmin,
		policy.ShippingAutomation{
			AutoSendToShipping:      req.AutoSendToShipping,
			TriggerStatus:           status.Code(req.TriggerStatus),
			RequirePaymentConfirm:   req.RequirePaymentConfirm,
			PartialPaymentThreshold: req.PartialPaymentThreshold,
		},
	)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewSavePolicyCommand(pol)
	if err != nil {
		return writeError(ctx, err)
	}

	version, err := s.savePolicyHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]int64{"version": version})
}

// GetStatuses handles GET /api/v1/statuses.
func (s *Server) GetStatuses(ctx echo.Context) error {
	query := queries.NewGetStatusesQuery()

	statuses, err := s.getStatusesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]Status, len(statuses))
	for i, entry := range statuses {
		response[i] = Status{
			ID:        entry.ID.Bytes(),
			Code:      string(entry.Code),
			Name:      entry.Name,
			Color:     entry.Color,
			SortOrder: entry.SortOrder,
			System:    entry.System,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateCustomStatus handles POST /api/v1/statuses.
func (s *Server) CreateCustomStatus(ctx echo.Context) error {
	var req NewStatus
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	statusID := kernel.NewUUID()
	cmd, err := commands.NewCreateCustomStatusCommand(
		statusID, status.Code(req.Code), req.Name, req.Color, req.SortOrder,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.createCustomStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": statusID.String()})
}

// DeleteCustomStatus handles DELETE /api/v1/statuses/:id.
func (s *Server) DeleteCustomStatus(ctx echo.Context) error {
	statusID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid status id")
	}

	cmd, err := commands.NewDeleteCustomStatusCommand(statusID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.deleteCustomStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetStatusHistory handles GET /api/v1/orders/:id/history.
func (s *Server) GetStatusHistory(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetStatusHistoryQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	records, err := s.getStatusHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]HistoryRecord, len(records))
	for i, record := range records {
		response[i] = HistoryRecord{
			ID:        record.ID.Bytes(),
			FromCode:  string(record.FromCode),
			ToCode:    string(record.ToCode),
			Notes:     record.Notes,
			Actor:     record.Actor,
			CreatedAt: record.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(name))
}

func intParam(ctx echo.Context, name string) (int, error) {
	var value int
	if err := echo.QueryParamsBinder(ctx).Int(name, &value).BindError(); err != nil {
		return 0, err
	}
	return value, nil
}

func timeRange(ctx echo.Context) (time.Time, time.Time, error) {
	var from, to time.Time
	if raw := ctx.QueryParam("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = parsed
	}
	if raw := ctx.QueryParam("to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = parsed
	}
	return from, to, nil
}

func statusCodes(values []string) []status.Code {
	codes := make([]status.Code, 0, len(values))
	for _, v := range values {
		codes = append(codes, status.Code(v))
	}
	return codes
}

func rawUUIDs(ids []kernel.UUID) []uuid.UUID {
	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}
	return raw
}

func rawCodes(codes []status.Code) []string {
	raw := make([]string, 0, len(codes))
	for _, c := range codes {
		raw = append(raw, string(c))
	}
	return raw
}

func queuedOrderFromDomain(o *order.Order) QueuedOrder {
	resp := QueuedOrder{
		ID:            o.ID().Bytes(),
		Number:        o.Number(),
		CustomerName:  o.CustomerName(),
		CustomerPhone: o.CustomerPhone(),
		Address:       o.Address(),
		StatusCode:    string(o.StatusCode()),
		TotalAmount:   o.TotalAmount(),
		DepositAmount: o.DepositAmount(),
	}
	if a := o.ActiveAssignment(); a != nil {
		resp.RetriesUsed = a.RetriesUsed()
		resp.MaxRetries = a.MaxRetries()
		resp.LockedUntil = a.LockedUntil()
	}
	return resp
}

func previewFromPlan(plan services.DistributionPlan) DistributionPreview {
	assignments := make([]PlannedAssignment, len(plan.Assignments))
	for i, planned := range plan.Assignments {
		orders := make([]PlannedRef, len(planned.Orders))
		for j, ref := range planned.Orders {
			orders[j] = PlannedRef{ID: ref.ID.Bytes(), Number: ref.Number}
		}
		assignments[i] = PlannedAssignment{
			EmployeeID:   planned.EmployeeID.Bytes(),
			EmployeeName: planned.EmployeeName,
			Orders:       orders,
		}
	}
	return DistributionPreview{
		EffectiveOrderCount:    plan.EffectiveOrderCount,
		EffectiveEmployeeCount: plan.EffectiveEmployeeCount,
		Assignments:            assignments,
	}
}
