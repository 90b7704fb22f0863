package cmd

import (
	"log/slog"

	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/ports"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use-case handlers. Handlers are cheap
// value types; create them on demand rather than caching.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	shipping   ports.ShippingGateway
	notifier   ports.Notifier
	logger     *slog.Logger
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		shipping:   NewLogShippingGateway(logger),
		notifier:   NewLogNotifier(logger),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.StatusUoWFactory = FuncStatusUoWFactory(func() commands.StatusUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	var f commands.WorkflowUoWFactory = FuncWorkflowUoWFactory(func() commands.WorkflowUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionOrderCommandHandler(f, c.shipping, c.logger)
}

func (c *CompositionRoot) CreateAcquireLockCommandHandler() commands.AcquireLockCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAcquireLockCommandHandler(f)
}

func (c *CompositionRoot) CreateReleaseLockCommandHandler() commands.ReleaseLockCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReleaseLockCommandHandler(f)
}

func (c *CompositionRoot) CreateNextOrderCommandHandler() commands.NextOrderCommandHandler {
	var f commands.QueueUoWFactory = FuncQueueUoWFactory(func() commands.QueueUoW {
		return c.uowFactory.Create()
	})
	return commands.NewNextOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateDecideOrderCommandHandler() commands.DecideOrderCommandHandler {
	var f commands.WorkflowUoWFactory = FuncWorkflowUoWFactory(func() commands.WorkflowUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDecideOrderCommandHandler(f, c.shipping, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateDistributeManualCommandHandler() commands.DistributeManualCommandHandler {
	var f commands.DistributionUoWFactory = FuncDistributionUoWFactory(func() commands.DistributionUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDistributeManualCommandHandler(f, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateDistributeAutoCommandHandler() commands.DistributeAutoCommandHandler {
	var f commands.DistributionUoWFactory = FuncDistributionUoWFactory(func() commands.DistributionUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDistributeAutoCommandHandler(f, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateSavePolicyCommandHandler() commands.SavePolicyCommandHandler {
	var f commands.PolicyUoWFactory = FuncPolicyUoWFactory(func() commands.PolicyUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSavePolicyCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateCustomStatusCommandHandler() commands.CreateCustomStatusCommandHandler {
	var f commands.StatusUoWFactory = FuncStatusUoWFactory(func() commands.StatusUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateCustomStatusCommandHandler(f)
}

func (c *CompositionRoot) CreateDeleteCustomStatusCommandHandler() commands.DeleteCustomStatusCommandHandler {
	var f commands.StatusUoWFactory = FuncStatusUoWFactory(func() commands.StatusUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeleteCustomStatusCommandHandler(f)
}

func (c *CompositionRoot) CreateReleaseExpiredLocksCommandHandler() commands.ReleaseExpiredLocksCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReleaseExpiredLocksCommandHandler(f)
}

func (c *CompositionRoot) CreateAutoMoveExhaustedCommandHandler() commands.AutoMoveExhaustedCommandHandler {
	var f commands.WorkflowUoWFactory = FuncWorkflowUoWFactory(func() commands.WorkflowUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAutoMoveExhaustedCommandHandler(f, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateGetFreeOrdersQueryHandler() queries.GetFreeOrdersQueryHandler {
	return queries.NewGetFreeOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreatePreviewDistributionQueryHandler() queries.PreviewDistributionQueryHandler {
	return queries.NewPreviewDistributionQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPolicyQueryHandler() queries.GetPolicyQueryHandler {
	return queries.NewGetPolicyQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStatusesQueryHandler() queries.GetStatusesQueryHandler {
	return queries.NewGetStatusesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStatusHistoryQueryHandler() queries.GetStatusHistoryQueryHandler {
	return queries.NewGetStatusHistoryQueryHandler(c.gormDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncWorkflowUoWFactory func() commands.WorkflowUoW

func (f FuncWorkflowUoWFactory) Create() commands.WorkflowUoW {
	return f()
}

type FuncQueueUoWFactory func() commands.QueueUoW

func (f FuncQueueUoWFactory) Create() commands.QueueUoW {
	return f()
}

type FuncDistributionUoWFactory func() commands.DistributionUoW

func (f FuncDistributionUoWFactory) Create() commands.DistributionUoW {
	return f()
}

type FuncStatusUoWFactory func() commands.StatusUoW

func (f FuncStatusUoWFactory) Create() commands.StatusUoW {
	return f()
}

type FuncPolicyUoWFactory func() commands.PolicyUoW

func (f FuncPolicyUoWFactory) Create() commands.PolicyUoW {
	return f()
}
