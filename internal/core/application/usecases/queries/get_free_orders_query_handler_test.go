package queries_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/status"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tc_postgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetFreeOrdersQueryHandlerTestSuite struct {
	suite.Suite
	container *tc_postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetFreeOrdersQueryHandler
}

func (suite *GetFreeOrdersQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tc_postgres.Run(ctx,
		"postgres:15-alpine",
		tc_postgres.WithDatabase("testdb"),
		tc_postgres.WithUsername("testuser"),
		tc_postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = postgres.Migrate(db)
	suite.Require().NoError(err)

	suite.handler = queries.NewGetFreeOrdersQueryHandler(db)
}

func (suite *GetFreeOrdersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetFreeOrdersQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GetFreeOrdersQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query, err := queries.NewGetFreeOrdersQuery([]status.Code{status.New}, time.Time{}, time.Time{})
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetFreeOrdersQueryHandlerTestSuite) TestHandle_MixedPool_ReturnsUnassignedOldestFirst() {
	ctx := context.Background()
	base := time.Now().Add(-3 * time.Hour).UTC().Truncate(time.Second)

	oldest := suite.saveOrder("ORD-2001", "Dana Reyes", base)
	newest := suite.saveOrder("ORD-2002", "Omar Valdez", base.Add(time.Hour))
	suite.assignOrder(suite.saveOrder("ORD-2003", "Iris Chen", base.Add(2*time.Hour)))

	query, err := queries.NewGetFreeOrdersQuery([]status.Code{status.New}, time.Time{}, time.Time{})
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)

	suite.True(result[0].ID.IsEqual(oldest.ID()))
	suite.Equal("ORD-2001", result[0].Number)
	suite.Equal("Dana Reyes", result[0].CustomerName)
	suite.Equal(status.New, result[0].StatusCode)
	suite.Equal(int64(3000), result[0].TotalAmount)

	suite.True(result[1].ID.IsEqual(newest.ID()))
}

func (suite *GetFreeOrdersQueryHandlerTestSuite) TestHandle_TimeWindow_FiltersByCreationTime() {
	ctx := context.Background()
	base := time.Now().Add(-6 * time.Hour).UTC().Truncate(time.Second)

	suite.saveOrder("ORD-2101", "Dana Reyes", base)
	inside := suite.saveOrder("ORD-2102", "Omar Valdez", base.Add(2*time.Hour))
	suite.saveOrder("ORD-2103", "Iris Chen", base.Add(4*time.Hour))

	// Upper bound is exclusive, so only the middle order qualifies.
	query, err := queries.NewGetFreeOrdersQuery(
		[]status.Code{status.New},
		base.Add(time.Hour),
		base.Add(4*time.Hour),
	)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.True(result[0].ID.IsEqual(inside.ID()))
}

func (suite *GetFreeOrdersQueryHandlerTestSuite) TestHandle_StatusFilter_ExcludesOtherCodes() {
	ctx := context.Background()
	suite.saveOrder("ORD-2201", "Dana Reyes", time.Now().Add(-time.Hour))

	query, err := queries.NewGetFreeOrdersQuery([]status.Code{status.Postponed}, time.Time{}, time.Time{})
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Empty(result)
}

func (suite *GetFreeOrdersQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetFreeOrdersQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetFreeOrdersQuery constructor")
}

func (suite *GetFreeOrdersQueryHandlerTestSuite) TestHandle_ContextCancellation_ReturnsError() {
	for i := range 20 {
		suite.saveOrder(fmt.Sprintf("ORD-23%02d", i), "Dana Reyes", time.Now().Add(-time.Hour))
	}

	query, err := queries.NewGetFreeOrdersQuery([]status.Code{status.New}, time.Time{}, time.Time{})
	suite.Require().NoError(err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().Error(err)
	suite.Nil(result)
}

func (suite *GetFreeOrdersQueryHandlerTestSuite) saveOrder(number, customer string, createdAt time.Time) *order.Order {
	initial, err := status.RestoreStatus(kernel.NewUUID(), status.New, "New", "#2d9cdb", 10, true)
	suite.Require().NoError(err)

	item, err := order.NewLineItem("Ceramic mug", 2, 1500)
	suite.Require().NoError(err)

	o, err := order.NewOrder(
		kernel.NewUUID(), number,
		customer, "+15550100", "12 Harbor Lane",
		[]order.LineItem{item}, 3000, 0,
		initial, createdAt,
	)
	suite.Require().NoError(err)

	repo := orderrepo.NewGormOrderRepository(suite.db, &mockAggregateTracker{})
	err = repo.Add(context.Background(), o)
	suite.Require().NoError(err)

	return o
}

func (suite *GetFreeOrdersQueryHandlerTestSuite) assignOrder(o *order.Order) {
	ctx := context.Background()
	repo := orderrepo.NewGormOrderRepository(suite.db, &mockAggregateTracker{})

	// Reload to pick up the persisted version before the guarded update.
	loaded, err := repo.Get(ctx, o.ID())
	suite.Require().NoError(err)

	err = loaded.Assign(kernel.NewUUID(), 3, time.Now())
	suite.Require().NoError(err)

	err = repo.Update(ctx, loaded)
	suite.Require().NoError(err)
}

func TestGetFreeOrdersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetFreeOrdersQueryHandlerTestSuite))
}

// mockAggregateTracker implements ports.AggregateTracker for test purposes.
// It's a no-op implementation since we don't need aggregate tracking in query tests.
type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {
	// No-op for query tests
}

func (m *mockAggregateTracker) GetTrackedAggregates() []any {
	return []any{}
}
