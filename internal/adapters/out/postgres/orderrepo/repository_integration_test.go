package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/status"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite verifies order persistence against a
// real PostgreSQL instance, including the optimistic version guard.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&orderrepo.AssignmentDTO{},
		&orderrepo.HistoryDTO{},
	))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_PersistsAggregate() {
	ctx := context.Background()
	testOrder := suite.createTestOrder("ORD-4001")

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	suite.assertOrderCount(1)
	suite.assertRowCount(&orderrepo.ItemDTO{}, 1)
	suite.assertRowCount(&orderrepo.HistoryDTO{}, 1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ExistingOrder_RoundTripsAggregate() {
	ctx := context.Background()
	original := suite.createTestOrder("ORD-4002")

	suite.tracker.On("TrackAggregate", original.ID(), original).Once()
	suite.Require().NoError(suite.repository.Add(ctx, original))

	retrieved, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.True(retrieved.ID().IsEqual(original.ID()))
	suite.Equal("ORD-4002", retrieved.Number())
	suite.Equal("Dana Reyes", retrieved.CustomerName())
	suite.Equal(status.New, retrieved.StatusCode())
	suite.Equal(order.PaymentUnpaid, retrieved.PaymentStatus())
	suite.Equal(int64(3000), retrieved.TotalAmount())
	suite.Equal(int64(1), retrieved.Version())
	suite.Require().Len(retrieved.Items(), 1)
	suite.Equal("Ceramic mug", retrieved.Items()[0].ProductName())
	suite.Require().Len(retrieved.History(), 1)
	suite.Equal("system", retrieved.History()[0].Actor())
	suite.Nil(retrieved.ActiveAssignment())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	retrieved, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_AssignmentAndHistory_Persisted() {
	ctx := context.Background()
	testOrder := suite.createTestOrder("ORD-4003")
	employeeID := kernel.NewUUID()

	suite.tracker.On("TrackAggregate", testOrder.ID(), mock.Anything).Times(2)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(loaded.Assign(employeeID, 3, time.Now()))

	review, err := status.RestoreStatus(kernel.NewUUID(), status.UnderReview, "Under review", "#f2c94c", 20, true)
	suite.Require().NoError(err)
	err = loaded.TransitionTo(status.NewGraph(nil), review, "no answer on first call", employeeID.String(), time.Now())
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Update(ctx, loaded))

	reloaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.Equal(status.UnderReview, reloaded.StatusCode())
	suite.Equal(int64(2), reloaded.Version())
	suite.Require().NotNil(reloaded.ActiveAssignment())
	suite.True(reloaded.ActiveAssignment().EmployeeID().IsEqual(employeeID))
	suite.Require().Len(reloaded.History(), 2)
	suite.Equal("no answer on first call", reloaded.History()[1].Notes())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_ReturnsVersionError() {
	ctx := context.Background()
	testOrder := suite.createTestOrder("ORD-4004")

	suite.tracker.On("TrackAggregate", testOrder.ID(), mock.Anything).Times(2)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	// Two workers load the same version.
	first, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.Assign(kernel.NewUUID(), 3, time.Now()))
	suite.Require().NoError(suite.repository.Update(ctx, first))

	suite.Require().NoError(second.Assign(kernel.NewUUID(), 3, time.Now()))
	err = suite.repository.Update(ctx, second)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsVersionError() {
	testOrder := suite.createTestOrder("ORD-4005")

	err := suite.repository.Update(context.Background(), testOrder)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetFree_ExcludesAssignedOrders() {
	ctx := context.Background()

	free := suite.createTestOrder("ORD-4101")
	taken := suite.createTestOrder("ORD-4102")

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(3)
	suite.Require().NoError(suite.repository.Add(ctx, free))
	suite.Require().NoError(suite.repository.Add(ctx, taken))

	loaded, err := suite.repository.Get(ctx, taken.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.Assign(kernel.NewUUID(), 3, time.Now()))
	suite.Require().NoError(suite.repository.Update(ctx, loaded))

	pool, err := suite.repository.GetFree(ctx, []status.Code{status.New}, time.Time{}, time.Time{})
	suite.Require().NoError(err)

	suite.Require().Len(pool, 1)
	suite.True(pool[0].ID().IsEqual(free.ID()))
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAssignedTo_ReturnsOnlyOwnOrders() {
	ctx := context.Background()

	mine := suite.createTestOrder("ORD-4201")
	other := suite.createTestOrder("ORD-4202")
	myID := kernel.NewUUID()

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(4)
	suite.Require().NoError(suite.repository.Add(ctx, mine))
	suite.Require().NoError(suite.repository.Add(ctx, other))

	loadedMine, err := suite.repository.Get(ctx, mine.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(loadedMine.Assign(myID, 3, time.Now()))
	suite.Require().NoError(suite.repository.Update(ctx, loadedMine))

	loadedOther, err := suite.repository.Get(ctx, other.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(loadedOther.Assign(kernel.NewUUID(), 3, time.Now()))
	suite.Require().NoError(suite.repository.Update(ctx, loadedOther))

	assigned, err := suite.repository.GetAssignedTo(ctx, myID)
	suite.Require().NoError(err)

	suite.Require().Len(assigned, 1)
	suite.True(assigned[0].ID().IsEqual(mine.ID()))

	all, err := suite.repository.GetAllWithActiveAssignment(ctx)
	suite.Require().NoError(err)
	suite.Len(all, 2)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestCountByStatus_CountsMatchingOrders() {
	ctx := context.Background()

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(2)
	suite.Require().NoError(suite.repository.Add(ctx, suite.createTestOrder("ORD-4301")))
	suite.Require().NoError(suite.repository.Add(ctx, suite.createTestOrder("ORD-4302")))

	count, err := suite.repository.CountByStatus(ctx, status.New)
	suite.Require().NoError(err)
	suite.Equal(int64(2), count)

	count, err = suite.repository.CountByStatus(ctx, status.Confirmed)
	suite.Require().NoError(err)
	suite.Zero(count)
	suite.tracker.AssertExpectations(suite.T())
}

// createTestOrder creates a basic order in the initial status.
func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder(number string) *order.Order {
	initial, err := status.RestoreStatus(kernel.NewUUID(), status.New, "New", "#2d9cdb", 10, true)
	suite.Require().NoError(err)

	item, err := order.NewLineItem("Ceramic mug", 2, 1500)
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(
		kernel.NewUUID(), number,
		"Dana Reyes", "+15550100", "12 Harbor Lane",
		[]order.LineItem{item}, 3000, 0,
		initial, time.Now().UTC().Truncate(time.Second),
	)
	suite.Require().NoError(err)
	return testOrder
}

func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int) {
	suite.assertRowCount(&orderrepo.OrderDTO{}, expected)
}

func (suite *OrderRepositoryIntegrationTestSuite) assertRowCount(model any, expected int) {
	var count int64
	err := suite.db.Model(model).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
