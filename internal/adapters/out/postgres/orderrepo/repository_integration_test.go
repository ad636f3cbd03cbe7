package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
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

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for OrderRepository
// using PostgreSQL containers to verify database persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
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

	// Get connection string and connect to database
	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	// Auto-migrate the schema
	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.ItemDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	// Clean the database before each test
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error)

	// Create fresh repository and tracker for each test
	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()

	testOrder := suite.createTestOrder("ORD-1001")

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	suite.assertOrderCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ExistingOrder_ReturnsOrder() {
	ctx := context.Background()

	originalOrder := suite.createTestOrder("ORD-1002")

	suite.tracker.On("TrackAggregate", originalOrder.ID(), originalOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, originalOrder))

	retrievedOrder, err := suite.repository.Get(ctx, originalOrder.ID())
	suite.Require().NoError(err)

	// Verify order details round-tripped
	suite.Equal(originalOrder.ID(), retrievedOrder.ID())
	suite.Equal("ORD-1002", retrievedOrder.Number())
	suite.Equal(order.TypeDelivery, retrievedOrder.OrderType())
	suite.Equal(order.Pending, retrievedOrder.Status())
	suite.Equal("Alice Moran", retrievedOrder.CustomerName())
	suite.Len(retrievedOrder.Items(), 2)
	suite.Equal("Margherita", retrievedOrder.Items()[0].Name())
	suite.Equal([]string{"extra cheese"}, retrievedOrder.Items()[0].Options())
	suite.True(retrievedOrder.Charges().Total().IsEqual(originalOrder.Charges().Total()))
	suite.Equal("card", retrievedOrder.Payment().Method())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	retrievedOrder, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrievedOrder)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StatusTransitionPersists() {
	ctx := context.Background()

	testOrder := suite.createTestOrder("ORD-1003")
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	// Accept and set the kitchen estimate, then persist
	suite.Require().NoError(testOrder.Accept())
	readyAt := time.Now().UTC().Add(20 * time.Minute).Truncate(time.Second)
	suite.Require().NoError(testOrder.SetEstimatedReadyTime(readyAt))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	retrievedOrder, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Confirmed, retrievedOrder.Status())
	suite.Require().NotNil(retrievedOrder.EstimatedReadyTime())
	suite.WithinDuration(readyAt, *retrievedOrder.EstimatedReadyTime(), time.Second)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsError() {
	ctx := context.Background()

	nonExistentOrder := suite.createTestOrder("ORD-1004")

	// No expectations on tracker since operation should fail
	err := suite.repository.Update(ctx, nonExistentOrder)
	suite.Require().Error(err)

	suite.tracker.AssertExpectations(suite.T())
}

// createTestOrder creates a basic delivery order with two lines.
func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder(number string) *order.Order {
	pizza, err := order.NewItem("Margherita", 1, kernel.MustNewMoney(1250), []string{"extra cheese"}, "")
	suite.Require().NoError(err)
	drink, err := order.NewItem("Lemonade", 2, kernel.MustNewMoney(350), nil, "no ice")
	suite.Require().NoError(err)

	charges := order.NewCharges(
		kernel.MustNewMoney(1950),
		kernel.MustNewMoney(160),
		kernel.MustNewMoney(299),
		kernel.MustNewMoney(300),
	)
	payment, err := order.NewPayment("card", order.PaymentPaid)
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(
		kernel.NewUUID(), number, order.TypeDelivery, "Alice Moran",
		[]order.Item{pizza, drink}, charges, payment, "ring the bell",
	)
	suite.Require().NoError(err)
	return testOrder
}

// assertOrderCount verifies the number of orders in the database.
func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int) {
	var count int64
	err := suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
