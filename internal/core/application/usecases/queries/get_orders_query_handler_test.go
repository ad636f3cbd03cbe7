package queries_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetOrdersQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetOrdersQueryHandler
}

func (suite *GetOrdersQueryHandlerTestSuite) SetupSuite() {
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

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.ItemDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetOrdersQueryHandler(db)
}

func (suite *GetOrdersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetOrdersQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_items").Error
	suite.Require().NoError(err)
}

func (suite *GetOrdersQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query := queries.NewGetOrdersQuery(nil, nil, "")

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetOrdersQueryHandlerTestSuite) TestHandle_NoFilter_ReturnsNewestFirst() {
	now := time.Now().UTC().Truncate(time.Microsecond)
	suite.seedOrderAt("ORD-6001", "Alice Moran", order.Pending, now.Add(-2*time.Hour))
	suite.seedOrderAt("ORD-6002", "Bob Ortiz", order.Confirmed, now.Add(-1*time.Hour))
	suite.seedOrderAt("ORD-6003", "Carla Jensen", order.Pending, now)

	query := queries.NewGetOrdersQuery(nil, nil, "")

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 3)
	suite.Equal("ORD-6003", result[0].Number)
	suite.Equal("ORD-6002", result[1].Number)
	suite.Equal("ORD-6001", result[2].Number)
}

func (suite *GetOrdersQueryHandlerTestSuite) TestHandle_StatusFilter_ReturnsOnlyMatching() {
	now := time.Now().UTC().Truncate(time.Microsecond)
	suite.seedOrderAt("ORD-6004", "Alice Moran", order.Pending, now.Add(-2*time.Hour))
	suite.seedOrderAt("ORD-6005", "Bob Ortiz", order.Confirmed, now.Add(-1*time.Hour))
	suite.seedOrderAt("ORD-6006", "Carla Jensen", order.Pending, now)

	status := order.Pending
	query := queries.NewGetOrdersQuery(&status, nil, "")

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Equal("ORD-6006", result[0].Number)
	suite.Equal("ORD-6004", result[1].Number)
	for _, r := range result {
		suite.Equal("Pending", r.Status)
	}
}

func (suite *GetOrdersQueryHandlerTestSuite) TestHandle_SearchFilter_MatchesNumberAndCustomer() {
	now := time.Now().UTC().Truncate(time.Microsecond)
	suite.seedOrderAt("ORD-6007", "Alice Moran", order.Pending, now.Add(-2*time.Hour))
	suite.seedOrderAt("ORD-6008", "Bob Ortiz", order.Pending, now.Add(-1*time.Hour))
	suite.seedOrderAt("MOR-6009", "Carla Jensen", order.Pending, now)

	// Case-insensitive, matches order number and customer name alike
	query := queries.NewGetOrdersQuery(nil, nil, "mor")

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Equal("MOR-6009", result[0].Number)
	suite.Equal("ORD-6007", result[1].Number)
}

func (suite *GetOrdersQueryHandlerTestSuite) TestHandle_MapsReadModelFields() {
	now := time.Now().UTC().Truncate(time.Microsecond)
	orderID := suite.seedOrderAt("ORD-6010", "Alice Moran", order.Confirmed, now)

	query := queries.NewGetOrdersQuery(nil, nil, "")

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(orderID, result[0].ID)
	suite.Equal("ORD-6010", result[0].Number)
	suite.Equal("Delivery", result[0].OrderType)
	suite.Equal("Confirmed", result[0].Status)
	suite.Equal("Alice Moran", result[0].CustomerName)
	// Total is recomputed from the stored parts: 1250 + 100 + 299 + 0
	suite.Equal(kernel.MustNewMoney(1649), result[0].Total)
}

func (suite *GetOrdersQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetOrdersQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetOrdersQuery constructor")
}

// seedOrderAt persists an order restored into the given status with an
// explicit creation time, keeping the newest-first assertions deterministic.
func (suite *GetOrdersQueryHandlerTestSuite) seedOrderAt(
	number, customerName string,
	status order.Status,
	createdAt time.Time,
) kernel.UUID {
	item, err := order.NewItem("Margherita", 1, kernel.MustNewMoney(1250), nil, "")
	suite.Require().NoError(err)
	charges := order.NewCharges(
		kernel.MustNewMoney(1250),
		kernel.MustNewMoney(100),
		kernel.MustNewMoney(299),
		kernel.MustNewMoney(0),
	)
	payment, err := order.NewPayment("card", order.PaymentPaid)
	suite.Require().NoError(err)

	testOrder, err := order.RestoreOrder(
		kernel.NewUUID(), number, order.TypeDelivery, status,
		customerName, []order.Item{item}, charges, payment, "",
		createdAt, nil,
	)
	suite.Require().NoError(err)

	repo := orderrepo.NewGormOrderRepository(suite.db, &mockAggregateTracker{})
	suite.Require().NoError(repo.Add(context.Background(), testOrder))
	return testOrder.ID()
}

func TestGetOrdersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOrdersQueryHandlerTestSuite))
}
