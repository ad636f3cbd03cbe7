package driverrepo_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/driverrepo"
	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/kernel"
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

// DriverRepositoryIntegrationTestSuite provides integration tests for DriverRepository
// using PostgreSQL containers to verify database persistence behavior.
type DriverRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *driverrepo.GormDriverRepository
	tracker    *MockAggregateTracker
}

func (suite *DriverRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&driverrepo.DriverDTO{}))
}

func (suite *DriverRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE drivers").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = driverrepo.NewGormDriverRepository(suite.db, suite.tracker)
}

func (suite *DriverRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *DriverRepositoryIntegrationTestSuite) TestAdd_ValidDriver_Success() {
	ctx := context.Background()

	testDriver := suite.createTestDriver("Marco", 4.5)

	suite.tracker.On("TrackAggregate", testDriver.ID(), testDriver).Once()

	err := suite.repository.Add(ctx, testDriver)
	suite.Require().NoError(err)

	suite.assertDriverCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *DriverRepositoryIntegrationTestSuite) TestGet_ExistingDriver_RoundTrips() {
	ctx := context.Background()

	original := suite.createTestDriver("Marco", 4.5)
	suite.tracker.On("TrackAggregate", original.ID(), original).Once()
	suite.Require().NoError(suite.repository.Add(ctx, original))

	retrieved, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.Equal(original.ID(), retrieved.ID())
	suite.Equal("Marco", retrieved.Name())
	suite.Equal("+15550199", retrieved.Phone())
	suite.Equal(driver.Available, retrieved.Status())
	suite.Equal(0, retrieved.CurrentDeliveries())
	suite.Equal(0, retrieved.TotalDeliveries())
	suite.InDelta(4.5, retrieved.Rating(), 0.0001)
	suite.Equal(driver.VehicleScooter, retrieved.Vehicle().Type())
	suite.Equal("AB-123", retrieved.Vehicle().Plate())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *DriverRepositoryIntegrationTestSuite) TestGet_NonExistentDriver_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *DriverRepositoryIntegrationTestSuite) TestUpdate_LoadChangePersists() {
	ctx := context.Background()

	testDriver := suite.createTestDriver("Marco", 4.5)
	suite.tracker.On("TrackAggregate", testDriver.ID(), testDriver).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, testDriver))

	suite.Require().NoError(testDriver.TakeDelivery())
	suite.Require().NoError(suite.repository.Update(ctx, testDriver))

	retrieved, err := suite.repository.Get(ctx, testDriver.ID())
	suite.Require().NoError(err)
	suite.Equal(driver.Busy, retrieved.Status())
	suite.Equal(1, retrieved.CurrentDeliveries())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *DriverRepositoryIntegrationTestSuite) TestGetAllAvailable_ExcludesBusyAndOffline() {
	ctx := context.Background()

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(3)

	available := suite.createTestDriver("Marco", 4.5)
	suite.Require().NoError(suite.repository.Add(ctx, available))

	busy := suite.createTestDriver("Nadia", 4.9)
	suite.Require().NoError(busy.TakeDelivery())
	suite.Require().NoError(suite.repository.Add(ctx, busy))

	offline := suite.createTestDriver("Pavel", 4.1)
	suite.Require().NoError(offline.SetOffline())
	suite.Require().NoError(suite.repository.Add(ctx, offline))

	candidates, err := suite.repository.GetAllAvailable(ctx)
	suite.Require().NoError(err)

	suite.Len(candidates, 1)
	suite.Equal(available.ID(), candidates[0].ID())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *DriverRepositoryIntegrationTestSuite) TestGetAllAvailable_NoDrivers_ReturnsEmptySlice() {
	ctx := context.Background()

	candidates, err := suite.repository.GetAllAvailable(ctx)
	suite.Require().NoError(err)
	suite.Empty(candidates)

	suite.tracker.AssertExpectations(suite.T())
}

// createTestDriver creates an available scooter driver.
func (suite *DriverRepositoryIntegrationTestSuite) createTestDriver(name string, rating float64) *driver.Driver {
	vehicle, err := driver.NewVehicle(driver.VehicleScooter, "AB-123")
	suite.Require().NoError(err)

	testDriver, err := driver.NewDriver(kernel.NewUUID(), name, "+15550199", rating, vehicle)
	suite.Require().NoError(err)
	return testDriver
}

// assertDriverCount verifies the number of drivers in the database.
func (suite *DriverRepositoryIntegrationTestSuite) assertDriverCount(expected int) {
	var count int64
	err := suite.db.Model(&driverrepo.DriverDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestDriverRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(DriverRepositoryIntegrationTestSuite))
}
