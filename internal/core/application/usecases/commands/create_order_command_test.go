package commands_test

import (
	"context"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

// Test data builders.
func buildOrderCommandInput(t *testing.T) ([]commands.OrderItemSpec, order.Charges, order.Payment) {
	t.Helper()

	items := []commands.OrderItemSpec{
		{Name: "Margherita", Quantity: 2, UnitPrice: kernel.MustNewMoney(1250), Options: []string{"extra cheese"}},
	}
	charges := order.NewCharges(
		kernel.MustNewMoney(2500),
		kernel.MustNewMoney(200),
		kernel.MustNewMoney(300),
		kernel.MustNewMoney(0),
	)
	payment, err := order.NewPayment("card", order.PaymentPaid)
	require.NoError(t, err)

	return items, charges, payment
}

func TestNewCreateOrderCommand(t *testing.T) {
	items, charges, payment := buildOrderCommandInput(t)

	t.Run("should construct with valid parameters", func(t *testing.T) {
		cmd, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), "ORD-0001", order.TypeDelivery, "Alice",
			items, charges, payment, "ring the bell",
		)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, "ORD-0001", cmd.Number())
		assert.Equal(t, order.TypeDelivery, cmd.OrderType())
		assert.Len(t, cmd.Items(), 1)
	})

	t.Run("should reject empty number", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), "", order.TypeDelivery, "Alice",
			items, charges, payment, "",
		)

		require.ErrorIs(t, err, commands.ErrOrderNumberIsRequired)
	})

	t.Run("should reject empty customer name", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), "ORD-0001", order.TypeDelivery, "",
			items, charges, payment, "",
		)

		require.ErrorIs(t, err, commands.ErrCustomerNameIsRequired)
	})

	t.Run("should reject empty items", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), "ORD-0001", order.TypeDelivery, "Alice",
			nil, charges, payment, "",
		)

		require.ErrorIs(t, err, commands.ErrItemsAreRequired)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var cmd commands.CreateOrderCommand

		require.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
	})
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	items, charges, payment := buildOrderCommandInput(t)

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, "ORD-0001", order.TypeDelivery, "Alice",
		items, charges, payment, "",
	)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)

	// The persisted order starts Pending with the submitted lines.
	addCall := orderRepo.Calls[0]
	created := addCall.Arguments[1].(*order.Order)
	assert.Equal(t, order.Pending, created.Status())
	assert.Equal(t, orderID, created.ID())
	assert.Len(t, created.Items(), 1)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_InvalidLine(t *testing.T) {
	ctx := t.Context()
	_, charges, payment := buildOrderCommandInput(t)

	badItems := []commands.OrderItemSpec{
		{Name: "Soup", Quantity: 0, UnitPrice: kernel.MustNewMoney(100)},
	}
	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), "ORD-0002", order.TypePickup, "Bob",
		badItems, charges, payment, "",
	)
	require.NoError(t, err)

	factory := new(MockOrderUoWFactory)
	handler := commands.NewCreateOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	factory.AssertNotCalled(t, "Create")
}

func TestAcceptOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	items, charges, payment := buildOrderCommandInput(t)

	item, err := order.NewItem(items[0].Name, items[0].Quantity, items[0].UnitPrice, items[0].Options, "")
	require.NoError(t, err)
	aggregate, err := order.NewOrder(
		kernel.NewUUID(), "ORD-0003", order.TypeDelivery, "Alice",
		[]order.Item{item}, charges, payment, "",
	)
	require.NoError(t, err)

	cmd, err := commands.NewAcceptOrderCommand(aggregate.ID(), nil)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAcceptOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Confirmed, aggregate.Status())
}
