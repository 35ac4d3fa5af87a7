package services

import (
	"context"
	"testing"
	"time"

	"restomart/internal/common"
	"restomart/internal/models"
	"restomart/internal/repositories"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type OrderServiceTestSuite struct {
	suite.Suite
	mock       pgxmock.PgxPoolIface
	service    OrderService
	ctx        context.Context
	tableID    uuid.UUID
	menuItemID uuid.UUID
}

func (suite *OrderServiceTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock
	suite.service = NewOrderService(mock, repositories.NewOrderRepo(mock), false)
	suite.ctx = context.Background()
	suite.tableID = uuid.New()
	suite.menuItemID = uuid.New()
}

func (suite *OrderServiceTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestOrderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}

func (suite *OrderServiceTestSuite) tableRow(status string) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "table_number", "capacity", "location", "status", "created_at"}).
		AddRow(suite.tableID, 5, 4, (*string)(nil), status, time.Now())
}

func (suite *OrderServiceTestSuite) menuItemRow(price float64) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "name", "description", "price", "category", "image_url",
		"preparation_time", "is_available", "created_at", "updated_at"}).
		AddRow(suite.menuItemID, "Classic Burger", (*string)(nil), price, "mains", (*string)(nil),
			(*int)(nil), true, time.Now(), time.Now())
}

func (suite *OrderServiceTestSuite) TestCreate_Success() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`SELECT .* FROM tables WHERE id = \$1 FOR UPDATE`).
		WithArgs(suite.tableID).
		WillReturnRows(suite.tableRow(models.TableAvailable))
	suite.mock.ExpectQuery(`SELECT .* FROM menu_items WHERE id = \$1 AND is_available = true`).
		WithArgs(suite.menuItemID).
		WillReturnRows(suite.menuItemRow(9.50))
	suite.mock.ExpectQuery(`INSERT INTO orders`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), suite.tableID, 19.00, "dine-in", models.OrderPending, (*string)(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
	suite.mock.ExpectExec(`INSERT INTO order_items`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), suite.menuItemID, 2, 9.50, (*string)(nil)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectQuery(`UPDATE tables SET status = \$1 WHERE id = \$2`).
		WithArgs(models.TableOccupied, suite.tableID).
		WillReturnRows(suite.tableRow(models.TableOccupied))
	suite.mock.ExpectCommit()

	order, err := suite.service.Create(suite.ctx, &models.CreateOrderRequest{
		TableID: suite.tableID,
		Lines: []*models.CreateOrderLine{
			{MenuItemID: suite.menuItemID, Quantity: 2},
		},
	})

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), order)
	assert.Equal(suite.T(), 19.00, order.TotalAmount)
	assert.Equal(suite.T(), models.OrderPending, order.Status)
	assert.Equal(suite.T(), "dine-in", order.OrderType)
	assert.NotEmpty(suite.T(), order.OrderNumber)
	assert.Len(suite.T(), order.Lines, 1)
	assert.Equal(suite.T(), 9.50, order.Lines[0].UnitPrice)
	assert.Equal(suite.T(), order.ID, order.Lines[0].OrderID)
}

func (suite *OrderServiceTestSuite) TestCreate_TableOccupied() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`SELECT .* FROM tables WHERE id = \$1 FOR UPDATE`).
		WithArgs(suite.tableID).
		WillReturnRows(suite.tableRow(models.TableOccupied))
	suite.mock.ExpectRollback()

	order, err := suite.service.Create(suite.ctx, &models.CreateOrderRequest{
		TableID: suite.tableID,
		Lines: []*models.CreateOrderLine{
			{MenuItemID: suite.menuItemID, Quantity: 1},
		},
	})

	assert.Nil(suite.T(), order)
	assert.True(suite.T(), common.IsConflict(err))
}

func (suite *OrderServiceTestSuite) TestCreate_TableNotFound() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`SELECT .* FROM tables WHERE id = \$1 FOR UPDATE`).
		WithArgs(suite.tableID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "table_number", "capacity", "location", "status", "created_at"}))
	suite.mock.ExpectRollback()

	order, err := suite.service.Create(suite.ctx, &models.CreateOrderRequest{
		TableID: suite.tableID,
		Lines: []*models.CreateOrderLine{
			{MenuItemID: suite.menuItemID, Quantity: 1},
		},
	})

	assert.Nil(suite.T(), order)
	assert.True(suite.T(), common.IsNotFound(err))
}

func (suite *OrderServiceTestSuite) TestCreate_MenuItemUnavailable() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`SELECT .* FROM tables WHERE id = \$1 FOR UPDATE`).
		WithArgs(suite.tableID).
		WillReturnRows(suite.tableRow(models.TableAvailable))
	suite.mock.ExpectQuery(`SELECT .* FROM menu_items WHERE id = \$1 AND is_available = true`).
		WithArgs(suite.menuItemID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "description", "price", "category", "image_url",
			"preparation_time", "is_available", "created_at", "updated_at"}))
	suite.mock.ExpectRollback()

	order, err := suite.service.Create(suite.ctx, &models.CreateOrderRequest{
		TableID: suite.tableID,
		Lines: []*models.CreateOrderLine{
			{MenuItemID: suite.menuItemID, Quantity: 1},
		},
	})

	assert.Nil(suite.T(), order)
	assert.True(suite.T(), common.IsConflict(err))
}

func (suite *OrderServiceTestSuite) TestCreate_ValidationFailuresSkipDatabase() {
	cases := []*models.CreateOrderRequest{
		{TableID: uuid.Nil, Lines: []*models.CreateOrderLine{{MenuItemID: suite.menuItemID, Quantity: 1}}},
		{TableID: suite.tableID},
		{TableID: suite.tableID, Lines: []*models.CreateOrderLine{{MenuItemID: uuid.Nil, Quantity: 1}}},
		{TableID: suite.tableID, Lines: []*models.CreateOrderLine{{MenuItemID: suite.menuItemID, Quantity: 0}}},
	}
	for _, req := range cases {
		order, err := suite.service.Create(suite.ctx, req)
		assert.Nil(suite.T(), order)
		assert.True(suite.T(), common.IsValidation(err))
	}
}

func (suite *OrderServiceTestSuite) TestCreate_WithStockDeduction() {
	service := NewOrderService(suite.mock, repositories.NewOrderRepo(suite.mock), true)
	ingredientID := uuid.New()

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`SELECT .* FROM tables WHERE id = \$1 FOR UPDATE`).
		WithArgs(suite.tableID).
		WillReturnRows(suite.tableRow(models.TableAvailable))
	suite.mock.ExpectQuery(`SELECT .* FROM menu_items WHERE id = \$1 AND is_available = true`).
		WithArgs(suite.menuItemID).
		WillReturnRows(suite.menuItemRow(12.00))
	suite.mock.ExpectQuery(`INSERT INTO orders`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), suite.tableID, 24.00, "dine-in", models.OrderPending, (*string)(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
	suite.mock.ExpectExec(`INSERT INTO order_items`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), suite.menuItemID, 2, 12.00, (*string)(nil)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectQuery(`FROM menu_ingredients mi`).
		WithArgs(suite.menuItemID).
		WillReturnRows(pgxmock.NewRows([]string{"inventory_item_id", "name", "unit", "quantity", "current_stock"}).
			AddRow(ingredientID, "beef patty", "pcs", 1.0, 40.0))
	suite.mock.ExpectQuery(`UPDATE inventory`).
		WithArgs(-2.0, ingredientID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "category", "current_stock", "minimum_stock",
			"unit", "unit_price", "supplier", "is_low_stock", "last_restocked", "created_at", "updated_at"}).
			AddRow(ingredientID, "beef patty", "meat", 38.0, 10.0, "pcs", 2.50, (*string)(nil), false,
				(*time.Time)(nil), time.Now(), time.Now()))
	suite.mock.ExpectQuery(`UPDATE tables SET status = \$1 WHERE id = \$2`).
		WithArgs(models.TableOccupied, suite.tableID).
		WillReturnRows(suite.tableRow(models.TableOccupied))
	suite.mock.ExpectCommit()

	order, err := service.Create(suite.ctx, &models.CreateOrderRequest{
		TableID: suite.tableID,
		Lines: []*models.CreateOrderLine{
			{MenuItemID: suite.menuItemID, Quantity: 2},
		},
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 24.00, order.TotalAmount)
}

func (suite *OrderServiceTestSuite) TestUpdateStatus_Unconditional() {
	orderID := uuid.New()
	suite.mock.ExpectQuery(`UPDATE orders o SET status = \$1`).
		WithArgs(models.OrderPreparing, orderID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "order_number", "table_id", "total_amount",
			"order_type", "status", "customer_notes", "created_at"}).
			AddRow(orderID, "ORD1", suite.tableID, 19.00, "dine-in", models.OrderPreparing, (*string)(nil), time.Now()))

	order, err := suite.service.UpdateStatus(suite.ctx, orderID, models.OrderPreparing)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.OrderPreparing, order.Status)
}

func (suite *OrderServiceTestSuite) TestUpdateStatus_NotFound() {
	orderID := uuid.New()
	suite.mock.ExpectQuery(`UPDATE orders o SET status = \$1`).
		WithArgs(models.OrderCancelled, orderID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "order_number", "table_id", "total_amount",
			"order_type", "status", "customer_notes", "created_at"}))

	order, err := suite.service.UpdateStatus(suite.ctx, orderID, models.OrderCancelled)
	assert.Nil(suite.T(), order)
	assert.True(suite.T(), common.IsNotFound(err))
}
