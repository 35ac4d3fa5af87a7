package repositories

import (
	"context"
	"testing"
	"time"

	"restomart/internal/common"
	"restomart/internal/models"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type InventoryRepoTestSuite struct {
	suite.Suite
	mock   pgxmock.PgxPoolIface
	repo   InventoryRepository
	ctx    context.Context
	itemID uuid.UUID
}

func (suite *InventoryRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock
	suite.repo = NewInventoryRepo(mock)
	suite.ctx = context.Background()
	suite.itemID = uuid.New()
}

func (suite *InventoryRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestInventoryRepoTestSuite(t *testing.T) {
	suite.Run(t, new(InventoryRepoTestSuite))
}

func (suite *InventoryRepoTestSuite) itemRow(stock, minimum float64, lowStock bool) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "name", "category", "current_stock", "minimum_stock",
		"unit", "unit_price", "supplier", "is_low_stock", "last_restocked", "created_at", "updated_at"}).
		AddRow(suite.itemID, "basil", "produce", stock, minimum, "kg", 4.00, (*string)(nil),
			lowStock, (*time.Time)(nil), time.Now(), time.Now())
}

// The delta and the flag recomputation must live in one UPDATE statement;
// anything split across two statements could expose a stale flag.
func (suite *InventoryRepoTestSuite) TestApplyDelta_SingleStatementRecompute() {
	suite.mock.ExpectQuery(`UPDATE inventory\s+SET current_stock = current_stock \+ \$1,\s+is_low_stock = \(current_stock \+ \$1\) <= minimum_stock`).
		WithArgs(-3.0, suite.itemID).
		WillReturnRows(suite.itemRow(1.0, 2.0, true))

	item, err := suite.repo.ApplyDelta(suite.ctx, suite.itemID, -3.0)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), item.IsLowStock)
}

func (suite *InventoryRepoTestSuite) TestApplyDelta_RestockStampsLastRestocked() {
	suite.mock.ExpectQuery(`last_restocked = CASE WHEN \$1 > 0 THEN NOW\(\) ELSE last_restocked END`).
		WithArgs(10.0, suite.itemID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "category", "current_stock", "minimum_stock",
			"unit", "unit_price", "supplier", "is_low_stock", "last_restocked", "created_at", "updated_at"}).
			AddRow(suite.itemID, "basil", "produce", 12.0, 2.0, "kg", 4.00, (*string)(nil),
				false, timePtr(time.Now()), time.Now(), time.Now()))

	item, err := suite.repo.ApplyDelta(suite.ctx, suite.itemID, 10.0)
	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), item.LastRestocked)
	assert.False(suite.T(), item.IsLowStock)
}

func (suite *InventoryRepoTestSuite) TestGetByID_NotFound() {
	suite.mock.ExpectQuery(`SELECT .* FROM inventory WHERE id = \$1`).
		WithArgs(suite.itemID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "category", "current_stock", "minimum_stock",
			"unit", "unit_price", "supplier", "is_low_stock", "last_restocked", "created_at", "updated_at"}))

	item, err := suite.repo.GetByID(suite.ctx, suite.itemID)
	assert.Nil(suite.T(), item)
	assert.True(suite.T(), common.IsNotFound(err))
}

func (suite *InventoryRepoTestSuite) TestCreate_DerivesFlagAtInsert() {
	suite.mock.ExpectQuery(`INSERT INTO inventory .*\$4 <= \$5`).
		WithArgs(suite.itemID, "basil", "produce", 1.0, 2.0, "kg", 4.00, (*string)(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"is_low_stock", "created_at", "updated_at"}).
			AddRow(true, time.Now(), time.Now()))

	item := &models.InventoryItem{
		ID:           suite.itemID,
		Name:         "basil",
		Category:     "produce",
		CurrentStock: 1.0,
		MinimumStock: 2.0,
		Unit:         "kg",
		UnitPrice:    4.00,
	}
	err := suite.repo.Create(suite.ctx, item)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), item.IsLowStock)
}

func (suite *InventoryRepoTestSuite) TestDelete_NotFound() {
	suite.mock.ExpectExec(`DELETE FROM inventory`).
		WithArgs(suite.itemID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := suite.repo.Delete(suite.ctx, suite.itemID)
	assert.True(suite.T(), common.IsNotFound(err))
}

func timePtr(t time.Time) *time.Time { return &t }
