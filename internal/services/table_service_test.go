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

type TableServiceTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	service TableService
	ctx     context.Context
	tableID uuid.UUID
}

func (suite *TableServiceTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock
	suite.service = NewTableService(mock, repositories.NewTableRepo(mock))
	suite.ctx = context.Background()
	suite.tableID = uuid.New()
}

func (suite *TableServiceTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestTableServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TableServiceTestSuite))
}

func (suite *TableServiceTestSuite) tableRow(status string) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "table_number", "capacity", "location", "status", "created_at"}).
		AddRow(suite.tableID, 3, 2, (*string)(nil), status, time.Now())
}

func (suite *TableServiceTestSuite) TestCreate_DefaultsToAvailable() {
	suite.mock.ExpectQuery(`INSERT INTO tables`).
		WithArgs(pgxmock.AnyArg(), 3, 2, (*string)(nil), models.TableAvailable).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	table, err := suite.service.Create(suite.ctx, &models.Table{Number: 3, Capacity: 2})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.TableAvailable, table.Status)
	assert.NotEqual(suite.T(), uuid.Nil, table.ID)
}

func (suite *TableServiceTestSuite) TestCreate_Validation() {
	table, err := suite.service.Create(suite.ctx, &models.Table{Number: 0, Capacity: 2})
	assert.Nil(suite.T(), table)
	assert.True(suite.T(), common.IsValidation(err))

	table, err = suite.service.Create(suite.ctx, &models.Table{Number: 3, Capacity: -1})
	assert.Nil(suite.T(), table)
	assert.True(suite.T(), common.IsValidation(err))
}

func (suite *TableServiceTestSuite) TestTransitionTo_OperatorOverride() {
	suite.mock.ExpectQuery(`UPDATE tables SET status = \$1 WHERE id = \$2`).
		WithArgs(models.TableMaintenance, suite.tableID).
		WillReturnRows(suite.tableRow(models.TableMaintenance))

	table, err := suite.service.TransitionTo(suite.ctx, suite.tableID, models.TableMaintenance)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.TableMaintenance, table.Status)
}

func (suite *TableServiceTestSuite) TestDelete_BlockedByActiveOrders() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(suite.tableID, models.OrderServed, models.OrderCancelled).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	suite.mock.ExpectRollback()

	err := suite.service.Delete(suite.ctx, suite.tableID)
	assert.True(suite.T(), common.IsInUse(err))
}

func (suite *TableServiceTestSuite) TestDelete_BlockedByFutureReservations() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(suite.tableID, models.OrderServed, models.OrderCancelled).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	suite.mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(suite.tableID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	suite.mock.ExpectRollback()

	err := suite.service.Delete(suite.ctx, suite.tableID)
	assert.True(suite.T(), common.IsInUse(err))
}

func (suite *TableServiceTestSuite) TestDelete_Success() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(suite.tableID, models.OrderServed, models.OrderCancelled).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	suite.mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(suite.tableID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	suite.mock.ExpectExec(`DELETE FROM tables`).
		WithArgs(suite.tableID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	suite.mock.ExpectCommit()

	err := suite.service.Delete(suite.ctx, suite.tableID)
	assert.NoError(suite.T(), err)
}

func (suite *TableServiceTestSuite) TestFindAvailable_Validation() {
	tables, err := suite.service.FindAvailable(suite.ctx, time.Now(), 0)
	assert.Nil(suite.T(), tables)
	assert.True(suite.T(), common.IsValidation(err))
}
