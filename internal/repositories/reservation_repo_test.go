package repositories

import (
	"context"
	"testing"
	"time"

	"restomart/internal/models"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type ReservationRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    ReservationRepository
	ctx     context.Context
	tableID uuid.UUID
	at      time.Time
}

func (suite *ReservationRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock
	suite.repo = NewReservationRepo(mock)
	suite.ctx = context.Background()
	suite.tableID = uuid.New()
	suite.at = time.Now().Add(24 * time.Hour)
}

func (suite *ReservationRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestReservationRepoTestSuite(t *testing.T) {
	suite.Run(t, new(ReservationRepoTestSuite))
}

// The window is symmetric around the requested time and only confirmed or
// seated reservations count against it.
func (suite *ReservationRepoTestSuite) TestHasConflict_WindowAndStatusFilter() {
	suite.mock.ExpectQuery(`reservation_time BETWEEN \$2::timestamptz - INTERVAL '2 hours' AND \$2::timestamptz \+ INTERVAL '2 hours'`).
		WithArgs(suite.tableID, suite.at, models.ReservationConfirmed, models.ReservationSeated, (*uuid.UUID)(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	conflict, err := suite.repo.HasConflict(suite.ctx, suite.tableID, suite.at, nil)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), conflict)
}

func (suite *ReservationRepoTestSuite) TestHasConflict_NoConflict() {
	suite.mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(suite.tableID, suite.at, models.ReservationConfirmed, models.ReservationSeated, (*uuid.UUID)(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	conflict, err := suite.repo.HasConflict(suite.ctx, suite.tableID, suite.at, nil)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), conflict)
}

// Updates pass their own id so a reservation never conflicts with itself.
func (suite *ReservationRepoTestSuite) TestHasConflict_SelfExclusion() {
	selfID := uuid.New()
	suite.mock.ExpectQuery(`\(\$5::uuid IS NULL OR id != \$5\)`).
		WithArgs(suite.tableID, suite.at, models.ReservationConfirmed, models.ReservationSeated, &selfID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	conflict, err := suite.repo.HasConflict(suite.ctx, suite.tableID, suite.at, &selfID)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), conflict)
}

func (suite *ReservationRepoTestSuite) TestUpcoming_ConfirmedOnly() {
	resID := uuid.New()
	suite.mock.ExpectQuery(`BETWEEN NOW\(\) AND NOW\(\) \+ INTERVAL '1 hour' \* \$1`).
		WithArgs(2, models.ReservationConfirmed).
		WillReturnRows(pgxmock.NewRows([]string{"id", "customer_name", "customer_phone", "customer_email",
			"table_id", "reservation_time", "party_size", "duration", "special_requests", "status",
			"created_at", "table_number"}).
			AddRow(resID, "Ana Silva", "555-0101", (*string)(nil), suite.tableID, suite.at,
				4, 120, (*string)(nil), models.ReservationConfirmed, time.Now(), intPtr(9)))

	reservations, err := suite.repo.Upcoming(suite.ctx, 2)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), reservations, 1)
	assert.Equal(suite.T(), "Ana Silva", reservations[0].CustomerName)
	assert.Equal(suite.T(), 9, *reservations[0].TableNumber)
}

func intPtr(v int) *int { return &v }
