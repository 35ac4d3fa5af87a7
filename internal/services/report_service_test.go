package services

import (
	"context"
	"testing"
	"time"

	"restomart/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) DailySales(ctx context.Context, date string) (*models.DailySalesReport, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DailySalesReport), args.Error(1)
}

func (m *MockReportRepository) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DashboardStats), args.Error(1)
}

type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) Create(ctx context.Context, item *models.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockInventoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) Update(ctx context.Context, item *models.InventoryItem) (*models.InventoryItem, error) {
	args := m.Called(ctx, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) ApplyDelta(ctx context.Context, id uuid.UUID, delta float64) (*models.InventoryItem, error) {
	args := m.Called(ctx, id, delta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockInventoryRepository) HasIngredientReferences(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockInventoryRepository) List(ctx context.Context, filter *models.InventoryFilter) ([]*models.InventoryItem, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) LowStock(ctx context.Context) ([]*models.InventoryItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) CategoryStats(ctx context.Context) ([]*models.InventoryCategoryStat, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.InventoryCategoryStat), args.Error(1)
}

func (m *MockInventoryRepository) Stats(ctx context.Context) (*models.InventoryStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InventoryStats), args.Error(1)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	args := m.Called(ctx, key, dest)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheService) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheService) Delete(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

func (m *MockCacheService) DeletePattern(ctx context.Context, pattern string) error {
	args := m.Called(ctx, pattern)
	return args.Error(0)
}

func (m *MockCacheService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type ReportServiceTestSuite struct {
	suite.Suite
	reportRepo    *MockReportRepository
	inventoryRepo *MockInventoryRepository
	cache         *MockCacheService
	service       ReportService
	ctx           context.Context
}

func (suite *ReportServiceTestSuite) SetupTest() {
	suite.reportRepo = &MockReportRepository{}
	suite.inventoryRepo = &MockInventoryRepository{}
	suite.cache = &MockCacheService{}
	suite.service = NewReportService(suite.reportRepo, suite.inventoryRepo, suite.cache)
	suite.ctx = context.Background()

	suite.reportRepo.Test(suite.T())
	suite.inventoryRepo.Test(suite.T())
	suite.cache.Test(suite.T())
}

func (suite *ReportServiceTestSuite) TearDownTest() {
	suite.reportRepo.AssertExpectations(suite.T())
	suite.inventoryRepo.AssertExpectations(suite.T())
	suite.cache.AssertExpectations(suite.T())
}

func TestReportServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportServiceTestSuite))
}

func (suite *ReportServiceTestSuite) TestDailySales_CacheMissLoadsAndStores() {
	report := &models.DailySalesReport{Date: "2025-03-10"}

	suite.cache.On("GetJSON", suite.ctx, "restomart:report:daily-sales:2025-03-10", mock.Anything).
		Return(false, nil)
	suite.reportRepo.On("DailySales", suite.ctx, "2025-03-10").Return(report, nil)
	suite.cache.On("SetJSON", suite.ctx, "restomart:report:daily-sales:2025-03-10", report, dailySalesCacheTTL).
		Return(nil)

	got, err := suite.service.DailySales(suite.ctx, "2025-03-10")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), report, got)
}

func (suite *ReportServiceTestSuite) TestDailySales_CacheHitSkipsDatabase() {
	suite.cache.On("GetJSON", suite.ctx, "restomart:report:daily-sales:2025-03-10", mock.Anything).
		Run(func(args mock.Arguments) {
			dest := args.Get(2).(*models.DailySalesReport)
			dest.Date = "2025-03-10"
			dest.Summary.TotalOrders = 42
		}).
		Return(true, nil)

	got, err := suite.service.DailySales(suite.ctx, "2025-03-10")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 42, got.Summary.TotalOrders)
	suite.reportRepo.AssertNotCalled(suite.T(), "DailySales")
}

func (suite *ReportServiceTestSuite) TestDailySales_RejectsBadDate() {
	got, err := suite.service.DailySales(suite.ctx, "10-03-2025")
	assert.Nil(suite.T(), got)
	assert.Error(suite.T(), err)
}

func (suite *ReportServiceTestSuite) TestInventoryReport_CombinesLowStockAndCategories() {
	lowStock := []*models.InventoryItem{{Name: "mozzarella", IsLowStock: true}}
	byCategory := []*models.InventoryCategoryStat{{Category: "dairy", ItemCount: 3}}

	suite.cache.On("GetJSON", suite.ctx, inventoryReportCacheKey, mock.Anything).Return(false, nil)
	suite.inventoryRepo.On("LowStock", suite.ctx).Return(lowStock, nil)
	suite.inventoryRepo.On("CategoryStats", suite.ctx).Return(byCategory, nil)
	suite.cache.On("SetJSON", suite.ctx, inventoryReportCacheKey, mock.Anything, inventoryCacheTTL).
		Return(nil)

	report, err := suite.service.InventoryReport(suite.ctx)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), lowStock, report.LowStockItems)
	assert.Equal(suite.T(), byCategory, report.ByCategory)
}

func (suite *ReportServiceTestSuite) TestRefreshDashboard_OverwritesCache() {
	stats := &models.DashboardStats{TodayOrders: 7}

	suite.reportRepo.On("DashboardStats", suite.ctx).Return(stats, nil)
	suite.cache.On("SetJSON", suite.ctx, dashboardCacheKey, stats, dashboardCacheTTL).Return(nil)

	err := suite.service.RefreshDashboard(suite.ctx)
	assert.NoError(suite.T(), err)
}
