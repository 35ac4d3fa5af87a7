package services

import (
	"context"
	"fmt"
	"time"

	"restomart/internal/caching"
	"restomart/internal/common"
	"restomart/internal/models"
	"restomart/internal/repositories"
)

const (
	dailySalesCacheTTL = 5 * time.Minute
	dashboardCacheTTL  = 1 * time.Minute
	inventoryCacheTTL  = 5 * time.Minute

	dashboardCacheKey       = "restomart:report:dashboard"
	inventoryReportCacheKey = "restomart:report:inventory"
)

// ReportService serves read-only rollups through a cache-aside layer. Reports
// never mutate state; a stale read within the TTL is acceptable.
type ReportService interface {
	DailySales(ctx context.Context, date string) (*models.DailySalesReport, error)
	InventoryReport(ctx context.Context) (*models.InventoryReport, error)
	DashboardStats(ctx context.Context) (*models.DashboardStats, error)
	// RefreshDashboard recomputes the dashboard rollup and overwrites the
	// cached copy; used by the background refresh job.
	RefreshDashboard(ctx context.Context) error
}

type reportService struct {
	reportRepo    repositories.ReportRepository
	inventoryRepo repositories.InventoryRepository
	cache         caching.CacheService
}

func NewReportService(reportRepo repositories.ReportRepository, inventoryRepo repositories.InventoryRepository, cache caching.CacheService) ReportService {
	return &reportService{reportRepo: reportRepo, inventoryRepo: inventoryRepo, cache: cache}
}

func dailySalesCacheKey(date string) string {
	return fmt.Sprintf("restomart:report:daily-sales:%s", date)
}

func (s *reportService) DailySales(ctx context.Context, date string) (*models.DailySalesReport, error) {
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, common.ValidationError("date", "must be in YYYY-MM-DD format")
	}

	key := dailySalesCacheKey(date)
	cached := &models.DailySalesReport{}
	if hit, err := s.cache.GetJSON(ctx, key, cached); err == nil && hit {
		return cached, nil
	}

	report, err := s.reportRepo.DailySales(ctx, date)
	if err != nil {
		return nil, common.UnexpectedError("load daily sales report", err)
	}
	// Cache write failures degrade to uncached reads.
	_ = s.cache.SetJSON(ctx, key, report, dailySalesCacheTTL)
	return report, nil
}

func (s *reportService) InventoryReport(ctx context.Context) (*models.InventoryReport, error) {
	cached := &models.InventoryReport{}
	if hit, err := s.cache.GetJSON(ctx, inventoryReportCacheKey, cached); err == nil && hit {
		return cached, nil
	}

	lowStock, err := s.inventoryRepo.LowStock(ctx)
	if err != nil {
		return nil, common.UnexpectedError("load low stock items", err)
	}
	byCategory, err := s.inventoryRepo.CategoryStats(ctx)
	if err != nil {
		return nil, common.UnexpectedError("load inventory category stats", err)
	}
	report := &models.InventoryReport{LowStockItems: lowStock, ByCategory: byCategory}
	_ = s.cache.SetJSON(ctx, inventoryReportCacheKey, report, inventoryCacheTTL)
	return report, nil
}

func (s *reportService) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	cached := &models.DashboardStats{}
	if hit, err := s.cache.GetJSON(ctx, dashboardCacheKey, cached); err == nil && hit {
		return cached, nil
	}

	stats, err := s.reportRepo.DashboardStats(ctx)
	if err != nil {
		return nil, common.UnexpectedError("load dashboard stats", err)
	}
	_ = s.cache.SetJSON(ctx, dashboardCacheKey, stats, dashboardCacheTTL)
	return stats, nil
}

func (s *reportService) RefreshDashboard(ctx context.Context) error {
	stats, err := s.reportRepo.DashboardStats(ctx)
	if err != nil {
		return err
	}
	return s.cache.SetJSON(ctx, dashboardCacheKey, stats, dashboardCacheTTL)
}
