package services

import (
	"fmt"
	"time"

	"github.com/sultan-bakery/sultan-orders-api/models"
	"gorm.io/gorm"
)

// MonthStats holds the current-calendar-month subtotals
type MonthStats struct {
	Revenue  float64 `json:"revenue"`
	Expenses float64 `json:"expenses"`
}

// FinanceStats aggregates revenue and expenses across orders and transactions.
// Realized revenue is the sum of paid amounts; pending revenue the sum of
// remaining amounts.
type FinanceStats struct {
	TotalRevenue   float64    `json:"totalRevenue"`
	PendingRevenue float64    `json:"pendingRevenue"`
	TotalExpenses  float64    `json:"totalExpenses"`
	NetProfit      float64    `json:"netProfit"`
	CurrentMonth   MonthStats `json:"currentMonth"`
}

// FinanceService computes financial summaries from the order and transaction tables
type FinanceService struct {
	db *gorm.DB
}

// NewFinanceService creates a finance service backed by the given database
func NewFinanceService(db *gorm.DB) *FinanceService {
	return &FinanceService{db: db}
}

// Stats computes the full financial summary as of now
func (s *FinanceService) Stats(now time.Time) (*FinanceStats, error) {
	stats := &FinanceStats{}

	row := struct {
		TotalRevenue   float64
		PendingRevenue float64
	}{}
	err := s.db.Model(&models.Order{}).
		Select("COALESCE(SUM(paid_amount), 0) AS total_revenue, COALESCE(SUM(remaining_amount), 0) AS pending_revenue").
		Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate order revenue: %w", err)
	}
	stats.TotalRevenue = row.TotalRevenue
	stats.PendingRevenue = row.PendingRevenue

	err = s.db.Model(&models.Transaction{}).
		Where("type = ?", models.TransactionExpense).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&stats.TotalExpenses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate expenses: %w", err)
	}

	stats.NetProfit = stats.TotalRevenue - stats.TotalExpenses

	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	err = s.db.Model(&models.Order{}).
		Where("created_at >= ?", startOfMonth).
		Select("COALESCE(SUM(paid_amount), 0)").
		Scan(&stats.CurrentMonth.Revenue).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate current month revenue: %w", err)
	}

	err = s.db.Model(&models.Transaction{}).
		Where("type = ? AND date >= ?", models.TransactionExpense, startOfMonth).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&stats.CurrentMonth.Expenses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate current month expenses: %w", err)
	}

	return stats, nil
}
