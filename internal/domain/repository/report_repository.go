package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SalesSummaryResult totales de ventas de un período (pedidos no cancelados).
type SalesSummaryResult struct {
	OrderCount     int
	DeliveredCount int
	CancelledCount int
	GrossRevenue   decimal.Decimal
	UnitsSold      int
}

// TopProductResult ventas acumuladas de un producto en el período.
type TopProductResult struct {
	ProductID   string
	SKU         string
	ProductName string
	UnitsSold   int
	Revenue     decimal.Decimal
}

// ReportRepository consultas de solo lectura para el panel operativo.
type ReportRepository interface {
	SalesSummary(ctx context.Context, from, to time.Time) (*SalesSummaryResult, error)
	TopProducts(ctx context.Context, from, to time.Time, limit int) ([]TopProductResult, error)
}
