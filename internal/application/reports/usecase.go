package reports

import (
	"context"
	"time"

	"github.com/jhoicas/Distribuidora-api/internal/application/dto"
	"github.com/jhoicas/Distribuidora-api/internal/domain/repository"
)

// UseCase consultas de solo lectura para el panel operativo: alertas de
// stock bajo y reportes de ventas.
type UseCase struct {
	reportRepo  repository.ReportRepository
	productRepo repository.ProductRepository
}

func NewUseCase(reportRepo repository.ReportRepository, productRepo repository.ProductRepository) *UseCase {
	return &UseCase{reportRepo: reportRepo, productRepo: productRepo}
}

// LowStockAlerts productos activos con stock en o por debajo de su mínimo.
func (uc *UseCase) LowStockAlerts() ([]dto.LowStockAlertResponse, error) {
	products, err := uc.productRepo.ListBelowMinimum()
	if err != nil {
		return nil, err
	}
	alerts := make([]dto.LowStockAlertResponse, 0, len(products))
	for _, p := range products {
		alerts = append(alerts, dto.LowStockAlertResponse{
			ProductID:    p.ID,
			SKU:          p.SKU,
			Name:         p.Name,
			CurrentStock: p.CurrentStock,
			MinimumStock: p.MinimumStock,
			Unit:         p.Unit,
		})
	}
	return alerts, nil
}

// SalesSummary totales de ventas del período [from, to].
func (uc *UseCase) SalesSummary(ctx context.Context, from, to time.Time) (*dto.SalesSummaryResponse, error) {
	summary, err := uc.reportRepo.SalesSummary(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return &dto.SalesSummaryResponse{
		From:           from.Format("2006-01-02"),
		To:             to.Format("2006-01-02"),
		OrderCount:     summary.OrderCount,
		DeliveredCount: summary.DeliveredCount,
		CancelledCount: summary.CancelledCount,
		GrossRevenue:   summary.GrossRevenue,
		UnitsSold:      summary.UnitsSold,
	}, nil
}

// TopProducts los productos más vendidos del período.
func (uc *UseCase) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]dto.TopProductResponse, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := uc.reportRepo.TopProducts(ctx, from, to, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TopProductResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.TopProductResponse{
			ProductID: row.ProductID,
			SKU:       row.SKU,
			Name:      row.ProductName,
			UnitsSold: row.UnitsSold,
			Revenue:   row.Revenue,
		})
	}
	return out, nil
}
