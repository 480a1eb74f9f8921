package analytics

import (
	"context"
	"time"

	"github.com/tu-usuario/discoteca-api/internal/application/dto"
	"github.com/tu-usuario/discoteca-api/internal/domain/repository"
)

// Periodos aceptados por la serie de ventas.
const (
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"
)

// Umbral de stock bajo y tamaño del ranking del dashboard.
const (
	lowStockThreshold = 5
	topProductsLimit  = 10
)

// DashboardUseCase consultas de solo lectura del dashboard del back-office:
// indicadores del mes, serie de ventas por periodo y ranking de más vendidos.
type DashboardUseCase struct {
	dashboardRepo repository.DashboardRepository
}

// NewDashboardUseCase construye el caso de uso de dashboard.
func NewDashboardUseCase(dashboardRepo repository.DashboardRepository) *DashboardUseCase {
	return &DashboardUseCase{dashboardRepo: dashboardRepo}
}

// Stats indicadores agregados del mes en curso.
func (uc *DashboardUseCase) Stats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	nextMonth := monthStart.AddDate(0, 1, 0)

	stats, err := uc.dashboardRepo.GeneralStats(ctx, monthStart, nextMonth, lowStockThreshold)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardStatsResponse{
		MonthlyOrders:    stats.MonthlyOrders,
		MonthlyRevenue:   stats.MonthlyRevenue,
		TotalCustomers:   stats.TotalCustomers,
		LowStockProducts: stats.LowStockProducts,
		AverageRating:    stats.AverageRating,
	}, nil
}

// Sales serie diaria de ventas del periodo pedido. Un periodo no reconocido
// cae al mes, igual que un periodo ausente.
func (uc *DashboardUseCase) Sales(ctx context.Context, period string) ([]dto.SalesPointResponse, error) {
	now := time.Now()
	var from time.Time
	switch period {
	case PeriodWeek:
		from = now.AddDate(0, 0, -7)
	case PeriodYear:
		from = now.AddDate(-1, 0, 0)
	default: // month
		from = now.AddDate(0, -1, 0)
	}

	sales, err := uc.dashboardRepo.SalesTimeline(ctx, from)
	if err != nil {
		return nil, err
	}
	result := make([]dto.SalesPointResponse, 0, len(sales))
	for _, p := range sales {
		result = append(result, dto.SalesPointResponse{
			Date:    p.Date,
			Orders:  p.Orders,
			Revenue: p.Revenue,
		})
	}
	return result, nil
}

// TopProducts ranking de productos más vendidos por unidades.
func (uc *DashboardUseCase) TopProducts(ctx context.Context) ([]dto.TopProductResponse, error) {
	top, err := uc.dashboardRepo.TopProducts(ctx, topProductsLimit)
	if err != nil {
		return nil, err
	}
	result := make([]dto.TopProductResponse, 0, len(top))
	for _, t := range top {
		result = append(result, dto.TopProductResponse{
			ProductID:  t.ProductID,
			AlbumTitle: t.AlbumTitle,
			Format:     t.Format,
			TotalSold:  t.TotalSold,
		})
	}
	return result, nil
}
