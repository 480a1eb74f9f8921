package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// GeneralStats indicadores agregados del back-office.
type GeneralStats struct {
	MonthlyOrders    int64
	MonthlyRevenue   decimal.Decimal
	TotalCustomers   int64
	LowStockProducts int64 // stock_quantity < umbral
	AverageRating    decimal.Decimal
}

// SalesPoint un punto de la serie de ventas por día.
type SalesPoint struct {
	Date    time.Time
	Orders  int64
	Revenue decimal.Decimal
}

// TopProduct fila del ranking de productos más vendidos.
type TopProduct struct {
	ProductID  string
	Format     string
	AlbumTitle string
	TotalSold  int64
}

// DashboardRepository consultas de solo lectura para el dashboard del manager.
type DashboardRepository interface {
	GeneralStats(ctx context.Context, from, to time.Time, lowStockThreshold int) (*GeneralStats, error)
	SalesTimeline(ctx context.Context, from time.Time) ([]SalesPoint, error)
	TopProducts(ctx context.Context, limit int) ([]TopProduct, error)
}
