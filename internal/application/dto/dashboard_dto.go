package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStatsResponse indicadores agregados del mes en curso.
type DashboardStatsResponse struct {
	MonthlyOrders    int64           `json:"monthly_orders"`
	MonthlyRevenue   decimal.Decimal `json:"monthly_revenue"`
	TotalCustomers   int64           `json:"total_customers"`
	LowStockProducts int64           `json:"low_stock_products"`
	AverageRating    decimal.Decimal `json:"average_rating"`
}

// SalesPointResponse punto de la serie de ventas diarias.
type SalesPointResponse struct {
	Date    time.Time       `json:"date"`
	Orders  int64           `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

// TopProductResponse fila del ranking de más vendidos.
type TopProductResponse struct {
	ProductID  string `json:"product_id"`
	AlbumTitle string `json:"album_title"`
	Format     string `json:"format"`
	TotalSold  int64  `json:"total_sold"`
}
