package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/discoteca-api/internal/domain/entity"
	"github.com/tu-usuario/discoteca-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas de solo lectura para el dashboard del manager.
// Los pedidos cancelados no cuentan como venta.
type DashboardRepo struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository construye el adaptador de dashboard.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepo {
	return &DashboardRepo{pool: pool}
}

// GeneralStats agrega pedidos/ingresos del período, total de clientes,
// productos con stock bajo y rating promedio. COALESCE devuelve cero cuando
// no hay filas.
func (r *DashboardRepo) GeneralStats(
	ctx context.Context,
	from, to time.Time,
	lowStockThreshold int,
) (*repository.GeneralStats, error) {
	var stats repository.GeneralStats

	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(id), COALESCE(SUM(total_amount), 0)
		FROM orders
		WHERE order_date >= $1 AND order_date < $2 AND status <> $3`,
		from, to, entity.OrderStatusCancelled,
	).Scan(&stats.MonthlyOrders, &stats.MonthlyRevenue)
	if err != nil {
		return nil, fmt.Errorf("dashboard.GeneralStats orders: %w", err)
	}

	err = r.pool.QueryRow(ctx,
		`SELECT COUNT(id) FROM users WHERE role = $1`, entity.RoleCustomer,
	).Scan(&stats.TotalCustomers)
	if err != nil {
		return nil, fmt.Errorf("dashboard.GeneralStats customers: %w", err)
	}

	err = r.pool.QueryRow(ctx,
		`SELECT COUNT(id) FROM products WHERE stock_quantity < $1`, lowStockThreshold,
	).Scan(&stats.LowStockProducts)
	if err != nil {
		return nil, fmt.Errorf("dashboard.GeneralStats low stock: %w", err)
	}

	err = r.pool.QueryRow(ctx,
		`SELECT COALESCE(AVG(rating), 0) FROM reviews`,
	).Scan(&stats.AverageRating)
	if err != nil {
		return nil, fmt.Errorf("dashboard.GeneralStats rating: %w", err)
	}

	return &stats, nil
}

// SalesTimeline agrupa pedidos e ingresos por día desde la fecha dada.
func (r *DashboardRepo) SalesTimeline(ctx context.Context, from time.Time) ([]repository.SalesPoint, error) {
	const query = `
		SELECT DATE(order_date) AS day, COUNT(id), COALESCE(SUM(total_amount), 0)
		FROM orders
		WHERE order_date >= $1 AND status <> $2
		GROUP BY DATE(order_date)
		ORDER BY day`
	rows, err := r.pool.Query(ctx, query, from, entity.OrderStatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("dashboard.SalesTimeline: %w", err)
	}
	defer rows.Close()
	var points []repository.SalesPoint
	for rows.Next() {
		var p repository.SalesPoint
		if err := rows.Scan(&p.Date, &p.Orders, &p.Revenue); err != nil {
			return nil, fmt.Errorf("dashboard.SalesTimeline scan: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

// TopProducts ranking de productos por unidades vendidas.
func (r *DashboardRepo) TopProducts(ctx context.Context, limit int) ([]repository.TopProduct, error) {
	const query = `
		SELECT p.id, p.format, al.title, SUM(oi.quantity) AS total_sold
		FROM order_items oi
		JOIN products p  ON p.id  = oi.product_id
		JOIN albums   al ON al.id = p.album_id
		GROUP BY p.id, p.format, al.title
		ORDER BY total_sold DESC
		LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("dashboard.TopProducts: %w", err)
	}
	defer rows.Close()
	var list []repository.TopProduct
	for rows.Next() {
		var t repository.TopProduct
		if err := rows.Scan(&t.ProductID, &t.Format, &t.AlbumTitle, &t.TotalSold); err != nil {
			return nil, fmt.Errorf("dashboard.TopProducts scan: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}
