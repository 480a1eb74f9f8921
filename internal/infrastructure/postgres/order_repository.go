package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/discoteca-api/internal/domain"
	"github.com/tu-usuario/discoteca-api/internal/domain/entity"
	"github.com/tu-usuario/discoteca-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, user_id, order_date, status, total_amount, payment_method, shipping_address`

// OrderRepo implementación de OrderRepository (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste la cabecera del pedido.
func (r *OrderRepo) Create(order *entity.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.UserID, order.OrderDate, order.Status,
		order.TotalAmount, order.PaymentMethod, order.ShippingAddress,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de pedido.
func (r *OrderRepo) CreateItem(item *entity.OrderItem) error {
	query := `
		INSERT INTO order_items (id, order_id, product_id, quantity, price)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.OrderID, item.ProductID, item.Quantity, item.Price,
	)
	if err != nil {
		return fmt.Errorf("insert order item: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de un pedido. Devuelve nil sin error si no existe.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	row := r.q.QueryRow(context.Background(),
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	var o entity.Order
	err := row.Scan(&o.ID, &o.UserID, &o.OrderDate, &o.Status,
		&o.TotalAmount, &o.PaymentMethod, &o.ShippingAddress)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &o, nil
}

// ListByUser lista los pedidos de un usuario, más recientes primero.
func (r *OrderRepo) ListByUser(userID string) ([]*entity.Order, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY order_date DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders by user: %w", err)
	}
	return r.collect(rows)
}

// ListAll lista todos los pedidos con paginación, más recientes primero (back-office).
func (r *OrderRepo) ListAll(limit, offset int) ([]*entity.Order, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+orderColumns+` FROM orders ORDER BY order_date DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return r.collect(rows)
}

func (r *OrderRepo) collect(rows pgx.Rows) ([]*entity.Order, error) {
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.OrderDate, &o.Status,
			&o.TotalAmount, &o.PaymentMethod, &o.ShippingAddress); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// ListItems lista las líneas de un pedido con formato, título de álbum y artista resueltos.
func (r *OrderRepo) ListItems(orderID string) ([]*repository.OrderItemDetail, error) {
	query := `
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price,
		       p.format, al.title, ar.name
		FROM order_items oi
		JOIN products p  ON p.id  = oi.product_id
		JOIN albums   al ON al.id = p.album_id
		JOIN artists  ar ON ar.id = al.artist_id
		WHERE oi.order_id = $1
		ORDER BY oi.id`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	var list []*repository.OrderItemDetail
	for rows.Next() {
		var d repository.OrderItemDetail
		if err := rows.Scan(&d.Item.ID, &d.Item.OrderID, &d.Item.ProductID,
			&d.Item.Quantity, &d.Item.Price, &d.Format, &d.AlbumTitle, &d.ArtistName); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// UpdateStatus persiste el nuevo estado de la cabecera.
// La validación de pertenencia al enum ocurre en el caso de uso.
func (r *OrderRepo) UpdateStatus(id, status string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE orders SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
