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

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

const purchaseColumns = `id, supplier_id, employee_id, purchase_date, status, total_amount`

// PurchaseRepo implementación de PurchaseRepository (usable con pool o tx).
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create persiste la cabecera de la compra.
func (r *PurchaseRepo) Create(purchase *entity.Purchase) error {
	query := `
		INSERT INTO purchases (` + purchaseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		purchase.ID, purchase.SupplierID, purchase.EmployeeID,
		purchase.PurchaseDate, purchase.Status, purchase.TotalAmount,
	)
	if err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de compra.
func (r *PurchaseRepo) CreateItem(item *entity.PurchaseItem) error {
	query := `
		INSERT INTO purchase_items (id, purchase_id, product_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.PurchaseID, item.ProductID, item.Quantity, item.UnitPrice,
	)
	if err != nil {
		return fmt.Errorf("insert purchase item: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una compra. Devuelve nil sin error si no existe.
func (r *PurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	row := r.q.QueryRow(context.Background(),
		`SELECT `+purchaseColumns+` FROM purchases WHERE id = $1`, id)
	var p entity.Purchase
	err := row.Scan(&p.ID, &p.SupplierID, &p.EmployeeID, &p.PurchaseDate, &p.Status, &p.TotalAmount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	return &p, nil
}

// List lista las compras con paginación, más recientes primero.
func (r *PurchaseRepo) List(limit, offset int) ([]*entity.Purchase, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+purchaseColumns+` FROM purchases ORDER BY purchase_date DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()
	var list []*entity.Purchase
	for rows.Next() {
		var p entity.Purchase
		if err := rows.Scan(&p.ID, &p.SupplierID, &p.EmployeeID,
			&p.PurchaseDate, &p.Status, &p.TotalAmount); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// ListItems lista las líneas de una compra con formato y título de álbum resueltos.
func (r *PurchaseRepo) ListItems(purchaseID string) ([]*repository.PurchaseItemDetail, error) {
	query := `
		SELECT pi.id, pi.purchase_id, pi.product_id, pi.quantity, pi.unit_price,
		       p.format, al.title
		FROM purchase_items pi
		JOIN products p  ON p.id  = pi.product_id
		JOIN albums   al ON al.id = p.album_id
		WHERE pi.purchase_id = $1
		ORDER BY pi.id`
	rows, err := r.q.Query(context.Background(), query, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("list purchase items: %w", err)
	}
	defer rows.Close()
	var list []*repository.PurchaseItemDetail
	for rows.Next() {
		var d repository.PurchaseItemDetail
		if err := rows.Scan(&d.Item.ID, &d.Item.PurchaseID, &d.Item.ProductID,
			&d.Item.Quantity, &d.Item.UnitPrice, &d.Format, &d.AlbumTitle); err != nil {
			return nil, fmt.Errorf("scan purchase item: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// UpdateStatus persiste el nuevo estado de la cabecera.
func (r *PurchaseRepo) UpdateStatus(id, status string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE purchases SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update purchase status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
