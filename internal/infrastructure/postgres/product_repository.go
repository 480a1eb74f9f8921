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

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, album_id, format, price, stock_quantity, barcode, condition`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.AlbumID, product.Format, product.Price,
		product.StockQuantity, product.Barcode, product.Condition,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *ProductRepo) scanOne(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.AlbumID, &p.Format, &p.Price, &p.StockQuantity, &p.Barcode, &p.Condition)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}
	return &p, nil
}

// GetByID obtiene un producto por ID. Devuelve nil sin error si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	row := r.q.QueryRow(context.Background(),
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	return r.scanOne(row)
}

// GetForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE).
// La cantidad leída aquí es la autoritativa para la secuencia check-then-decrement.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	row := r.q.QueryRow(context.Background(),
		`SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
	return r.scanOne(row)
}

// Update actualiza formato, precio, barcode y condición. No toca el stock
// (se maneja exclusivamente vía UpdateStock desde los flujos transaccionales).
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET format = $2, price = $3, barcode = $4, condition = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Format, product.Price, product.Barcode, product.Condition,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateStock escribe la nueva cantidad en stock. El CHECK de la tabla
// (stock_quantity >= 0) es la última línea de defensa contra negativos.
func (r *ProductRepo) UpdateStock(id string, quantity int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock_quantity = $2 WHERE id = $1`, id, quantity)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	return nil
}

// ListByAlbum lista los productos (formatos) de un álbum.
func (r *ProductRepo) ListByAlbum(albumID string) ([]*entity.Product, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+productColumns+` FROM products WHERE album_id = $1 ORDER BY price`, albumID)
	if err != nil {
		return nil, fmt.Errorf("list products by album: %w", err)
	}
	return r.collect(rows)
}

// ListByAlbumIDs lista los productos de un conjunto de álbumes (para el listado de catálogo).
func (r *ProductRepo) ListByAlbumIDs(albumIDs []string) ([]*entity.Product, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+productColumns+` FROM products WHERE album_id = ANY($1) ORDER BY album_id, price`, albumIDs)
	if err != nil {
		return nil, fmt.Errorf("list products by albums: %w", err)
	}
	return r.collect(rows)
}

func (r *ProductRepo) collect(rows pgx.Rows) ([]*entity.Product, error) {
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.AlbumID, &p.Format, &p.Price,
			&p.StockQuantity, &p.Barcode, &p.Condition); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// ListFormats devuelve los formatos distintos presentes en el catálogo.
func (r *ProductRepo) ListFormats() ([]string, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT DISTINCT format FROM products ORDER BY format`)
	if err != nil {
		return nil, fmt.Errorf("list formats: %w", err)
	}
	defer rows.Close()
	var formats []string
	for rows.Next() {
		var f string
		if err := rows.Scan(&f); err != nil {
			return nil, fmt.Errorf("scan format: %w", err)
		}
		formats = append(formats, f)
	}
	return formats, rows.Err()
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
