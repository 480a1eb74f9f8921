package repository

import "github.com/tu-usuario/discoteca-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product.
// El stock NO se modifica vía Update: solo UpdateStock, y únicamente desde
// los flujos transaccionales de pedido y compra.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetForUpdate obtiene el producto bloqueando la fila (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción.
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	UpdateStock(id string, quantity int) error
	ListByAlbum(albumID string) ([]*entity.Product, error)
	ListByAlbumIDs(albumIDs []string) ([]*entity.Product, error)
	ListFormats() ([]string, error)
	Delete(id string) error
}
