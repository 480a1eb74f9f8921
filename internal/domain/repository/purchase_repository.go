package repository

import "github.com/tu-usuario/discoteca-api/internal/domain/entity"

// PurchaseItemDetail línea de compra con los datos de producto resueltos por join.
type PurchaseItemDetail struct {
	Item       entity.PurchaseItem
	Format     string
	AlbumTitle string
}

// PurchaseRepository define el puerto de persistencia para Purchase y sus líneas.
// Mismo contrato que OrderRepository: cabecera y líneas nacen juntas en la
// transacción del caso de uso y solo Status es mutable después.
type PurchaseRepository interface {
	Create(purchase *entity.Purchase) error
	CreateItem(item *entity.PurchaseItem) error
	GetByID(id string) (*entity.Purchase, error)
	List(limit, offset int) ([]*entity.Purchase, error) // más recientes primero
	ListItems(purchaseID string) ([]*PurchaseItemDetail, error)
	UpdateStatus(id, status string) error
}
