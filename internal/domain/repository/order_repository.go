package repository

import "github.com/tu-usuario/discoteca-api/internal/domain/entity"

// OrderItemDetail línea de pedido con los datos de producto resueltos por join,
// para armar respuestas sin N+1.
type OrderItemDetail struct {
	Item       entity.OrderItem
	Format     string
	AlbumTitle string
	ArtistName string
}

// OrderRepository define el puerto de persistencia para Order y sus líneas.
// Cabecera y líneas se crean juntas dentro de la transacción del caso de uso;
// después de creadas, solo Status es mutable.
type OrderRepository interface {
	Create(order *entity.Order) error
	CreateItem(item *entity.OrderItem) error
	GetByID(id string) (*entity.Order, error)
	ListByUser(userID string) ([]*entity.Order, error) // más recientes primero
	ListAll(limit, offset int) ([]*entity.Order, error)
	ListItems(orderID string) ([]*OrderItemDetail, error)
	UpdateStatus(id, status string) error
}
