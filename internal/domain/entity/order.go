package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos para Order. Se valida pertenencia al conjunto, no el grafo
// de transiciones (cualquier estado reconocido es alcanzable desde cualquier otro).
const (
	OrderStatusNew        = "new"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// ValidOrderStatus indica si el valor pertenece a la enumeración de estados de pedido.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusNew, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order cabecera de pedido de un cliente. TotalAmount siempre es igual a la
// suma de precio × cantidad de sus líneas al momento de creación.
type Order struct {
	ID              string
	UserID          string
	OrderDate       time.Time
	Status          string
	TotalAmount     decimal.Decimal
	PaymentMethod   string
	ShippingAddress string
}

// OrderItem línea de pedido. Price es el snapshot del precio del producto al
// crear el pedido; las líneas son inmutables después de la creación.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int
	Price     decimal.Decimal
}
