package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseLineRequest línea de una compra a proveedor. UnitPrice es el costo
// pactado con el proveedor, no el precio de venta.
type PurchaseLineRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  int             `json:"quantity" validate:"required,min=1"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreatePurchaseRequest entrada para registrar una compra de reposición.
type CreatePurchaseRequest struct {
	SupplierID string                `json:"supplier_id" validate:"required"`
	Items      []PurchaseLineRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdatePurchaseStatusRequest cambio de estado de una compra.
type UpdatePurchaseStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// PurchaseItemResponse línea de compra con datos del producto resueltos.
type PurchaseItemResponse struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"product_id"`
	AlbumTitle string          `json:"album_title"`
	Format     string          `json:"format"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

// PurchaseResponse salida de una compra.
type PurchaseResponse struct {
	ID           string                 `json:"id"`
	SupplierID   string                 `json:"supplier_id"`
	EmployeeID   string                 `json:"employee_id"`
	PurchaseDate time.Time              `json:"purchase_date"`
	Status       string                 `json:"status"`
	TotalAmount  decimal.Decimal        `json:"total_amount"`
	Items        []PurchaseItemResponse `json:"items,omitempty"`
}

// PurchaseListResponse lista paginada de compras.
type PurchaseListResponse struct {
	Items []PurchaseResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
