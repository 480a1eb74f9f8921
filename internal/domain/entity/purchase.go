package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos para Purchase.
const (
	PurchaseStatusPending    = "pending"
	PurchaseStatusProcessing = "processing"
	PurchaseStatusCompleted  = "completed"
	PurchaseStatusCancelled  = "cancelled"
)

// ValidPurchaseStatus indica si el valor pertenece a la enumeración de estados de compra.
func ValidPurchaseStatus(s string) bool {
	switch s {
	case PurchaseStatusPending, PurchaseStatusProcessing,
		PurchaseStatusCompleted, PurchaseStatusCancelled:
		return true
	}
	return false
}

// Purchase cabecera de compra a proveedor (reposición de stock), registrada
// por el empleado que la crea.
type Purchase struct {
	ID           string
	SupplierID   string
	EmployeeID   string
	PurchaseDate time.Time
	Status       string
	TotalAmount  decimal.Decimal
}

// PurchaseItem línea de compra. UnitPrice es el costo pactado con el
// proveedor al momento de la compra; inmutable después de creación.
type PurchaseItem struct {
	ID         string
	PurchaseID string
	ProductID  string
	Quantity   int
	UnitPrice  decimal.Decimal
}
