package order

import (
	"context"

	"github.com/tu-usuario/discoteca-api/internal/domain/entity"
	"github.com/tu-usuario/discoteca-api/internal/domain/repository"
)

// TxRunner unidad de trabajo del flujo de pedidos: ejecuta fn dentro de una
// transacción con repos atados a ella. Si fn devuelve error se hace rollback
// completo (ni cabecera, ni líneas, ni stock quedan a medias).
type TxRunner interface {
	RunOrder(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// ReceiptPDFGenerator genera el comprobante PDF de un pedido.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, order *entity.Order, user *entity.User, items []repository.OrderItemDetail) ([]byte, error)
}
