package purchase

import (
	"context"

	"github.com/tu-usuario/discoteca-api/internal/domain/repository"
)

// TxRunner unidad de trabajo del flujo de compras a proveedor: fn corre
// dentro de una transacción; un error hace rollback completo.
type TxRunner interface {
	RunPurchase(ctx context.Context, fn func(
		purchaseRepo repository.PurchaseRepository,
		productRepo repository.ProductRepository,
	) error) error
}
