package purchase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/discoteca-api/internal/application/dto"
	"github.com/tu-usuario/discoteca-api/internal/domain"
	"github.com/tu-usuario/discoteca-api/internal/domain/entity"
	"github.com/tu-usuario/discoteca-api/internal/domain/repository"
)

// PurchaseUseCase registra compras a proveedor y repone stock en una sola
// transacción. Es el espejo del flujo de pedidos: aquí el stock sube.
type PurchaseUseCase struct {
	txRunner     TxRunner
	purchaseRepo repository.PurchaseRepository
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
	employeeRepo repository.EmployeeRepository
	userRepo     repository.UserRepository
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(
	txRunner TxRunner,
	purchaseRepo repository.PurchaseRepository,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	employeeRepo repository.EmployeeRepository,
	userRepo repository.UserRepository,
) *PurchaseUseCase {
	return &PurchaseUseCase{
		txRunner:     txRunner,
		purchaseRepo: purchaseRepo,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		employeeRepo: employeeRepo,
		userRepo:     userRepo,
	}
}

// Create registra la compra y suma el stock de cada línea atómicamente.
// userID es el usuario staff autenticado; la compra se ata a su perfil de
// empleado, no a la cuenta.
func (uc *PurchaseUseCase) Create(ctx context.Context, userID string, in dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	if in.SupplierID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, line := range in.Items {
		if line.ProductID == "" || line.Quantity < 1 || line.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	}

	// La cuenta del operador debe existir y estar activa; luego se resuelve
	// su perfil de empleado.
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, domain.ErrUserNotFound
	}
	employee, err := uc.employeeRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, domain.ErrEmployeeNotFound
	}

	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrSupplierNotFound
	}

	// Validación previa de productos, fuera de la tx.
	for _, line := range in.Items {
		product, err := uc.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, &domain.ProductNotFoundError{ProductID: line.ProductID}
		}
	}

	total := decimal.Zero
	for _, line := range in.Items {
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	pur := &entity.Purchase{
		ID:           uuid.New().String(),
		SupplierID:   supplier.ID,
		EmployeeID:   employee.ID,
		PurchaseDate: time.Now(),
		Status:       entity.PurchaseStatusPending,
		TotalAmount:  total,
	}
	var items []*entity.PurchaseItem

	err = uc.txRunner.RunPurchase(ctx, func(
		purchaseRepo repository.PurchaseRepository,
		productRepo repository.ProductRepository,
	) error {
		if err := purchaseRepo.Create(pur); err != nil {
			return err
		}
		for _, line := range in.Items {
			item := &entity.PurchaseItem{
				ID:         uuid.New().String(),
				PurchaseID: pur.ID,
				ProductID:  line.ProductID,
				Quantity:   line.Quantity,
				UnitPrice:  line.UnitPrice,
			}
			if err := purchaseRepo.CreateItem(item); err != nil {
				return err
			}
			items = append(items, item)

			// Reposición con bloqueo de fila: evita perder incrementos si dos
			// compras del mismo producto llegan a la vez.
			product, err := productRepo.GetForUpdate(line.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return &domain.ProductNotFoundError{ProductID: line.ProductID}
			}
			if err := productRepo.UpdateStock(line.ProductID, product.StockQuantity+line.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return uc.toResponse(pur, itemsToDetails(items)), nil
}

// GetByID obtiene una compra con sus líneas.
func (uc *PurchaseUseCase) GetByID(id string) (*dto.PurchaseResponse, error) {
	pur, err := uc.purchaseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if pur == nil {
		return nil, domain.ErrNotFound
	}
	details, err := uc.purchaseRepo.ListItems(pur.ID)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(pur, details), nil
}

// List listado paginado de compras, más recientes primero.
func (uc *PurchaseUseCase) List(page dto.PageRequest) (*dto.PurchaseListResponse, error) {
	page.DefaultPage()
	purchases, err := uc.purchaseRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseResponse, 0, len(purchases))
	for _, pur := range purchases {
		items = append(items, *uc.toResponse(pur, nil))
	}
	return &dto.PurchaseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// UpdateStatus cambia el estado de la compra. Un valor fuera de la
// enumeración responde ErrInvalidStatus sin tocar el estado almacenado.
func (uc *PurchaseUseCase) UpdateStatus(id, status string) (*dto.PurchaseResponse, error) {
	if !entity.ValidPurchaseStatus(status) {
		return nil, domain.ErrInvalidStatus
	}
	if err := uc.purchaseRepo.UpdateStatus(id, status); err != nil {
		return nil, err
	}
	pur, err := uc.purchaseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if pur == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(pur, nil), nil
}

func (uc *PurchaseUseCase) toResponse(pur *entity.Purchase, details []*repository.PurchaseItemDetail) *dto.PurchaseResponse {
	resp := &dto.PurchaseResponse{
		ID:           pur.ID,
		SupplierID:   pur.SupplierID,
		EmployeeID:   pur.EmployeeID,
		PurchaseDate: pur.PurchaseDate,
		Status:       pur.Status,
		TotalAmount:  pur.TotalAmount,
	}
	for _, d := range details {
		resp.Items = append(resp.Items, dto.PurchaseItemResponse{
			ID:         d.Item.ID,
			ProductID:  d.Item.ProductID,
			AlbumTitle: d.AlbumTitle,
			Format:     d.Format,
			Quantity:   d.Item.Quantity,
			UnitPrice:  d.Item.UnitPrice,
			Subtotal:   d.Item.UnitPrice.Mul(decimal.NewFromInt(int64(d.Item.Quantity))),
		})
	}
	return resp
}

func itemsToDetails(items []*entity.PurchaseItem) []*repository.PurchaseItemDetail {
	details := make([]*repository.PurchaseItemDetail, len(items))
	for i, item := range items {
		details[i] = &repository.PurchaseItemDetail{Item: *item}
	}
	return details
}
