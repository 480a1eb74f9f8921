package order

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

// OrderUseCase crea pedidos descontando stock en una sola transacción y
// resuelve las consultas de pedidos con alcance por dueño.
type OrderUseCase struct {
	txRunner    TxRunner
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	pdfGen      ReceiptPDFGenerator
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	txRunner TxRunner,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	pdfGen ReceiptPDFGenerator,
) *OrderUseCase {
	return &OrderUseCase{
		txRunner:    txRunner,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		pdfGen:      pdfGen,
	}
}

// Create crea el pedido y descuenta el stock de cada línea atómicamente.
//
// Primero valida todo fuera de la transacción (solo lectura). Dentro de la
// transacción vuelve a leer cada producto con bloqueo de fila y re-verifica el
// stock sobre la fila bloqueada: entre la validación previa y el commit otro
// pedido pudo haberlo descontado. Todas las verificaciones ocurren antes de la
// primera escritura, así un fallo no deja nada a medias.
func (uc *OrderUseCase) Create(ctx context.Context, userID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	seen := make(map[string]bool, len(in.Items))
	for _, line := range in.Items {
		if line.ProductID == "" || line.Quantity < 1 {
			return nil, domain.ErrInvalidInput
		}
		if seen[line.ProductID] {
			return nil, domain.ErrInvalidInput // producto repetido en el pedido
		}
		seen[line.ProductID] = true
	}

	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	// Cuenta inexistente o desactivada: mismo 404. Un token aún vigente no
	// habilita a una cuenta desactivada a comprar.
	if user == nil || !user.IsActive {
		return nil, domain.ErrUserNotFound
	}

	// Validación previa, fuera de la tx: existencia y stock aparente.
	for _, line := range in.Items {
		product, err := uc.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, &domain.ProductNotFoundError{ProductID: line.ProductID}
		}
		if line.Quantity > product.StockQuantity {
			return nil, &domain.InsufficientStockError{
				ProductID: line.ProductID,
				Requested: line.Quantity,
				Available: product.StockQuantity,
			}
		}
	}

	shippingAddress := in.ShippingAddress
	if shippingAddress == "" {
		shippingAddress = user.Address
	}

	now := time.Now()
	ord := &entity.Order{
		ID:              uuid.New().String(),
		UserID:          user.ID,
		OrderDate:       now,
		Status:          entity.OrderStatusNew,
		PaymentMethod:   in.PaymentMethod,
		ShippingAddress: shippingAddress,
	}
	var items []*entity.OrderItem

	err = uc.txRunner.RunOrder(ctx, func(
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
	) error {
		// 1) Bloquear todas las filas y re-verificar stock antes de escribir.
		locked := make([]*entity.Product, len(in.Items))
		for i, line := range in.Items {
			product, err := productRepo.GetForUpdate(line.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return &domain.ProductNotFoundError{ProductID: line.ProductID}
			}
			if line.Quantity > product.StockQuantity {
				return &domain.InsufficientStockError{
					ProductID: line.ProductID,
					Requested: line.Quantity,
					Available: product.StockQuantity,
				}
			}
			locked[i] = product
		}

		// 2) Total = Σ precio vigente × cantidad. El precio enviado por el
		// cliente se ignora siempre.
		total := decimal.Zero
		items = items[:0]
		for i, line := range in.Items {
			price := locked[i].Price
			total = total.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))
			items = append(items, &entity.OrderItem{
				ID:        uuid.New().String(),
				OrderID:   ord.ID,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Price:     price,
			})
		}
		ord.TotalAmount = total

		// 3) Persistir cabecera, líneas y nuevo stock.
		if err := orderRepo.Create(ord); err != nil {
			return err
		}
		for _, item := range items {
			if err := orderRepo.CreateItem(item); err != nil {
				return err
			}
		}
		for i, line := range in.Items {
			if err := productRepo.UpdateStock(line.ProductID, locked[i].StockQuantity-line.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return uc.toResponse(ord, itemsToDetails(items)), nil
}

// GetByID obtiene un pedido. Para clientes el alcance es por dueño: un pedido
// ajeno responde ErrNotFound, no ErrForbidden, para no revelar su existencia.
func (uc *OrderUseCase) GetByID(userID, role, orderID string) (*dto.OrderResponse, error) {
	ord, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, domain.ErrNotFound
	}
	if role == entity.RoleCustomer && ord.UserID != userID {
		return nil, domain.ErrNotFound
	}
	details, err := uc.orderRepo.ListItems(ord.ID)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(ord, details), nil
}

// ListByUser pedidos del usuario autenticado, más recientes primero.
func (uc *OrderUseCase) ListByUser(userID string) ([]dto.OrderResponse, error) {
	orders, err := uc.orderRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	result := make([]dto.OrderResponse, 0, len(orders))
	for _, ord := range orders {
		result = append(result, *uc.toResponse(ord, nil))
	}
	return result, nil
}

// ListAll listado paginado de todos los pedidos (back-office).
func (uc *OrderUseCase) ListAll(page dto.PageRequest) (*dto.OrderListResponse, error) {
	page.DefaultPage()
	orders, err := uc.orderRepo.ListAll(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(orders))
	for _, ord := range orders {
		items = append(items, *uc.toResponse(ord, nil))
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// UpdateStatus cambia el estado del pedido. Un valor fuera de la enumeración
// responde ErrInvalidStatus sin tocar el estado almacenado.
func (uc *OrderUseCase) UpdateStatus(orderID, status string) (*dto.OrderResponse, error) {
	if !entity.ValidOrderStatus(status) {
		return nil, domain.ErrInvalidStatus
	}
	if err := uc.orderRepo.UpdateStatus(orderID, status); err != nil {
		return nil, err
	}
	ord, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(ord, nil), nil
}

// Receipt genera el comprobante PDF del pedido, con el mismo alcance por
// dueño que GetByID.
func (uc *OrderUseCase) Receipt(ctx context.Context, userID, role, orderID string) ([]byte, error) {
	ord, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, domain.ErrNotFound
	}
	if role == entity.RoleCustomer && ord.UserID != userID {
		return nil, domain.ErrNotFound
	}
	owner, err := uc.userRepo.GetByID(ord.UserID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, domain.ErrUserNotFound
	}
	details, err := uc.orderRepo.ListItems(ord.ID)
	if err != nil {
		return nil, err
	}
	plain := make([]repository.OrderItemDetail, len(details))
	for i, d := range details {
		plain[i] = *d
	}
	return uc.pdfGen.GenerateReceiptPDF(ctx, ord, owner, plain)
}

func (uc *OrderUseCase) toResponse(ord *entity.Order, details []*repository.OrderItemDetail) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:              ord.ID,
		UserID:          ord.UserID,
		OrderDate:       ord.OrderDate,
		Status:          ord.Status,
		TotalAmount:     ord.TotalAmount,
		PaymentMethod:   ord.PaymentMethod,
		ShippingAddress: ord.ShippingAddress,
	}
	for _, d := range details {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			ID:         d.Item.ID,
			ProductID:  d.Item.ProductID,
			AlbumTitle: d.AlbumTitle,
			ArtistName: d.ArtistName,
			Format:     d.Format,
			Quantity:   d.Item.Quantity,
			Price:      d.Item.Price,
			Subtotal:   d.Item.Price.Mul(decimal.NewFromInt(int64(d.Item.Quantity))),
		})
	}
	return resp
}

// itemsToDetails envuelve líneas recién creadas (sin joins) para la respuesta
// de creación.
func itemsToDetails(items []*entity.OrderItem) []*repository.OrderItemDetail {
	details := make([]*repository.OrderItemDetail, len(items))
	for i, item := range items {
		details[i] = &repository.OrderItemDetail{Item: *item}
	}
	return details
}
