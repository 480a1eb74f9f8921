package order_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/discoteca-api/internal/application/dto"
	"github.com/tu-usuario/discoteca-api/internal/application/order"
	"github.com/tu-usuario/discoteca-api/internal/domain"
	"github.com/tu-usuario/discoteca-api/internal/domain/entity"
	"github.com/tu-usuario/discoteca-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
	// beforeLock simula un pedido concurrente que muta el stock entre la
	// validación previa y el bloqueo de fila.
	beforeLock func(productID string)
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	if r.beforeLock != nil {
		r.beforeLock(id)
		r.beforeLock = nil // solo el primer lock
	}
	return r.GetByID(id)
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) UpdateStock(id string, quantity int) error {
	p, ok := r.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.StockQuantity = quantity
	return nil
}

func (r *fakeProductRepo) ListByAlbum(string) ([]*entity.Product, error)      { return nil, nil }
func (r *fakeProductRepo) ListByAlbumIDs([]string) ([]*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) ListFormats() ([]string, error)                     { return nil, nil }
func (r *fakeProductRepo) Delete(id string) error {
	delete(r.products, id)
	return nil
}

type fakeOrderRepo struct {
	orders map[string]*entity.Order
	items  map[string][]*entity.OrderItem
}

func (r *fakeOrderRepo) Create(o *entity.Order) error {
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) CreateItem(it *entity.OrderItem) error {
	cp := *it
	r.items[it.OrderID] = append(r.items[it.OrderID], &cp)
	return nil
}

func (r *fakeOrderRepo) GetByID(id string) (*entity.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) ListByUser(userID string) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) ListAll(limit, offset int) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range r.orders {
		cp := *o
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeOrderRepo) ListItems(orderID string) ([]*repository.OrderItemDetail, error) {
	var out []*repository.OrderItemDetail
	for _, it := range r.items[orderID] {
		out = append(out, &repository.OrderItemDetail{Item: *it})
	}
	return out, nil
}

func (r *fakeOrderRepo) UpdateStatus(id, status string) error {
	o, ok := r.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	return nil
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func (r *fakeUserRepo) Create(u *entity.User) error { r.users[u.ID] = u; return nil }
func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}
func (r *fakeUserRepo) FindByEmail(string) (*entity.User, error) { return nil, nil }
func (r *fakeUserRepo) Update(u *entity.User) error              { r.users[u.ID] = u; return nil }
func (r *fakeUserRepo) ListByRole(string, int, int) ([]*entity.User, error) {
	return nil, nil
}

// txProductRepo envuelve el repo de productos dentro de la transacción y toma
// snapshot de cada fila en su primera escritura, para que el rollback revierta
// solo las escrituras de esta transacción — nunca la mutación de un pedido
// concurrente ya comprometido (beforeLock).
type txProductRepo struct {
	*fakeProductRepo
	touched map[string]*entity.Product // nil => la fila no existía
}

func (r *txProductRepo) snapshot(id string) {
	if _, ok := r.touched[id]; ok {
		return
	}
	if p, ok := r.fakeProductRepo.products[id]; ok {
		cp := *p
		r.touched[id] = &cp
	} else {
		r.touched[id] = nil
	}
}

func (r *txProductRepo) Create(p *entity.Product) error {
	r.snapshot(p.ID)
	return r.fakeProductRepo.Create(p)
}

func (r *txProductRepo) Update(p *entity.Product) error {
	r.snapshot(p.ID)
	return r.fakeProductRepo.Update(p)
}

func (r *txProductRepo) UpdateStock(id string, quantity int) error {
	r.snapshot(id)
	return r.fakeProductRepo.UpdateStock(id, quantity)
}

func (r *txProductRepo) Delete(id string) error {
	r.snapshot(id)
	return r.fakeProductRepo.Delete(id)
}

func (r *txProductRepo) rollback() {
	for id, orig := range r.touched {
		if orig == nil {
			delete(r.fakeProductRepo.products, id)
		} else {
			r.fakeProductRepo.products[id] = orig
		}
	}
}

// fakeTxRunner toma snapshot antes de fn y restaura si fn falla: el rollback
// de la transacción real, en memoria.
type fakeTxRunner struct {
	orders   *fakeOrderRepo
	products *fakeProductRepo
}

func (r *fakeTxRunner) RunOrder(_ context.Context, fn func(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
) error) error {
	txProducts := &txProductRepo{
		fakeProductRepo: r.products,
		touched:         map[string]*entity.Product{},
	}
	ordersBackup := make(map[string]*entity.Order, len(r.orders.orders))
	for k, v := range r.orders.orders {
		cp := *v
		ordersBackup[k] = &cp
	}
	itemsBackup := make(map[string][]*entity.OrderItem, len(r.orders.items))
	for k, v := range r.orders.items {
		itemsBackup[k] = append([]*entity.OrderItem(nil), v...)
	}

	if err := fn(r.orders, txProducts); err != nil {
		txProducts.rollback()
		r.orders.orders = ordersBackup
		r.orders.items = itemsBackup
		return err
	}
	return nil
}

type fakePDFGen struct{}

func (fakePDFGen) GenerateReceiptPDF(context.Context, *entity.Order, *entity.User, []repository.OrderItemDetail) ([]byte, error) {
	return []byte("%PDF-fake"), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	customerID = "user-customer-1"
	otherID    = "user-customer-2"
)

func newFixture() (*order.OrderUseCase, *fakeOrderRepo, *fakeProductRepo) {
	products := &fakeProductRepo{products: map[string]*entity.Product{
		"p1": {ID: "p1", AlbumID: "a1", Format: "CD", Price: decimal.NewFromInt(10), StockQuantity: 5},
		"p2": {ID: "p2", AlbumID: "a1", Format: "Vinyl", Price: decimal.NewFromInt(25), StockQuantity: 5},
	}}
	orders := &fakeOrderRepo{
		orders: map[string]*entity.Order{},
		items:  map[string][]*entity.OrderItem{},
	}
	users := &fakeUserRepo{users: map[string]*entity.User{
		customerID: {ID: customerID, Role: entity.RoleCustomer, Address: "Calle 1 #2-3", IsActive: true},
		otherID:    {ID: otherID, Role: entity.RoleCustomer, IsActive: true},
	}}
	runner := &fakeTxRunner{orders: orders, products: products}
	uc := order.NewOrderUseCase(runner, orders, products, users, fakePDFGen{})
	return uc, orders, products
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación de pedidos
// ──────────────────────────────────────────────────────────────────────────────

// El total es exactamente Σ precio × cantidad y el stock queda descontado.
func TestCreateOrder_TotalYDescuentoDeStock(t *testing.T) {
	uc, _, products := newFixture()

	out, err := uc.Create(context.Background(), customerID, dto.CreateOrderRequest{
		Items: []dto.OrderLineRequest{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 1},
		},
		PaymentMethod: "card",
	})
	require.NoError(t, err)
	require.NotNil(t, out)

	// 2×10 + 1×25 = 45.00 exacto
	assert.True(t, out.TotalAmount.Equal(decimal.NewFromInt(45)),
		"total debe ser 45.00, fue %s", out.TotalAmount)
	assert.Equal(t, entity.OrderStatusNew, out.Status)
	assert.Equal(t, customerID, out.UserID)
	assert.Len(t, out.Items, 2)

	// Stock descontado: 5-2 y 5-1
	assert.Equal(t, 3, products.products["p1"].StockQuantity)
	assert.Equal(t, 4, products.products["p2"].StockQuantity)
}

// Sin dirección en el request se usa la dirección del usuario.
func TestCreateOrder_DireccionPorDefecto(t *testing.T) {
	uc, _, _ := newFixture()

	out, err := uc.Create(context.Background(), customerID, dto.CreateOrderRequest{
		Items: []dto.OrderLineRequest{{ProductID: "p1", Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Calle 1 #2-3", out.ShippingAddress)
}

// El precio de la línea es el snapshot del precio vigente del producto.
func TestCreateOrder_PrecioEsSnapshot(t *testing.T) {
	uc, ordersRepo, products := newFixture()

	out, err := uc.Create(context.Background(), customerID, dto.CreateOrderRequest{
		Items: []dto.OrderLineRequest{{ProductID: "p1", Quantity: 1}},
	})
	require.NoError(t, err)

	// Subir el precio después del pedido no cambia la línea guardada.
	products.products["p1"].Price = decimal.NewFromInt(99)
	items, err := ordersRepo.ListItems(out.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].Item.Price.Equal(decimal.NewFromInt(10)))
}

// Stock insuficiente: error tipado con el detalle y CERO escrituras.
func TestCreateOrder_StockInsuficiente_SinEscrituras(t *testing.T) {
	uc, ordersRepo, products := newFixture()
	products.products["p1"].StockQuantity = 1

	_, err := uc.Create(context.Background(), customerID, dto.CreateOrderRequest{
		Items: []dto.OrderLineRequest{
			{ProductID: "p2", Quantity: 1}, // esta línea sí alcanzaba
			{ProductID: "p1", Quantity: 2},
		},
	})
	require.Error(t, err)

	var ins *domain.InsufficientStockError
	require.ErrorAs(t, err, &ins)
	assert.Equal(t, "p1", ins.ProductID)
	assert.Equal(t, 2, ins.Requested)
	assert.Equal(t, 1, ins.Available)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Rollback completo: nada persistido, ningún stock tocado.
	assert.Empty(t, ordersRepo.orders)
	assert.Equal(t, 1, products.products["p1"].StockQuantity)
	assert.Equal(t, 5, products.products["p2"].StockQuantity)
}

// Producto inexistente: error tipado que identifica la línea.
func TestCreateOrder_ProductoInexistente(t *testing.T) {
	uc, ordersRepo, _ := newFixture()

	_, err := uc.Create(context.Background(), customerID, dto.CreateOrderRequest{
		Items: []dto.OrderLineRequest{{ProductID: "no-existe", Quantity: 1}},
	})
	require.Error(t, err)

	var pnf *domain.ProductNotFoundError
	require.ErrorAs(t, err, &pnf)
	assert.Equal(t, "no-existe", pnf.ProductID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Empty(t, ordersRepo.orders)
}

// La validación previa pasó, pero otro pedido descontó el stock antes del
// bloqueo de fila: la re-verificación dentro de la tx debe fallar.
func TestCreateOrder_RecheckConFilaBloqueada(t *testing.T) {
	uc, ordersRepo, products := newFixture()
	products.beforeLock = func(id string) {
		if id == "p1" {
			// pedido concurrente: se llevó 4 unidades
			products.products["p1"].StockQuantity = 1
		}
	}

	_, err := uc.Create(context.Background(), customerID, dto.CreateOrderRequest{
		Items: []dto.OrderLineRequest{{ProductID: "p1", Quantity: 2}},
	})
	require.Error(t, err)

	var ins *domain.InsufficientStockError
	require.ErrorAs(t, err, &ins)
	assert.Equal(t, 1, ins.Available, "debe reportar el stock visto con la fila bloqueada")

	assert.Empty(t, ordersRepo.orders)
	assert.Equal(t, 1, products.products["p1"].StockQuantity,
		"el stock queda como lo dejó el pedido concurrente")
}

// Con stock 1 y dos pedidos por la misma unidad, exactamente uno gana.
func TestCreateOrder_DosPedidosUnaUnidad(t *testing.T) {
	uc, ordersRepo, products := newFixture()
	products.products["p1"].StockQuantity = 1

	req := dto.CreateOrderRequest{
		Items: []dto.OrderLineRequest{{ProductID: "p1", Quantity: 1}},
	}
	_, err1 := uc.Create(context.Background(), customerID, req)
	_, err2 := uc.Create(context.Background(), otherID, req)

	require.NoError(t, err1, "el primer pedido debe ganar la unidad")
	require.Error(t, err2, "el segundo debe fallar por stock")
	assert.ErrorIs(t, err2, domain.ErrInsufficientStock)
	assert.Len(t, ordersRepo.orders, 1)
	assert.Equal(t, 0, products.products["p1"].StockQuantity)
}

// Una cuenta desactivada no puede comprar, aunque su token siga vigente.
func TestCreateOrder_CuentaDesactivada(t *testing.T) {
	products := &fakeProductRepo{products: map[string]*entity.Product{
		"p1": {ID: "p1", AlbumID: "a1", Format: "CD", Price: decimal.NewFromInt(10), StockQuantity: 5},
	}}
	orders := &fakeOrderRepo{
		orders: map[string]*entity.Order{},
		items:  map[string][]*entity.OrderItem{},
	}
	users := &fakeUserRepo{users: map[string]*entity.User{
		customerID: {ID: customerID, Role: entity.RoleCustomer, IsActive: false},
	}}
	uc := order.NewOrderUseCase(&fakeTxRunner{orders: orders, products: products}, orders, products, users, fakePDFGen{})

	_, err := uc.Create(context.Background(), customerID, dto.CreateOrderRequest{
		Items: []dto.OrderLineRequest{{ProductID: "p1", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.Empty(t, orders.orders, "no debe quedar pedido persistido")
	assert.Equal(t, 5, products.products["p1"].StockQuantity)
}

// Entradas inválidas: cantidad cero, línea duplicada, pedido vacío.
func TestCreateOrder_EntradasInvalidas(t *testing.T) {
	uc, _, _ := newFixture()
	ctx := context.Background()

	_, err := uc.Create(ctx, customerID, dto.CreateOrderRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "pedido sin líneas")

	_, err = uc.Create(ctx, customerID, dto.CreateOrderRequest{
		Items: []dto.OrderLineRequest{{ProductID: "p1", Quantity: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")

	_, err = uc.Create(ctx, customerID, dto.CreateOrderRequest{
		Items: []dto.OrderLineRequest{
			{ProductID: "p1", Quantity: 1},
			{ProductID: "p1", Quantity: 2},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "producto repetido")
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas con alcance por dueño
// ──────────────────────────────────────────────────────────────────────────────

func TestGetByID_PedidoAjenoRespondeNotFound(t *testing.T) {
	uc, _, _ := newFixture()

	out, err := uc.Create(context.Background(), customerID, dto.CreateOrderRequest{
		Items: []dto.OrderLineRequest{{ProductID: "p1", Quantity: 1}},
	})
	require.NoError(t, err)

	// Otro cliente: NotFound, no Forbidden — un pedido ajeno no existe.
	_, err = uc.GetByID(otherID, entity.RoleCustomer, out.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// El dueño sí lo ve.
	got, err := uc.GetByID(customerID, entity.RoleCustomer, out.ID)
	require.NoError(t, err)
	assert.Equal(t, out.ID, got.ID)

	// El staff ve cualquier pedido.
	got, err = uc.GetByID("staff-user", entity.RoleManager, out.ID)
	require.NoError(t, err)
	assert.Equal(t, out.ID, got.ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cambio de estado
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateStatus_EstadoInvalidoNoTocaElAlmacenado(t *testing.T) {
	uc, ordersRepo, _ := newFixture()

	out, err := uc.Create(context.Background(), customerID, dto.CreateOrderRequest{
		Items: []dto.OrderLineRequest{{ProductID: "p1", Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = uc.UpdateStatus(out.ID, "volando")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	assert.Equal(t, entity.OrderStatusNew, ordersRepo.orders[out.ID].Status,
		"un estado no reconocido no debe modificar el almacenado")

	got, err := uc.UpdateStatus(out.ID, entity.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusShipped, got.Status)
}

func TestUpdateStatus_PedidoInexistente(t *testing.T) {
	uc, _, _ := newFixture()
	_, err := uc.UpdateStatus("no-existe", entity.OrderStatusShipped)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Comprobante PDF
// ──────────────────────────────────────────────────────────────────────────────

func TestReceipt_MismoAlcanceQueGetByID(t *testing.T) {
	uc, _, _ := newFixture()

	out, err := uc.Create(context.Background(), customerID, dto.CreateOrderRequest{
		Items: []dto.OrderLineRequest{{ProductID: "p1", Quantity: 1}},
	})
	require.NoError(t, err)

	pdf, err := uc.Receipt(context.Background(), customerID, entity.RoleCustomer, out.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)

	_, err = uc.Receipt(context.Background(), otherID, entity.RoleCustomer, out.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
