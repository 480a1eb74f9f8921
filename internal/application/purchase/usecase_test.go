package purchase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/discoteca-api/internal/application/dto"
	"github.com/tu-usuario/discoteca-api/internal/application/purchase"
	"github.com/tu-usuario/discoteca-api/internal/domain"
	"github.com/tu-usuario/discoteca-api/internal/domain/entity"
	"github.com/tu-usuario/discoteca-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (r *fakeProductRepo) Create(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}
func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) { return r.GetByID(id) }
func (r *fakeProductRepo) Update(p *entity.Product) error                  { r.products[p.ID] = p; return nil }
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
func (r *fakeProductRepo) Delete(id string) error                             { delete(r.products, id); return nil }

type fakePurchaseRepo struct {
	purchases map[string]*entity.Purchase
	items     map[string][]*entity.PurchaseItem
}

func (r *fakePurchaseRepo) Create(p *entity.Purchase) error {
	cp := *p
	r.purchases[p.ID] = &cp
	return nil
}

func (r *fakePurchaseRepo) CreateItem(it *entity.PurchaseItem) error {
	cp := *it
	r.items[it.PurchaseID] = append(r.items[it.PurchaseID], &cp)
	return nil
}

func (r *fakePurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	p, ok := r.purchases[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakePurchaseRepo) List(limit, offset int) ([]*entity.Purchase, error) {
	var out []*entity.Purchase
	for _, p := range r.purchases {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakePurchaseRepo) ListItems(purchaseID string) ([]*repository.PurchaseItemDetail, error) {
	var out []*repository.PurchaseItemDetail
	for _, it := range r.items[purchaseID] {
		out = append(out, &repository.PurchaseItemDetail{Item: *it})
	}
	return out, nil
}

func (r *fakePurchaseRepo) UpdateStatus(id, status string) error {
	p, ok := r.purchases[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Status = status
	return nil
}

type fakeSupplierRepo struct {
	suppliers map[string]*entity.Supplier
}

func (r *fakeSupplierRepo) Create(s *entity.Supplier) error { r.suppliers[s.ID] = s; return nil }
func (r *fakeSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	s, ok := r.suppliers[id]
	if !ok {
		return nil, nil
	}
	return s, nil
}
func (r *fakeSupplierRepo) FindByEmail(string) (*entity.Supplier, error) { return nil, nil }
func (r *fakeSupplierRepo) Update(s *entity.Supplier) error              { r.suppliers[s.ID] = s; return nil }
func (r *fakeSupplierRepo) Delete(id string) error                       { delete(r.suppliers, id); return nil }
func (r *fakeSupplierRepo) List() ([]*entity.Supplier, error)            { return nil, nil }

type fakeUserRepo struct {
	users map[string]*entity.User
}

func (r *fakeUserRepo) Create(u *entity.User) error { r.users[u.ID] = u; return nil }
func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}
func (r *fakeUserRepo) FindByEmail(string) (*entity.User, error)            { return nil, nil }
func (r *fakeUserRepo) Update(u *entity.User) error                         { r.users[u.ID] = u; return nil }
func (r *fakeUserRepo) ListByRole(string, int, int) ([]*entity.User, error) { return nil, nil }

type fakeEmployeeRepo struct {
	byUserID map[string]*entity.Employee
}

func (r *fakeEmployeeRepo) Create(e *entity.Employee) error { r.byUserID[e.UserID] = e; return nil }
func (r *fakeEmployeeRepo) GetByID(string) (*entity.Employee, error) {
	return nil, nil
}
func (r *fakeEmployeeRepo) GetByUserID(userID string) (*entity.Employee, error) {
	e, ok := r.byUserID[userID]
	if !ok {
		return nil, nil
	}
	return e, nil
}
func (r *fakeEmployeeRepo) Update(*entity.Employee) error       { return nil }
func (r *fakeEmployeeRepo) List() ([]*entity.Employee, error)   { return nil, nil }

type fakeTxRunner struct {
	purchases *fakePurchaseRepo
	products  *fakeProductRepo
}

func (r *fakeTxRunner) RunPurchase(_ context.Context, fn func(
	purchaseRepo repository.PurchaseRepository,
	productRepo repository.ProductRepository,
) error) error {
	productsBackup := make(map[string]*entity.Product, len(r.products.products))
	for k, v := range r.products.products {
		cp := *v
		productsBackup[k] = &cp
	}
	purchasesBackup := make(map[string]*entity.Purchase, len(r.purchases.purchases))
	for k, v := range r.purchases.purchases {
		cp := *v
		purchasesBackup[k] = &cp
	}
	itemsBackup := make(map[string][]*entity.PurchaseItem, len(r.purchases.items))
	for k, v := range r.purchases.items {
		itemsBackup[k] = append([]*entity.PurchaseItem(nil), v...)
	}

	if err := fn(r.purchases, r.products); err != nil {
		r.products.products = productsBackup
		r.purchases.purchases = purchasesBackup
		r.purchases.items = itemsBackup
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	staffUserID = "user-staff-1"
	employeeID  = "emp-1"
	supplierID  = "sup-1"
)

func newFixture() (*purchase.PurchaseUseCase, *fakePurchaseRepo, *fakeProductRepo, *fakeUserRepo) {
	products := &fakeProductRepo{products: map[string]*entity.Product{
		"p1": {ID: "p1", AlbumID: "a1", Format: "CD", Price: decimal.NewFromInt(15), StockQuantity: 2},
		"p2": {ID: "p2", AlbumID: "a2", Format: "Vinyl", Price: decimal.NewFromInt(30), StockQuantity: 0},
	}}
	purchases := &fakePurchaseRepo{
		purchases: map[string]*entity.Purchase{},
		items:     map[string][]*entity.PurchaseItem{},
	}
	suppliers := &fakeSupplierRepo{suppliers: map[string]*entity.Supplier{
		supplierID: {ID: supplierID, Name: "Discos del Sur"},
	}}
	employees := &fakeEmployeeRepo{byUserID: map[string]*entity.Employee{
		staffUserID: {ID: employeeID, UserID: staffUserID},
	}}
	users := &fakeUserRepo{users: map[string]*entity.User{
		staffUserID:       {ID: staffUserID, Role: entity.RoleManager, IsActive: true},
		"user-sin-perfil": {ID: "user-sin-perfil", Role: entity.RoleManager, IsActive: true},
	}}
	runner := &fakeTxRunner{purchases: purchases, products: products}
	uc := purchase.NewPurchaseUseCase(runner, purchases, products, suppliers, employees, users)
	return uc, purchases, products, users
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro de compras
// ──────────────────────────────────────────────────────────────────────────────

// El total sale del precio de compra declarado y el stock se incrementa.
func TestCreatePurchase_TotalYReposicionDeStock(t *testing.T) {
	uc, _, products, _ := newFixture()

	out, err := uc.Create(context.Background(), staffUserID, dto.CreatePurchaseRequest{
		SupplierID: supplierID,
		Items: []dto.PurchaseLineRequest{
			{ProductID: "p1", Quantity: 10, UnitPrice: decimal.NewFromFloat(8.50)},
			{ProductID: "p2", Quantity: 5, UnitPrice: decimal.NewFromInt(20)},
		},
	})
	require.NoError(t, err)

	// 10×8.50 + 5×20 = 185.00
	assert.True(t, out.TotalAmount.Equal(decimal.NewFromInt(185)),
		"total debe ser 185.00, fue %s", out.TotalAmount)
	assert.Equal(t, entity.PurchaseStatusPending, out.Status)
	assert.Equal(t, supplierID, out.SupplierID)
	assert.Equal(t, employeeID, out.EmployeeID, "la compra se ata al perfil de empleado")
	assert.Len(t, out.Items, 2)

	// Stock repuesto: 2+10 y 0+5
	assert.Equal(t, 12, products.products["p1"].StockQuantity)
	assert.Equal(t, 5, products.products["p2"].StockQuantity)
}

// Un usuario sin perfil de empleado no puede registrar compras.
func TestCreatePurchase_SinPerfilDeEmpleado(t *testing.T) {
	uc, purchasesRepo, _, _ := newFixture()

	_, err := uc.Create(context.Background(), "user-sin-perfil", dto.CreatePurchaseRequest{
		SupplierID: supplierID,
		Items:      []dto.PurchaseLineRequest{{ProductID: "p1", Quantity: 1, UnitPrice: decimal.NewFromInt(5)}},
	})
	assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)
	assert.Empty(t, purchasesRepo.purchases)
}

// Una cuenta de staff desactivada no registra compras, aunque el perfil de
// empleado siga existiendo.
func TestCreatePurchase_CuentaDesactivada(t *testing.T) {
	uc, purchasesRepo, products, users := newFixture()
	users.users[staffUserID].IsActive = false

	_, err := uc.Create(context.Background(), staffUserID, dto.CreatePurchaseRequest{
		SupplierID: supplierID,
		Items:      []dto.PurchaseLineRequest{{ProductID: "p1", Quantity: 1, UnitPrice: decimal.NewFromInt(5)}},
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.Empty(t, purchasesRepo.purchases)
	assert.Equal(t, 2, products.products["p1"].StockQuantity)
}

func TestCreatePurchase_ProveedorInexistente(t *testing.T) {
	uc, _, _, _ := newFixture()

	_, err := uc.Create(context.Background(), staffUserID, dto.CreatePurchaseRequest{
		SupplierID: "no-existe",
		Items:      []dto.PurchaseLineRequest{{ProductID: "p1", Quantity: 1, UnitPrice: decimal.NewFromInt(5)}},
	})
	assert.ErrorIs(t, err, domain.ErrSupplierNotFound)
}

// Producto inexistente: nada persistido y stock intacto.
func TestCreatePurchase_ProductoInexistente_SinEscrituras(t *testing.T) {
	uc, purchasesRepo, products, _ := newFixture()

	_, err := uc.Create(context.Background(), staffUserID, dto.CreatePurchaseRequest{
		SupplierID: supplierID,
		Items: []dto.PurchaseLineRequest{
			{ProductID: "p1", Quantity: 3, UnitPrice: decimal.NewFromInt(5)},
			{ProductID: "no-existe", Quantity: 1, UnitPrice: decimal.NewFromInt(5)},
		},
	})
	require.Error(t, err)

	var pnf *domain.ProductNotFoundError
	require.ErrorAs(t, err, &pnf)
	assert.Equal(t, "no-existe", pnf.ProductID)

	assert.Empty(t, purchasesRepo.purchases)
	assert.Equal(t, 2, products.products["p1"].StockQuantity, "el stock no debe cambiar")
}

func TestCreatePurchase_EntradasInvalidas(t *testing.T) {
	uc, _, _, _ := newFixture()
	ctx := context.Background()

	_, err := uc.Create(ctx, staffUserID, dto.CreatePurchaseRequest{SupplierID: supplierID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "compra sin líneas")

	_, err = uc.Create(ctx, staffUserID, dto.CreatePurchaseRequest{
		Items: []dto.PurchaseLineRequest{{ProductID: "p1", Quantity: 1, UnitPrice: decimal.NewFromInt(5)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin proveedor")

	_, err = uc.Create(ctx, staffUserID, dto.CreatePurchaseRequest{
		SupplierID: supplierID,
		Items:      []dto.PurchaseLineRequest{{ProductID: "p1", Quantity: 0, UnitPrice: decimal.NewFromInt(5)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")

	_, err = uc.Create(ctx, staffUserID, dto.CreatePurchaseRequest{
		SupplierID: supplierID,
		Items:      []dto.PurchaseLineRequest{{ProductID: "p1", Quantity: 1, UnitPrice: decimal.NewFromInt(-1)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "precio negativo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Consulta y cambio de estado
// ──────────────────────────────────────────────────────────────────────────────

func TestGetByID_IncluyeLineas(t *testing.T) {
	uc, _, _, _ := newFixture()

	created, err := uc.Create(context.Background(), staffUserID, dto.CreatePurchaseRequest{
		SupplierID: supplierID,
		Items:      []dto.PurchaseLineRequest{{ProductID: "p1", Quantity: 4, UnitPrice: decimal.NewFromInt(7)}},
	})
	require.NoError(t, err)

	got, err := uc.GetByID(created.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "p1", got.Items[0].ProductID)
	assert.True(t, got.Items[0].Subtotal.Equal(decimal.NewFromInt(28)))
}

func TestUpdateStatus_EstadoInvalidoNoTocaElAlmacenado(t *testing.T) {
	uc, purchasesRepo, _, _ := newFixture()

	created, err := uc.Create(context.Background(), staffUserID, dto.CreatePurchaseRequest{
		SupplierID: supplierID,
		Items:      []dto.PurchaseLineRequest{{ProductID: "p1", Quantity: 1, UnitPrice: decimal.NewFromInt(5)}},
	})
	require.NoError(t, err)

	_, err = uc.UpdateStatus(created.ID, "entregado-tal-vez")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	assert.Equal(t, entity.PurchaseStatusPending, purchasesRepo.purchases[created.ID].Status)

	got, err := uc.UpdateStatus(created.ID, entity.PurchaseStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusCompleted, got.Status)
}

func TestUpdateStatus_CompraInexistente(t *testing.T) {
	uc, _, _, _ := newFixture()
	_, err := uc.UpdateStatus("no-existe", entity.PurchaseStatusCompleted)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
