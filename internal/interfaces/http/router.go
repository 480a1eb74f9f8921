package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/discoteca-api/internal/application/analytics"
	"github.com/tu-usuario/discoteca-api/internal/application/auth"
	"github.com/tu-usuario/discoteca-api/internal/application/order"
	"github.com/tu-usuario/discoteca-api/internal/application/purchase"
	"github.com/tu-usuario/discoteca-api/internal/application/usecase"
	"github.com/tu-usuario/discoteca-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CatalogUC   *usecase.CatalogUseCase
	ProductUC   *usecase.ProductUseCase
	ReviewUC    *usecase.ReviewUseCase
	OrderUC     *order.OrderUseCase
	PurchaseUC  *purchase.PurchaseUseCase
	SupplierUC  *usecase.SupplierUseCase
	EmployeeUC  *usecase.EmployeeUseCase
	CustomerUC  *usecase.CustomerUseCase
	DashboardUC *analytics.DashboardUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authHandler := NewAuthHandler(deps.AuthUC)
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	productHandler := NewProductHandler(deps.ProductUC)
	reviewHandler := NewReviewHandler(deps.ReviewUC)
	orderHandler := NewOrderHandler(deps.OrderUC)
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC)
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)

	// Auth (público)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/profile", AuthMiddleware(deps.JWTSecret), authHandler.Profile)
	authGroup.Put("/profile", AuthMiddleware(deps.JWTSecret), authHandler.UpdateProfile)

	// Catálogo (lecturas públicas, sin token)
	catalog := api.Group("/catalog")
	catalog.Get("/genres", catalogHandler.ListGenres)
	catalog.Get("/artists", catalogHandler.ListArtists)
	catalog.Get("/albums", catalogHandler.ListAlbums)
	catalog.Get("/albums/:id", catalogHandler.GetAlbum)
	catalog.Get("/formats", catalogHandler.ListFormats)
	catalog.Get("/products/:id", productHandler.GetByID)
	catalog.Get("/products/:id/reviews", reviewHandler.ListByProduct)

	// Reseñas (cualquier usuario autenticado)
	catalog.Post("/products/:id/reviews", AuthMiddleware(deps.JWTSecret), reviewHandler.Create)

	// Pedidos del cliente (autenticado)
	orders := api.Group("/orders", AuthMiddleware(deps.JWTSecret))
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.ListMine)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Get("/:id/receipt", orderHandler.Receipt)

	// Back-office (manager o admin)
	manager := api.Group("/manager",
		AuthMiddleware(deps.JWTSecret),
		RequireRole(entity.RoleManager, entity.RoleAdmin),
	)

	manager.Post("/genres", catalogHandler.CreateGenre)
	manager.Post("/artists", catalogHandler.CreateArtist)
	manager.Post("/albums", catalogHandler.CreateAlbum)
	manager.Put("/albums/:id", catalogHandler.UpdateAlbum)
	manager.Delete("/albums/:id", catalogHandler.DeleteAlbum)

	manager.Post("/products", productHandler.Create)
	manager.Put("/products/:id", productHandler.Update)
	manager.Delete("/products/:id", productHandler.Delete)

	manager.Get("/suppliers", supplierHandler.List)
	manager.Post("/suppliers", supplierHandler.Create)
	manager.Get("/suppliers/:id", supplierHandler.GetByID)
	manager.Put("/suppliers/:id", supplierHandler.Update)
	manager.Delete("/suppliers/:id", supplierHandler.Delete)

	manager.Get("/purchases", purchaseHandler.List)
	manager.Post("/purchases", purchaseHandler.Create)
	manager.Get("/purchases/:id", purchaseHandler.GetByID)
	manager.Put("/purchases/:id/status", purchaseHandler.UpdateStatus)

	manager.Get("/orders", orderHandler.ListAll)
	manager.Get("/orders/:id", orderHandler.GetAny)
	manager.Put("/orders/:id/status", orderHandler.UpdateStatus)

	manager.Get("/customers", customerHandler.List)
	manager.Get("/customers/:id", customerHandler.GetByID)
	manager.Put("/customers/:id", customerHandler.Update)

	manager.Get("/dashboard/stats", dashboardHandler.Stats)
	manager.Get("/dashboard/sales", dashboardHandler.Sales)
	manager.Get("/dashboard/top-products", dashboardHandler.TopProducts)

	manager.Get("/employees", employeeHandler.List)
	manager.Post("/employees", employeeHandler.Create)
	manager.Get("/employees/:id", employeeHandler.GetByID)
	manager.Put("/employees/:id", employeeHandler.Update)
}
