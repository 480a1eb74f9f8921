package usecase

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/discoteca-api/internal/application/dto"
	"github.com/tu-usuario/discoteca-api/internal/domain"
	"github.com/tu-usuario/discoteca-api/internal/domain/entity"
	"github.com/tu-usuario/discoteca-api/internal/domain/repository"
)

// ProductUseCase gestión de productos desde el back-office. El stock no se
// edita por aquí: lo mueven los flujos de pedido y compra.
type ProductUseCase struct {
	productRepo repository.ProductRepository
	albumRepo   repository.AlbumRepository
}

// NewProductUseCase construye el caso de uso de productos.
func NewProductUseCase(productRepo repository.ProductRepository, albumRepo repository.AlbumRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, albumRepo: albumRepo}
}

// Create da de alta un producto. El álbum debe existir; el stock inicial
// puede ser cero (se repone después vía compras).
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.AlbumID == "" || in.Format == "" || in.Price.LessThan(decimal.Zero) || in.StockQuantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	album, err := uc.albumRepo.GetByID(in.AlbumID)
	if err != nil {
		return nil, err
	}
	if album == nil {
		return nil, domain.ErrNotFound
	}
	condition := in.Condition
	if condition == "" {
		condition = "new"
	}
	product := &entity.Product{
		ID:            uuid.New().String(),
		AlbumID:       in.AlbumID,
		Format:        in.Format,
		Price:         in.Price,
		StockQuantity: in.StockQuantity,
		Barcode:       in.Barcode,
		Condition:     condition,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, &domain.ProductNotFoundError{ProductID: id}
	}
	return toProductResponse(product), nil
}

// Update actualiza formato, precio, código de barras o condición.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, &domain.ProductNotFoundError{ProductID: id}
	}
	if in.Format != nil {
		product.Format = *in.Format
	}
	if in.Price != nil {
		if in.Price.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.Barcode != nil {
		product.Barcode = *in.Barcode
	}
	if in.Condition != nil {
		product.Condition = *in.Condition
	}
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete retira un producto del catálogo.
func (uc *ProductUseCase) Delete(id string) error {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return &domain.ProductNotFoundError{ProductID: id}
	}
	return uc.productRepo.Delete(id)
}
