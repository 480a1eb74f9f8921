package dto

import "github.com/shopspring/decimal"

// CreateProductRequest entrada para crear un producto (álbum + formato).
type CreateProductRequest struct {
	AlbumID       string          `json:"album_id" validate:"required"`
	Format        string          `json:"format" validate:"required,min=1,max=50"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity" validate:"min=0"`
	Barcode       string          `json:"barcode"`
	Condition     string          `json:"condition"`
}

// UpdateProductRequest entrada para actualizar un producto. El stock NO se
// actualiza por aquí: solo lo mueven los flujos de pedido y compra.
type UpdateProductRequest struct {
	Format    *string          `json:"format" validate:"omitempty,min=1,max=50"`
	Price     *decimal.Decimal `json:"price"`
	Barcode   *string          `json:"barcode"`
	Condition *string          `json:"condition"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string          `json:"id"`
	AlbumID       string          `json:"album_id"`
	Format        string          `json:"format"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	Barcode       string          `json:"barcode,omitempty"`
	Condition     string          `json:"condition,omitempty"`
}
