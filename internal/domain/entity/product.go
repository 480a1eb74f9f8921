package entity

import "github.com/shopspring/decimal"

// Product es la línea vendible del catálogo: un álbum en un formato concreto.
// StockQuantity nunca puede quedar negativo; solo los flujos de pedido y
// compra lo mutan, siempre dentro de una transacción con bloqueo de fila.
type Product struct {
	ID            string
	AlbumID       string
	Format        string // CD, Vinyl, Cassette...
	Price         decimal.Decimal
	StockQuantity int
	Barcode       string
	Condition     string // new, used...
}
