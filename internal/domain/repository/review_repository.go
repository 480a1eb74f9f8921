package repository

import "github.com/tu-usuario/discoteca-api/internal/domain/entity"

// ReviewRepository define el puerto de persistencia para Review.
type ReviewRepository interface {
	Create(review *entity.Review) error
	ListByProduct(productID string) ([]*entity.Review, error)
}
