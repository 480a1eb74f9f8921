package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/discoteca-api/internal/application/dto"
	"github.com/tu-usuario/discoteca-api/internal/domain"
	"github.com/tu-usuario/discoteca-api/internal/domain/entity"
	"github.com/tu-usuario/discoteca-api/internal/domain/repository"
)

// ReviewUseCase reseñas de productos por usuarios autenticados.
type ReviewUseCase struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
}

// NewReviewUseCase construye el caso de uso de reseñas.
func NewReviewUseCase(reviewRepo repository.ReviewRepository, productRepo repository.ProductRepository) *ReviewUseCase {
	return &ReviewUseCase{reviewRepo: reviewRepo, productRepo: productRepo}
}

// Create publica una reseña. Rating fuera de 1..5 es entrada inválida; un
// usuario solo puede reseñar cada producto una vez (unicidad en persistencia).
func (uc *ReviewUseCase) Create(userID, productID string, in dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, &domain.ProductNotFoundError{ProductID: productID}
	}
	review := &entity.Review{
		ID:         uuid.New().String(),
		UserID:     userID,
		ProductID:  productID,
		Rating:     in.Rating,
		Comment:    in.Comment,
		ReviewDate: time.Now(),
	}
	if err := uc.reviewRepo.Create(review); err != nil {
		return nil, err
	}
	return toReviewResponse(review), nil
}

// ListByProduct reseñas de un producto, más recientes primero.
func (uc *ReviewUseCase) ListByProduct(productID string) ([]dto.ReviewResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, &domain.ProductNotFoundError{ProductID: productID}
	}
	reviews, err := uc.reviewRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	result := make([]dto.ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		result = append(result, *toReviewResponse(r))
	}
	return result, nil
}

func toReviewResponse(r *entity.Review) *dto.ReviewResponse {
	return &dto.ReviewResponse{
		ID:         r.ID,
		UserID:     r.UserID,
		ProductID:  r.ProductID,
		Rating:     r.Rating,
		Comment:    r.Comment,
		ReviewDate: r.ReviewDate,
	}
}
