package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/discoteca-api/internal/domain/entity"
	"github.com/tu-usuario/discoteca-api/internal/domain/repository"
)

var _ repository.ReviewRepository = (*ReviewRepo)(nil)

// ReviewRepo implementación de ReviewRepository (usable con pool o tx).
type ReviewRepo struct {
	q Querier
}

// NewReviewRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReviewRepository(q Querier) *ReviewRepo {
	return &ReviewRepo{q: q}
}

// Create persiste una nueva reseña.
func (r *ReviewRepo) Create(review *entity.Review) error {
	query := `
		INSERT INTO reviews (id, user_id, product_id, rating, comment, review_date)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		review.ID, review.UserID, review.ProductID, review.Rating, review.Comment, review.ReviewDate,
	)
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

// ListByProduct lista las reseñas de un producto, más recientes primero.
func (r *ReviewRepo) ListByProduct(productID string) ([]*entity.Review, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, user_id, product_id, rating, comment, review_date
		FROM reviews WHERE product_id = $1 ORDER BY review_date DESC`, productID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()
	var list []*entity.Review
	for rows.Next() {
		var rv entity.Review
		if err := rows.Scan(&rv.ID, &rv.UserID, &rv.ProductID, &rv.Rating, &rv.Comment, &rv.ReviewDate); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		list = append(list, &rv)
	}
	return list, rows.Err()
}
