package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/discoteca-api/internal/domain"
	"github.com/tu-usuario/discoteca-api/internal/domain/entity"
	"github.com/tu-usuario/discoteca-api/internal/domain/repository"
)

var _ repository.GenreRepository = (*GenreRepo)(nil)
var _ repository.ArtistRepository = (*ArtistRepo)(nil)

// GenreRepo implementación de GenreRepository (usable con pool o tx).
type GenreRepo struct {
	q Querier
}

// NewGenreRepository construye el adaptador. Pasar pool o tx (Querier).
func NewGenreRepository(q Querier) *GenreRepo {
	return &GenreRepo{q: q}
}

// Create persiste un nuevo género. Nombre único.
func (r *GenreRepo) Create(genre *entity.Genre) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO genres (id, name, description) VALUES ($1, $2, $3)`,
		genre.ID, genre.Name, genre.Description,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert genre: %w", err)
	}
	return nil
}

// GetByID obtiene un género por ID. Devuelve nil sin error si no existe.
func (r *GenreRepo) GetByID(id string) (*entity.Genre, error) {
	var g entity.Genre
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, description FROM genres WHERE id = $1`, id).
		Scan(&g.ID, &g.Name, &g.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get genre: %w", err)
	}
	return &g, nil
}

// List lista todos los géneros ordenados por nombre.
func (r *GenreRepo) List() ([]*entity.Genre, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name, description FROM genres ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}
	defer rows.Close()
	var list []*entity.Genre
	for rows.Next() {
		var g entity.Genre
		if err := rows.Scan(&g.ID, &g.Name, &g.Description); err != nil {
			return nil, fmt.Errorf("scan genre: %w", err)
		}
		list = append(list, &g)
	}
	return list, rows.Err()
}

// ArtistRepo implementación de ArtistRepository (usable con pool o tx).
type ArtistRepo struct {
	q Querier
}

// NewArtistRepository construye el adaptador. Pasar pool o tx (Querier).
func NewArtistRepository(q Querier) *ArtistRepo {
	return &ArtistRepo{q: q}
}

// Create persiste un nuevo artista.
func (r *ArtistRepo) Create(artist *entity.Artist) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO artists (id, name, genre_id) VALUES ($1, $2, $3)`,
		artist.ID, artist.Name, artist.GenreID,
	)
	if err != nil {
		return fmt.Errorf("insert artist: %w", err)
	}
	return nil
}

// GetByID obtiene un artista por ID. Devuelve nil sin error si no existe.
func (r *ArtistRepo) GetByID(id string) (*entity.Artist, error) {
	var a entity.Artist
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, genre_id FROM artists WHERE id = $1`, id).
		Scan(&a.ID, &a.Name, &a.GenreID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get artist: %w", err)
	}
	return &a, nil
}

// List lista todos los artistas ordenados por nombre.
func (r *ArtistRepo) List() ([]*entity.Artist, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name, genre_id FROM artists ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}
	defer rows.Close()
	var list []*entity.Artist
	for rows.Next() {
		var a entity.Artist
		if err := rows.Scan(&a.ID, &a.Name, &a.GenreID); err != nil {
			return nil, fmt.Errorf("scan artist: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
