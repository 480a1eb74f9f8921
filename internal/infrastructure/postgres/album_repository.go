package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/discoteca-api/internal/domain/entity"
	"github.com/tu-usuario/discoteca-api/internal/domain/repository"
)

var _ repository.AlbumRepository = (*AlbumRepo)(nil)

const albumColumns = `id, title, artist_id, genre_id, release_year, duration, label`

// AlbumRepo implementación de AlbumRepository (usable con pool o tx).
type AlbumRepo struct {
	q Querier
}

// NewAlbumRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAlbumRepository(q Querier) *AlbumRepo {
	return &AlbumRepo{q: q}
}

// Create persiste un nuevo álbum.
func (r *AlbumRepo) Create(album *entity.Album) error {
	query := `
		INSERT INTO albums (` + albumColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		album.ID, album.Title, album.ArtistID, album.GenreID,
		album.ReleaseYear, album.Duration, album.Label,
	)
	if err != nil {
		return fmt.Errorf("insert album: %w", err)
	}
	return nil
}

// GetByID obtiene un álbum por ID. Devuelve nil sin error si no existe.
func (r *AlbumRepo) GetByID(id string) (*entity.Album, error) {
	var a entity.Album
	err := r.q.QueryRow(context.Background(),
		`SELECT `+albumColumns+` FROM albums WHERE id = $1`, id).
		Scan(&a.ID, &a.Title, &a.ArtistID, &a.GenreID, &a.ReleaseYear, &a.Duration, &a.Label)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get album: %w", err)
	}
	return &a, nil
}

// GetSummary obtiene un álbum con artista y género resueltos por join.
func (r *AlbumRepo) GetSummary(id string) (*repository.AlbumSummary, error) {
	query := `
		SELECT al.id, al.title, al.artist_id, al.genre_id, al.release_year, al.duration, al.label,
		       ar.name, g.name
		FROM albums  al
		JOIN artists ar ON ar.id = al.artist_id
		JOIN genres  g  ON g.id  = al.genre_id
		WHERE al.id = $1`
	var s repository.AlbumSummary
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.Album.ID, &s.Album.Title, &s.Album.ArtistID, &s.Album.GenreID,
		&s.Album.ReleaseYear, &s.Album.Duration, &s.Album.Label,
		&s.ArtistName, &s.GenreName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get album summary: %w", err)
	}
	return &s, nil
}

// List lista álbumes con artista y género resueltos. Consulta única de forma
// fija: cada filtro se desactiva con cadena vacía.
func (r *AlbumRepo) List(filter repository.AlbumFilter) ([]*repository.AlbumSummary, error) {
	query := `
		SELECT al.id, al.title, al.artist_id, al.genre_id, al.release_year, al.duration, al.label,
		       ar.name, g.name
		FROM albums  al
		JOIN artists ar ON ar.id = al.artist_id
		JOIN genres  g  ON g.id  = al.genre_id
		WHERE ($1 = '' OR al.genre_id = $1)
		  AND ($2 = '' OR EXISTS (
		        SELECT 1 FROM products p WHERE p.album_id = al.id AND p.format = $2))
		  AND ($3 = '' OR al.title ILIKE '%' || $3 || '%' OR ar.name ILIKE '%' || $3 || '%')
		ORDER BY ar.name, al.title
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), query,
		filter.GenreID, filter.Format, filter.Search, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("list albums: %w", err)
	}
	defer rows.Close()
	var list []*repository.AlbumSummary
	for rows.Next() {
		var s repository.AlbumSummary
		if err := rows.Scan(&s.Album.ID, &s.Album.Title, &s.Album.ArtistID, &s.Album.GenreID,
			&s.Album.ReleaseYear, &s.Album.Duration, &s.Album.Label,
			&s.ArtistName, &s.GenreName); err != nil {
			return nil, fmt.Errorf("scan album: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Update actualiza un álbum existente.
func (r *AlbumRepo) Update(album *entity.Album) error {
	query := `
		UPDATE albums
		SET title = $2, artist_id = $3, genre_id = $4, release_year = $5, duration = $6, label = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		album.ID, album.Title, album.ArtistID, album.GenreID,
		album.ReleaseYear, album.Duration, album.Label,
	)
	if err != nil {
		return fmt.Errorf("update album: %w", err)
	}
	return nil
}

// Delete elimina un álbum por ID (los productos asociados caen por FK cascade).
func (r *AlbumRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM albums WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete album: %w", err)
	}
	return nil
}
