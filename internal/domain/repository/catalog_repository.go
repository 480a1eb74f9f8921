package repository

import "github.com/tu-usuario/discoteca-api/internal/domain/entity"

// GenreRepository puerto de persistencia para Genre.
type GenreRepository interface {
	Create(genre *entity.Genre) error
	GetByID(id string) (*entity.Genre, error)
	List() ([]*entity.Genre, error)
}

// ArtistRepository puerto de persistencia para Artist.
type ArtistRepository interface {
	Create(artist *entity.Artist) error
	GetByID(id string) (*entity.Artist, error)
	List() ([]*entity.Artist, error)
}

// AlbumSummary fila de listado de álbumes con los nombres resueltos por join.
type AlbumSummary struct {
	Album      entity.Album
	ArtistName string
	GenreName  string
}

// AlbumFilter filtros del listado de catálogo. Cadenas vacías desactivan
// cada criterio; la consulta subyacente es una sola, de forma fija.
type AlbumFilter struct {
	GenreID string
	Format  string
	Search  string // sobre título de álbum y nombre de artista
	Limit   int
	Offset  int
}

// AlbumRepository puerto de persistencia para Album.
type AlbumRepository interface {
	Create(album *entity.Album) error
	GetByID(id string) (*entity.Album, error)
	GetSummary(id string) (*AlbumSummary, error)
	List(filter AlbumFilter) ([]*AlbumSummary, error)
	Update(album *entity.Album) error
	Delete(id string) error
}
