package dto

// ── Géneros ───────────────────────────────────────────────────────────────────

// CreateGenreRequest entrada para crear un género.
type CreateGenreRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description"`
}

// GenreResponse salida de un género.
type GenreResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ── Artistas ──────────────────────────────────────────────────────────────────

// CreateArtistRequest entrada para crear un artista.
type CreateArtistRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	GenreID string `json:"genre_id" validate:"required"`
}

// ArtistResponse salida de un artista.
type ArtistResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	GenreID string `json:"genre_id"`
}

// ── Álbumes ───────────────────────────────────────────────────────────────────

// CreateAlbumRequest entrada para crear un álbum.
type CreateAlbumRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	ArtistID    string `json:"artist_id" validate:"required"`
	GenreID     string `json:"genre_id" validate:"required"`
	ReleaseYear int    `json:"release_year"`
	Duration    int    `json:"duration"`
	Label       string `json:"label"`
}

// AlbumFilterRequest filtros del listado público de álbumes.
type AlbumFilterRequest struct {
	GenreID string `query:"genre_id"`
	Format  string `query:"format"`
	Search  string `query:"search"`
	PageRequest
}

// AlbumResponse salida de un álbum con nombres resueltos.
type AlbumResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	ArtistID    string `json:"artist_id"`
	ArtistName  string `json:"artist_name"`
	GenreID     string `json:"genre_id"`
	GenreName   string `json:"genre_name"`
	ReleaseYear int    `json:"release_year,omitempty"`
	Duration    int    `json:"duration,omitempty"`
	Label       string `json:"label,omitempty"`
}

// AlbumDetailResponse álbum + sus productos (formatos disponibles).
type AlbumDetailResponse struct {
	Album    AlbumResponse     `json:"album"`
	Products []ProductResponse `json:"products"`
}

// AlbumListResponse lista paginada de álbumes.
type AlbumListResponse struct {
	Items []AlbumResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
