package entity

// Genre clasifica artistas y álbumes.
type Genre struct {
	ID          string
	Name        string
	Description string
}

// Artist intérprete o banda del catálogo.
type Artist struct {
	ID      string
	Name    string
	GenreID string
}

// Album agrupa los productos vendibles (un álbum puede existir en varios formatos).
type Album struct {
	ID          string
	Title       string
	ArtistID    string
	GenreID     string
	ReleaseYear int
	Duration    int // segundos
	Label       string
}
