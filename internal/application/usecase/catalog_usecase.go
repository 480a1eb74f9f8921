package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/discoteca-api/internal/application/dto"
	"github.com/tu-usuario/discoteca-api/internal/domain"
	"github.com/tu-usuario/discoteca-api/internal/domain/entity"
	"github.com/tu-usuario/discoteca-api/internal/domain/repository"
	"github.com/tu-usuario/discoteca-api/internal/infrastructure/cache"
)

// CatalogUseCase gestiona géneros, artistas y álbumes. Las lecturas públicas
// del catálogo pasan por caché; cualquier escritura la invalida.
type CatalogUseCase struct {
	genreRepo   repository.GenreRepository
	artistRepo  repository.ArtistRepository
	albumRepo   repository.AlbumRepository
	productRepo repository.ProductRepository
	cache       cache.Cache
	cacheTTL    time.Duration
}

// NewCatalogUseCase construye el caso de uso de catálogo.
func NewCatalogUseCase(
	genreRepo repository.GenreRepository,
	artistRepo repository.ArtistRepository,
	albumRepo repository.AlbumRepository,
	productRepo repository.ProductRepository,
	c cache.Cache,
	cacheTTL time.Duration,
) *CatalogUseCase {
	return &CatalogUseCase{
		genreRepo:   genreRepo,
		artistRepo:  artistRepo,
		albumRepo:   albumRepo,
		productRepo: productRepo,
		cache:       c,
		cacheTTL:    cacheTTL,
	}
}

// ── Géneros ───────────────────────────────────────────────────────────────────

// CreateGenre crea un género.
func (uc *CatalogUseCase) CreateGenre(ctx context.Context, in dto.CreateGenreRequest) (*dto.GenreResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	genre := &entity.Genre{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
	}
	if err := uc.genreRepo.Create(genre); err != nil {
		return nil, err
	}
	uc.invalidate(ctx)
	return toGenreResponse(genre), nil
}

// ListGenres todos los géneros, ordenados por nombre.
func (uc *CatalogUseCase) ListGenres(ctx context.Context) ([]dto.GenreResponse, error) {
	key := uc.cache.GenerateKey("genres", "all")
	var cached []dto.GenreResponse
	if ok := uc.fromCache(ctx, key, &cached); ok {
		return cached, nil
	}
	genres, err := uc.genreRepo.List()
	if err != nil {
		return nil, err
	}
	result := make([]dto.GenreResponse, 0, len(genres))
	for _, g := range genres {
		result = append(result, *toGenreResponse(g))
	}
	uc.toCache(ctx, key, result)
	return result, nil
}

// ── Artistas ──────────────────────────────────────────────────────────────────

// CreateArtist crea un artista. El género debe existir.
func (uc *CatalogUseCase) CreateArtist(ctx context.Context, in dto.CreateArtistRequest) (*dto.ArtistResponse, error) {
	if in.Name == "" || in.GenreID == "" {
		return nil, domain.ErrInvalidInput
	}
	genre, err := uc.genreRepo.GetByID(in.GenreID)
	if err != nil {
		return nil, err
	}
	if genre == nil {
		return nil, domain.ErrNotFound
	}
	artist := &entity.Artist{
		ID:      uuid.New().String(),
		Name:    in.Name,
		GenreID: in.GenreID,
	}
	if err := uc.artistRepo.Create(artist); err != nil {
		return nil, err
	}
	uc.invalidate(ctx)
	return toArtistResponse(artist), nil
}

// ListArtists todos los artistas, ordenados por nombre.
func (uc *CatalogUseCase) ListArtists(ctx context.Context) ([]dto.ArtistResponse, error) {
	key := uc.cache.GenerateKey("artists", "all")
	var cached []dto.ArtistResponse
	if ok := uc.fromCache(ctx, key, &cached); ok {
		return cached, nil
	}
	artists, err := uc.artistRepo.List()
	if err != nil {
		return nil, err
	}
	result := make([]dto.ArtistResponse, 0, len(artists))
	for _, a := range artists {
		result = append(result, *toArtistResponse(a))
	}
	uc.toCache(ctx, key, result)
	return result, nil
}

// ── Álbumes ───────────────────────────────────────────────────────────────────

// CreateAlbum crea un álbum. Artista y género deben existir.
func (uc *CatalogUseCase) CreateAlbum(ctx context.Context, in dto.CreateAlbumRequest) (*dto.AlbumResponse, error) {
	if in.Title == "" || in.ArtistID == "" || in.GenreID == "" {
		return nil, domain.ErrInvalidInput
	}
	artist, err := uc.artistRepo.GetByID(in.ArtistID)
	if err != nil {
		return nil, err
	}
	if artist == nil {
		return nil, domain.ErrNotFound
	}
	genre, err := uc.genreRepo.GetByID(in.GenreID)
	if err != nil {
		return nil, err
	}
	if genre == nil {
		return nil, domain.ErrNotFound
	}
	album := &entity.Album{
		ID:          uuid.New().String(),
		Title:       in.Title,
		ArtistID:    in.ArtistID,
		GenreID:     in.GenreID,
		ReleaseYear: in.ReleaseYear,
		Duration:    in.Duration,
		Label:       in.Label,
	}
	if err := uc.albumRepo.Create(album); err != nil {
		return nil, err
	}
	uc.invalidate(ctx)
	return &dto.AlbumResponse{
		ID:          album.ID,
		Title:       album.Title,
		ArtistID:    album.ArtistID,
		ArtistName:  artist.Name,
		GenreID:     album.GenreID,
		GenreName:   genre.Name,
		ReleaseYear: album.ReleaseYear,
		Duration:    album.Duration,
		Label:       album.Label,
	}, nil
}

// GetAlbum detalle de un álbum con sus productos (formatos a la venta).
func (uc *CatalogUseCase) GetAlbum(ctx context.Context, id string) (*dto.AlbumDetailResponse, error) {
	summary, err := uc.albumRepo.GetSummary(id)
	if err != nil {
		return nil, err
	}
	if summary == nil {
		return nil, domain.ErrNotFound
	}
	products, err := uc.productRepo.ListByAlbum(id)
	if err != nil {
		return nil, err
	}
	detail := &dto.AlbumDetailResponse{
		Album:    *toAlbumResponse(summary),
		Products: make([]dto.ProductResponse, 0, len(products)),
	}
	for _, p := range products {
		detail.Products = append(detail.Products, *toProductResponse(p))
	}
	return detail, nil
}

// ListAlbums listado público con filtros por género, formato y búsqueda de
// texto. Es la consulta más caliente del sistema, por eso se cachea por
// combinación de filtros.
func (uc *CatalogUseCase) ListAlbums(ctx context.Context, in dto.AlbumFilterRequest) (*dto.AlbumListResponse, error) {
	in.DefaultPage()
	key := uc.cache.GenerateKey("albums", fmt.Sprintf("%s:%s:%s:%d:%d",
		in.GenreID, in.Format, in.Search, in.Limit, in.Offset))
	var cached dto.AlbumListResponse
	if ok := uc.fromCache(ctx, key, &cached); ok {
		return &cached, nil
	}

	summaries, err := uc.albumRepo.List(repository.AlbumFilter{
		GenreID: in.GenreID,
		Format:  in.Format,
		Search:  in.Search,
		Limit:   in.Limit,
		Offset:  in.Offset,
	})
	if err != nil {
		return nil, err
	}
	resp := &dto.AlbumListResponse{
		Items: make([]dto.AlbumResponse, 0, len(summaries)),
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}
	for _, s := range summaries {
		resp.Items = append(resp.Items, *toAlbumResponse(s))
	}
	uc.toCache(ctx, key, resp)
	return resp, nil
}

// ListFormats formatos distintos presentes en el catálogo (para filtros de UI).
func (uc *CatalogUseCase) ListFormats(ctx context.Context) ([]string, error) {
	key := uc.cache.GenerateKey("formats", "all")
	var cached []string
	if ok := uc.fromCache(ctx, key, &cached); ok {
		return cached, nil
	}
	formats, err := uc.productRepo.ListFormats()
	if err != nil {
		return nil, err
	}
	uc.toCache(ctx, key, formats)
	return formats, nil
}

// UpdateAlbum actualiza un álbum existente.
func (uc *CatalogUseCase) UpdateAlbum(ctx context.Context, id string, in dto.CreateAlbumRequest) (*dto.AlbumResponse, error) {
	album, err := uc.albumRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if album == nil {
		return nil, domain.ErrNotFound
	}
	if in.Title != "" {
		album.Title = in.Title
	}
	if in.ArtistID != "" {
		album.ArtistID = in.ArtistID
	}
	if in.GenreID != "" {
		album.GenreID = in.GenreID
	}
	if in.ReleaseYear != 0 {
		album.ReleaseYear = in.ReleaseYear
	}
	if in.Duration != 0 {
		album.Duration = in.Duration
	}
	if in.Label != "" {
		album.Label = in.Label
	}
	if err := uc.albumRepo.Update(album); err != nil {
		return nil, err
	}
	uc.invalidate(ctx)
	summary, err := uc.albumRepo.GetSummary(id)
	if err != nil || summary == nil {
		return nil, domain.ErrNotFound
	}
	return toAlbumResponse(summary), nil
}

// DeleteAlbum elimina un álbum sin productos asociados.
func (uc *CatalogUseCase) DeleteAlbum(ctx context.Context, id string) error {
	album, err := uc.albumRepo.GetByID(id)
	if err != nil {
		return err
	}
	if album == nil {
		return domain.ErrNotFound
	}
	products, err := uc.productRepo.ListByAlbum(id)
	if err != nil {
		return err
	}
	if len(products) > 0 {
		return domain.ErrInvalidInput // primero retirar sus productos
	}
	if err := uc.albumRepo.Delete(id); err != nil {
		return err
	}
	uc.invalidate(ctx)
	return nil
}

// ── Caché ─────────────────────────────────────────────────────────────────────

// fromCache intenta poblar out desde la caché. Un fallo de caché nunca es un
// error para el caller: se sigue a la base de datos.
func (uc *CatalogUseCase) fromCache(ctx context.Context, key string, out any) bool {
	raw, err := uc.cache.Get(ctx, key)
	if err != nil || raw == "" {
		return false
	}
	return json.Unmarshal([]byte(raw), out) == nil
}

func (uc *CatalogUseCase) toCache(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = uc.cache.Set(ctx, key, string(raw), uc.cacheTTL)
}

// invalidate borra todas las entradas de catálogo tras una escritura.
func (uc *CatalogUseCase) invalidate(ctx context.Context) {
	for _, op := range []string{"genres", "artists", "albums", "formats"} {
		_ = uc.cache.Delete(ctx, uc.cache.GenerateKey(op, "*"))
	}
}

// ── Mapeos ────────────────────────────────────────────────────────────────────

func toGenreResponse(g *entity.Genre) *dto.GenreResponse {
	return &dto.GenreResponse{ID: g.ID, Name: g.Name, Description: g.Description}
}

func toArtistResponse(a *entity.Artist) *dto.ArtistResponse {
	return &dto.ArtistResponse{ID: a.ID, Name: a.Name, GenreID: a.GenreID}
}

func toAlbumResponse(s *repository.AlbumSummary) *dto.AlbumResponse {
	return &dto.AlbumResponse{
		ID:          s.Album.ID,
		Title:       s.Album.Title,
		ArtistID:    s.Album.ArtistID,
		ArtistName:  s.ArtistName,
		GenreID:     s.Album.GenreID,
		GenreName:   s.GenreName,
		ReleaseYear: s.Album.ReleaseYear,
		Duration:    s.Album.Duration,
		Label:       s.Album.Label,
	}
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:            p.ID,
		AlbumID:       p.AlbumID,
		Format:        p.Format,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		Barcode:       p.Barcode,
		Condition:     p.Condition,
	}
}
