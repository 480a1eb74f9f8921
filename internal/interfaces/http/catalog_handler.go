package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/discoteca-api/internal/application/dto"
	"github.com/tu-usuario/discoteca-api/internal/application/usecase"
)

// CatalogHandler maneja el catálogo: lecturas públicas, escrituras de staff.
type CatalogHandler struct {
	uc *usecase.CatalogUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// ListGenres godoc
// @Summary      Listar géneros
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  dto.GenreResponse
// @Router       /api/catalog/genres [get]
func (h *CatalogHandler) ListGenres(c *fiber.Ctx) error {
	out, err := h.uc.ListGenres(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateGenre godoc
// @Summary      Crear género
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateGenreRequest  true  "Datos del género"
// @Success      201   {object}  dto.GenreResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/manager/genres [post]
func (h *CatalogHandler) CreateGenre(c *fiber.Ctx) error {
	var in dto.CreateGenreRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateGenre(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListArtists godoc
// @Summary      Listar artistas
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  dto.ArtistResponse
// @Router       /api/catalog/artists [get]
func (h *CatalogHandler) ListArtists(c *fiber.Ctx) error {
	out, err := h.uc.ListArtists(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateArtist godoc
// @Summary      Crear artista
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateArtistRequest  true  "Datos del artista"
// @Success      201   {object}  dto.ArtistResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/manager/artists [post]
func (h *CatalogHandler) CreateArtist(c *fiber.Ctx) error {
	var in dto.CreateArtistRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateArtist(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListAlbums godoc
// @Summary      Listar álbumes con filtros
// @Tags         catalog
// @Produce      json
// @Param        genre_id  query  string  false  "Filtrar por género"
// @Param        format    query  string  false  "Filtrar por formato (CD, Vinyl...)"
// @Param        search    query  string  false  "Búsqueda por título o artista"
// @Param        limit     query  int     false  "Límite"   default(20)
// @Param        offset    query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.AlbumListResponse
// @Router       /api/catalog/albums [get]
func (h *CatalogHandler) ListAlbums(c *fiber.Ctx) error {
	var in dto.AlbumFilterRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	out, err := h.uc.ListAlbums(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetAlbum godoc
// @Summary      Detalle de álbum con sus productos
// @Tags         catalog
// @Produce      json
// @Param        id   path  string  true  "ID del álbum"
// @Success      200  {object}  dto.AlbumDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/catalog/albums/{id} [get]
func (h *CatalogHandler) GetAlbum(c *fiber.Ctx) error {
	out, err := h.uc.GetAlbum(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListFormats godoc
// @Summary      Formatos disponibles en el catálogo
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/catalog/formats [get]
func (h *CatalogHandler) ListFormats(c *fiber.Ctx) error {
	out, err := h.uc.ListFormats(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateAlbum godoc
// @Summary      Crear álbum
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAlbumRequest  true  "Datos del álbum"
// @Success      201   {object}  dto.AlbumResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/manager/albums [post]
func (h *CatalogHandler) CreateAlbum(c *fiber.Ctx) error {
	var in dto.CreateAlbumRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateAlbum(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateAlbum godoc
// @Summary      Actualizar álbum
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del álbum"
// @Param        body  body  dto.CreateAlbumRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.AlbumResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/manager/albums/{id} [put]
func (h *CatalogHandler) UpdateAlbum(c *fiber.Ctx) error {
	var in dto.CreateAlbumRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateAlbum(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteAlbum godoc
// @Summary      Eliminar álbum (sin productos asociados)
// @Tags         catalog
// @Security     Bearer
// @Param        id  path  string  true  "ID del álbum"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/manager/albums/{id} [delete]
func (h *CatalogHandler) DeleteAlbum(c *fiber.Ctx) error {
	if err := h.uc.DeleteAlbum(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
