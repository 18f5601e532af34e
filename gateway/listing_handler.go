package gateway

import (
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"imobiliare/auth"
	"imobiliare/domain"
	"imobiliare/errors"
	"imobiliare/repositories"
	"imobiliare/services"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

const maxImageBytes = 5 << 20

type listingPayload struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Surface     float64   `json:"surface"`
	Rooms       int       `json:"rooms"`
	County      string    `json:"county"`
	City        string    `json:"city"`
	Images      []string  `json:"images,omitempty"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func toListingPayload(listing domain.Listing) listingPayload {
	return listingPayload{
		ID:          listing.ID,
		Title:       listing.Title,
		Description: listing.Description,
		Category:    string(listing.Category),
		Price:       listing.Price,
		Surface:     listing.Surface,
		Rooms:       listing.Rooms,
		County:      listing.County,
		City:        listing.City,
		Images:      listing.Images,
		OwnerID:     listing.OwnerID,
		CreatedAt:   listing.CreatedAt,
	}
}

func toListingPayloads(listings []domain.Listing) []listingPayload {
	return lo.Map(listings, func(listing domain.Listing, _ int) listingPayload {
		return toListingPayload(listing)
	})
}

// ListingHandler serves the property catalogue. Reads and search are
// public; mutations require the caller to own the listing.
type ListingHandler struct {
	listings   services.IListingService
	uploadsDir string
	log        *slog.Logger
}

func NewListingHandler(listings services.IListingService, uploadsDir string, log *slog.Logger) *ListingHandler {
	return &ListingHandler{listings: listings, uploadsDir: uploadsDir, log: log}
}

func (h *ListingHandler) RegisterPublic(group *gin.RouterGroup) {
	group.GET("", h.search)
	group.GET("/:id", h.get)
}

func (h *ListingHandler) RegisterPrivate(group *gin.RouterGroup) {
	group.POST("", h.create)
	group.PUT("/:id", h.update)
	group.DELETE("/:id", h.remove)
}

// RegisterOwner mounts the caller-scoped listing view. It lives on its
// own prefix so the public "/:id" wildcard cannot shadow it.
func (h *ListingHandler) RegisterOwner(group *gin.RouterGroup) {
	group.GET("", h.listMine)
}

func (h *ListingHandler) search(c *gin.Context) {
	query := repositories.ListingQuery{
		Category: c.Query("category"),
		County:   c.Query("county"),
		City:     c.Query("city"),
	}
	query.PriceMin = floatQuery(c, "price_min")
	query.PriceMax = floatQuery(c, "price_max")
	query.SurfaceMin = floatQuery(c, "surface_min")
	query.SurfaceMax = floatQuery(c, "surface_max")
	if raw := c.Query("rooms"); raw != "" {
		if rooms, err := strconv.Atoi(raw); err == nil {
			query.Rooms = &rooms
		}
	}
	if raw := c.Query("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil {
			query.Limit = limit
		}
	}

	listings, err := h.listings.Search(c.Request.Context(), query)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"listings": toListingPayloads(listings)})
}

func (h *ListingHandler) get(c *gin.Context) {
	listing, err := h.listings.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toListingPayload(listing))
}

func (h *ListingHandler) create(c *gin.Context) {
	input, images, err := h.parseListingForm(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	listing, err := h.listings.Create(c.Request.Context(), auth.UserID(c), input, images)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toListingPayload(listing))
}

func (h *ListingHandler) update(c *gin.Context) {
	input, images, err := h.parseListingForm(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	listing, err := h.listings.Update(c.Request.Context(), c.Param("id"), auth.UserID(c), input, images)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toListingPayload(listing))
}

func (h *ListingHandler) remove(c *gin.Context) {
	if err := h.listings.Delete(c.Request.Context(), c.Param("id"), auth.UserID(c)); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ListingHandler) listMine(c *gin.Context) {
	listings, err := h.listings.ListMine(c.Request.Context(), auth.UserID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"listings": toListingPayloads(listings)})
}

// parseListingForm decodes the multipart body: scalar fields plus any
// number of "images" parts. Every image is content-sniffed; declared
// filenames and Content-Type headers are not trusted.
func (h *ListingHandler) parseListingForm(c *gin.Context) (services.ListingInput, []string, error) {
	var input services.ListingInput
	input.Title = c.PostForm("title")
	input.Description = c.PostForm("description")
	input.Category = c.PostForm("category")
	input.County = c.PostForm("county")
	input.City = c.PostForm("city")

	var err error
	if input.Price, err = strconv.ParseFloat(c.PostForm("price"), 64); err != nil {
		return input, nil, fmt.Errorf("%w: invalid price", errors.ErrInvalidBody)
	}
	if input.Surface, err = strconv.ParseFloat(c.PostForm("surface"), 64); err != nil {
		return input, nil, fmt.Errorf("%w: invalid surface", errors.ErrInvalidBody)
	}
	if raw := c.PostForm("rooms"); raw != "" {
		if input.Rooms, err = strconv.Atoi(raw); err != nil {
			return input, nil, fmt.Errorf("%w: invalid rooms", errors.ErrInvalidBody)
		}
	}

	form, err := c.MultipartForm()
	if err != nil {
		return input, nil, fmt.Errorf("%w: %v", errors.ErrInvalidBody, err)
	}

	var images []string
	for _, file := range form.File["images"] {
		name, err := h.storeImage(file)
		if err != nil {
			return input, nil, err
		}
		images = append(images, name)
	}
	return input, images, nil
}

func (h *ListingHandler) storeImage(file *multipart.FileHeader) (string, error) {
	if file.Size > maxImageBytes {
		return "", fmt.Errorf("%w: image %s exceeds %d bytes", errors.ErrInvalidBody, file.Filename, maxImageBytes)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrInvalidBody, err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxImageBytes+1))
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrUnavailable, err)
	}
	if len(data) > maxImageBytes {
		return "", fmt.Errorf("%w: image %s exceeds %d bytes", errors.ErrInvalidBody, file.Filename, maxImageBytes)
	}

	kind := mimetype.Detect(data)
	if !strings.HasPrefix(kind.String(), "image/") {
		return "", fmt.Errorf("%w: %s is not an image (%s)", errors.ErrInvalidBody, file.Filename, kind)
	}

	name := uuid.NewString() + kind.Extension()
	if err := os.WriteFile(filepath.Join(h.uploadsDir, name), data, 0o644); err != nil {
		h.log.Error("Failed to store uploaded image", "file", name, "error", err)
		return "", fmt.Errorf("%w: %v", errors.ErrUnavailable, err)
	}
	return name, nil
}

func floatQuery(c *gin.Context, key string) *float64 {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &value
}
