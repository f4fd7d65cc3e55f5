package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ev-carbon-market/internal/domain/listing"
	reqdto "ev-carbon-market/internal/handler/dto/request"
	resdto "ev-carbon-market/internal/handler/dto/response"
	"ev-carbon-market/internal/handler/httperr"
	"ev-carbon-market/internal/usecase/commands"
	"ev-carbon-market/internal/usecase/queries"
)

type ListingHandler struct {
	listingCommands commands.ListingCommands
	listingQueries  queries.ListingQueries
}

func NewListingHandler(listingCommands commands.ListingCommands, listingQueries queries.ListingQueries) *ListingHandler {
	return &ListingHandler{
		listingCommands: listingCommands,
		listingQueries:  listingQueries,
	}
}

// @Summary Create listing
// @Description List a verified carbon credit at a fixed price
// @Tags listings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateListingRequest true "Listing request"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /credit-listings [post]
func (h *ListingHandler) CreateListing(c *gin.Context) {
	userID, role, ok := requireIdentity(c)
	if !ok {
		return
	}

	var req reqdto.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	price, err := req.ParsedPrice()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price format"})
		return
	}

	listingID, err := h.listingCommands.CreateFixedListing(c.Request.Context(), req.CreditID, userID, role, price)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrCreditNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Credit not found"})
		case errors.Is(err, commands.ErrUnauthorizedOperation),
			errors.Is(err, commands.ErrNotCreditOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to list this credit"})
		case errors.Is(err, commands.ErrCreditAlreadyListed):
			c.JSON(http.StatusConflict, gin.H{"error": "Credit already has an open listing"})
		case errors.Is(err, listing.ErrPriceOutOfRange),
			errors.Is(err, listing.ErrPriceTooPrecise):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
		case isStateTransitionErr(err):
			c.JSON(http.StatusConflict, gin.H{"error": "Credit is not in a listable state"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: listingID})
}

// @Summary Get listing
// @Tags listings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Success 200 {object} resdto.ListingResponse
// @Failure 404 {object} map[string]string
// @Router /credit-listings/{id} [get]
func (h *ListingHandler) GetListing(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	view, err := h.listingQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, queries.ErrListingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resdto.FromListingView(view))
}

// @Summary Search active listings
// @Description Browse the marketplace with pagination, sorting and price filters
// @Tags listings
// @Produce json
// @Security BearerAuth
// @Param page query int false "Zero-based page"
// @Param size query int false "Page size (max 100)"
// @Param sort query string false "price_asc|price_desc|co2_asc|co2_desc|newest|oldest"
// @Param min_price query string false "Minimum price"
// @Param max_price query string false "Maximum price"
// @Success 200 {array} resdto.ListingResponse
// @Failure 400 {object} map[string]string
// @Router /credit-listings [get]
func (h *ListingHandler) SearchListings(c *gin.Context) {
	search, err := parseMarketplaceSearch(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	views, err := h.listingQueries.SearchActive(c.Request.Context(), search)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrInvalidPage),
			errors.Is(err, queries.ErrInvalidPageSize),
			errors.Is(err, queries.ErrInvalidSortKey),
			errors.Is(err, queries.ErrInvalidPriceRange):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid search parameters"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromListingViews(views))
}

// @Summary List own listings
// @Tags listings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.ListingResponse
// @Router /credit-listings/mine [get]
func (h *ListingHandler) ListMyListings(c *gin.Context) {
	userID, _, ok := requireIdentity(c)
	if !ok {
		return
	}
	page, err := parsePageRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination parameters"})
		return
	}

	views, err := h.listingQueries.ListBySeller(c.Request.Context(), userID, page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resdto.FromListingViews(views))
}

// @Summary Update listing price
// @Tags listings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Param request body reqdto.UpdateListingPriceRequest true "New price"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /credit-listings/{id}/price [patch]
func (h *ListingHandler) UpdatePrice(c *gin.Context) {
	userID, role, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req reqdto.UpdateListingPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	price, err := req.ParsedPrice()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price format"})
		return
	}

	if err := h.listingCommands.UpdateListingPrice(c.Request.Context(), id, userID, role, price); err != nil {
		h.respondListingMutationError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Cancel listing
// @Description Withdraw an active listing; the credit returns to VERIFIED
// @Tags listings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Success 204
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /credit-listings/{id} [delete]
func (h *ListingHandler) CancelListing(c *gin.Context) {
	userID, role, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.listingCommands.CancelListing(c.Request.Context(), id, userID, role); err != nil {
		h.respondListingMutationError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ListingHandler) respondListingMutationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrListingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
	case errors.Is(err, commands.ErrUnauthorizedOperation),
		errors.Is(err, commands.ErrNotListingSeller):
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to manage this listing"})
	case errors.Is(err, commands.ErrListingNotActive):
		c.JSON(http.StatusConflict, gin.H{"error": "Listing is not active"})
	case errors.Is(err, listing.ErrPriceOutOfRange),
		errors.Is(err, listing.ErrPriceTooPrecise):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
	case isStateTransitionErr(err):
		c.JSON(http.StatusConflict, gin.H{"error": "Invalid listing state"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func parseMarketplaceSearch(c *gin.Context) (queries.MarketplaceSearch, error) {
	page, err := parsePageRequest(c)
	if err != nil {
		return queries.MarketplaceSearch{}, err
	}

	search := queries.MarketplaceSearch{
		Page: page,
		Sort: queries.SortKey(c.DefaultQuery("sort", string(queries.SortNewest))),
	}

	if raw := c.Query("min_price"); raw != "" {
		min, err := decimal.NewFromString(raw)
		if err != nil {
			return queries.MarketplaceSearch{}, errors.New("invalid min_price")
		}
		search.Price.Min = &min
	}
	if raw := c.Query("max_price"); raw != "" {
		max, err := decimal.NewFromString(raw)
		if err != nil {
			return queries.MarketplaceSearch{}, errors.New("invalid max_price")
		}
		search.Price.Max = &max
	}
	return search, nil
}

func parsePageRequest(c *gin.Context) (queries.PageRequest, error) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil {
		return queries.PageRequest{}, errors.New("invalid page")
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "20"))
	if err != nil {
		return queries.PageRequest{}, errors.New("invalid size")
	}
	return queries.PageRequest{Page: page, Size: size}, nil
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid ID format", nil)
		return uuid.Nil, false
	}
	return id, true
}

