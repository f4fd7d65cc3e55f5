//go:build unit

package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ev-carbon-market/internal/domain/credit"
	"ev-carbon-market/internal/domain/listing"
	"ev-carbon-market/internal/domain/user"
	"ev-carbon-market/internal/handler/api"
	"ev-carbon-market/internal/usecase/commands"
	"ev-carbon-market/internal/usecase/queries"
	commandsmock "ev-carbon-market/tests/mock/commands"
	queriesmock "ev-carbon-market/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ListingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockListingCommands
	mockQueries  *queriesmock.MockListingQueries
	handler      *api.ListingHandler

	userID uuid.UUID
	role   user.Role
}

func (s *ListingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockListingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockListingQueries(s.mockCtrl)
	s.handler = api.NewListingHandler(s.mockCommands, s.mockQueries)

	s.userID = uuid.New()
	s.role = user.RoleEVOwner

	// Stand-in for the auth middleware: inject the identity directly.
	identity := func(c *gin.Context) {
		c.Set("user_id", s.userID)
		c.Set("user_role", s.role)
		c.Next()
	}

	s.router.POST("/credit-listings", identity, s.handler.CreateListing)
	s.router.GET("/credit-listings", identity, s.handler.SearchListings)
	s.router.GET("/credit-listings/:id", identity, s.handler.GetListing)
	s.router.PATCH("/credit-listings/:id/price", identity, s.handler.UpdatePrice)
	s.router.DELETE("/credit-listings/:id", identity, s.handler.CancelListing)
}

func (s *ListingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestListingHandlerSuite(t *testing.T) {
	suite.Run(t, new(ListingHandlerTestSuite))
}

func (s *ListingHandlerTestSuite) doJSON(method, url string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *ListingHandlerTestSuite) TestCreateListing() {
	creditID := uuid.New()
	reqBody := map[string]any{"credit_id": creditID, "price": "19.99"}

	s.Run("success returns created id", func() {
		listingID := uuid.New()
		s.mockCommands.EXPECT().
			CreateFixedListing(gomock.Any(), creditID, s.userID, s.role, gomock.Any()).
			Return(listingID, nil)

		w := s.doJSON(http.MethodPost, "/credit-listings", reqBody)

		s.Equal(http.StatusCreated, w.Code)
		s.Contains(w.Body.String(), listingID.String())
	})

	s.Run("missing price is a bad request", func() {
		w := s.doJSON(http.MethodPost, "/credit-listings", map[string]any{"credit_id": creditID})
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("unparseable price is a bad request", func() {
		w := s.doJSON(http.MethodPost, "/credit-listings",
			map[string]any{"credit_id": creditID, "price": "not-a-number"})
		s.Equal(http.StatusBadRequest, w.Code)
	})

	errCases := []struct {
		name       string
		err        error
		expectCode int
	}{
		{name: "unknown credit", err: commands.ErrCreditNotFound, expectCode: http.StatusNotFound},
		{name: "not the owner", err: commands.ErrNotCreditOwner, expectCode: http.StatusForbidden},
		{name: "role not allowed", err: commands.ErrUnauthorizedOperation, expectCode: http.StatusForbidden},
		{name: "already listed", err: commands.ErrCreditAlreadyListed, expectCode: http.StatusConflict},
		{name: "price out of range", err: listing.ErrPriceOutOfRange, expectCode: http.StatusBadRequest},
		{name: "credit not verified", err: credit.ErrInvalidStateTransition, expectCode: http.StatusConflict},
	}
	for _, tc := range errCases {
		s.Run(tc.name, func() {
			s.mockCommands.EXPECT().
				CreateFixedListing(gomock.Any(), creditID, s.userID, s.role, gomock.Any()).
				Return(uuid.Nil, tc.err)

			w := s.doJSON(http.MethodPost, "/credit-listings", reqBody)
			s.Equal(tc.expectCode, w.Code)
		})
	}
}

func (s *ListingHandlerTestSuite) TestGetListing() {
	view := &queries.ListingView{
		ID:           uuid.New(),
		CreditID:     uuid.New(),
		SellerID:     uuid.New(),
		Type:         "fixed",
		Price:        decimal.RequireFromString("19.99"),
		Status:       "active",
		CO2ReducedKg: decimal.RequireFromString("11"),
		CreditAmount: decimal.RequireFromString("0.011"),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	s.Run("success", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil)

		w := s.doJSON(http.MethodGet, "/credit-listings/"+view.ID.String(), nil)

		s.Equal(http.StatusOK, w.Code)
		s.Contains(w.Body.String(), `"price":"19.99"`)
		s.Contains(w.Body.String(), view.SellerID.String())
	})

	s.Run("not found", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).Return(nil, queries.ErrListingNotFound)

		w := s.doJSON(http.MethodGet, "/credit-listings/"+id.String(), nil)
		s.Equal(http.StatusNotFound, w.Code)
	})

	s.Run("malformed id", func() {
		w := s.doJSON(http.MethodGet, "/credit-listings/not-a-uuid", nil)
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *ListingHandlerTestSuite) TestSearchListings() {
	s.Run("defaults applied", func() {
		s.mockQueries.EXPECT().
			SearchActive(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, search queries.MarketplaceSearch) ([]*queries.ListingView, error) {
				s.Equal(0, search.Page.Page)
				s.Equal(20, search.Page.Size)
				s.Equal(queries.SortNewest, search.Sort)
				s.Nil(search.Price.Min)
				return []*queries.ListingView{}, nil
			})

		w := s.doJSON(http.MethodGet, "/credit-listings", nil)
		s.Equal(http.StatusOK, w.Code)
		s.JSONEq(`[]`, w.Body.String())
	})

	s.Run("price filter parsed", func() {
		s.mockQueries.EXPECT().
			SearchActive(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, search queries.MarketplaceSearch) ([]*queries.ListingView, error) {
				s.Require().NotNil(search.Price.Min)
				s.True(search.Price.Min.Equal(decimal.RequireFromString("5")))
				s.Require().NotNil(search.Price.Max)
				s.True(search.Price.Max.Equal(decimal.RequireFromString("50")))
				s.Equal(queries.SortKey("price_asc"), search.Sort)
				return []*queries.ListingView{}, nil
			})

		w := s.doJSON(http.MethodGet, "/credit-listings?min_price=5&max_price=50&sort=price_asc", nil)
		s.Equal(http.StatusOK, w.Code)
	})

	s.Run("invalid sort key rejected", func() {
		s.mockQueries.EXPECT().
			SearchActive(gomock.Any(), gomock.Any()).
			Return(nil, queries.ErrInvalidSortKey)

		w := s.doJSON(http.MethodGet, "/credit-listings?sort=bogus", nil)
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("invalid min_price rejected before the query runs", func() {
		w := s.doJSON(http.MethodGet, "/credit-listings?min_price=cheap", nil)
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *ListingHandlerTestSuite) TestUpdatePrice() {
	id := uuid.New()
	reqBody := map[string]any{"price": "25.00"}

	s.Run("success", func() {
		s.mockCommands.EXPECT().
			UpdateListingPrice(gomock.Any(), id, s.userID, s.role, gomock.Any()).
			Return(nil)

		w := s.doJSON(http.MethodPatch, "/credit-listings/"+id.String()+"/price", reqBody)
		s.Equal(http.StatusNoContent, w.Code)
	})

	s.Run("listing moved off active", func() {
		s.mockCommands.EXPECT().
			UpdateListingPrice(gomock.Any(), id, s.userID, s.role, gomock.Any()).
			Return(commands.ErrListingNotActive)

		w := s.doJSON(http.MethodPatch, "/credit-listings/"+id.String()+"/price", reqBody)
		s.Equal(http.StatusConflict, w.Code)
	})

	s.Run("someone else's listing", func() {
		s.mockCommands.EXPECT().
			UpdateListingPrice(gomock.Any(), id, s.userID, s.role, gomock.Any()).
			Return(commands.ErrNotListingSeller)

		w := s.doJSON(http.MethodPatch, "/credit-listings/"+id.String()+"/price", reqBody)
		s.Equal(http.StatusForbidden, w.Code)
	})
}

func (s *ListingHandlerTestSuite) TestCancelListing() {
	id := uuid.New()

	s.Run("success", func() {
		s.mockCommands.EXPECT().
			CancelListing(gomock.Any(), id, s.userID, s.role).
			Return(nil)

		w := s.doJSON(http.MethodDelete, "/credit-listings/"+id.String(), nil)
		s.Equal(http.StatusNoContent, w.Code)
	})

	s.Run("unknown listing", func() {
		s.mockCommands.EXPECT().
			CancelListing(gomock.Any(), id, s.userID, s.role).
			Return(commands.ErrListingNotFound)

		w := s.doJSON(http.MethodDelete, "/credit-listings/"+id.String(), nil)
		s.Equal(http.StatusNotFound, w.Code)
	})
}
