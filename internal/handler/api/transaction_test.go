//go:build unit

package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ev-carbon-market/internal/domain/user"
	"ev-carbon-market/internal/handler/api"
	"ev-carbon-market/internal/usecase/commands"
	"ev-carbon-market/internal/usecase/queries"
	"ev-carbon-market/internal/usecase/shared"
	commandsmock "ev-carbon-market/tests/mock/commands"
	queriesmock "ev-carbon-market/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type TransactionHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockTransactionCommands
	mockQueries  *queriesmock.MockTransactionQueries
	handler      *api.TransactionHandler

	userID uuid.UUID
	role   user.Role
}

func (s *TransactionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockTransactionCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockTransactionQueries(s.mockCtrl)
	s.handler = api.NewTransactionHandler(s.mockCommands, s.mockQueries)

	s.userID = uuid.New()
	s.role = user.RoleBuyer

	identity := func(c *gin.Context) {
		c.Set("user_id", s.userID)
		c.Set("user_role", s.role)
		c.Next()
	}

	s.router.POST("/credit-listings/:id/purchase", identity, s.handler.Purchase)
	s.router.GET("/transactions/:id", identity, s.handler.GetTransaction)
	s.router.GET("/transactions", identity, s.handler.ListMyTransactions)
	s.router.POST("/transactions/:id/cancel", identity, s.handler.CancelTransaction)
}

func (s *TransactionHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestTransactionHandlerSuite(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}

func (s *TransactionHandlerTestSuite) do(method, url string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *TransactionHandlerTestSuite) TestPurchase() {
	listingID := uuid.New()
	url := "/credit-listings/" + listingID.String() + "/purchase"

	s.Run("settled purchase", func() {
		result := &commands.PurchaseResult{TransactionID: uuid.New(), Completed: true}
		s.mockCommands.EXPECT().
			InitiatePurchase(gomock.Any(), listingID, s.userID, s.role).
			Return(result, nil)

		w := s.do(http.MethodPost, url)

		s.Equal(http.StatusCreated, w.Code)
		s.Contains(w.Body.String(), result.TransactionID.String())
		s.Contains(w.Body.String(), `"completed":true`)
	})

	s.Run("declined payment returns 402 with the cancelled transaction id", func() {
		result := &commands.PurchaseResult{TransactionID: uuid.New(), Completed: false}
		s.mockCommands.EXPECT().
			InitiatePurchase(gomock.Any(), listingID, s.userID, s.role).
			Return(result, shared.ErrPaymentDeclined)

		w := s.do(http.MethodPost, url)

		s.Equal(http.StatusPaymentRequired, w.Code)
		s.Contains(w.Body.String(), result.TransactionID.String())
	})

	errCases := []struct {
		name       string
		err        error
		expectCode int
	}{
		{name: "unknown listing", err: commands.ErrListingNotFound, expectCode: http.StatusNotFound},
		{name: "role may not purchase", err: commands.ErrUnauthorizedOperation, expectCode: http.StatusForbidden},
		{name: "own listing", err: commands.ErrBuyerIsSeller, expectCode: http.StatusBadRequest},
		{name: "not fixed price", err: commands.ErrListingNotFixedPrice, expectCode: http.StatusBadRequest},
		{name: "listing not active", err: commands.ErrListingNotActive, expectCode: http.StatusConflict},
		{name: "lost the race to another buyer", err: commands.ErrListingUnavailable, expectCode: http.StatusConflict},
	}
	for _, tc := range errCases {
		s.Run(tc.name, func() {
			s.mockCommands.EXPECT().
				InitiatePurchase(gomock.Any(), listingID, s.userID, s.role).
				Return(nil, tc.err)

			w := s.do(http.MethodPost, url)
			s.Equal(tc.expectCode, w.Code)
		})
	}

	s.Run("malformed listing id", func() {
		w := s.do(http.MethodPost, "/credit-listings/nope/purchase")
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *TransactionHandlerTestSuite) TestGetTransaction() {
	view := &queries.TransactionView{
		ID:        uuid.New(),
		CreditID:  uuid.New(),
		ListingID: uuid.New(),
		BuyerID:   uuid.New(),
		SellerID:  uuid.New(),
		Amount:    decimal.RequireFromString("42.5"),
		Status:    "completed",
		CreatedAt: time.Now(),
	}

	s.Run("success", func() {
		s.mockQueries.EXPECT().
			GetByID(gomock.Any(), s.userID, s.role, view.ID).
			Return(view, nil)

		w := s.do(http.MethodGet, "/transactions/"+view.ID.String())

		s.Equal(http.StatusOK, w.Code)
		s.Contains(w.Body.String(), `"amount":"42.50"`)
	})

	s.Run("not a party", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().
			GetByID(gomock.Any(), s.userID, s.role, id).
			Return(nil, queries.ErrTransactionForbidden)

		w := s.do(http.MethodGet, "/transactions/"+id.String())
		s.Equal(http.StatusForbidden, w.Code)
	})

	s.Run("not found", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().
			GetByID(gomock.Any(), s.userID, s.role, id).
			Return(nil, queries.ErrTransactionNotFound)

		w := s.do(http.MethodGet, "/transactions/"+id.String())
		s.Equal(http.StatusNotFound, w.Code)
	})
}

func (s *TransactionHandlerTestSuite) TestListMyTransactions() {
	s.mockQueries.EXPECT().
		ListByUser(gomock.Any(), s.userID, queries.PageRequest{Page: 0, Size: 20}).
		Return([]*queries.TransactionView{}, nil)

	w := s.do(http.MethodGet, "/transactions")

	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`[]`, w.Body.String())
}

func (s *TransactionHandlerTestSuite) TestCancelTransaction() {
	id := uuid.New()
	url := "/transactions/" + id.String() + "/cancel"

	s.Run("success", func() {
		s.mockCommands.EXPECT().
			CancelTransaction(gomock.Any(), id, s.userID, s.role).
			Return(nil)

		w := s.do(http.MethodPost, url)
		s.Equal(http.StatusNoContent, w.Code)
	})

	errCases := []struct {
		name       string
		err        error
		expectCode int
	}{
		{name: "unknown transaction", err: commands.ErrTransactionNotFound, expectCode: http.StatusNotFound},
		{name: "uninvolved caller", err: commands.ErrTransactionNotParty, expectCode: http.StatusForbidden},
		{name: "already settled", err: commands.ErrTransactionNotCancelled, expectCode: http.StatusConflict},
	}
	for _, tc := range errCases {
		s.Run(tc.name, func() {
			s.mockCommands.EXPECT().
				CancelTransaction(gomock.Any(), id, s.userID, s.role).
				Return(tc.err)

			w := s.do(http.MethodPost, url)
			s.Equal(tc.expectCode, w.Code)
		})
	}
}
