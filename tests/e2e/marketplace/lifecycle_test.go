//go:build e2e

package marketplace

import (
	"context"
	"net/http"
	"testing"
	"time"

	"ev-carbon-market/internal/domain/user"
	"ev-carbon-market/internal/handler/dto/response"
	"ev-carbon-market/tests/common/dbtest"
	"ev-carbon-market/tests/common/helper"
	"ev-carbon-market/tests/e2e"
	e2ehelper "ev-carbon-market/tests/e2e/common/helper"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type MarketplaceLifecycleSuite struct {
	e2e.SharedSuite
	jwtHelper *e2ehelper.JWTTestHelper
}

func (s *MarketplaceLifecycleSuite) SetupSuite() {
	s.SetupSharedSuite(s.T())
	s.jwtHelper = e2ehelper.NewJWTTestHelper(s.Config.JWT)
}

type actors struct {
	ownerID, buyerID, cvaID          uuid.UUID
	ownerToken, buyerToken, cvaToken string
}

func (s *MarketplaceLifecycleSuite) seedActors() actors {
	t := s.T()
	a := actors{
		ownerID: dbtest.CreateTestUser(t, s.DB, "owner@example.com", "ev_owner"),
		buyerID: dbtest.CreateTestUser(t, s.DB, "buyer@example.com", "buyer"),
		cvaID:   dbtest.CreateTestUser(t, s.DB, "cva@example.com", "cva"),
	}
	a.ownerToken = s.jwtHelper.GenerateToken(t, a.ownerID, user.RoleEVOwner)
	a.buyerToken = s.jwtHelper.GenerateToken(t, a.buyerID, user.RoleBuyer)
	a.cvaToken = s.jwtHelper.GenerateToken(t, a.cvaID, user.RoleCVA)
	return a
}

func (s *MarketplaceLifecycleSuite) creditStatus(creditID uuid.UUID) string {
	var status string
	err := s.DB.QueryRow(context.Background(),
		"SELECT status FROM carbon_credits WHERE id = $1", creditID).Scan(&status)
	s.Require().NoError(err)
	return status
}

func (s *MarketplaceLifecycleSuite) walletBalance(userID uuid.UUID) string {
	var balance string
	err := s.DB.QueryRow(context.Background(),
		"SELECT balance::text FROM wallets WHERE user_id = $1", userID).Scan(&balance)
	s.Require().NoError(err)
	return balance
}

func (s *MarketplaceLifecycleSuite) TestCreditLifecycle() {
	s.Run("verify, list, purchase and refund", func() {
		t := s.T()
		a := s.seedActors()
		journeyID, creditID := dbtest.CreateTestJourney(t, s.DB, a.ownerID)

		// CVA verifies the journey; the credit is promoted and the owner paid.
		w := helper.PerformRequest(t, s.Router, http.MethodPost,
			"/api/journeys/"+journeyID.String()+"/approve", nil, a.cvaToken)
		s.Require().Equal(http.StatusNoContent, w.Code, w.Body.String())
		s.Equal("verified", s.creditStatus(creditID))
		s.Equal("0.011000", s.walletBalance(a.ownerID))

		// Owner puts the credit on the market.
		w = helper.PerformRequest(t, s.Router, http.MethodPost, "/api/credit-listings",
			gin.H{"credit_id": creditID, "price": "25.00"}, a.ownerToken)
		s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
		var created response.CreatedResponse
		helper.AssertSuccessResponse(t, w, http.StatusCreated, &created)
		s.Equal("listed", s.creditStatus(creditID))

		// A second listing for the same credit is rejected.
		w = helper.PerformRequest(t, s.Router, http.MethodPost, "/api/credit-listings",
			gin.H{"credit_id": creditID, "price": "30.00"}, a.ownerToken)
		helper.AssertErrorResponse(t, w, http.StatusConflict, "already has an open listing")

		// Buyer purchases at the asked price.
		w = helper.PerformRequest(t, s.Router, http.MethodPost,
			"/api/credit-listings/"+created.ID.String()+"/purchase", nil, a.buyerToken)
		s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
		var purchase response.PurchaseResponse
		helper.AssertSuccessResponse(t, w, http.StatusCreated, &purchase)
		s.True(purchase.Completed)
		s.Equal("sold", s.creditStatus(creditID))

		// Buyer disputes; the transaction freezes.
		w = helper.PerformRequest(t, s.Router, http.MethodPost, "/api/disputes",
			gin.H{"transaction_id": purchase.TransactionID, "reason": "credit already retired"}, a.buyerToken)
		s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
		var dispute response.CreatedResponse
		helper.AssertSuccessResponse(t, w, http.StatusCreated, &dispute)

		w = helper.PerformRequest(t, s.Router, http.MethodGet,
			"/api/transactions/"+purchase.TransactionID.String(), nil, a.buyerToken)
		s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
		var txn response.TransactionResponse
		helper.AssertSuccessResponse(t, w, http.StatusOK, &txn)
		s.Equal("disputed", txn.Status)

		// CVA rules a refund; the sale is rolled back.
		w = helper.PerformRequest(t, s.Router, http.MethodPost,
			"/api/disputes/"+dispute.ID.String()+"/resolve",
			gin.H{"resolution": "Refund the buyer, the credit was double-counted"}, a.cvaToken)
		s.Require().Equal(http.StatusNoContent, w.Code, w.Body.String())
		s.Equal("listed", s.creditStatus(creditID))

		w = helper.PerformRequest(t, s.Router, http.MethodGet,
			"/api/credit-listings/"+created.ID.String(), nil, a.buyerToken)
		s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
		var listing response.ListingResponse
		helper.AssertSuccessResponse(t, w, http.StatusOK, &listing)
		s.Equal("active", listing.Status)
	})

	s.Run("physical inspection path", func() {
		t := s.T()
		a := s.seedActors()
		journeyID, creditID := dbtest.CreateTestJourney(t, s.DB, a.ownerID)

		var stationID uuid.UUID
		err := s.DB.QueryRow(context.Background(),
			"SELECT id FROM verification_stations WHERE active LIMIT 1").Scan(&stationID)
		s.Require().NoError(err)

		// CVA escalates to a physical check.
		w := helper.PerformRequest(t, s.Router, http.MethodPost,
			"/api/journeys/"+journeyID.String()+"/request-inspection", nil, a.cvaToken)
		s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
		var appt response.CreatedResponse
		helper.AssertSuccessResponse(t, w, http.StatusCreated, &appt)

		// Approving while an inspection is pending conflicts.
		w = helper.PerformRequest(t, s.Router, http.MethodPost,
			"/api/journeys/"+journeyID.String()+"/approve", nil, a.cvaToken)
		helper.AssertErrorResponse(t, w, http.StatusConflict, "not in a reviewable state")

		// Owner books a slot at an active station.
		w = helper.PerformRequest(t, s.Router, http.MethodPost,
			"/api/inspections/"+appt.ID.String()+"/schedule",
			gin.H{
				"station_id":       stationID,
				"appointment_time": time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339),
			}, a.ownerToken)
		s.Require().Equal(http.StatusNoContent, w.Code, w.Body.String())

		// CVA signs off; the journey settles like a direct approval.
		w = helper.PerformRequest(t, s.Router, http.MethodPost,
			"/api/inspections/"+appt.ID.String()+"/complete",
			gin.H{"approved": true, "notes": "odometer matches the log"}, a.cvaToken)
		s.Require().Equal(http.StatusNoContent, w.Code, w.Body.String())
		s.Equal("verified", s.creditStatus(creditID))
		s.Equal("0.011000", s.walletBalance(a.ownerID))
	})

	s.Run("authorization boundaries", func() {
		t := s.T()
		a := s.seedActors()
		journeyID, _ := dbtest.CreateTestJourney(t, s.DB, a.ownerID)

		// Owners cannot verify their own journeys.
		w := helper.PerformRequest(t, s.Router, http.MethodPost,
			"/api/journeys/"+journeyID.String()+"/approve", nil, a.ownerToken)
		helper.AssertErrorResponse(t, w, http.StatusForbidden, "Insufficient permissions")

		// No token at all.
		w = helper.PerformRequest(t, s.Router, http.MethodPost,
			"/api/journeys/"+journeyID.String()+"/approve", nil, "")
		s.Equal(http.StatusUnauthorized, w.Code, w.Body.String())

		// Expired token.
		expired := s.jwtHelper.CreateExpiredToken(t, a.cvaID, user.RoleCVA)
		w = helper.PerformRequest(t, s.Router, http.MethodPost,
			"/api/journeys/"+journeyID.String()+"/approve", nil, expired)
		s.Equal(http.StatusUnauthorized, w.Code, w.Body.String())
	})
}

func TestMarketplaceLifecycleSuite(t *testing.T) {
	suite.Run(t, new(MarketplaceLifecycleSuite))
}
