package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ev-carbon-market/internal/domain/user"
	"ev-carbon-market/internal/handler/api"
	"ev-carbon-market/internal/handler/middleware"
	"ev-carbon-market/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	listingHandler *api.ListingHandler,
	transactionHandler *api.TransactionHandler,
	verificationHandler *api.VerificationHandler,
	disputeHandler *api.DisputeHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, listingHandler, transactionHandler, verificationHandler, disputeHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	listingHandler *api.ListingHandler,
	transactionHandler *api.TransactionHandler,
	verificationHandler *api.VerificationHandler,
	disputeHandler *api.DisputeHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	apiGroup := engine.Group("/api")
	{
		listings := apiGroup.Group("/credit-listings")
		listings.Use(authMiddleware.RequireAuth())
		{
			addRoutes(listings, []route{
				{Method: http.MethodPost, Path: "", Handler: listingHandler.CreateListing},
				{Method: http.MethodGet, Path: "", Handler: listingHandler.SearchListings},
				{Method: http.MethodGet, Path: "/mine", Handler: listingHandler.ListMyListings},
				{Method: http.MethodGet, Path: "/:id", Handler: listingHandler.GetListing},
				{Method: http.MethodPatch, Path: "/:id/price", Handler: listingHandler.UpdatePrice},
				{Method: http.MethodDelete, Path: "/:id", Handler: listingHandler.CancelListing},
				{Method: http.MethodPost, Path: "/:id/purchase", Handler: transactionHandler.Purchase},
			})
		}

		transactions := apiGroup.Group("/transactions")
		transactions.Use(authMiddleware.RequireAuth())
		{
			addRoutes(transactions, []route{
				{Method: http.MethodGet, Path: "", Handler: transactionHandler.ListMyTransactions},
				{Method: http.MethodGet, Path: "/:id", Handler: transactionHandler.GetTransaction},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: transactionHandler.CancelTransaction},
				{Method: http.MethodGet, Path: "/:id/disputes", Handler: disputeHandler.ListByTransaction},
			})
		}

		journeys := apiGroup.Group("/journeys")
		journeys.Use(authMiddleware.RequireAuth())
		{
			addRoutes(journeys, []route{
				{Method: http.MethodPost, Path: "/:id/approve", Handler: verificationHandler.ApproveJourney,
					Mw: []gin.HandlerFunc{authMiddleware.RequireCapability(user.ActionApproveJourney)}},
				{Method: http.MethodPost, Path: "/:id/reject", Handler: verificationHandler.RejectJourney,
					Mw: []gin.HandlerFunc{authMiddleware.RequireCapability(user.ActionRejectJourney)}},
				{Method: http.MethodPost, Path: "/:id/request-inspection", Handler: verificationHandler.RequestInspection,
					Mw: []gin.HandlerFunc{authMiddleware.RequireCapability(user.ActionRequestInspection)}},
			})
		}

		inspections := apiGroup.Group("/inspections")
		inspections.Use(authMiddleware.RequireAuth())
		{
			addRoutes(inspections, []route{
				{Method: http.MethodPost, Path: "/:id/schedule", Handler: verificationHandler.ScheduleAppointment},
				{Method: http.MethodPost, Path: "/:id/complete", Handler: verificationHandler.CompleteInspection,
					Mw: []gin.HandlerFunc{authMiddleware.RequireCapability(user.ActionCompleteInspection)}},
			})
		}

		disputes := apiGroup.Group("/disputes")
		disputes.Use(authMiddleware.RequireAuth())
		{
			staffOnly := authMiddleware.RequireCapability(user.ActionResolveDispute)
			addRoutes(disputes, []route{
				{Method: http.MethodPost, Path: "", Handler: disputeHandler.CreateDispute},
				{Method: http.MethodGet, Path: "/:id", Handler: disputeHandler.GetDispute},
				{Method: http.MethodPost, Path: "/:id/resolve", Handler: disputeHandler.ResolveDispute, Mw: []gin.HandlerFunc{staffOnly}},
				{Method: http.MethodPost, Path: "/:id/close", Handler: disputeHandler.CloseDispute, Mw: []gin.HandlerFunc{staffOnly}},
				{Method: http.MethodPost, Path: "/:id/reopen", Handler: disputeHandler.ReopenDispute, Mw: []gin.HandlerFunc{staffOnly}},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
