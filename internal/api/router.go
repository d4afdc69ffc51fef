package api

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/quoteflow/quote-service/internal/api/v1"
	"github.com/quoteflow/quote-service/internal/auth"
	"github.com/quoteflow/quote-service/internal/logger"
	"github.com/quoteflow/quote-service/internal/rest/middleware"
	"github.com/quoteflow/quote-service/internal/service"
)

type Handlers struct {
	Health    *v1.HealthHandler
	Quote     *v1.QuoteHandler
	Client    *v1.ClientHandler
	Profile   *v1.ProfileHandler
	Dashboard *v1.DashboardHandler
	Note      *v1.NoteHandler
	Template  *v1.TemplateHandler
	APIKey    *v1.APIKeyHandler
	Team      *v1.TeamHandler
	Billing   *v1.BillingHandler
	Public    *v1.PublicHandler
	User      *v1.UserHandler
}

func NewRouter(
	handlers Handlers,
	authProvider auth.Provider,
	apiKeys service.APIKeyService,
	log *logger.Logger,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.CORSMiddleware)
	router.Use(middleware.ErrorHandler(log))

	router.GET("/health", handlers.Health.Health)

	// Stripe calls this; authenticated by signature, not by session.
	router.POST("/webhooks/stripe", handlers.Billing.HandleWebhook)

	// Client-facing quote pages, keyed by share token.
	public := router.Group("/q")
	{
		public.GET("/:token", handlers.Public.GetQuote)
		public.POST("/:token/accept", handlers.Public.AcceptQuote)
		public.GET("/:token/notes", handlers.Public.ListNotes)
		public.POST("/:token/notes", handlers.Public.CreateNote)
	}

	private := router.Group("")
	private.Use(middleware.AuthenticateMiddleware(authProvider, apiKeys, log))
	registerPrivateRoutes(private, handlers)

	return router
}

func registerPrivateRoutes(router *gin.RouterGroup, handlers Handlers) {
	dashboard := router.Group("/dashboard")
	{
		dashboard.GET("", handlers.Dashboard.GetStats)
		dashboard.GET("/unread-messages", handlers.Dashboard.GetUnreadMessages)
	}

	profile := router.Group("/profile")
	{
		profile.GET("", handlers.Profile.GetProfile)
		profile.PUT("", handlers.Profile.UpdateProfile)
	}

	clients := router.Group("/clients")
	{
		clients.GET("", handlers.Client.ListClients)
		clients.POST("", handlers.Client.CreateClient)
		clients.GET("/:id", handlers.Client.GetClient)
		clients.PUT("/:id", handlers.Client.UpdateClient)
		clients.DELETE("/:id", handlers.Client.DeleteClient)
	}

	quotes := router.Group("/quotes")
	{
		quotes.GET("", handlers.Quote.ListQuotes)
		quotes.POST("", handlers.Quote.CreateQuote)
		// registered before /:id so "export" is not captured as an id
		quotes.GET("/export", handlers.Quote.ExportCSV)
		quotes.GET("/:id", handlers.Quote.GetQuote)
		quotes.PATCH("/:id", handlers.Quote.UpdateQuote)
		quotes.DELETE("/:id", handlers.Quote.DeleteQuote)
		quotes.POST("/:id/duplicate", handlers.Quote.DuplicateQuote)
		quotes.POST("/:id/mark-paid", handlers.Quote.MarkPaid)
		quotes.POST("/:id/send", handlers.Quote.SendQuote)
		quotes.GET("/:id/notes", handlers.Note.ListNotes)
		quotes.POST("/:id/notes", handlers.Note.CreateNote)
		quotes.PATCH("/:id/notes/read", handlers.Note.MarkRead)
	}

	templates := router.Group("/templates")
	{
		templates.GET("", handlers.Template.ListTemplates)
		templates.POST("", handlers.Template.CreateTemplate)
		templates.POST("/from-quote", handlers.Template.CreateFromQuote)
		templates.GET("/:id", handlers.Template.GetTemplate)
		templates.DELETE("/:id", handlers.Template.DeleteTemplate)
	}

	apiKeys := router.Group("/api-keys")
	{
		apiKeys.GET("", handlers.APIKey.ListAPIKeys)
		apiKeys.POST("", handlers.APIKey.CreateAPIKey)
		apiKeys.DELETE("/:id", handlers.APIKey.DeleteAPIKey)
	}

	teams := router.Group("/teams")
	{
		teams.GET("", handlers.Team.GetTeam)
		teams.GET("/:id/members", handlers.Team.ListMembers)
		teams.POST("/:id/members", handlers.Team.InviteMember)
		teams.DELETE("/:id/members/:uid", handlers.Team.RemoveMember)
	}

	billing := router.Group("/billing")
	{
		billing.POST("/create-checkout-session", handlers.Billing.CreateCheckoutSession)
	}

	router.DELETE("/user", handlers.User.DeleteAccount)
}
