// Package gateway binds the HTTP and websocket surface to the service
// layer. Handlers translate transport concerns only; every rule about
// who may read or write what lives in the services.
package gateway

import (
	"log/slog"
	"net/http"

	"imobiliare/auth"
	"imobiliare/realtime"
	"imobiliare/services"

	"github.com/gin-gonic/gin"
)

type Config struct {
	UploadsDir       string
	ConnectionBuffer int
}

func NewRouter(
	authService services.IAuthService,
	conversations services.IConversationService,
	listings services.IListingService,
	broker *realtime.Broker,
	log *slog.Logger,
	cfg Config,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.Static("/uploads", cfg.UploadsDir)

	NewAuthHandler(authService, log).Register(router.Group("/api/auth"))

	listingHandler := NewListingHandler(listings, cfg.UploadsDir, log)
	listingHandler.RegisterPublic(router.Group("/api/properties"))
	listingHandler.RegisterPrivate(router.Group("/api/properties", auth.Middleware()))
	listingHandler.RegisterOwner(router.Group("/api/my/properties", auth.Middleware()))

	NewChatHandler(conversations, broker, log).Register(router.Group("/api/chat", auth.Middleware()))

	socket := NewSocketHandler(conversations, broker, log, cfg.ConnectionBuffer)
	router.GET("/ws", socket.Handle)

	return router
}
