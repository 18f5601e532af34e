package gateway

import (
	"log/slog"
	"net/http"

	"imobiliare/auth"
	"imobiliare/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth services.IAuthService
	log  *slog.Logger
}

func NewAuthHandler(auth services.IAuthService, log *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, log: log}
}

func (h *AuthHandler) Register(group *gin.RouterGroup) {
	group.POST("/register", h.register)
	group.POST("/login", h.login)
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "name, email and password are required"})
		return
	}

	token, err := h.auth.Register(req.Name, req.Email, req.Phone, req.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}

	h.log.Info("User registered", "email", req.Email)
	c.JSON(http.StatusCreated, tokenResponse(token))
}

func (h *AuthHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	token, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, tokenResponse(token))
}

// tokenResponse echoes the user id next to the token so clients do not
// have to decode the JWT themselves.
func tokenResponse(token services.Token) gin.H {
	resp := gin.H{"token": token}
	if claims, err := auth.ValidateToken(string(token)); err == nil {
		resp["user_id"] = claims.UserID
	}
	return resp
}
