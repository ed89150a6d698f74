package api

import (
	"net/http"

	emailUsecase "mailrag-backend/internal/email/usecase"
	"mailrag-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	emailUsecase emailUsecase.EmailUsecase
	config       *config.Config
}

func NewHandler(emailUc emailUsecase.EmailUsecase, cfg *config.Config) *Handler {
	return &Handler{
		emailUsecase: emailUc,
		config:       cfg,
	}
}

func (h *Handler) Start(addr string) error {
	r := gin.Default()
	gin.SetMode(gin.ReleaseMode)

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h.emailUsecase)

	return r.Run(addr)
}
