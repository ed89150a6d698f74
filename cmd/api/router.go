package api

import (
	"net/http"

	emailDelivery "mailrag-backend/internal/email/delivery"
	emailUsecase "mailrag-backend/internal/email/usecase"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, emailUc emailUsecase.EmailUsecase) {
	emailHandler := emailDelivery.NewEmailHandler(emailUc)

	api := r.Group("/api")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Email routes
		emails := api.Group("/emails")
		{
			emails.POST("/fetch", emailHandler.FetchEmails)
			emails.GET("", emailHandler.GetEmails)
		}

		// Grounded question answering over cached emails
		api.POST("/query", emailHandler.AskQuestion)
	}
}
