package delivery

import (
	"errors"
	"net/http"
	"strings"

	emaildomain "mailrag-backend/internal/email/domain"
	emaildto "mailrag-backend/internal/email/dto"
	"mailrag-backend/internal/email/usecase"

	"github.com/gin-gonic/gin"
)

type EmailHandler struct {
	emailUsecase usecase.EmailUsecase
}

func NewEmailHandler(emailUsecase usecase.EmailUsecase) *EmailHandler {
	return &EmailHandler{
		emailUsecase: emailUsecase,
	}
}

// FetchEmails pulls recent messages for one or more users and stores each
// user's corpus. Users that fail are reported individually so one broken
// account does not abort the batch.
func (h *EmailHandler) FetchEmails(c *gin.Context) {
	var req emaildto.FetchEmailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fetched := make(map[string]int)
	failures := make(map[string]string)
	for _, userEmail := range req.UserEmails {
		userEmail = strings.TrimSpace(userEmail)
		if userEmail == "" {
			continue
		}
		count, err := h.emailUsecase.FetchAndStoreEmails(c.Request.Context(), userEmail, req.MaxResults)
		if err != nil {
			failures[userEmail] = err.Error()
			continue
		}
		fetched[userEmail] = count
	}

	status := http.StatusOK
	if len(fetched) == 0 && len(failures) > 0 {
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{"fetched": fetched, "failures": failures})
}

// GetEmails returns the cached corpus for a user.
func (h *EmailHandler) GetEmails(c *gin.Context) {
	userEmail := c.Query("user")
	if userEmail == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user query parameter is required"})
		return
	}

	corpus, err := h.emailUsecase.GetEmails(c.Request.Context(), userEmail)
	if err != nil {
		if errors.Is(err, emaildomain.ErrStoreUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, emaildto.EmailsResponse{Emails: corpus, Total: len(corpus)})
}

// AskQuestion answers a free-text question grounded in the user's cached
// emails. A degraded answer (generation failure) still returns 200; only
// store and embedding failures surface as errors.
func (h *EmailHandler) AskQuestion(c *gin.Context) {
	var req emaildto.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answered, err := h.emailUsecase.AnswerQuestion(c.Request.Context(), req.UserEmail, req.Question)
	if err != nil {
		if errors.Is(err, emaildomain.ErrStoreUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, answered)
}
