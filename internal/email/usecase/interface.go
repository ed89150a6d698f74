package usecase

import (
	"context"

	emaildomain "mailrag-backend/internal/email/domain"
	emaildto "mailrag-backend/internal/email/dto"
)

// MailProvider fetches recent messages for an OAuth-authenticated account.
type MailProvider interface {
	FetchRecent(ctx context.Context, accessToken, refreshToken string, maxResults int, onTokenRefresh emaildomain.TokenUpdateFunc) ([]emaildomain.Email, error)
}

// ImapProvider fetches recent messages for a password-authenticated account.
type ImapProvider interface {
	FetchRecent(ctx context.Context, server string, port int, username, password string, maxResults int) ([]emaildomain.Email, error)
}

// EmailUsecase is the application core: ingesting mail into the per-user
// corpus cache and answering questions grounded in it.
type EmailUsecase interface {
	// FetchAndStoreEmails pulls recent messages for the user and stores
	// them in the corpus cache. Returns the stored message count.
	FetchAndStoreEmails(ctx context.Context, userEmail string, maxResults int) (int, error)

	// GetEmails returns the cached corpus for the user.
	GetEmails(ctx context.Context, userEmail string) (emaildomain.Corpus, error)

	// AnswerQuestion runs the retrieval-augmented pipeline for one question.
	AnswerQuestion(ctx context.Context, userEmail, question string) (*emaildto.AnsweredQuery, error)
}
