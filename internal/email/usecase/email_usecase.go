package usecase

import (
	"context"
	"fmt"

	authrepo "mailrag-backend/internal/auth/repository"
	emaildomain "mailrag-backend/internal/email/domain"
	emailrepo "mailrag-backend/internal/email/repository"
	"mailrag-backend/pkg/ai"
	"mailrag-backend/pkg/config"
	"mailrag-backend/pkg/embed"
)

// emailUsecase implements EmailUsecase
type emailUsecase struct {
	corpusRepo    emailrepo.CorpusRepository
	userRepo      authrepo.UserRepository
	mailProvider  MailProvider
	imapProvider  ImapProvider
	embedder      embed.Embedder
	answerService ai.AnswerService
	config        *config.Config
}

// NewEmailUsecase wires the pipeline's collaborators. All external services
// are injected so tests can substitute stubs.
func NewEmailUsecase(
	corpusRepo emailrepo.CorpusRepository,
	userRepo authrepo.UserRepository,
	mailProvider MailProvider,
	imapProvider ImapProvider,
	embedder embed.Embedder,
	answerService ai.AnswerService,
	cfg *config.Config,
) EmailUsecase {
	return &emailUsecase{
		corpusRepo:    corpusRepo,
		userRepo:      userRepo,
		mailProvider:  mailProvider,
		imapProvider:  imapProvider,
		embedder:      embedder,
		answerService: answerService,
		config:        cfg,
	}
}

// FetchAndStoreEmails pulls recent messages for the user via their provider
// and replaces the cached corpus. With CorpusMergeMode "merge-by-id" the
// fetch is merged into the existing snapshot instead, keyed by message ID.
func (u *emailUsecase) FetchAndStoreEmails(ctx context.Context, userEmail string, maxResults int) (int, error) {
	user, err := u.userRepo.FindByEmail(userEmail)
	if err != nil {
		return 0, fmt.Errorf("look up user %s: %w", userEmail, err)
	}
	if user == nil {
		return 0, fmt.Errorf("no credentials found for %s", userEmail)
	}

	if maxResults <= 0 {
		maxResults = u.config.FetchMaxResults
	}

	var fetched []emaildomain.Email
	if user.Provider == "imap" {
		if u.imapProvider == nil {
			return 0, fmt.Errorf("imap provider not available")
		}
		fetched, err = u.imapProvider.FetchRecent(ctx, user.ImapServer, user.ImapPort, user.Email, user.ImapPassword, maxResults)
	} else {
		if u.mailProvider == nil {
			return 0, fmt.Errorf("mail provider not available")
		}
		fetched, err = u.mailProvider.FetchRecent(ctx, user.AccessToken, user.RefreshToken, maxResults, u.makeTokenUpdateCallback(user.ID))
	}
	if err != nil {
		return 0, fmt.Errorf("fetch emails for %s: %w", userEmail, err)
	}

	corpus := emaildomain.Corpus(fetched)
	if u.config.CorpusMergeMode == "merge-by-id" {
		corpus, err = u.mergeWithStored(ctx, userEmail, fetched)
		if err != nil {
			return 0, err
		}
	}

	if err := u.corpusRepo.Save(ctx, userEmail, corpus); err != nil {
		return 0, err
	}
	return len(corpus), nil
}

// mergeWithStored prepends the fresh fetch to previously stored messages,
// dropping stored entries whose ID reappears in the fetch.
func (u *emailUsecase) mergeWithStored(ctx context.Context, userEmail string, fetched []emaildomain.Email) (emaildomain.Corpus, error) {
	stored, err := u.corpusRepo.Load(ctx, userEmail)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(fetched))
	for _, email := range fetched {
		seen[email.ID] = true
	}

	merged := make(emaildomain.Corpus, 0, len(fetched)+len(stored))
	merged = append(merged, fetched...)
	for _, email := range stored {
		if !seen[email.ID] {
			merged = append(merged, email)
		}
	}
	return merged, nil
}

func (u *emailUsecase) GetEmails(ctx context.Context, userEmail string) (emaildomain.Corpus, error) {
	return u.corpusRepo.Load(ctx, userEmail)
}

func (u *emailUsecase) makeTokenUpdateCallback(userID string) emaildomain.TokenUpdateFunc {
	return func(accessToken, refreshToken string) error {
		return u.userRepo.UpdateTokens(userID, accessToken, refreshToken)
	}
}
