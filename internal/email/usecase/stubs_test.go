package usecase

import (
	"context"
	"errors"

	authdomain "mailrag-backend/internal/auth/domain"
	emaildomain "mailrag-backend/internal/email/domain"
)

// fakeCorpusRepo is an in-memory CorpusRepository with an optional injected
// failure standing in for an unreachable store.
type fakeCorpusRepo struct {
	corpora     map[string]emaildomain.Corpus
	unavailable bool
	loadCalls   int
	saveCalls   int
}

func newFakeCorpusRepo() *fakeCorpusRepo {
	return &fakeCorpusRepo{corpora: make(map[string]emaildomain.Corpus)}
}

func (f *fakeCorpusRepo) Load(ctx context.Context, userEmail string) (emaildomain.Corpus, error) {
	f.loadCalls++
	if f.unavailable {
		return nil, emaildomain.ErrStoreUnavailable
	}
	corpus, ok := f.corpora[userEmail]
	if !ok {
		return emaildomain.Corpus{}, nil
	}
	return corpus, nil
}

func (f *fakeCorpusRepo) Save(ctx context.Context, userEmail string, corpus emaildomain.Corpus) error {
	f.saveCalls++
	if f.unavailable {
		return emaildomain.ErrStoreUnavailable
	}
	f.corpora[userEmail] = corpus
	return nil
}

// stubEmbedder derives a deterministic vector from each text, so identical
// texts always embed identically. Vectors come from an override map when
// provided.
type stubEmbedder struct {
	vectors    map[string][]float32
	docCalls   int
	queryCalls int
}

func (s *stubEmbedder) embedText(text string) []float32 {
	if v, ok := s.vectors[text]; ok {
		return v
	}
	// Cheap deterministic hash spread over 4 dimensions.
	v := make([]float32, 4)
	for i, ch := range text {
		v[i%4] += float32(ch % 31)
	}
	return v
}

func (s *stubEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	s.docCalls++
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = s.embedText(text)
	}
	return vectors, nil
}

func (s *stubEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	s.queryCalls++
	return s.embedText(text), nil
}

// stubAnswerService returns a canned answer or a configured error.
type stubAnswerService struct {
	answer string
	err    error
	calls  int

	lastSystemPrompt string
	lastUserPrompt   string
}

func (s *stubAnswerService) GenerateAnswer(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	s.calls++
	s.lastSystemPrompt = systemPrompt
	s.lastUserPrompt = userPrompt
	if s.err != nil {
		return "", s.err
	}
	return s.answer, nil
}

// stubMailProvider returns a fixed batch of messages.
type stubMailProvider struct {
	emails []emaildomain.Email
	err    error
	calls  int
}

func (s *stubMailProvider) FetchRecent(ctx context.Context, accessToken, refreshToken string, maxResults int, onTokenRefresh emaildomain.TokenUpdateFunc) ([]emaildomain.Email, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.emails, nil
}

// fakeUserRepo holds users in memory.
type fakeUserRepo struct {
	users map[string]*authdomain.User
}

func newFakeUserRepo(users ...*authdomain.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*authdomain.User)}
	for _, u := range users {
		r.users[u.Email] = u
	}
	return r
}

func (f *fakeUserRepo) Create(user *authdomain.User) error {
	f.users[user.Email] = user
	return nil
}

func (f *fakeUserRepo) FindByEmail(email string) (*authdomain.User, error) {
	return f.users[email], nil
}

func (f *fakeUserRepo) FindByID(id string) (*authdomain.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(user *authdomain.User) error {
	f.users[user.Email] = user
	return nil
}

func (f *fakeUserRepo) UpdateTokens(userID, accessToken, refreshToken string) error {
	for _, u := range f.users {
		if u.ID == userID {
			u.AccessToken = accessToken
			if refreshToken != "" {
				u.RefreshToken = refreshToken
			}
			return nil
		}
	}
	return errors.New("user not found")
}
