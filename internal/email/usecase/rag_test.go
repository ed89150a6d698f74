package usecase

import (
	"context"
	"errors"
	"testing"

	emaildomain "mailrag-backend/internal/email/domain"
	"mailrag-backend/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		RetrievalTopK:   3,
		FetchMaxResults: 10,
		CorpusMergeMode: "overwrite",
	}
}

func newTestUsecase(repo *fakeCorpusRepo, embedder *stubEmbedder, answers *stubAnswerService) EmailUsecase {
	return NewEmailUsecase(repo, newFakeUserRepo(), nil, nil, embedder, answers, testConfig())
}

func TestAnswerQuestionEmptyCorpusShortCircuits(t *testing.T) {
	repo := newFakeCorpusRepo()
	embedder := &stubEmbedder{}
	answers := &stubAnswerService{answer: "should not be called"}
	uc := newTestUsecase(repo, embedder, answers)

	result, err := uc.AnswerQuestion(context.Background(), "user@example.com", "when is my interview?")
	require.NoError(t, err)

	assert.Equal(t, "No emails available for this user.", result.Answer)
	assert.Empty(t, result.Context)

	// No embedding or generation spend for a user with no cached mail.
	assert.Equal(t, 0, embedder.docCalls)
	assert.Equal(t, 0, embedder.queryCalls)
	assert.Equal(t, 0, answers.calls)
}

func TestAnswerQuestionStoreUnavailableSurfaces(t *testing.T) {
	repo := newFakeCorpusRepo()
	repo.unavailable = true
	uc := newTestUsecase(repo, &stubEmbedder{}, &stubAnswerService{})

	_, err := uc.AnswerQuestion(context.Background(), "user@example.com", "anything")
	require.Error(t, err)
	assert.ErrorIs(t, err, emaildomain.ErrStoreUnavailable)
}

func TestAnswerQuestionIdenticalTextRetrievedAtZeroDistance(t *testing.T) {
	email := emaildomain.Email{ID: "m1", Subject: "Lunch", Snippet: "Lunch on Tuesday", Body: "Lunch at noon on Tuesday."}
	repo := newFakeCorpusRepo()
	repo.corpora["user@example.com"] = emaildomain.Corpus{email}

	embedder := &stubEmbedder{}
	answers := &stubAnswerService{answer: "Lunch is on Tuesday at noon."}
	uc := newTestUsecase(repo, embedder, answers)

	// Query text identical to the rendered document embeds identically.
	question := RenderDocument(email)
	result, err := uc.AnswerQuestion(context.Background(), "user@example.com", question)
	require.NoError(t, err)

	require.Len(t, result.Context, 1)
	assert.Equal(t, "m1", result.Context[0].EmailID)
	assert.Equal(t, 0.0, result.Context[0].Distance)
	assert.Equal(t, "Lunch is on Tuesday at noon.", result.Answer)
}

func TestAnswerQuestionRanksByDistance(t *testing.T) {
	corpus := emaildomain.Corpus{
		{ID: "far", Subject: "far"},
		{ID: "near", Subject: "near"},
		{ID: "mid", Subject: "mid"},
	}
	repo := newFakeCorpusRepo()
	repo.corpora["user@example.com"] = corpus

	embedder := &stubEmbedder{vectors: map[string][]float32{
		RenderDocument(corpus[0]): {10, 0, 0, 0},
		RenderDocument(corpus[1]): {1, 0, 0, 0},
		RenderDocument(corpus[2]): {4, 0, 0, 0},
		"which email?":            {0, 0, 0, 0},
	}}
	uc := newTestUsecase(repo, embedder, &stubAnswerService{answer: "ok"})

	result, err := uc.AnswerQuestion(context.Background(), "user@example.com", "which email?")
	require.NoError(t, err)

	require.Len(t, result.Context, 3)
	assert.Equal(t, "near", result.Context[0].EmailID)
	assert.Equal(t, "mid", result.Context[1].EmailID)
	assert.Equal(t, "far", result.Context[2].EmailID)
	for i := 1; i < len(result.Context); i++ {
		assert.LessOrEqual(t, result.Context[i-1].Distance, result.Context[i].Distance)
	}
}

func TestAnswerQuestionClampsTopKToCorpusSize(t *testing.T) {
	repo := newFakeCorpusRepo()
	repo.corpora["user@example.com"] = emaildomain.Corpus{
		{ID: "a", Subject: "one"},
		{ID: "b", Subject: "two"},
	}
	uc := newTestUsecase(repo, &stubEmbedder{}, &stubAnswerService{answer: "ok"})

	result, err := uc.AnswerQuestion(context.Background(), "user@example.com", "anything")
	require.NoError(t, err)

	// TopK is 3 but only 2 documents exist; no padding.
	assert.Len(t, result.Context, 2)
}

func TestAnswerQuestionGenerationFailureDegrades(t *testing.T) {
	repo := newFakeCorpusRepo()
	repo.corpora["user@example.com"] = emaildomain.Corpus{
		{ID: "a", Subject: "one", Body: "body"},
	}
	answers := &stubAnswerService{err: errors.New("quota exceeded")}
	uc := newTestUsecase(repo, &stubEmbedder{}, answers)

	result, err := uc.AnswerQuestion(context.Background(), "user@example.com", "anything")

	// A failed synthesis is a degraded result, not a pipeline error.
	require.NoError(t, err)
	assert.Contains(t, result.Answer, "Error generating response")
	assert.Contains(t, result.Answer, "quota exceeded")
	require.Len(t, result.Context, 1)
}

func TestAnswerQuestionPromptCarriesContextAndQuestion(t *testing.T) {
	email := emaildomain.Email{ID: "m1", Subject: "Invoice", Snippet: "Invoice #42", Body: "Please pay invoice #42."}
	repo := newFakeCorpusRepo()
	repo.corpora["user@example.com"] = emaildomain.Corpus{email}

	answers := &stubAnswerService{answer: "Invoice #42 is due."}
	uc := newTestUsecase(repo, &stubEmbedder{}, answers)

	_, err := uc.AnswerQuestion(context.Background(), "user@example.com", "what invoice is due?")
	require.NoError(t, err)

	require.Equal(t, 1, answers.calls)
	assert.Contains(t, answers.lastSystemPrompt, "email context")
	assert.Contains(t, answers.lastUserPrompt, RenderDocument(email))
	assert.Contains(t, answers.lastUserPrompt, "Question: what invoice is due?")
	assert.Contains(t, answers.lastUserPrompt, "Answer:")
}
