package usecase

import (
	"strings"
	"testing"

	emaildomain "mailrag-backend/internal/email/domain"

	"github.com/stretchr/testify/assert"
)

func TestRenderDocumentIncludesFixedLabels(t *testing.T) {
	doc := RenderDocument(emaildomain.Email{
		ID:      "m1",
		Subject: "Interview schedule",
		From:    "hr@example.com",
		Snippet: "Your interview is on Friday",
		Body:    "Hi, your interview is scheduled for Friday at 10am.",
	})

	assert.Contains(t, doc, "Subject: Interview schedule")
	assert.Contains(t, doc, "Snippet: Your interview is on Friday")
	assert.Contains(t, doc, "Body: Hi, your interview is scheduled for Friday at 10am.")
}

func TestRenderDocumentMissingFieldsRenderEmpty(t *testing.T) {
	doc := RenderDocument(emaildomain.Email{ID: "m2", Snippet: "only a snippet"})

	// Absent optional fields must render as empty slots, never as a
	// literal absence marker.
	assert.NotContains(t, doc, "None")
	assert.NotContains(t, doc, "<nil>")
	assert.True(t, strings.HasPrefix(doc, "Subject: \n"))
	assert.Contains(t, doc, "Snippet: only a snippet")
	assert.True(t, strings.HasSuffix(doc, "Body: "))
}

func TestRenderDocumentIsDeterministic(t *testing.T) {
	email := emaildomain.Email{
		ID:      "m3",
		Subject: "Weekly report",
		Snippet: "Numbers attached",
		Body:    "See the attached numbers.",
	}

	assert.Equal(t, RenderDocument(email), RenderDocument(email))
}

func TestRenderCorpusPreservesOrder(t *testing.T) {
	corpus := emaildomain.Corpus{
		{ID: "a", Subject: "first"},
		{ID: "b", Subject: "second"},
		{ID: "c", Subject: "third"},
	}

	docs := RenderCorpus(corpus)

	assert.Len(t, docs, 3)
	for i, email := range corpus {
		assert.Equal(t, RenderDocument(email), docs[i])
	}
}
