package usecase

import (
	"fmt"

	emaildomain "mailrag-backend/internal/email/domain"
)

// RenderDocument flattens one email into the text form used for embedding.
// The labels and field order are fixed, and absent optional fields render as
// empty slots, never as a literal absence marker.
func RenderDocument(email emaildomain.Email) string {
	return fmt.Sprintf("Subject: %s\nSnippet: %s\nBody: %s", email.Subject, email.Snippet, email.Body)
}

// RenderCorpus renders every email in corpus order. Position i of the result
// corresponds to corpus[i]; retrieval results are mapped back by index.
func RenderCorpus(corpus emaildomain.Corpus) []string {
	docs := make([]string, len(corpus))
	for i, email := range corpus {
		docs[i] = RenderDocument(email)
	}
	return docs
}
