package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	emaildto "mailrag-backend/internal/email/dto"
	"mailrag-backend/pkg/vecindex"
)

const (
	// systemPrompt pins the model to the retrieved context.
	systemPrompt = "You are an assistant that answers questions based on provided email context."

	// docDelimiter separates context documents inside the prompt.
	docDelimiter = "\n---\n"

	// noEmailsAnswer is returned for users with an empty corpus, without
	// spending a single embedding or generation call.
	noEmailsAnswer = "No emails available for this user."

	embedTimeout    = 30 * time.Second
	generateTimeout = 60 * time.Second
)

// AnswerQuestion runs the full retrieval-augmented pipeline for one question:
// load the cached corpus, render and embed it, retrieve the most relevant
// documents for the question, and synthesize a grounded answer.
//
// The similarity index is rebuilt from the current corpus on every call, so
// answers always reflect the latest fetch. Store and embedding failures
// surface as errors; generation failures degrade into a placeholder answer.
func (u *emailUsecase) AnswerQuestion(ctx context.Context, userEmail, question string) (*emaildto.AnsweredQuery, error) {
	corpus, err := u.corpusRepo.Load(ctx, userEmail)
	if err != nil {
		return nil, err
	}

	if len(corpus) == 0 {
		return &emaildto.AnsweredQuery{
			Question: question,
			Context:  []emaildto.RetrievedDocument{},
			Answer:   noEmailsAnswer,
		}, nil
	}

	docs := RenderCorpus(corpus)

	embedCtx, cancel := context.WithTimeout(ctx, embedTimeout)
	defer cancel()

	vectors, err := u.embedder.EmbedDocuments(embedCtx, docs)
	if err != nil {
		return nil, fmt.Errorf("embed corpus for %s: %w", userEmail, err)
	}

	index, err := vecindex.Build(vectors)
	if err != nil {
		return nil, fmt.Errorf("build index for %s: %w", userEmail, err)
	}
	if index == nil {
		// Embedder returned no vectors for a non-empty corpus.
		return nil, fmt.Errorf("embed corpus for %s: no vectors returned", userEmail)
	}

	queryVec, err := u.embedder.EmbedQuery(embedCtx, question)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}

	topK := u.config.RetrievalTopK
	if topK <= 0 {
		topK = 3
	}
	results, err := index.Search(queryVec, topK)
	if err != nil {
		return nil, fmt.Errorf("search index for %s: %w", userEmail, err)
	}

	retrieved := make([]emaildto.RetrievedDocument, 0, len(results))
	contextDocs := make([]string, 0, len(results))
	for _, r := range results {
		email := corpus[r.Index]
		retrieved = append(retrieved, emaildto.RetrievedDocument{
			EmailID:  email.ID,
			Subject:  email.Subject,
			From:     email.From,
			Document: docs[r.Index],
			Distance: r.Distance,
		})
		contextDocs = append(contextDocs, docs[r.Index])
	}

	answer := u.synthesizeAnswer(ctx, question, contextDocs)

	return &emaildto.AnsweredQuery{
		Question: question,
		Context:  retrieved,
		Answer:   answer,
	}, nil
}

// synthesizeAnswer builds the grounded prompt and calls the generative
// service. Generation failures never escape this boundary: the caller gets
// a degraded answer embedding the failure reason instead.
func (u *emailUsecase) synthesizeAnswer(ctx context.Context, question string, contextDocs []string) string {
	var prompt strings.Builder
	prompt.WriteString("Answer the following question based on the context from emails:\n\n")
	prompt.WriteString("Context:\n")
	prompt.WriteString(strings.Join(contextDocs, docDelimiter))
	prompt.WriteString("\n\nQuestion: ")
	prompt.WriteString(question)
	prompt.WriteString("\nAnswer:")

	genCtx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	answer, err := u.answerService.GenerateAnswer(genCtx, systemPrompt, prompt.String())
	if err != nil {
		log.Printf("[RAG] Answer generation failed: %v", err)
		return fmt.Sprintf("Error generating response: %v", err)
	}
	return answer
}
