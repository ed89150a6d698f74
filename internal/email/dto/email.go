package dto

import emaildomain "mailrag-backend/internal/email/domain"

type FetchEmailsRequest struct {
	UserEmails []string `json:"user_emails" binding:"required"`
	MaxResults int      `json:"max_results"`
}

type FetchEmailsResponse struct {
	Fetched map[string]int `json:"fetched"` // user email -> stored message count
}

type EmailsResponse struct {
	Emails emaildomain.Corpus `json:"emails"`
	Total  int                `json:"total"`
}

type AskRequest struct {
	UserEmail string `json:"user_email" binding:"required,email"`
	Question  string `json:"question" binding:"required"`
}

// RetrievedDocument is one context document backing an answer.
type RetrievedDocument struct {
	EmailID  string  `json:"email_id"`
	Subject  string  `json:"subject,omitempty"`
	From     string  `json:"from,omitempty"`
	Document string  `json:"document"`
	Distance float64 `json:"distance"`
}

// AnsweredQuery is the final output of the query pipeline: the question,
// the documents used as grounding context, and the generated answer.
type AnsweredQuery struct {
	Question string              `json:"question"`
	Context  []RetrievedDocument `json:"context"`
	Answer   string              `json:"answer"`
}
