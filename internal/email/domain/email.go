package domain

// Email is one fetched message as cached in the corpus store.
// It is created by the ingestion side and immutable once stored.
// Subject and From come from message headers and may be absent.
type Email struct {
	ID      string `json:"id"`
	Subject string `json:"subject,omitempty"`
	From    string `json:"from,omitempty"`
	Snippet string `json:"snippet"`
	Body    string `json:"body"`
}

// Corpus is the ordered list of cached emails for one user identity.
// It is replaced wholesale on each fetch (snapshot semantics); order is
// significant because retrieval results are mapped back by position.
type Corpus []Email

// TokenUpdateFunc is called when a mail provider refreshes an OAuth token,
// so the new token can be persisted for the user.
type TokenUpdateFunc func(accessToken, refreshToken string) error
