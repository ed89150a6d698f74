package repository

import (
	"context"

	emaildomain "mailrag-backend/internal/email/domain"
)

// CorpusRepository stores the cached email corpus per user identity.
//
// Load returns an empty corpus (nil error) when no entry exists for the
// user; an unreachable store is reported as domain.ErrStoreUnavailable so
// callers can tell "no data yet" apart from "store is down".
// Save replaces any prior entry for the user wholesale.
type CorpusRepository interface {
	Load(ctx context.Context, userEmail string) (emaildomain.Corpus, error)
	Save(ctx context.Context, userEmail string, corpus emaildomain.Corpus) error
}
