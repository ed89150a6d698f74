package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	emaildomain "mailrag-backend/internal/email/domain"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces corpus keys in Redis, one key per user identity.
const keyPrefix = "emails:"

// corpusRepository implements CorpusRepository on Redis. The corpus is one
// JSON-serialized list per user; SET gives last-write-wins overwrite
// semantics, which matches the snapshot lifecycle of the corpus.
type corpusRepository struct {
	rdb *redis.Client
}

// NewCorpusRepository creates a Redis-backed corpus repository.
func NewCorpusRepository(rdb *redis.Client) CorpusRepository {
	return &corpusRepository{rdb: rdb}
}

func corpusKey(userEmail string) string {
	return keyPrefix + userEmail
}

func (r *corpusRepository) Load(ctx context.Context, userEmail string) (emaildomain.Corpus, error) {
	data, err := r.rdb.Get(ctx, corpusKey(userEmail)).Result()
	if errors.Is(err, redis.Nil) {
		// No emails cached yet. Not an error.
		return emaildomain.Corpus{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load corpus for %s: %v: %w", userEmail, err, emaildomain.ErrStoreUnavailable)
	}

	var corpus emaildomain.Corpus
	if err := json.Unmarshal([]byte(data), &corpus); err != nil {
		return nil, fmt.Errorf("decode corpus for %s: %w", userEmail, err)
	}
	return corpus, nil
}

func (r *corpusRepository) Save(ctx context.Context, userEmail string, corpus emaildomain.Corpus) error {
	data, err := json.Marshal(corpus)
	if err != nil {
		return fmt.Errorf("encode corpus for %s: %w", userEmail, err)
	}

	if err := r.rdb.Set(ctx, corpusKey(userEmail), data, 0).Err(); err != nil {
		return fmt.Errorf("save corpus for %s: %v: %w", userEmail, err, emaildomain.ErrStoreUnavailable)
	}
	return nil
}
