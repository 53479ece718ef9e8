package core

import (
	"context"
	"fmt"

	"github.com/edvin/accounts/internal/model"
	"github.com/edvin/accounts/internal/platform"
)

const apiKeyBytes = 32

// APIKeyService manages the keys that authenticate admin API callers.
type APIKeyService struct {
	db DB
}

func NewAPIKeyService(db DB) *APIKeyService {
	return &APIKeyService{db: db}
}

// Create generates a new API key, stores the hash, and returns the model
// along with the raw key string. The raw key must be shown to the caller
// exactly once.
func (s *APIKeyService) Create(ctx context.Context, name string) (*model.APIKey, string, error) {
	rawKey := "acc_" + platform.NewKey(apiKeyBytes)
	id := platform.NewID()
	keyPrefix := rawKey[:12]

	_, err := s.db.Exec(ctx,
		`INSERT INTO api_keys (id, name, key_hash, key_prefix, created_at) VALUES ($1, $2, $3, $4, now())`,
		id, name, hashKey(rawKey), keyPrefix,
	)
	if err != nil {
		return nil, "", fmt.Errorf("insert api key: %w", err)
	}

	key := &model.APIKey{ID: id, Name: name, KeyPrefix: keyPrefix}
	err = s.db.QueryRow(ctx, "SELECT created_at FROM api_keys WHERE id = $1", id).Scan(&key.CreatedAt)
	if err != nil {
		return nil, "", fmt.Errorf("get api key created_at: %w", err)
	}
	return key, rawKey, nil
}

// List returns all keys, newest first, revoked ones included.
func (s *APIKeyService) List(ctx context.Context) ([]model.APIKey, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, name, key_prefix, created_at, revoked_at FROM api_keys ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list api keys: %w", err)
	}
	defer rows.Close()

	var keys []model.APIKey
	for rows.Next() {
		var k model.APIKey
		if err := rows.Scan(&k.ID, &k.Name, &k.KeyPrefix, &k.CreatedAt, &k.RevokedAt); err != nil {
			return nil, fmt.Errorf("scan api key: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate api keys: %w", err)
	}
	return keys, nil
}

// Revoke soft-deletes an API key by setting revoked_at.
func (s *APIKeyService) Revoke(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx,
		"UPDATE api_keys SET revoked_at = now() WHERE id = $1 AND revoked_at IS NULL", id,
	)
	if err != nil {
		return fmt.Errorf("revoke api key %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("api key %s not found or already revoked", id)
	}
	return nil
}
