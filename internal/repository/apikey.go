package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/monohq/mono/internal/model"
)

var ErrAPIKeyNotFound = errors.New("api key not found")

type APIKeyRepository interface {
	Create(key *model.APIKey) error
	ByKey(key string) (*model.APIKey, error)
	Count() (int64, error)
}

type apiKeyRepository struct {
	db *sqlx.DB
}

func NewAPIKeyRepository(db *sqlx.DB) APIKeyRepository {
	return &apiKeyRepository{db: db}
}

func (r *apiKeyRepository) Create(key *model.APIKey) error {
	query := `INSERT INTO api_keys (key, created_at) VALUES ($1, $2) RETURNING id`

	return r.db.QueryRow(query, key.Key, key.CreatedAt).Scan(&key.ID)
}

func (r *apiKeyRepository) ByKey(key string) (*model.APIKey, error) {
	apiKey := &model.APIKey{}
	query := `SELECT * FROM api_keys WHERE key = $1`

	err := r.db.Get(apiKey, query, key)
	if err == sql.ErrNoRows {
		return nil, ErrAPIKeyNotFound
	}

	return apiKey, err
}

func (r *apiKeyRepository) Count() (int64, error) {
	var count int64
	err := r.db.Get(&count, `SELECT COUNT(*) FROM api_keys`)
	return count, err
}
