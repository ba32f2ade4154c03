package service

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/monohq/mono/internal/model"
	"github.com/monohq/mono/internal/repository"
)

var ErrInvalidAPIKey = errors.New("invalid api key")

// APIKeyService gates the whole API behind service-level bearer secrets,
// independent of user identity.
type APIKeyService struct {
	apiKeyRepository repository.APIKeyRepository
	defaultKey       string
}

func NewAPIKeyService(apiKeyRepository repository.APIKeyRepository, defaultKey string) *APIKeyService {
	return &APIKeyService{
		apiKeyRepository: apiKeyRepository,
		defaultKey:       defaultKey,
	}
}

// Verify checks the presented bearer secret against the key set. An empty
// key set is seeded lazily with the configured default key.
func (s *APIKeyService) Verify(key string) error {
	if key == "" {
		return ErrInvalidAPIKey
	}

	count, err := s.apiKeyRepository.Count()
	if err != nil {
		return fmt.Errorf("failed to count api keys: %w", err)
	}
	if count == 0 {
		err = s.apiKeyRepository.Create(&model.APIKey{
			Key:       s.defaultKey,
			CreatedAt: time.Now().UTC(),
		})
		if err != nil {
			return fmt.Errorf("failed to seed default api key: %w", err)
		}
		slog.Info("seeded default api key")
	}

	_, err = s.apiKeyRepository.ByKey(key)
	if errors.Is(err, repository.ErrAPIKeyNotFound) {
		return ErrInvalidAPIKey
	}
	return err
}
