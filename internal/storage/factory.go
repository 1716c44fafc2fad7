package storage

import (
	"github.com/seyitm/baby-ai/internal"
)

// Repositories bundles the three store surfaces a backend must provide.
type Repositories struct {
	Records RecordRepository
	Babies  BabyRepository
	History ChatHistoryRepository
}

func NewSupabaseRepositories(baseURL, apiKey string, logger internal.Logger) Repositories {
	s := NewSupabaseStorage(baseURL, apiKey, logger)
	return Repositories{Records: s, Babies: s, History: s}
}

func NewPostgresRepositories(dsn string, logger internal.Logger) (Repositories, error) {
	s, err := NewPostgresStorage(dsn, logger)
	if err != nil {
		return Repositories{}, err
	}
	return Repositories{Records: s, Babies: s, History: s}, nil
}
