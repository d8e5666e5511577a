package storage

import (
	"strings"
	"time"

	"github.com/gofiber/storage/s3/v2"

	"stockroom/pkg/utils"
)

// StorageService stores generated export files in object storage.
type StorageService interface {
	Save(key string, data []byte) error
	GenerateKeyName(prefix string) string
}

type storageService struct {
	storage *s3.Storage
}

func NewStorageService(storage *s3.Storage) StorageService {
	return &storageService{
		storage: storage,
	}
}

func (s *storageService) Save(key string, data []byte) error {
	return s.storage.Set(key, data, 0)
}

func (s *storageService) GenerateKeyName(prefix string) string {
	date := time.Now().Format("20060102")
	return prefix + "-" + date + "-" + strings.ToLower(utils.GenerateRandomString(8)) + ".csv"
}
