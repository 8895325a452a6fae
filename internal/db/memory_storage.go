package db

import (
	"github.com/fsdevblog/shortlink/internal/db/memory"
)

// MemoryStorage обертка над memory.MStorage на уровне пакета db.
type MemoryStorage struct {
	*memory.MStorage
}

func NewMemStorage() *MemoryStorage {
	return &MemoryStorage{
		MStorage: memory.NewMemStorage(),
	}
}
