package download

import (
	"context"

	"github.com/odii/audio-guide/internal/model"
)

// Fetcher defines the interface for the audio cache service.
type Fetcher interface {
	SetUpdateCallback(func(*model.FetchTask))

	// Fetch returns the cached path for url, downloading it first if needed
	Fetch(ctx context.Context, url string) (string, error)

	GetTask(url string) (*model.FetchTask, bool)
	GetAllTasks() []*model.FetchTask

	// CachedPath reports the cache location for url and whether it exists
	CachedPath(url string) (string, bool)

	// Purge removes every cached file and finished task
	Purge() error

	// SetCacheDirectory changes where new files are stored
	SetCacheDirectory(dir string)
}

var _ Fetcher = (*Service)(nil)
