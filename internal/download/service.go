package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/odii/audio-guide/internal/model"
	"github.com/odii/audio-guide/internal/platform"
)

const (
	defaultMaxRetries = 1
	defaultRetryDelay = 2 * time.Second
	progressEvery     = 64 << 10
	tempPrefix        = ".fetch-"
	tempPattern       = tempPrefix + "*"
)

// Service handles fetch operations
type Service struct {
	tasks      map[string]*model.FetchTask // keyed by URL
	inflight   map[string]*call
	tasksMutex sync.RWMutex
	cacheDir   string
	client     *http.Client
	slots      chan struct{}
	maxRetries int
	retryDelay time.Duration
	onUpdate   func(*model.FetchTask) // callback for UI updates
}

// call is one in-flight fetch shared by every caller asking for the same URL.
// It runs under its own context, cancelled once every waiter has given up.
type call struct {
	done    chan struct{}
	path    string
	err     error
	waiters int
	cancel  context.CancelFunc
}

// NewService creates a new fetch service
func NewService(cacheDir string, maxParallel int) *Service {
	if maxParallel < 1 {
		maxParallel = 1
	}
	return &Service{
		tasks:      make(map[string]*model.FetchTask),
		inflight:   make(map[string]*call),
		cacheDir:   cacheDir,
		client:     &http.Client{Timeout: 5 * time.Minute},
		slots:      make(chan struct{}, maxParallel),
		maxRetries: defaultMaxRetries,
		retryDelay: defaultRetryDelay,
	}
}

// SetHTTPClient replaces the client used for downloads
func (s *Service) SetHTTPClient(c *http.Client) {
	if c != nil {
		s.client = c
	}
}

// SetRetryDelay sets the backoff before the retry attempt
func (s *Service) SetRetryDelay(d time.Duration) {
	s.retryDelay = d
}

// SetUpdateCallback sets the callback function for task updates
func (s *Service) SetUpdateCallback(callback func(*model.FetchTask)) {
	s.tasksMutex.Lock()
	s.onUpdate = callback
	s.tasksMutex.Unlock()
}

// SetCacheDirectory sets the cache directory
func (s *Service) SetCacheDirectory(dir string) {
	s.tasksMutex.Lock()
	s.cacheDir = dir
	s.tasksMutex.Unlock()
}

// CacheFileName returns the stable cache file name for url: the SHA-1 UUID
// of the URL plus the extension of its path
func CacheFileName(rawURL string) string {
	name := uuid.NewSHA1(uuid.NameSpaceURL, []byte(rawURL)).String()
	p := rawURL
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if ext := strings.ToLower(path.Ext(p)); ext != "" && len(ext) <= 5 {
		name += ext
	}
	return name
}

// CachedPath reports where url is cached and whether the file exists
func (s *Service) CachedPath(rawURL string) (string, bool) {
	s.tasksMutex.RLock()
	dir := s.cacheDir
	s.tasksMutex.RUnlock()

	p := filepath.Join(dir, CacheFileName(rawURL))
	info, err := os.Stat(p)
	return p, err == nil && info.Mode().IsRegular()
}

// Fetch returns the cached file for url, downloading it if it is not cached.
// Concurrent calls for the same URL share one download. Cancelling ctx only
// abandons this caller's wait; the download stops when no caller is left.
func (s *Service) Fetch(ctx context.Context, rawURL string) (string, error) {
	if p, ok := s.CachedPath(rawURL); ok {
		return p, nil
	}

	s.tasksMutex.Lock()
	c, ok := s.inflight[rawURL]
	if ok {
		c.waiters++
		s.tasksMutex.Unlock()
		return s.wait(ctx, rawURL, c)
	}

	workCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	c = &call{done: make(chan struct{}), waiters: 1, cancel: cancel}
	s.inflight[rawURL] = c
	task := &model.FetchTask{
		ID:         uuid.NewString(),
		URL:        rawURL,
		Status:     model.TaskStatusPending,
		BytesTotal: -1,
		StartedAt:  time.Now(),
	}
	s.tasks[rawURL] = task
	dir := s.cacheDir
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)

	go func() {
		defer cancel()
		c.path, c.err = s.runTask(workCtx, task, dir)

		s.tasksMutex.Lock()
		if s.inflight[rawURL] == c {
			delete(s.inflight, rawURL)
		}
		s.tasksMutex.Unlock()
		close(c.done)
	}()

	return s.wait(ctx, rawURL, c)
}

// wait blocks until c finishes or ctx is done. The last waiter to leave
// cancels the download and unregisters it so a later Fetch starts afresh.
func (s *Service) wait(ctx context.Context, rawURL string, c *call) (string, error) {
	select {
	case <-c.done:
		return c.path, c.err
	case <-ctx.Done():
	}

	s.tasksMutex.Lock()
	c.waiters--
	if c.waiters == 0 {
		c.cancel()
		if s.inflight[rawURL] == c {
			delete(s.inflight, rawURL)
		}
	}
	s.tasksMutex.Unlock()
	return "", ctx.Err()
}

// runTask waits for a free slot and downloads the task with retry
func (s *Service) runTask(ctx context.Context, task *model.FetchTask, dir string) (string, error) {
	select {
	case s.slots <- struct{}{}:
	case <-ctx.Done():
		s.finishTask(task, "", ctx.Err())
		return "", ctx.Err()
	}
	defer func() { <-s.slots }()

	if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
		err = fmt.Errorf("create cache directory: %w", err)
		s.finishTask(task, "", err)
		return "", err
	}

	s.tasksMutex.Lock()
	task.Status = model.TaskStatusDownloading
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)

	dest := filepath.Join(dir, CacheFileName(task.URL))
	err := s.downloadWithRetry(ctx, task, dest)
	if err != nil {
		s.finishTask(task, "", err)
		return "", err
	}
	s.finishTask(task, dest, nil)
	return dest, nil
}

// downloadWithRetry attempts download with retry logic
func (s *Service) downloadWithRetry(ctx context.Context, task *model.FetchTask, dest string) error {
	var lastErr error

	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if attempt > 0 {
			// Backoff delay
			select {
			case <-time.After(s.retryDelay):
			case <-ctx.Done():
				return ctx.Err()
			}

			log.Printf("Retrying fetch for task %s, attempt %d", task.ID, attempt+1)
		}

		s.tasksMutex.Lock()
		task.Attempts = attempt + 1
		task.BytesDone = 0
		task.Progress = 0
		s.tasksMutex.Unlock()

		err := s.download(ctx, task, dest)
		if err == nil {
			return nil
		}

		lastErr = err
		log.Printf("Fetch attempt %d failed for task %s: %v", attempt+1, task.ID, err)

		var perm permanentError
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if errors.As(err, &perm) {
			return err
		}
	}

	return lastErr
}

// permanentError marks failures a retry cannot fix, such as 404
type permanentError struct {
	status int
}

func (e permanentError) Error() string {
	return fmt.Sprintf("unexpected status %d %s", e.status, http.StatusText(e.status))
}

// download streams the response into a temp file and renames it into place
func (s *Service) download(ctx context.Context, task *model.FetchTask, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, task.URL, nil)
	if err != nil {
		return permanentError{status: http.StatusBadRequest}
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return permanentError{status: resp.StatusCode}
		}
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	s.tasksMutex.Lock()
	task.BytesTotal = resp.ContentLength
	s.tasksMutex.Unlock()

	tmp, err := os.CreateTemp(filepath.Dir(dest), tempPattern)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := &progressWriter{w: tmp, report: func(n int64) { s.updateTaskProgress(task, n) }}
	_, err = io.Copy(w, resp.Body)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}
	w.flush()

	if err := os.Rename(tmp.Name(), dest); err != nil {
		return fmt.Errorf("move into cache: %w", err)
	}
	return nil
}

// updateTaskProgress records the byte count of the running attempt
func (s *Service) updateTaskProgress(task *model.FetchTask, done int64) {
	s.tasksMutex.Lock()
	task.BytesDone = done
	if task.BytesTotal > 0 {
		task.Progress = float64(done) / float64(task.BytesTotal)
		if task.Progress > 1 {
			task.Progress = 1
		}
	}
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
}

func (s *Service) finishTask(task *model.FetchTask, dest string, err error) {
	s.tasksMutex.Lock()
	if err != nil {
		task.Status = model.TaskStatusError
		task.LastError = err.Error()
	} else {
		task.Status = model.TaskStatusCompleted
		task.Progress = 1.0
		task.OutputPath = dest
		task.LastError = ""
	}
	task.FinishedAt = time.Now()
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
}

// GetTask returns the latest task for url
func (s *Service) GetTask(rawURL string) (*model.FetchTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	task, exists := s.tasks[rawURL]
	return task, exists
}

// GetAllTasks returns all tasks
func (s *Service) GetAllTasks() []*model.FetchTask {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()

	tasks := make([]*model.FetchTask, 0, len(s.tasks))
	for _, task := range s.tasks {
		tasks = append(tasks, task)
	}
	return tasks
}

// Purge removes cached files and forgets finished tasks. Files of fetches
// still in flight, and their partial downloads, are left alone.
func (s *Service) Purge() error {
	s.tasksMutex.Lock()
	dir := s.cacheDir
	busy := make(map[string]bool, len(s.inflight))
	for u := range s.inflight {
		busy[CacheFileName(u)] = true
	}
	fetching := len(s.inflight) > 0
	for u, task := range s.tasks {
		if task.Status.IsFinished() {
			delete(s.tasks, u)
		}
	}
	s.tasksMutex.Unlock()

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read cache directory: %w", err)
	}

	var errs []error
	for _, e := range entries {
		if e.IsDir() || busy[e.Name()] {
			continue
		}
		if fetching && strings.HasPrefix(e.Name(), tempPrefix) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(task *model.FetchTask) {
	s.tasksMutex.RLock()
	cb := s.onUpdate
	snapshot := *task
	s.tasksMutex.RUnlock()

	if cb != nil {
		cb(&snapshot)
	}
}

// progressWriter reports the running byte count every progressEvery bytes
type progressWriter struct {
	w        io.Writer
	n        int64
	reported int64
	report   func(int64)
}

func (p *progressWriter) Write(b []byte) (int, error) {
	n, err := p.w.Write(b)
	p.n += int64(n)
	if p.n-p.reported >= progressEvery {
		p.flush()
	}
	return n, err
}

func (p *progressWriter) flush() {
	p.reported = p.n
	p.report(p.n)
}
