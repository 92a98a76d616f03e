package download

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/odii/audio-guide/internal/model"
)

func TestNewService(t *testing.T) {
	service := NewService("/tmp", 0)

	if service.cacheDir != "/tmp" {
		t.Errorf("Expected cacheDir to be '/tmp', got '%s'", service.cacheDir)
	}
	if cap(service.slots) != 1 {
		t.Errorf("Expected parallelism to be clamped to 1, got %d", cap(service.slots))
	}
	if len(service.tasks) != 0 {
		t.Errorf("Expected empty tasks map, got %d items", len(service.tasks))
	}
}

func TestCacheFileName(t *testing.T) {
	a := CacheFileName("https://example.com/audio/1-2.mp3")
	b := CacheFileName("https://example.com/audio/1-2.mp3")
	c := CacheFileName("https://example.com/audio/1-3.mp3?sig=abc")

	if a != b {
		t.Errorf("Expected stable names, got %s and %s", a, b)
	}
	if a == c {
		t.Error("Expected different URLs to get different names")
	}
	if !strings.HasSuffix(a, ".mp3") || !strings.HasSuffix(c, ".mp3") {
		t.Errorf("Expected .mp3 extension, got %s and %s", a, c)
	}
	if len(strings.TrimSuffix(a, ".mp3")) != 36 {
		t.Errorf("Expected a UUID base name, got %s", a)
	}
}

func TestFetch_DownloadsOnceAndCaches(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte("ID3 narration bytes"))
	}))
	defer srv.Close()

	service := NewService(t.TempDir(), 2)
	var updates []model.TaskStatus
	var mu sync.Mutex
	service.SetUpdateCallback(func(task *model.FetchTask) {
		mu.Lock()
		updates = append(updates, task.Status)
		mu.Unlock()
	})

	url := srv.URL + "/audio/1-2.mp3"
	p, err := service.Fetch(context.Background(), url)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	data, err := os.ReadFile(p)
	if err != nil || string(data) != "ID3 narration bytes" {
		t.Fatalf("Unexpected cache content %q, err %v", data, err)
	}

	// Second call is served from disk
	p2, err := service.Fetch(context.Background(), url)
	if err != nil || p2 != p {
		t.Fatalf("Expected cached path %s, got %s (%v)", p, p2, err)
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("Expected 1 request, got %d", got)
	}

	task, ok := service.GetTask(url)
	if !ok || task.Status != model.TaskStatusCompleted || task.OutputPath != p {
		t.Errorf("Unexpected task %+v", task)
	}

	mu.Lock()
	defer mu.Unlock()
	if updates[0] != model.TaskStatusPending || updates[len(updates)-1] != model.TaskStatusCompleted {
		t.Errorf("Unexpected status sequence %v", updates)
	}
}

func TestFetch_ConcurrentCallsShareDownload(t *testing.T) {
	release := make(chan struct{})
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		<-release
		w.Write([]byte("audio"))
	}))
	defer srv.Close()

	service := NewService(t.TempDir(), 4)
	url := srv.URL + "/a.mp3"

	var wg sync.WaitGroup
	paths := make([]string, 5)
	errs := make([]error, 5)
	for i := range paths {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			paths[i], errs[i] = service.Fetch(context.Background(), url)
		}(i)
	}

	// Let every caller reach the in-flight wait before the body is sent
	deadline := time.Now().Add(2 * time.Second)
	for hits.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	for i := range paths {
		if errs[i] != nil {
			t.Fatalf("caller %d: %v", i, errs[i])
		}
		if paths[i] != paths[0] {
			t.Errorf("caller %d got %s, want %s", i, paths[i], paths[0])
		}
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("Expected 1 request, got %d", got)
	}
}

func TestFetch_RetriesOnce(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	service := NewService(t.TempDir(), 1)
	service.SetRetryDelay(time.Millisecond)

	if _, err := service.Fetch(context.Background(), srv.URL+"/b.wav"); err != nil {
		t.Fatalf("Expected retry to succeed, got %v", err)
	}
	task, _ := service.GetTask(srv.URL + "/b.wav")
	if task.Attempts != 2 {
		t.Errorf("Expected 2 attempts, got %d", task.Attempts)
	}
}

func TestFetch_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantHits int32
	}{
		{name: "not found is not retried", status: http.StatusNotFound, wantHits: 1},
		{name: "server error retried once", status: http.StatusInternalServerError, wantHits: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				hits.Add(1)
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			dir := t.TempDir()
			service := NewService(dir, 1)
			service.SetRetryDelay(time.Millisecond)

			url := srv.URL + "/c.mp3"
			if _, err := service.Fetch(context.Background(), url); err == nil {
				t.Fatal("Expected error")
			}
			if got := hits.Load(); got != tt.wantHits {
				t.Errorf("Expected %d requests, got %d", tt.wantHits, got)
			}
			task, _ := service.GetTask(url)
			if task.Status != model.TaskStatusError || task.LastError == "" {
				t.Errorf("Unexpected task %+v", task)
			}
			if _, ok := service.CachedPath(url); ok {
				t.Error("Failed fetch must not leave a cache file")
			}
			entries, _ := os.ReadDir(dir)
			if len(entries) != 0 {
				t.Errorf("Expected no temp files, got %d entries", len(entries))
			}
		})
	}
}

func TestFetch_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	service := NewService(t.TempDir(), 1)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := service.Fetch(ctx, srv.URL+"/slow.mp3")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected deadline exceeded, got %v", err)
	}
	waitFinished(t, service, srv.URL+"/slow.mp3")
}

func TestFetch_CancelledCallerLeavesSharedDownload(t *testing.T) {
	release := make(chan struct{})
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		select {
		case <-release:
			w.Write([]byte("shared audio"))
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	service := NewService(t.TempDir(), 2)
	url := srv.URL + "/shared.mp3"

	ctxA, cancelA := context.WithCancel(context.Background())
	defer cancelA()
	errA := make(chan error, 1)
	go func() {
		_, err := service.Fetch(ctxA, url)
		errA <- err
	}()
	waitWaiters(t, service, url, 1)

	type result struct {
		path string
		err  error
	}
	resB := make(chan result, 1)
	go func() {
		p, err := service.Fetch(context.Background(), url)
		resB <- result{p, err}
	}()
	waitWaiters(t, service, url, 2)

	cancelA()
	select {
	case err := <-errA:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Expected first caller to get context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("First caller did not return after cancel")
	}

	close(release)
	select {
	case r := <-resB:
		if r.err != nil {
			t.Fatalf("Expected second caller to succeed, got %v", r.err)
		}
		data, err := os.ReadFile(r.path)
		if err != nil || string(data) != "shared audio" {
			t.Errorf("Unexpected cache content %q, err %v", data, err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Second caller did not finish")
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("Expected 1 request, got %d", got)
	}
}

func TestFetch_LastWaiterCancelsDownload(t *testing.T) {
	aborted := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
		close(aborted)
	}))
	defer srv.Close()

	service := NewService(t.TempDir(), 1)
	url := srv.URL + "/abandoned.mp3"

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := service.Fetch(ctx, url)
		errCh <- err
	}()
	waitWaiters(t, service, url, 1)
	cancel()

	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	select {
	case <-aborted:
	case <-time.After(2 * time.Second):
		t.Fatal("Expected the request to be aborted")
	}

	service.tasksMutex.RLock()
	_, stillShared := service.inflight[url]
	service.tasksMutex.RUnlock()
	if stillShared {
		t.Error("Expected abandoned fetch to be unregistered")
	}
	waitFinished(t, service, url)
}

func TestPurge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("x"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	service := NewService(dir, 1)
	url := srv.URL + "/d.mp3"
	if _, err := service.Fetch(context.Background(), url); err != nil {
		t.Fatal(err)
	}

	if err := service.Purge(); err != nil {
		t.Fatalf("Purge() error = %v", err)
	}
	if _, ok := service.CachedPath(url); ok {
		t.Error("Expected cache file to be removed")
	}
	if len(service.GetAllTasks()) != 0 {
		t.Error("Expected finished tasks to be forgotten")
	}

	// Partial downloads survive while a fetch is running
	partial := filepath.Join(dir, tempPrefix+"123")
	stale := filepath.Join(dir, "stale.mp3")
	os.WriteFile(partial, []byte("half"), 0o644)
	os.WriteFile(stale, []byte("old"), 0o644)
	service.tasksMutex.Lock()
	service.inflight["https://example.com/e.mp3"] = &call{done: make(chan struct{})}
	service.tasksMutex.Unlock()

	if err := service.Purge(); err != nil {
		t.Fatalf("Purge() error = %v", err)
	}
	if _, err := os.Stat(partial); err != nil {
		t.Errorf("Expected partial download to survive, got %v", err)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Errorf("Expected stale file to be removed, got %v", err)
	}

	service.tasksMutex.Lock()
	delete(service.inflight, "https://example.com/e.mp3")
	service.tasksMutex.Unlock()

	// A missing directory is not an error
	service.SetCacheDirectory(filepath.Join(dir, "missing"))
	if err := service.Purge(); err != nil {
		t.Errorf("Purge() on missing dir error = %v", err)
	}
}

// waitWaiters blocks until n callers share the fetch of url
func waitWaiters(t *testing.T, service *Service, url string, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		service.tasksMutex.RLock()
		c, ok := service.inflight[url]
		got := 0
		if ok {
			got = c.waiters
		}
		service.tasksMutex.RUnlock()
		if got == n {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("Timed out waiting for %d waiters on %s", n, url)
}

// waitFinished blocks until the task for url has finished
func waitFinished(t *testing.T, service *Service, url string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		service.tasksMutex.RLock()
		task, ok := service.tasks[url]
		done := ok && task.Status.IsFinished()
		service.tasksMutex.RUnlock()
		if done {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("Timed out waiting for %s to finish", url)
}
