// Package transcode converts audio containers no playback engine decodes
// into 16-bit PCM WAV with ffmpeg.
package transcode

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/odii/audio-guide/internal/model"
)

// FFmpeg constants for the decodable output
const (
	// Audio settings
	AudioCodec   = "pcm_s16le"
	SampleRate   = "44100"
	Channels     = "2"
	OutputFormat = "wav"

	// Output naming
	TranscodedSuffix   = "-pcm"
	OutputExtensionWAV = ".wav"
	PartialExtension   = ".part"

	// Executable and I/O constants
	FFmpegCommand       = "ffmpeg"
	FFprobeCommand      = "ffprobe"
	FFprobeLogLevel     = "error"
	FFprobeShowEntries  = "format=duration"
	FFprobeOutputFormat = "csv=p=0"
	ProgressPipeTarget  = "pipe:2"
	ProgressTimePrefix  = "out_time_us="
	TaskIDPrefix        = "transcode-"
)

// ErrFFmpegMissing is returned when the ffmpeg executable cannot be found
var ErrFFmpegMissing = errors.New("transcode: ffmpeg not found")

// Service converts files on demand and caches the results
type Service struct {
	outputDir string
	ffmpeg    string
	ffprobe   string

	tasks      map[string]*model.TranscodeTask
	inflight   map[string]*call
	tasksMutex sync.RWMutex
	onUpdate   func(*model.TranscodeTask) // callback for UI updates
}

// call is one running conversion shared by concurrent callers. ffmpeg is
// killed only once every waiter has given up.
type call struct {
	done    chan struct{}
	path    string
	err     error
	waiters int
	cancel  context.CancelFunc
}

// NewService creates a transcode service writing into outputDir. An empty
// outputDir writes next to the input.
func NewService(outputDir string) *Service {
	return &Service{
		outputDir: outputDir,
		ffmpeg:    FFmpegCommand,
		ffprobe:   FFprobeCommand,
		tasks:     make(map[string]*model.TranscodeTask),
		inflight:  make(map[string]*call),
	}
}

// SetUpdateCallback sets the callback function for task updates
func (s *Service) SetUpdateCallback(callback func(*model.TranscodeTask)) {
	s.tasksMutex.Lock()
	s.onUpdate = callback
	s.tasksMutex.Unlock()
}

// SetCommands overrides the ffmpeg and ffprobe executables
func (s *Service) SetCommands(ffmpeg, ffprobe string) {
	s.tasksMutex.Lock()
	s.ffmpeg, s.ffprobe = ffmpeg, ffprobe
	s.tasksMutex.Unlock()
}

// Available reports whether ffmpeg can be found
func (s *Service) Available() bool {
	ffmpeg, _ := s.commandPair()
	_, err := exec.LookPath(ffmpeg)
	return err == nil
}

// OutputPath returns where the converted copy of inputPath is written
func (s *Service) OutputPath(inputPath string) string {
	ext := filepath.Ext(inputPath)
	name := strings.TrimSuffix(filepath.Base(inputPath), ext) + TranscodedSuffix + OutputExtensionWAV
	if s.outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), name)
	}
	return filepath.Join(s.outputDir, name)
}

// Transcode converts inputPath and returns the WAV path. A converted copy
// at least as new as the input is reused. Concurrent calls for the same
// input share one ffmpeg run.
func (s *Service) Transcode(ctx context.Context, inputPath string) (string, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return "", fmt.Errorf("input file does not exist: %s: %w", inputPath, err)
	}

	outputPath := s.OutputPath(inputPath)
	if out, err := os.Stat(outputPath); err == nil && out.Size() > 0 && !out.ModTime().Before(info.ModTime()) {
		return outputPath, nil
	}

	s.tasksMutex.Lock()
	c, ok := s.inflight[inputPath]
	if ok {
		c.waiters++
		s.tasksMutex.Unlock()
		return s.wait(ctx, inputPath, c)
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	c = &call{done: make(chan struct{}), waiters: 1, cancel: cancel}
	s.inflight[inputPath] = c
	task := &model.TranscodeTask{
		ID:         generateTaskID(),
		InputPath:  inputPath,
		OutputPath: outputPath,
		Status:     model.TaskStatusPending,
		StartedAt:  time.Now(),
	}
	s.tasks[task.ID] = task
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)

	go func() {
		defer cancel()
		c.path, c.err = s.run(runCtx, task)

		s.tasksMutex.Lock()
		if s.inflight[inputPath] == c {
			delete(s.inflight, inputPath)
		}
		s.tasksMutex.Unlock()
		close(c.done)
	}()

	return s.wait(ctx, inputPath, c)
}

// wait blocks until c finishes or ctx is done. The last waiter to leave
// stops the conversion.
func (s *Service) wait(ctx context.Context, inputPath string, c *call) (string, error) {
	select {
	case <-c.done:
		return c.path, c.err
	case <-ctx.Done():
	}

	s.tasksMutex.Lock()
	c.waiters--
	if c.waiters == 0 {
		c.cancel()
		if s.inflight[inputPath] == c {
			delete(s.inflight, inputPath)
		}
	}
	s.tasksMutex.Unlock()
	return "", ctx.Err()
}

// GetTask returns a transcode task by ID
func (s *Service) GetTask(taskID string) (*model.TranscodeTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	task, exists := s.tasks[taskID]
	return task, exists
}

// run performs the conversion into a partial file and renames it on success
func (s *Service) run(ctx context.Context, task *model.TranscodeTask) (string, error) {
	ffmpeg, ffprobe := s.commandPair()
	if _, err := exec.LookPath(ffmpeg); err != nil {
		err = fmt.Errorf("%w: %v", ErrFFmpegMissing, err)
		s.setTaskError(task, err)
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(task.OutputPath), 0o755); err != nil {
		err = fmt.Errorf("failed to create output directory: %w", err)
		s.setTaskError(task, err)
		return "", err
	}

	// Without a duration the task still runs, only progress stays at zero
	duration, err := probeDuration(ctx, ffprobe, task.InputPath)
	if err != nil {
		log.Printf("transcode: duration of %s: %v", task.InputPath, err)
	}

	s.tasksMutex.Lock()
	task.Status = model.TaskStatusConverting
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)

	partial := task.OutputPath + PartialExtension
	cmd := exec.CommandContext(ctx, ffmpeg, s.BuildFFmpegArgs(task.InputPath, partial)...)

	stderr, err := cmd.StderrPipe()
	if err != nil {
		err = fmt.Errorf("failed to create stderr pipe: %w", err)
		s.setTaskError(task, err)
		return "", err
	}

	if err := cmd.Start(); err != nil {
		err = fmt.Errorf("failed to start ffmpeg: %w", err)
		s.setTaskError(task, err)
		return "", err
	}

	// stderr must be drained before Wait closes it
	s.monitorProgress(stderr, task, duration)
	err = cmd.Wait()

	if err != nil {
		os.Remove(partial)
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		} else {
			err = fmt.Errorf("ffmpeg: %w", err)
		}
		s.setTaskError(task, err)
		return "", err
	}

	if err := os.Rename(partial, task.OutputPath); err != nil {
		os.Remove(partial)
		err = fmt.Errorf("failed to move output: %w", err)
		s.setTaskError(task, err)
		return "", err
	}

	s.tasksMutex.Lock()
	task.Status = model.TaskStatusCompleted
	task.Progress = 1.0
	task.Percent = 100
	task.FinishedAt = time.Now()
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)

	return task.OutputPath, nil
}

// BuildFFmpegArgs builds the ffmpeg command arguments
func (s *Service) BuildFFmpegArgs(inputPath, outputPath string) []string {
	return []string{
		"-y",            // Overwrite output file
		"-i", inputPath, // Input file
		"-vn",                 // Drop cover art streams
		"-acodec", AudioCodec, // 16-bit PCM
		"-ar", SampleRate, // Sample rate
		"-ac", Channels, // Stereo
		"-f", OutputFormat, // Container, the partial name has no usable extension
		"-progress", ProgressPipeTarget, // Progress to stderr
		"-nostats", // No stats output
		outputPath, // Output file
	}
}

// probeDuration gets the duration in seconds using ffprobe
func probeDuration(ctx context.Context, ffprobe, filePath string) (float64, error) {
	cmd := exec.CommandContext(ctx, ffprobe, "-v", FFprobeLogLevel, "-show_entries", FFprobeShowEntries, "-of", FFprobeOutputFormat, filePath)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("failed to run ffprobe: %w", err)
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration: %w", err)
	}
	return duration, nil
}

// monitorProgress reads ffmpeg progress output until the stream ends
func (s *Service) monitorProgress(stderr io.Reader, task *model.TranscodeTask, totalDuration float64) {
	scanner := bufio.NewScanner(stderr)
	for scanner.Scan() {
		seconds, ok := parseProgressLine(scanner.Text())
		if !ok || totalDuration <= 0 {
			continue
		}

		progress := seconds / totalDuration
		if progress > 1.0 {
			progress = 1.0
		}

		s.tasksMutex.Lock()
		task.Progress = progress
		task.Percent = int(progress * 100)
		s.tasksMutex.Unlock()

		s.notifyUpdate(task)
	}
}

// parseProgressLine parses "out_time_us=123456" into seconds
func parseProgressLine(line string) (float64, bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, ProgressTimePrefix) {
		return 0, false
	}
	us, err := strconv.ParseInt(strings.TrimPrefix(line, ProgressTimePrefix), 10, 64)
	if err != nil || us < 0 {
		return 0, false
	}
	return float64(us) / 1000000.0, true
}

// setTaskError sets an error state for a task
func (s *Service) setTaskError(task *model.TranscodeTask, err error) {
	s.tasksMutex.Lock()
	task.Status = model.TaskStatusError
	task.LastError = err.Error()
	task.FinishedAt = time.Now()
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
}

// notifyUpdate hands a snapshot of task to the update callback if set
func (s *Service) notifyUpdate(task *model.TranscodeTask) {
	s.tasksMutex.RLock()
	callback := s.onUpdate
	snapshot := *task
	s.tasksMutex.RUnlock()

	if callback != nil {
		callback(&snapshot)
	}
}

func (s *Service) commandPair() (string, string) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	return s.ffmpeg, s.ffprobe
}

// generateTaskID generates a time-ordered task ID using UUID v7
func generateTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(TaskIDPrefix+"%d", time.Now().UnixNano())
	}
	return TaskIDPrefix + id.String()
}
