package playback

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/odii/audio-guide/internal/model"
)

// Fetcher downloads a remote URL and returns the local file path
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (string, error)
}

// Transcoder converts a local file into WAV and returns the new path
type Transcoder interface {
	Transcode(ctx context.Context, inputPath string) (string, error)
}

// FileResolver resolves bundled asset references against an asset root and
// remote URLs through a Fetcher
type FileResolver struct {
	assetRoot  string
	fetcher    Fetcher
	transcoder Transcoder
}

// NewResolver creates a resolver. fetcher may be nil when only bundled
// assets are played.
func NewResolver(assetRoot string, fetcher Fetcher) *FileResolver {
	return &FileResolver{assetRoot: assetRoot, fetcher: fetcher}
}

// SetTranscoder lets the resolver play containers no engine decodes by
// converting them first. Without one such references fail with
// ErrUnsupportedFormat.
func (r *FileResolver) SetTranscoder(t Transcoder) {
	r.transcoder = t
}

// Resolve implements Resolver
func (r *FileResolver) Resolve(ctx context.Context, ref string) (Source, error) {
	if ref == "" {
		return Source{}, ErrNoSource
	}
	if err := ctx.Err(); err != nil {
		return Source{}, err
	}

	if rel, ok := model.AssetPath(ref); ok {
		format, formatErr := FormatFromPath(rel)
		if err := r.checkFormat(formatErr); err != nil {
			return Source{}, err
		}
		path, err := r.AssetFile(rel)
		if err != nil {
			return Source{}, err
		}
		return r.decodable(ctx, ref, path, format, formatErr)
	}

	u, err := url.Parse(ref)
	if err != nil {
		return Source{}, fmt.Errorf("parse audio reference: %w", err)
	}

	switch u.Scheme {
	case "http", "https":
		format, formatErr := FormatFromPath(u.Path)
		if err := r.checkFormat(formatErr); err != nil {
			return Source{}, err
		}
		if r.fetcher == nil {
			return Source{}, fmt.Errorf("no fetcher for remote audio %s", ref)
		}
		path, err := r.fetcher.Fetch(ctx, ref)
		if err != nil {
			return Source{}, fmt.Errorf("fetch %s: %w", ref, err)
		}
		return r.decodable(ctx, ref, path, format, formatErr)
	case "file", "":
		path := u.Path
		if u.Scheme == "" {
			path = ref
		}
		if _, err := os.Stat(path); err != nil {
			return Source{}, err
		}
		format, formatErr := FormatFromPath(path)
		if err := r.checkFormat(formatErr); err != nil {
			return Source{}, err
		}
		return r.decodable(ctx, ref, path, format, formatErr)
	default:
		return Source{}, fmt.Errorf("unsupported audio scheme %q", u.Scheme)
	}
}

// checkFormat fails early on a format error nothing can recover from
func (r *FileResolver) checkFormat(formatErr error) error {
	if formatErr == nil || (r.transcoder != nil && errors.Is(formatErr, ErrUnsupportedFormat)) {
		return nil
	}
	return formatErr
}

// decodable returns the source for path, converting it to WAV first when
// its format has no decoder
func (r *FileResolver) decodable(ctx context.Context, ref, path string, format Format, formatErr error) (Source, error) {
	if formatErr == nil {
		return Source{Ref: ref, Path: path, Format: format}, nil
	}
	out, err := r.transcoder.Transcode(ctx, path)
	if err != nil {
		return Source{}, fmt.Errorf("transcode %s: %w", ref, err)
	}
	return Source{Ref: ref, Path: out, Format: FormatWAV}, nil
}

// AssetFile finds rel under the asset root. Hangul file names may be stored
// composed or decomposed depending on the filesystem that packed them, so
// both normal forms are tried.
func (r *FileResolver) AssetFile(rel string) (string, error) {
	if r.assetRoot == "" {
		return "", fmt.Errorf("asset %q: no asset directory configured", rel)
	}
	if strings.Contains(rel, "..") {
		return "", fmt.Errorf("asset %q: %w", rel, fs.ErrInvalid)
	}

	seen := make(map[string]bool, 3)
	for _, candidate := range []string{rel, norm.NFC.String(rel), norm.NFD.String(rel)} {
		if seen[candidate] {
			continue
		}
		seen[candidate] = true

		path := filepath.Join(r.assetRoot, filepath.FromSlash(candidate))
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("asset %q: %w", rel, err)
		}
	}
	return "", fmt.Errorf("asset %q: %w", rel, fs.ErrNotExist)
}
