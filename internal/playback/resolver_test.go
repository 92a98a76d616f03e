package playback

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/unicode/norm"
)

type stubFetcher struct {
	path  string
	calls []string
}

func (f *stubFetcher) Fetch(_ context.Context, rawURL string) (string, error) {
	f.calls = append(f.calls, rawURL)
	return f.path, nil
}

func TestResolver_AssetNormalForms(t *testing.T) {
	name := "겨울 아침의 몽마르트르 대로_카미유 피사로.wav"

	tests := []struct {
		name   string
		onDisk string
		ref    string
	}{
		{name: "composed on disk", onDisk: norm.NFC.String(name), ref: "asset://audio/" + norm.NFC.String(name)},
		{name: "decomposed on disk", onDisk: norm.NFD.String(name), ref: "asset://audio/" + norm.NFC.String(name)},
		{name: "decomposed reference", onDisk: norm.NFC.String(name), ref: "asset://audio/" + norm.NFD.String(name)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			dir := filepath.Join(root, "audio")
			if err := os.MkdirAll(dir, 0o755); err != nil {
				t.Fatal(err)
			}
			want := filepath.Join(dir, tt.onDisk)
			if err := os.WriteFile(want, []byte("RIFF"), 0o644); err != nil {
				t.Fatal(err)
			}

			src, err := NewResolver(root, nil).Resolve(context.Background(), tt.ref)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if src.Format != FormatWAV {
				t.Errorf("format = %q, want wav", src.Format)
			}
			if _, err := os.Stat(src.Path); err != nil {
				t.Errorf("resolved path %q does not exist: %v", src.Path, err)
			}
		})
	}
}

func TestResolver_MissingAsset(t *testing.T) {
	_, err := NewResolver(t.TempDir(), nil).Resolve(context.Background(), "asset://audio/none.wav")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Resolve() error = %v, want not exist", err)
	}
}

func TestResolver_AssetEscape(t *testing.T) {
	_, err := NewResolver(t.TempDir(), nil).Resolve(context.Background(), "asset://../secret.wav")
	if err == nil {
		t.Error("Resolve() expected error for path escaping the asset root")
	}
}

func TestResolver_RemoteUsesFetcher(t *testing.T) {
	f := &stubFetcher{path: "/cache/abc.mp3"}
	src, err := NewResolver("", f).Resolve(context.Background(), "https://example.com/audio/1-2.mp3")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if src.Path != "/cache/abc.mp3" || src.Format != FormatMP3 {
		t.Errorf("source = %+v", src)
	}
	if len(f.calls) != 1 || f.calls[0] != "https://example.com/audio/1-2.mp3" {
		t.Errorf("fetch calls = %v", f.calls)
	}
}

type stubTranscoder struct {
	out   string
	err   error
	calls []string
}

func (tc *stubTranscoder) Transcode(_ context.Context, inputPath string) (string, error) {
	tc.calls = append(tc.calls, inputPath)
	return tc.out, tc.err
}

func TestResolver_TranscodesUnsupportedAsset(t *testing.T) {
	root := t.TempDir()
	in := filepath.Join(root, "guide.m4a")
	if err := os.WriteFile(in, []byte("ftyp"), 0o644); err != nil {
		t.Fatal(err)
	}

	tc := &stubTranscoder{out: "/cache/transcoded/guide-pcm.wav"}
	r := NewResolver(root, nil)
	r.SetTranscoder(tc)

	src, err := r.Resolve(context.Background(), "asset://guide.m4a")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if src.Path != tc.out || src.Format != FormatWAV {
		t.Errorf("source = %+v", src)
	}
	if src.Ref != "asset://guide.m4a" {
		t.Errorf("ref = %q", src.Ref)
	}
	if len(tc.calls) != 1 || tc.calls[0] != in {
		t.Errorf("transcode calls = %v", tc.calls)
	}
}

func TestResolver_TranscodesFetchedRemote(t *testing.T) {
	f := &stubFetcher{path: "/cache/abc.flac"}
	tc := &stubTranscoder{out: "/cache/abc-pcm.wav"}
	r := NewResolver("", f)
	r.SetTranscoder(tc)

	src, err := r.Resolve(context.Background(), "https://example.com/a.flac")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if src.Path != "/cache/abc-pcm.wav" || src.Format != FormatWAV {
		t.Errorf("source = %+v", src)
	}
	if len(tc.calls) != 1 || tc.calls[0] != "/cache/abc.flac" {
		t.Errorf("transcode calls = %v", tc.calls)
	}
}

func TestResolver_SupportedFormatSkipsTranscoder(t *testing.T) {
	f := &stubFetcher{path: "/cache/abc.mp3"}
	tc := &stubTranscoder{}
	r := NewResolver("", f)
	r.SetTranscoder(tc)

	if _, err := r.Resolve(context.Background(), "https://example.com/a.mp3"); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(tc.calls) != 0 {
		t.Errorf("transcode calls = %v, want none", tc.calls)
	}
}

func TestResolver_TranscodeFailure(t *testing.T) {
	boom := errors.New("ffmpeg exited 1")
	r := NewResolver("", &stubFetcher{path: "/cache/abc.ogg"})
	r.SetTranscoder(&stubTranscoder{err: boom})

	_, err := r.Resolve(context.Background(), "https://example.com/a.ogg")
	if !errors.Is(err, boom) {
		t.Errorf("Resolve() error = %v, want %v", err, boom)
	}
}

func TestResolver_Errors(t *testing.T) {
	tests := []struct {
		name string
		r    *FileResolver
		ref  string
	}{
		{name: "empty", r: NewResolver("", nil), ref: ""},
		{name: "no fetcher", r: NewResolver("", nil), ref: "https://example.com/a.mp3"},
		{name: "bad scheme", r: NewResolver("", &stubFetcher{}), ref: "ftp://example.com/a.mp3"},
		{name: "bad format", r: NewResolver("", &stubFetcher{}), ref: "https://example.com/a.flac"},
		{name: "no asset root", r: NewResolver("", nil), ref: "asset://audio/a.wav"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.r.Resolve(context.Background(), tt.ref); err == nil {
				t.Error("Resolve() expected error")
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "a.mp3", want: FormatMP3},
		{in: "/x/B.MP3", want: FormatMP3},
		{in: "a.wav", want: FormatWAV},
		{in: "/audio/1-1.mp3?token=abc", want: FormatMP3},
		{in: "a.ogg", wantErr: true},
		{in: "noext", wantErr: true},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("FormatFromPath(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseEngineKind(t *testing.T) {
	for in, want := range map[string]EngineKind{"native": EngineNative, " Stream ": EngineStream} {
		got, err := ParseEngineKind(in)
		if err != nil || got != want {
			t.Errorf("ParseEngineKind(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseEngineKind("web"); err == nil {
		t.Error("ParseEngineKind(web) expected error")
	}
}
