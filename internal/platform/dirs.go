package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
	OSAndroid = "android"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Directory names under the platform roots
const (
	AppDirName    = "odii"
	AssetDirName  = "assets"
	CacheDirName  = "audio-cache"
	AssetDirEnv   = "ODII_ASSET_DIR"
	androidFiles  = "/data/data/app.odii/files"
	fyneAndroidSO = "libdist.so"
)

// IsAndroid reports whether the process runs inside an Android app.
// Fyne Android builds run as libdist.so, and GOOS may say linux there.
func IsAndroid() bool {
	return runtime.GOOS == OSAndroid ||
		os.Getenv("ANDROID_DATA") != "" ||
		os.Getenv("ANDROID_ROOT") != "" ||
		filepath.Base(os.Args[0]) == fyneAndroidSO
}

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// DefaultCacheDir returns where fetched narration files are stored
func DefaultCacheDir() (string, error) {
	if IsAndroid() {
		return filepath.Join(androidFiles, CacheDirName), nil
	}

	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user cache directory: %w", err)
	}
	return filepath.Join(base, AppDirName, CacheDirName), nil
}

// DefaultAssetDir returns the directory holding bundled audio and images.
// ODII_ASSET_DIR wins; otherwise an assets directory next to the executable,
// then one in the working directory.
func DefaultAssetDir() string {
	if dir := os.Getenv(AssetDirEnv); dir != "" {
		return dir
	}
	if IsAndroid() {
		return filepath.Join(androidFiles, AssetDirName)
	}
	if exe, err := os.Executable(); err == nil {
		dir := filepath.Join(filepath.Dir(exe), AssetDirName)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return AssetDirName
}
