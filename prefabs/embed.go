package prefabs

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

//go:embed *.yaml
var PrefabsFS embed.FS

var (
	dirMu   sync.RWMutex
	diskDir = "prefabs"
)

// SetDir changes the on-disk directory checked before the embedded copies.
// An empty dir disables disk lookups.
func SetDir(dir string) {
	dirMu.Lock()
	defer dirMu.Unlock()
	diskDir = dir
}

// Dir returns the on-disk prefab directory.
func Dir() string {
	dirMu.RLock()
	defer dirMu.RUnlock()
	return diskDir
}

// LoadScript reads a tengo script, preferring the on-disk copy so edits are
// picked up on reload.
func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if path, ok := diskPrefabPath(clean); ok {
		if data, err := os.ReadFile(path); err == nil {
			return data, nil
		}
	}
	return ScriptsFS.ReadFile(clean)
}

func Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if path, ok := diskPrefabPath(clean); ok {
		if data, err := os.ReadFile(path); err == nil {
			return data, nil
		}
	}
	return PrefabsFS.ReadFile(clean)
}

func ModTime(name string) (time.Time, bool) {
	path, ok := diskPrefabPath(cleanPrefabPath(name))
	if !ok {
		return time.Time{}, false
	}
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func cleanPrefabPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if strings.HasPrefix(s, "prefabs/") {
		return strings.TrimPrefix(s, "prefabs/")
	}
	return s
}

func cleanScriptPath(path string) string {
	if path == "" {
		return ""
	}

	s := filepath.ToSlash(path)

	if after, ok := strings.CutPrefix(s, "prefabs/scripts/"); ok {
		s = after
	}

	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		s = after
	}

	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}

	return fmt.Sprintf("scripts/%s", s)
}

func diskPrefabPath(clean string) (string, bool) {
	dir := Dir()
	if dir == "" || clean == "" {
		return "", false
	}
	return filepath.Join(dir, filepath.FromSlash(clean)), true
}
