package engine

import (
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"go.uber.org/atomic"
)

// Name is the engine executable name without platform suffix.
const Name = "qalc"

// Resolver locates the qalc executable and caches the result. Reads are safe
// from any goroutine; writes happen only in NewResolver and Override.
type Resolver struct {
	logger *slog.Logger
	path   atomic.String

	// lookPath and statFile are overridable for testing.
	lookPath func(file string) (string, error)
	statFile func(name string) (os.FileInfo, error)
}

// NewResolver creates a Resolver and resolves immediately. dir is an optional
// directory that is searched before PATH.
func NewResolver(dir string, logger *slog.Logger) *Resolver {
	r := &Resolver{
		logger:   logger,
		lookPath: exec.LookPath,
		statFile: os.Stat,
	}
	r.Override(dir)
	return r
}

// Override re-resolves the engine location using dir, falling back to PATH,
// and returns the new location ("" when not found).
func (r *Resolver) Override(dir string) string {
	candidate := r.resolve(dir)
	r.path.Store(candidate)
	if candidate == "" {
		r.logger.Warn("qalc not found", "dir", dir)
	} else {
		r.logger.Debug("qalc resolved", "path", candidate)
	}
	return candidate
}

func (r *Resolver) resolve(dir string) string {
	if dir != "" {
		candidate := filepath.Join(dir, executableName())
		if info, err := r.statFile(candidate); err == nil && info.Mode().IsRegular() {
			if abs, err := filepath.Abs(candidate); err == nil {
				return abs
			}
			return candidate
		}
	}

	found, err := r.lookPath(Name)
	if err != nil {
		return ""
	}
	if abs, err := filepath.Abs(found); err == nil {
		return abs
	}
	return found
}

// Path returns the cached engine location and whether one was found.
func (r *Resolver) Path() (string, bool) {
	p := r.path.Load()
	return p, p != ""
}

// Found reports whether an engine location is known.
func (r *Resolver) Found() bool {
	_, ok := r.Path()
	return ok
}

// Require returns the engine location or ErrEngineNotFound.
func (r *Resolver) Require() (string, error) {
	p, ok := r.Path()
	if !ok {
		return "", ErrEngineNotFound
	}
	return p, nil
}

func executableName() string {
	if runtime.GOOS == "windows" {
		return Name + ".exe"
	}
	return Name
}
