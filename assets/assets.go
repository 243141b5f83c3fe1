// Package assets locates game resources and mirrors the res/ tree next to
// the binary.
package assets

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// EnvOutDir overrides the resource root when no directory is given.
const EnvOutDir = "OUT_DIR"

// Resolver maps a resource path relative to the root (e.g.
// "res/assets/adventurer_sprite.yaml") to a path on disk.
type Resolver func(rel string) string

// FromOutDir resolves against dir. An empty dir falls back to $OUT_DIR, then
// to the directory holding the executable.
func FromOutDir(dir string) Resolver {
	root := Root(dir)
	return func(rel string) string {
		if filepath.IsAbs(rel) {
			return rel
		}
		return filepath.Join(root, filepath.FromSlash(rel))
	}
}

// Root picks the resource root FromOutDir resolves against.
func Root(dir string) string {
	if dir != "" {
		return dir
	}
	if env := os.Getenv(EnvOutDir); env != "" {
		return env
	}
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// MirrorStats counts what Mirror did.
type MirrorStats struct {
	Dirs    int
	Copied  int
	Skipped int
}

// Mirror copies the tree at src to dst. Directories are created as needed;
// files that already exist at the destination are left untouched.
func Mirror(src, dst string) (MirrorStats, error) {
	var stats MirrorStats
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			if _, err := os.Stat(target); err == nil {
				return nil
			}
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("create %s: %w", target, err)
			}
			stats.Dirs++
			return nil
		}

		if _, err := os.Stat(target); err == nil {
			stats.Skipped++
			return nil
		}
		if err := copyFile(path, target); err != nil {
			return err
		}
		stats.Copied++
		return nil
	})
	if err != nil {
		return stats, fmt.Errorf("mirror %s to %s: %w", src, dst, err)
	}
	return stats, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s: %w", src, err)
	}
	return out.Close()
}
