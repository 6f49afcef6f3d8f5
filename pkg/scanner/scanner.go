// Package scanner discovers photo files on disk and classifies them
// against the catalog's file index as new, updated or deleted. It never
// touches the database itself; persistence is the caller's job.
package scanner

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/gabriel-vasile/mimetype"
)

// FileInfo describes one photo file found on disk.
type FileInfo struct {
	FilePath string
	Folder   string
	FileName string
	FileHash string
	Width    int
	Height   int
}

// Result is the outcome of one scan: the files not yet in the catalog,
// plus counts of files whose content changed and files the catalog knows
// about that are no longer on disk.
type Result struct {
	NewFiles []FileInfo
	Updated  int
	Deleted  int
}

// ErrOutsideRoot is returned when the requested folder resolves to a
// path outside the library root.
var ErrOutsideRoot = errors.New("folder escapes the photo library root")

type Scanner struct {
	root string
}

// New creates a scanner rooted at the photo library directory.
func New(root string) *Scanner {
	return &Scanner{root: filepath.Clean(root)}
}

// Scan walks the library (or the given subfolder of it) and compares what
// it finds against known, a file_path -> file_hash index of the catalog.
// Non-image files are skipped via MIME sniffing.
func (s *Scanner) Scan(folder string, known map[string]string) (*Result, error) {
	dir := s.root
	if folder != "" {
		// Join cleans the result, so "../x" style folders resolve before
		// the containment check.
		dir = filepath.Join(s.root, folder)
		if dir != s.root && !strings.HasPrefix(dir, s.root+string(os.PathSeparator)) {
			return nil, fmt.Errorf("%w: %q", ErrOutsideRoot, folder)
		}
	}

	result := &Result{}
	seen := make(map[string]bool)

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		mtype, err := mimetype.DetectFile(path)
		if err != nil {
			slog.Warn("skipping unreadable file", "path", path, "err", err)
			return nil
		}
		if !strings.HasPrefix(mtype.String(), "image/") {
			return nil
		}

		hash, err := hashFile(path)
		if err != nil {
			return err
		}
		seen[path] = true

		if knownHash, ok := known[path]; ok {
			if knownHash != hash {
				result.Updated++
			}
			return nil
		}

		width, height := imageDimensions(path)
		result.NewFiles = append(result.NewFiles, FileInfo{
			FilePath: path,
			Folder:   filepath.Dir(path),
			FileName: d.Name(),
			FileHash: hash,
			Width:    width,
			Height:   height,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Catalog entries under the scanned directory that are gone from disk.
	prefix := dir + string(os.PathSeparator)
	for path := range known {
		if strings.HasPrefix(path, prefix) && !seen[path] {
			result.Deleted++
		}
	}

	return result, nil
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// imageDimensions reads the image header only. Formats without a
// registered decoder report 0x0 and are filled in by later tooling.
func imageDimensions(path string) (int, int) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0
	}
	return cfg.Width, cfg.Height
}
