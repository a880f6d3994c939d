package s3publish

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ManifestVersion is the current manifest format version.
const ManifestVersion = 1

// ManifestName is the object name the manifest is uploaded under.
const ManifestName = "manifest.json"

// ErrManifestMismatch is returned by VerifyManifest when a file differs.
var ErrManifestMismatch = errors.New("s3publish: manifest mismatch")

// Manifest describes a published results directory.
type Manifest struct {
	Version   int                 `json:"version"`
	CreatedAt time.Time           `json:"created_at"`
	RunID     string              `json:"run_id,omitempty"`
	Files     map[string]FileInfo `json:"files"`
}

// FileInfo describes a single published file.
type FileInfo struct {
	Size     int64  `json:"size"`
	Checksum string `json:"checksum"` // SHA-256 hex
}

func newManifest(runID string) *Manifest {
	return &Manifest{
		Version:   ManifestVersion,
		CreatedAt: time.Now().UTC(),
		RunID:     runID,
		Files:     make(map[string]FileInfo),
	}
}

// add records path under its slash-separated relative name.
func (m *Manifest) add(rel, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	sum, err := checksumFile(path)
	if err != nil {
		return fmt.Errorf("checksum %s: %w", rel, err)
	}
	m.Files[rel] = FileInfo{Size: info.Size(), Checksum: sum}
	return nil
}

// Marshal returns the indented JSON encoding.
func (m *Manifest) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	return append(data, '\n'), nil
}

// BuildManifest checksums every file Publish would upload from dir.
func BuildManifest(dir, runID string) (*Manifest, error) {
	m := newManifest(runID)
	err := walkPublishable(dir, func(rel, path string) error {
		return m.add(rel, path)
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// ParseManifest decodes a manifest.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}
	if m.Version != ManifestVersion {
		return nil, fmt.Errorf("unsupported manifest version %d", m.Version)
	}
	return &m, nil
}

// VerifyManifest checks that every file listed in m exists under dir with
// the recorded size and checksum.
func VerifyManifest(dir string, m *Manifest) error {
	for rel, info := range m.Files {
		path := filepath.Join(dir, filepath.FromSlash(rel))

		stat, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("file %s: %w", rel, err)
		}
		if stat.Size() != info.Size {
			return fmt.Errorf("%w: %s size %d, want %d", ErrManifestMismatch, rel, stat.Size(), info.Size)
		}

		sum, err := checksumFile(path)
		if err != nil {
			return fmt.Errorf("checksum %s: %w", rel, err)
		}
		if sum != info.Checksum {
			return fmt.Errorf("%w: %s checksum", ErrManifestMismatch, rel)
		}
	}
	return nil
}

// walkPublishable calls fn for every regular file under dir except .tmp
// leftovers and a previous manifest, with its slash-separated relative path.
func walkPublishable(dir string, fn func(rel, path string) error) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() || strings.HasSuffix(path, ".tmp") {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == ManifestName {
			return nil
		}
		return fn(rel, path)
	})
}

func checksumFile(path string) (string, error) {
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
