package manifest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	domain "github.com/oshokin/scoop-manifest/internal/domain/manifest"
	"github.com/oshokin/scoop-manifest/internal/failure"
)

const (
	// FileExtension is appended to the application name.
	FileExtension = ".json"

	// DefaultFileMode is used for written manifests.
	DefaultFileMode os.FileMode = 0o644

	// indent matches the formatting of manifests in Scoop buckets.
	indent = "    "
)

// Repository defines persistence operations for manifests.
type Repository interface {
	Load(ctx context.Context, app string) (*domain.Manifest, error)
	Save(ctx context.Context, app string, m *domain.Manifest) (string, error)
}

// FileRepository stores manifests in a directory.
type FileRepository struct {
	// dir is where manifests are written; empty means the working directory.
	dir string
	// mu serializes writers of the same directory.
	mu sync.Mutex
}

// ErrNotFound is returned when the manifest file does not exist.
var ErrNotFound = errors.New("manifest not found")

// NewFileRepository creates a repository rooted at dir.
func NewFileRepository(dir string) *FileRepository {
	if dir != "" {
		dir = filepath.Clean(dir)
	}

	return &FileRepository{
		dir: dir,
	}
}

// Path returns the file path for app. Only the base component of app is used.
func (r *FileRepository) Path(app string) (string, error) {
	name, err := FileName(app)
	if err != nil {
		return "", err
	}

	return filepath.Join(r.dir, name), nil
}

// FileName returns "<base(app)>.json", rejecting names without a usable base.
func FileName(app string) (string, error) {
	base := filepath.Base(strings.ReplaceAll(strings.TrimSpace(app), `\`, "/"))
	if base == "." || base == ".." || base == "/" || base == "" {
		return "", failure.New(failure.Validation, "application name %q cannot be used as a file name", app)
	}

	return base + FileExtension, nil
}

// Load reads the manifest of app.
func (r *FileRepository) Load(_ context.Context, app string) (*domain.Manifest, error) {
	path, err := r.Path(app)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read manifest: %w", err)
	}

	m := new(domain.Manifest)
	if err = json.Unmarshal(contents, m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}

	return m, nil
}

// Save writes m as indented UTF-8 JSON and returns the final path.
func (r *FileRepository) Save(_ context.Context, app string, m *domain.Manifest) (string, error) {
	path, err := r.Path(app)
	if err != nil {
		return "", err
	}

	data, err := Encode(m)
	if err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err = writeFileAtomic(path, data); err != nil {
		return "", fmt.Errorf("write manifest: %w", err)
	}

	return path, nil
}

// Encode renders m the way it is stored: 4-space indent, no HTML escaping, trailing newline.
func Encode(m *domain.Manifest) ([]byte, error) {
	if m == nil {
		return nil, failure.New(failure.Validation, "manifest is not set")
	}

	var buf bytes.Buffer

	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", indent)

	if err := encoder.Encode(m); err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}

	return buf.Bytes(), nil
}

// writeFileAtomic writes data next to path and renames it into place.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}

	tmpName := tmp.Name()

	defer func() {
		// No-op after a successful rename.
		_ = os.Remove(tmpName)
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()

		return err
	}

	if err = tmp.Chmod(DefaultFileMode); err != nil {
		_ = tmp.Close()

		return err
	}

	if err = tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
