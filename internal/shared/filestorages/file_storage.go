package filestorages

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const tempPattern = ".tmp-*"

var (
	ErrFileNotFound      = errors.New("file not found")
	ErrFileAlreadyExists = errors.New("file already exists")
	ErrInvalidKey        = errors.New("invalid file key")
	ErrInvalidRootDir    = errors.New("invalid root directory")
)

type PutResult struct {
	FileKey string
	Size    int64
}

// FileStorage is a flat key/value view over a local directory. Keys are slash separated paths
// relative to the root; they can never escape it.
//
//go:generate mockgen -source=file_storage.go -destination=./mocks/file_storage_mock.go -package=mocks
type FileStorage interface {
	// Put publishes the content of r under key exactly once. Readers see either nothing or the
	// complete file; when key already exists the stored file is left untouched and
	// ErrFileAlreadyExists is returned.
	Put(ctx context.Context, key string, r io.Reader) (*PutResult, error)
	// Get opens the file under key; ErrFileNotFound when there is none.
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Exists(ctx context.Context, key string) (bool, error)
	// List returns the names of regular files directly under the root, symlinks to regular
	// files included, sorted, skipping hidden names (in-flight temp files among them).
	List(ctx context.Context) ([]string, error)
	// Root returns the absolute directory backing the storage.
	Root() string
}

type fileStorage struct {
	dir string
}

func NewFileStorage(rootDir string) (FileStorage, error) {
	if rootDir == "" {
		return nil, fmt.Errorf("%w: root directory cannot be empty", ErrInvalidRootDir)
	}

	absRootDir, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to resolve absolute path: %w", ErrInvalidRootDir, err)
	}

	return &fileStorage{dir: absRootDir}, nil
}

func (s *fileStorage) Put(ctx context.Context, key string, r io.Reader) (*PutResult, error) {
	finalPath, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(finalPath), 0o755); err != nil {
		return nil, err
	}

	tmpPath, size, err := s.writeTemp(ctx, filepath.Dir(finalPath), r)
	if err != nil {
		return nil, err
	}
	defer func() { _ = os.Remove(tmpPath) }()

	// A hard link fails with EEXIST instead of replacing, which a rename would do.
	if err := os.Link(tmpPath, finalPath); err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil, ErrFileAlreadyExists
		}
		return nil, err
	}

	return &PutResult{FileKey: key, Size: size}, nil
}

// writeTemp copies r into a synced hidden temp file in dir. The caller removes the file.
func (s *fileStorage) writeTemp(ctx context.Context, dir string, r io.Reader) (string, int64, error) {
	tmp, err := os.CreateTemp(dir, tempPattern)
	if err != nil {
		return "", 0, err
	}
	tmpPath := tmp.Name()

	size, err := io.Copy(tmp, r)
	if err == nil {
		err = tmp.Sync()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		_ = os.Remove(tmpPath)
		return "", 0, err
	}
	return tmpPath, size, nil
}

func (s *fileStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	fullPath, err := s.resolve(key)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	return file, nil
}

func (s *fileStorage) Exists(ctx context.Context, key string) (bool, error) {
	fullPath, err := s.resolve(key)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

func (s *fileStorage) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %q: %w", s.dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") || !s.isRegular(entry) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// isRegular follows symlinks, so rotated logs linked into the directory are listed. Dangling
// links and links to directories are not.
func (s *fileStorage) isRegular(entry fs.DirEntry) bool {
	if entry.Type()&fs.ModeSymlink == 0 {
		return entry.Type().IsRegular()
	}
	info, err := os.Stat(filepath.Join(s.dir, entry.Name()))
	return err == nil && info.Mode().IsRegular()
}

func (s *fileStorage) Root() string {
	return s.dir
}

// resolve maps key to an absolute path under the root, rejecting keys that would leave it.
func (s *fileStorage) resolve(key string) (string, error) {
	if key == "" || filepath.IsAbs(key) {
		return "", ErrInvalidKey
	}
	cleanKey := filepath.Clean(key)
	if cleanKey == "." || cleanKey == ".." || strings.HasPrefix(cleanKey, ".."+string(filepath.Separator)) {
		return "", ErrInvalidKey
	}

	fullPath := filepath.Join(s.dir, cleanKey)
	rel, err := filepath.Rel(s.dir, fullPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrInvalidKey
	}
	return fullPath, nil
}
