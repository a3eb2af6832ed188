package infra

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// FileStore persists uploaded order files and hands their bytes back to the
// parse pipeline. Files are grouped per customer with a date-stamped name so
// re-uploads of identically named files never clobber each other.
type FileStore struct {
	root string
}

func NewFileStore(root string) *FileStore { return &FileStore{root: root} }

// Save writes the uploaded file and returns its store-relative path.
func (s *FileStore) Save(customerID uuid.UUID, fileName string, data []byte) (string, error) {
	dir := filepath.Join(s.root, "orders", "customer-"+customerID.String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("filestore: create dir: %w", err)
	}

	name := fmt.Sprintf("%s_%s", time.Now().Format("02-01-2006"), filepath.Base(fileName))
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err == nil {
		// Same customer, same file, same day: disambiguate.
		name = fmt.Sprintf("%s_%s_%s", time.Now().Format("02-01-2006"), uuid.NewString()[:8], filepath.Base(fileName))
		path = filepath.Join(dir, name)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("filestore: write: %w", err)
	}

	rel, err := filepath.Rel(s.root, path)
	if err != nil {
		return "", err
	}
	return rel, nil
}

// Remove deletes a stored file. Missing files are not an error.
func (s *FileStore) Remove(relPath string) error {
	err := os.Remove(filepath.Join(s.root, filepath.Clean(relPath)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("filestore: remove: %w", err)
	}
	return nil
}

// Open returns the stored file's bytes and size.
func (s *FileStore) Open(relPath string) ([]byte, int64, error) {
	path := filepath.Join(s.root, filepath.Clean(relPath))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("filestore: read: %w", err)
	}
	return data, int64(len(data)), nil
}
