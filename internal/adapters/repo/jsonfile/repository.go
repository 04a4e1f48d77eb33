package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bnema/mira/internal/domain"
	"github.com/bnema/mira/internal/ports"
	"github.com/spf13/viper"
)

const (
	WardrobePathKey    = "wardrobe.path"
	wardrobeFileMode   = 0o600
	wardrobeDirMode    = 0o700
	wardrobeConfigDir  = ".mira"
	wardrobeConfigFile = "mira_wardrobe.json"
	tempFilePattern    = ".mira_wardrobe-*.json.tmp"
	jsonIndent         = "    "
)

type Repository struct {
	wardrobePath string
	mu           *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.WardrobeRepository = (*Repository)(nil)

func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}

	return filepath.Join(homeDir, wardrobeConfigDir, wardrobeConfigFile), nil
}

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	wardrobePath := cfg.GetString(WardrobePathKey)
	if wardrobePath == "" {
		defaultPath, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		wardrobePath = defaultPath
	}

	wardrobePath, err := normalizeWardrobePath(wardrobePath)
	if err != nil {
		return nil, err
	}

	return &Repository{wardrobePath: wardrobePath, mu: lockForPath(wardrobePath)}, nil
}

func (r *Repository) Path() string {
	return r.wardrobePath
}

// Load returns the stored items. A corrupt document yields an empty slice
// together with an error wrapping domain.ErrCorruptWardrobe.
func (r *Repository) Load(ctx context.Context) ([]domain.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	entries, err := r.readDocument()
	if err != nil {
		return []domain.Item{}, err
	}

	items := make([]domain.Item, 0, len(entries))
	for _, entry := range entries {
		items = append(items, fromSchema(entry))
	}

	return items, nil
}

func (r *Repository) Append(ctx context.Context, item domain.Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.readDocument()
	if err != nil {
		if !errors.Is(err, domain.ErrCorruptWardrobe) {
			return err
		}
		entries = nil
	}

	entries = append(entries, toSchema(item))

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeDocument(entries)
}

func (r *Repository) readDocument() ([]itemSchema, error) {
	data, err := os.ReadFile(r.wardrobePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read wardrobe file: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var entries []itemSchema
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode wardrobe file %s: %w: %v", r.wardrobePath, domain.ErrCorruptWardrobe, err)
	}

	return entries, nil
}

func normalizeWardrobePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve wardrobe path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func (r *Repository) writeDocument(entries []itemSchema) error {
	if entries == nil {
		entries = []itemSchema{}
	}

	if err := os.MkdirAll(filepath.Dir(r.wardrobePath), wardrobeDirMode); err != nil {
		return fmt.Errorf("create wardrobe directory: %w", err)
	}

	data, err := json.MarshalIndent(entries, "", jsonIndent)
	if err != nil {
		return fmt.Errorf("encode wardrobe file: %w", err)
	}
	data = append(data, '\n')

	tempFile, err := os.CreateTemp(filepath.Dir(r.wardrobePath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp wardrobe file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp wardrobe file: %w", err)
	}

	if err := tempFile.Chmod(wardrobeFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp wardrobe file: %w", err)
	}

	if err := tempFile.Sync(); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("sync temp wardrobe file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp wardrobe file: %w", err)
	}

	if err := os.Rename(tempName, r.wardrobePath); err != nil {
		return fmt.Errorf("replace wardrobe file: %w", err)
	}

	cleanup = false

	return nil
}
