package persistence

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	apperrors "finledger/internal/errors"
	"finledger/internal/logger"
	"finledger/internal/models"
)

const storeFileName = "transactions.json"

// FileGateway persists snapshots as JSON files under a data directory:
// one budget file per user plus a single transaction store file.
type FileGateway struct {
	dataDir string
}

// NewFileGateway creates the data directory if needed and returns a gateway
// rooted there.
func NewFileGateway(dataDir string) (*FileGateway, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistenceFailure, err)
	}
	return &FileGateway{dataDir: dataDir}, nil
}

// budgetPath returns the file path holding a user's budget snapshot.
func (g *FileGateway) budgetPath(userID string) string {
	// User IDs are opaque; strip anything that could escape the data dir.
	safe := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '.', ':':
			return '_'
		}
		return r
	}, userID)
	return filepath.Join(g.dataDir, fmt.Sprintf("budget_%s.json", safe))
}

// SaveBudget writes the budget snapshot atomically (temp file + rename).
func (g *FileGateway) SaveBudget(_ context.Context, userID string, snap *models.BudgetSnapshot) error {
	data, err := EncodeBudget(snap)
	if err != nil {
		return err
	}
	return g.writeAtomic(g.budgetPath(userID), data)
}

// LoadBudget reads a user's budget snapshot. Returns NOT_FOUND when the user
// has never saved one.
func (g *FileGateway) LoadBudget(_ context.Context, userID string) (*models.BudgetSnapshot, error) {
	data, err := os.ReadFile(g.budgetPath(userID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrPersistenceFailure, err)
	}
	return DecodeBudget(data)
}

// SaveStore writes the transaction store snapshot atomically.
func (g *FileGateway) SaveStore(_ context.Context, snap *models.StoreSnapshot) error {
	data, err := EncodeStore(snap)
	if err != nil {
		return err
	}
	return g.writeAtomic(filepath.Join(g.dataDir, storeFileName), data)
}

// LoadStore reads the transaction store snapshot. Returns NOT_FOUND when no
// store has been saved yet.
func (g *FileGateway) LoadStore(_ context.Context) (*models.StoreSnapshot, error) {
	data, err := os.ReadFile(filepath.Join(g.dataDir, storeFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrPersistenceFailure, err)
	}
	return DecodeStore(data)
}

// writeAtomic writes data to a temp file in the same directory and renames
// it over the target, so a crash mid-write never corrupts the snapshot.
func (g *FileGateway) writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(g.dataDir, ".snapshot-*")
	if err != nil {
		return apperrors.Wrap(apperrors.ErrPersistenceFailure, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return apperrors.Wrap(apperrors.ErrPersistenceFailure, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return apperrors.Wrap(apperrors.ErrPersistenceFailure, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return apperrors.Wrap(apperrors.ErrPersistenceFailure, err)
	}
	logger.Get().Debugw("snapshot written", "path", path, "bytes", len(data))
	return nil
}
