package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tallyup-dev/tallyup/internal/model"
)

// Service persists the transaction collection as a JSON file under the
// data root. The pipeline owns the in-memory collection; this service only
// moves it to and from disk.
type Service struct {
	dataRoot string
}

// NewService creates a ledger Service rooted at dataRoot.
func NewService(dataRoot string) *Service {
	return &Service{dataRoot: dataRoot}
}

const ledgerFile = "transactions.json"

func (s *Service) path() string {
	return filepath.Join(s.dataRoot, ledgerFile)
}

// Load reads the persisted transaction collection. A missing file is an
// empty collection, not an error.
func (s *Service) Load() ([]model.Transaction, error) {
	data, err := os.ReadFile(s.path())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading ledger: %w", err)
	}
	var txns []model.Transaction
	if err := json.Unmarshal(data, &txns); err != nil {
		return nil, fmt.Errorf("parsing ledger: %w", err)
	}
	return txns, nil
}

// Save replaces the persisted collection. An empty collection clears
// storage rather than leaving an empty file behind.
func (s *Service) Save(txns []model.Transaction) error {
	if len(txns) == 0 {
		return s.Clear()
	}
	if err := os.MkdirAll(s.dataRoot, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	data, err := json.MarshalIndent(txns, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling ledger: %w", err)
	}
	if err := os.WriteFile(s.path(), data, 0o644); err != nil {
		return fmt.Errorf("writing ledger: %w", err)
	}
	return nil
}

// Clear removes the persisted collection.
func (s *Service) Clear() error {
	err := os.Remove(s.path())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clearing ledger: %w", err)
	}
	return nil
}
