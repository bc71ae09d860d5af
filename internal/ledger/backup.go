package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/tallyup-dev/tallyup/internal/model"
)

// ErrBadFormat reports a structurally invalid backup payload. Imports
// validate the top-level shape before committing anything.
var ErrBadFormat = errors.New("unrecognized backup format")

// FormatVersion is the backup exchange format version.
const FormatVersion = 1

type backupFile struct {
	Version      int                 `json:"version"`
	ExportedAt   int64               `json:"exportedAt"` // epoch millis
	Transactions []model.Transaction `json:"transactions"`
}

// ExportBackup writes the full transaction collection as versioned JSON.
func ExportBackup(w io.Writer, txns []model.Transaction) error {
	payload := backupFile{
		Version:      FormatVersion,
		ExportedAt:   time.Now().UnixMilli(),
		Transactions: txns,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return fmt.Errorf("writing backup: %w", err)
	}
	return nil
}

// ImportBackup reads a backup payload, rejecting anything that is not the
// version-1 shape. Re-ingested transactions are expected to flow back
// through categorization before being merged.
func ImportBackup(r io.Reader) ([]model.Transaction, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading backup: %w", err)
	}

	var payload struct {
		Version      int             `json:"version"`
		Transactions json.RawMessage `json:"transactions"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFormat, err)
	}
	if payload.Version != FormatVersion || payload.Transactions == nil {
		return nil, ErrBadFormat
	}

	var txns []model.Transaction
	if err := json.Unmarshal(payload.Transactions, &txns); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFormat, err)
	}
	return txns, nil
}
