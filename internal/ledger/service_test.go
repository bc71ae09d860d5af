package ledger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallyup-dev/tallyup/internal/model"
)

func TestService_MissingFileIsEmpty(t *testing.T) {
	s := NewService(t.TempDir())
	txns, err := s.Load()
	require.NoError(t, err)
	assert.Nil(t, txns)
}

func TestService_SaveLoadRoundTrip(t *testing.T) {
	s := NewService(t.TempDir())
	in := []model.Transaction{
		mk("a", "2024-03-15", -45, "PAK N SAVE", "credit card"),
		mk("b", "2024-03-20", 120.5, "REFUND", "credit card"),
	}
	in[0].Flow = model.FlowExpense
	in[0].Raw = map[string]string{"Details": "PAK N SAVE"}

	require.NoError(t, s.Save(in))

	out, err := s.Load()
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].ID)
	assert.Equal(t, "-45", out[0].Amount.String())
	assert.Equal(t, model.FlowExpense, out[0].Flow)
	assert.Equal(t, "PAK N SAVE", out[0].Raw["Details"])
}

func TestService_SaveEmptyClearsStorage(t *testing.T) {
	dir := t.TempDir()
	s := NewService(dir)
	require.NoError(t, s.Save([]model.Transaction{mk("a", "2024-01-01", -1, "A", "")}))

	require.NoError(t, s.Save(nil))

	_, err := os.Stat(filepath.Join(dir, "transactions.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestService_ClearMissingFile(t *testing.T) {
	s := NewService(t.TempDir())
	assert.NoError(t, s.Clear())
}

func TestService_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "transactions.json"), []byte("{"), 0o644))

	s := NewService(dir)
	_, err := s.Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parsing ledger")
}
