package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallyup-dev/tallyup/internal/importlog"
	"github.com/tallyup-dev/tallyup/internal/ledger"
	"github.com/tallyup-dev/tallyup/internal/rules"
)

func run(t *testing.T, args ...string) error {
	t.Helper()
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	return cmd.Execute()
}

func TestInit_CreatesStructure(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, run(t, "init", dir, "--currency", "NZD"))

	for _, d := range []string{"import", filepath.Join("import", "processed"), "logs"} {
		info, err := os.Stat(filepath.Join(dir, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir())
	}

	data, err := os.ReadFile(filepath.Join(dir, "tallyup.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "NZD")
}

func TestImport_FileArgument(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, run(t, "init", dir))

	csvPath := filepath.Join(dir, "statement.csv")
	csv := "Card,Type,Amount,Details,TransactionDate\n" +
		"1234,D,45.00,PAK N SAVE AUCKLAND,15/03/2024\n"
	require.NoError(t, os.WriteFile(csvPath, []byte(csv), 0o644))

	require.NoError(t, run(t, "import", csvPath, "--dir", dir))

	txns, err := ledger.NewService(dir).Load()
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "2024-03-15", txns[0].Date)

	entries, err := importlog.Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "statement.csv", entries[0].File)
	assert.Equal(t, 1, entries[0].Accepted)
}

func TestImport_ScansImportDirAndMarksProcessed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, run(t, "init", dir))

	csv := "Card,Type,Amount,Details,TransactionDate\n" +
		"1234,D,9.99,NETFLIX.COM,21/03/2024\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "import", "march.csv"), []byte(csv), 0o644))

	require.NoError(t, run(t, "import", "--dir", dir))

	txns, err := ledger.NewService(dir).Load()
	require.NoError(t, err)
	assert.Len(t, txns, 1)

	_, err = os.Stat(filepath.Join(dir, "import", "march.csv"))
	assert.True(t, os.IsNotExist(err), "source moved to processed")
	_, err = os.Stat(filepath.Join(dir, "import", "processed", "march.csv"))
	assert.NoError(t, err)
}

func TestBackup_ExportImportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, run(t, "init", dir))

	csvPath := filepath.Join(dir, "statement.csv")
	csv := "Card,Type,Amount,Details,TransactionDate\n" +
		"1234,D,45.00,PAK N SAVE AUCKLAND,15/03/2024\n"
	require.NoError(t, os.WriteFile(csvPath, []byte(csv), 0o644))
	require.NoError(t, run(t, "import", csvPath, "--dir", dir))

	backupPath := filepath.Join(dir, "backup.json")
	require.NoError(t, run(t, "backup", "export", backupPath, "--dir", dir))

	// A fresh directory imports the backup cleanly.
	dir2 := t.TempDir()
	require.NoError(t, run(t, "init", dir2))
	require.NoError(t, run(t, "backup", "import", backupPath, "--dir", dir2))

	txns, err := ledger.NewService(dir2).Load()
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "PAK N SAVE AUCKLAND", txns[0].Merchant)
}

func TestRules_ImportBadFileFails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, run(t, "init", dir))

	badPath := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(badPath, []byte("not json"), 0o644))

	err := run(t, "rules", "import", badPath, "--dir", dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, rules.ErrBadFormat)
}

func TestReclassify_EmptyDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, run(t, "init", dir))
	assert.NoError(t, run(t, "reclassify", "--dir", dir))
}
