package rundir

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDate = time.Date(2025, time.April, 6, 9, 30, 0, 0, time.UTC)

func TestManagerAllocatesDateStampedDirectory(t *testing.T) {
	root := t.TempDir()
	manager := newManagerAt(root, testDate)

	dir, err := manager.Dir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "output_2025-04-06"), dir)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestManagerCreatesOutputsRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "outputs")
	manager := newManagerAt(root, testDate)

	dir, err := manager.Dir()
	require.NoError(t, err)
	assert.DirExists(t, dir)
}

func TestManagerAllocatesOnce(t *testing.T) {
	manager := newManagerAt(t.TempDir(), testDate)

	first, err := manager.Dir()
	require.NoError(t, err)
	second, err := manager.Dir()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSameDayRunsGetNumberedSuffixes(t *testing.T) {
	root := t.TempDir()

	expected := []string{
		"output_2025-04-06",
		"output_2025-04-06_(1)",
		"output_2025-04-06_(2)",
	}
	for _, name := range expected {
		dir, err := newManagerAt(root, testDate).Dir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, name), dir)
	}
}

func TestSuffixCountsPastGaps(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"output_2025-04-06", "output_2025-04-06_(7)"} {
		require.NoError(t, os.Mkdir(filepath.Join(root, name), 0o755))
	}

	dir, err := newManagerAt(root, testDate).Dir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "output_2025-04-06_(8)"), dir)
}

func TestOtherDaysDirectoriesAreIgnored(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "output_2025-04-05"), 0o755))

	dir, err := newManagerAt(root, testDate).Dir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "output_2025-04-06"), dir)
}

func TestCreateLogFileIsExclusive(t *testing.T) {
	manager := newManagerAt(t.TempDir(), testDate)

	file, err := manager.CreateLogFile("transactions_log.txt")
	require.NoError(t, err)
	require.NoError(t, file.Close())

	_, err = manager.CreateLogFile("transactions_log.txt")
	assert.Error(t, err)
}

func TestCopyIn(t *testing.T) {
	srcDir := t.TempDir()
	srcPath := filepath.Join(srcDir, "transactions.csv")
	require.NoError(t, os.WriteFile(srcPath, []byte("Date,Reference,Amount\n"), 0o644))

	manager := newManagerAt(t.TempDir(), testDate)
	require.NoError(t, manager.CopyIn(srcPath))

	dir, err := manager.Dir()
	require.NoError(t, err)
	copied, err := os.ReadFile(filepath.Join(dir, "transactions.csv"))
	require.NoError(t, err)
	assert.Equal(t, "Date,Reference,Amount\n", string(copied))
}
