// =============================================================================
// Gift Aid Schedule Builder - Run Directory Manager
// =============================================================================
//
// Every invocation writes its outputs into a fresh, date-stamped directory
// under the outputs root: "output_<ISO-date>" for the first run of the day,
// then "output_<ISO-date>_(1)", "output_<ISO-date>_(2)", and so on for
// subsequent same-day runs. Creation is exclusive - a collision is fatal, so
// a run can never silently overwrite another run's audit trail.
//
// =============================================================================

package rundir

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/panthas05/gift-aid-schedule-builder/pkg/utils"
)

var runDirSuffixRegex = regexp.MustCompile(`^output_\d{4}-\d{2}-\d{2}_\((\d+)\)$`)

// Manager allocates and hands out the run's output directory. It is
// constructed once at the top of a run and passed down to everything that
// writes output; the directory itself is created on first use, exactly once,
// no matter how many call sites ask for it.
type Manager struct {
	dir func() (string, error)
}

// NewManager returns a Manager that will allocate run directories under
// root, date-stamped with the current day.
func NewManager(root string) *Manager {
	return newManagerAt(root, time.Now())
}

func newManagerAt(root string, now time.Time) *Manager {
	return &Manager{
		dir: sync.OnceValues(func() (string, error) {
			return allocate(root, now)
		}),
	}
}

// Dir returns the run's output directory, allocating it if this is the
// first request.
func (m *Manager) Dir() (string, error) {
	return m.dir()
}

// CreateLogFile creates a named log file in the run directory. Creation is
// exclusive for the same reason directory creation is: log files are part of
// the audit trail and must never clobber an existing file.
func (m *Manager) CreateLogFile(name string) (*os.File, error) {
	dir, err := m.Dir()
	if err != nil {
		return nil, err
	}
	path := filepath.Join(dir, name)
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file %s: %w", path, err)
	}
	return file, nil
}

// CopyIn copies a source file into the run directory under its base name,
// for auditability of the exact inputs the run saw.
func (m *Manager) CopyIn(srcPath string) error {
	dir, err := m.Dir()
	if err != nil {
		return err
	}
	dstPath := filepath.Join(dir, filepath.Base(srcPath))
	if err := utils.CopyFile(srcPath, dstPath); err != nil {
		return fmt.Errorf("failed to copy %s into run directory: %w", srcPath, err)
	}
	return nil
}

// allocate determines the run directory's name from its date-stamped
// siblings and creates it exclusively.
func allocate(root string, now time.Time) (string, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return "", fmt.Errorf("failed to create outputs directory %s: %w", root, err)
	}

	name, err := nextDirectoryName(root, now)
	if err != nil {
		return "", err
	}

	path := filepath.Join(root, name)
	// os.Mkdir fails if the directory already exists, which is exactly
	// what we want: a collision means something else grabbed the name
	// between the scan and now, and overwriting is never acceptable.
	if err := os.Mkdir(path, 0o755); err != nil {
		return "", fmt.Errorf("failed to create run directory %s: %w", path, err)
	}
	return path, nil
}

// nextDirectoryName scans the outputs root for directories carrying today's
// date stamp and picks the next free name: the bare stamp if unused,
// otherwise the stamp with a "_(n)" suffix one greater than the largest
// suffix seen (starting at 1).
func nextDirectoryName(root string, now time.Time) (string, error) {
	baseName := "output_" + now.Format(time.DateOnly)

	entries, err := os.ReadDir(root)
	if err != nil {
		return "", fmt.Errorf("failed to read outputs directory %s: %w", root, err)
	}

	baseNameTaken := false
	maxSuffix := 0
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, baseName) {
			continue
		}
		if name == baseName {
			baseNameTaken = true
			continue
		}
		if match := runDirSuffixRegex.FindStringSubmatch(name); match != nil {
			n, err := strconv.Atoi(match[1])
			if err == nil && n > maxSuffix {
				maxSuffix = n
			}
		}
	}

	if !baseNameTaken {
		return baseName, nil
	}
	return fmt.Sprintf("%s_(%d)", baseName, maxSuffix+1), nil
}
