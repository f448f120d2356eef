package survey

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultFile is the extract name inside a data directory.
const DefaultFile = "public.dat"

// NotFoundError lists every path tried while looking for the extract.
type NotFoundError struct {
	Tried []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("survey extract not found; tried: %s", strings.Join(e.Tried, ", "))
}

func (e *NotFoundError) Unwrap() error { return os.ErrNotExist }

// Candidates returns the search order for the extract. An explicit path
// is tried alone; otherwise dataDir (if set), the working directory's data/
// and its parent's data/, then data/ beside the executable.
func Candidates(explicit, dataDir string) []string {
	if explicit != "" {
		return []string{explicit}
	}

	var paths []string
	if dataDir != "" {
		paths = append(paths, filepath.Join(dataDir, DefaultFile))
	}
	paths = append(paths,
		filepath.Join("data", DefaultFile),
		filepath.Join("..", "data", DefaultFile),
	)
	if exe, err := os.Executable(); err == nil {
		dir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(dir, "data", DefaultFile),
			filepath.Join(dir, "..", "data", DefaultFile),
		)
	}
	return dedupe(paths)
}

// Locate returns the first candidate that exists as a regular file.
func Locate(explicit, dataDir string) (string, error) {
	tried := Candidates(explicit, dataDir)
	for _, p := range tried {
		info, err := os.Stat(p)
		if err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", &NotFoundError{Tried: tried}
}

func dedupe(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	out := paths[:0]
	for _, p := range paths {
		clean := filepath.Clean(p)
		if seen[clean] {
			continue
		}
		seen[clean] = true
		out = append(out, p)
	}
	return out
}
