package output

import (
	"fmt"
	"os"
	"path/filepath"
)

/**
 * @brief Indexes an existing run directory. Every channel folder must exist;
 * files that are not <index>.png are ignored.
 */
func ScanRun(dir string, channels []string) (*RunIndex, error) {
	if len(channels) == 0 {
		channels = DefaultChannels
	}
	ri := NewRunIndex(dir, channels)
	for _, ch := range channels {
		entries, err := os.ReadDir(filepath.Join(dir, ch))
		if err != nil {
			return nil, fmt.Errorf("func ScanRun - %w", err)
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			ri.Add(filepath.Join(dir, ch, e.Name()))
		}
	}
	return ri, nil
}

// LatestRun returns the newest run directory under base. Run names sort by time.
func LatestRun(base string) (string, error) {
	entries, err := os.ReadDir(base)
	if err != nil {
		return "", fmt.Errorf("func LatestRun - %w", err)
	}
	latest := ""
	for _, e := range entries {
		if e.IsDir() && e.Name() > latest {
			latest = e.Name()
		}
	}
	if latest == "" {
		return "", fmt.Errorf("func LatestRun - no run in %s", base)
	}
	return filepath.Join(base, latest), nil
}
