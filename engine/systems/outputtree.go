package systems

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spaghettifunk/depthmotion/engine/core"
)

// TimestampLayout names run directories, yy_MM_dd_HHmmss on a 24 hour clock.
const TimestampLayout = "06_01_02_150405"

const dirPerm fs.FileMode = 0o755

/** @brief A created run directory and its channel subfolders. */
type RunDirectory struct {
	Path      string
	Timestamp string
	channels  map[string]string
}

// ChannelPath is the absolute folder of the channel subdirectory dir.
func (rd *RunDirectory) ChannelPath(dir string) (string, bool) {
	p, ok := rd.channels[dir]
	return p, ok
}

type OutputTree struct {
	root  string
	clock *core.Clock
}

func NewOutputTree(root string, clock *core.Clock) *OutputTree {
	if clock == nil {
		clock = core.NewClock()
	}
	return &OutputTree{root: root, clock: clock}
}

// Base is <root>/OutputData, shared by every run.
func (ot *OutputTree) Base() string {
	return filepath.Join(ot.root, OutputRootDir)
}

/**
 * @brief Creates <root>/OutputData/<timestamp>/ and one subfolder per entry of
 * dirs. The base folder is reused, the run folder never is.
 * @return ErrRunDirectoryExists when a run with the same timestamp exists.
 */
func (ot *OutputTree) Create(dirs []string) (*RunDirectory, error) {
	base := ot.Base()
	if err := os.MkdirAll(base, dirPerm); err != nil {
		return nil, fmt.Errorf("func OutputTree.Create - %w", err)
	}
	stamp := ot.clock.Now().Format(TimestampLayout)
	run := filepath.Join(base, stamp)
	if err := os.Mkdir(run, dirPerm); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("func OutputTree.Create - %w: %s", core.ErrRunDirectoryExists, run)
		}
		return nil, fmt.Errorf("func OutputTree.Create - %w", err)
	}
	rd := &RunDirectory{
		Path:      run,
		Timestamp: stamp,
		channels:  make(map[string]string, len(dirs)),
	}
	for _, dir := range dirs {
		p := filepath.Join(run, dir)
		if err := os.Mkdir(p, dirPerm); err != nil {
			return nil, fmt.Errorf("func OutputTree.Create - %w", err)
		}
		rd.channels[dir] = p
	}
	core.LogInfo("capture output directory %s", run)
	return rd, nil
}
