package output

import (
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/spaghettifunk/depthmotion/engine/systems"
)

// DefaultChannels are the channel folders of a capture run, in write order.
var DefaultChannels = []string{systems.ViewDir, systems.DepthDir, systems.MotionDir}

/** @brief The files of one captured frame, keyed by channel folder. */
type FrameEntry struct {
	Index uint64
	Files map[string]string
}

// Complete reports whether every channel in channels has a file.
func (fe FrameEntry) Complete(channels []string) bool {
	for _, ch := range channels {
		if _, ok := fe.Files[ch]; !ok {
			return false
		}
	}
	return true
}

/**
 * @brief Per frame index of a run directory. Safe for concurrent use, the
 * watcher fills it from its own goroutine.
 */
type RunIndex struct {
	Path     string
	Channels []string

	mutex  sync.RWMutex
	frames map[uint64]map[string]string
}

func NewRunIndex(path string, channels []string) *RunIndex {
	return &RunIndex{
		Path:     path,
		Channels: channels,
		frames:   make(map[uint64]map[string]string),
	}
}

// parseFrameFile splits <run>/<channel>/<index>.png.
func (ri *RunIndex) parseFrameFile(path string) (string, uint64, bool) {
	if filepath.Ext(path) != ".png" {
		return "", 0, false
	}
	channel := filepath.Base(filepath.Dir(path))
	known := false
	for _, ch := range ri.Channels {
		if ch == channel {
			known = true
			break
		}
	}
	if !known {
		return "", 0, false
	}
	index, err := strconv.ParseUint(strings.TrimSuffix(filepath.Base(path), ".png"), 10, 64)
	if err != nil {
		return "", 0, false
	}
	return channel, index, true
}

/**
 * @brief Records path if it names a frame file of a known channel.
 * @return The frame index and whether the frame is now complete.
 */
func (ri *RunIndex) Add(path string) (uint64, bool, bool) {
	channel, index, ok := ri.parseFrameFile(path)
	if !ok {
		return 0, false, false
	}
	ri.mutex.Lock()
	defer ri.mutex.Unlock()
	files, exists := ri.frames[index]
	if !exists {
		files = make(map[string]string, len(ri.Channels))
		ri.frames[index] = files
	}
	files[channel] = path
	return index, true, FrameEntry{Index: index, Files: files}.Complete(ri.Channels)
}

func (ri *RunIndex) Remove(path string) {
	channel, index, ok := ri.parseFrameFile(path)
	if !ok {
		return
	}
	ri.mutex.Lock()
	defer ri.mutex.Unlock()
	files, exists := ri.frames[index]
	if !exists {
		return
	}
	delete(files, channel)
	if len(files) == 0 {
		delete(ri.frames, index)
	}
}

// Frames returns a copy of every indexed frame in numeric index order.
func (ri *RunIndex) Frames() []FrameEntry {
	ri.mutex.RLock()
	defer ri.mutex.RUnlock()
	entries := make([]FrameEntry, 0, len(ri.frames))
	for index, files := range ri.frames {
		cp := make(map[string]string, len(files))
		for k, v := range files {
			cp[k] = v
		}
		entries = append(entries, FrameEntry{Index: index, Files: cp})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Index < entries[j].Index })
	return entries
}

// Complete lists the indices that have a file in every channel, ascending.
func (ri *RunIndex) Complete() []uint64 {
	var out []uint64
	for _, fe := range ri.Frames() {
		if fe.Complete(ri.Channels) {
			out = append(out, fe.Index)
		}
	}
	return out
}

// Incomplete lists the indices missing at least one channel, ascending.
func (ri *RunIndex) Incomplete() []uint64 {
	var out []uint64
	for _, fe := range ri.Frames() {
		if !fe.Complete(ri.Channels) {
			out = append(out, fe.Index)
		}
	}
	return out
}
