package output

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/depthmotion/engine/core"
)

/**
 * @brief Follows a run directory while frames are written and reports each
 * frame index once all of its channels exist on disk.
 */
type Watcher struct {
	index *RunIndex

	fsnotify  *fsnotify.Watcher
	completed chan uint64
	errors    chan error
	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
	reported  map[uint64]bool
}

func NewWatcher(runDir string, channels []string) (*Watcher, error) {
	if len(channels) == 0 {
		channels = DefaultChannels
	}
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		index:     NewRunIndex(runDir, channels),
		fsnotify:  fsWatch,
		completed: make(chan uint64, 64),
		errors:    make(chan error, 8),
		done:      make(chan struct{}),
		reported:  make(map[uint64]bool),
	}, nil
}

// Start watches every channel folder of the run. Files already present are indexed first.
func (w *Watcher) Start() error {
	for _, ch := range w.index.Channels {
		if err := w.fsnotify.Add(w.channelDir(ch)); err != nil {
			w.fsnotify.Close()
			return err
		}
	}
	existing, err := ScanRun(w.index.Path, w.index.Channels)
	if err != nil {
		w.fsnotify.Close()
		return err
	}
	for _, fe := range existing.Frames() {
		for _, path := range fe.Files {
			w.handleFile(path)
		}
	}
	w.wg.Add(1)
	go w.run()
	return nil
}

func (w *Watcher) channelDir(ch string) string {
	return filepath.Join(w.index.Path, ch)
}

func (w *Watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case e, ok := <-w.fsnotify.Events:
			if !ok {
				return
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				w.handleFile(e.Name)
			}
			if e.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				w.index.Remove(e.Name)
			}
		case err, ok := <-w.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError(err.Error())
			select {
			case w.errors <- err:
			default:
			}
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) handleFile(path string) {
	index, ok, complete := w.index.Add(path)
	if !ok || !complete || w.reported[index] {
		return
	}
	w.reported[index] = true
	select {
	case w.completed <- index:
	default:
		core.LogWarn("output watcher dropped completion of frame %d", index)
	}
}

// Completed delivers frame indices as their last channel file appears.
func (w *Watcher) Completed() <-chan uint64 {
	return w.completed
}

func (w *Watcher) Errors() <-chan error {
	return w.errors
}

func (w *Watcher) Index() *RunIndex {
	return w.index
}

// Close stops the watcher goroutine. Safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		w.wg.Wait()
		err = w.fsnotify.Close()
	})
	return err
}
