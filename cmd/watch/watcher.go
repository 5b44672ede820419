package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/LegacyCodeHQ/bagsakan/cmd/run"
	"github.com/LegacyCodeHQ/bagsakan/scan"
	"github.com/LegacyCodeHQ/bagsakan/source"
)

const debounceInterval = 300 * time.Millisecond

var skippedDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"build":        true,
	"dist":         true,
	"coverage":     true,
	".idea":        true,
	".vscode":      true,
}

var watchedExtensions = map[string]bool{
	".ts":  true,
	".tsx": true,
	".mts": true,
	".cts": true,
}

// rebuilder reruns generation. Runs never overlap, and none starts after stop.
type rebuilder struct {
	mu      sync.Mutex
	stopped bool
	session *run.Session
	watcher *fsnotify.Watcher
	watched map[string]bool
}

func newRebuilder(session *run.Session, watcher *fsnotify.Watcher) *rebuilder {
	return &rebuilder{session: session, watcher: watcher, watched: map[string]bool{}}
}

func (r *rebuilder) rebuild() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return
	}

	res, _, err := r.session.Regenerate()
	if err != nil {
		r.session.Logger.Error("generation failed", zap.Error(err))
		for _, hint := range errors.GetAllHints(err) {
			r.session.Logger.Info(hint)
		}
	}
	if res != nil {
		r.watchVisited(res)
	}
	_ = r.session.Logger.Sync()
}

// stop waits for a running rebuild to finish and disables later ones, so
// the validator file is never left half written on shutdown.
func (r *rebuilder) stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopped = true
}

// watchVisited adds the directory of every visited file outside the
// recursively watched project directory, e.g. resolved package declarations.
func (r *rebuilder) watchVisited(res *scan.Result) {
	if r.watcher == nil {
		return
	}
	for _, dir := range visitedDirs(res, r.session.Dir) {
		if r.watched[dir] {
			continue
		}
		if err := r.watcher.Add(dir); err != nil && !errors.Is(err, fs.ErrNotExist) {
			r.session.Logger.Warn("failed to watch directory", zap.String("dir", dir), zap.Error(err))
			continue
		}
		r.watched[dir] = true
	}
}

// visitedDirs returns the directories holding visited files that the
// recursive walk of root does not cover.
func visitedDirs(res *scan.Result, root string) []string {
	root = source.Canonical(root)
	seen := map[string]bool{}
	var dirs []string
	for _, file := range res.Registry.Visited() {
		dir := filepath.Dir(file)
		if seen[dir] || coveredByWalk(root, dir) {
			continue
		}
		seen[dir] = true
		dirs = append(dirs, dir)
	}
	return dirs
}

func coveredByWalk(root, dir string) bool {
	rel, err := filepath.Rel(root, dir)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if skippedDirs[part] {
			return false
		}
	}
	return true
}

func watchAndRebuild(ctx context.Context, r *rebuilder) error {
	defer r.stop()

	if err := addWatchDirs(r.watcher, r.session.Dir); err != nil {
		return errors.Wrap(err, "failed to watch directories")
	}

	output := source.Canonical(scan.OutputPath(scan.Options{Config: r.session.Config, Dir: r.session.Dir}))
	logger := r.session.Logger
	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return nil

		case event, ok := <-r.watcher.Events:
			if !ok {
				return nil
			}

			if event.Has(fsnotify.Create) {
				addIfDirectory(r.watcher, event.Name)
			}

			if !isRelevantChange(event, output) {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceInterval, r.rebuild)

		case err, ok := <-r.watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", zap.Error(err))
		}
	}
}

// isRelevantChange reports whether event touches a TypeScript source other
// than the generated validator file.
func isRelevantChange(event fsnotify.Event, output string) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	if !watchedExtensions[filepath.Ext(event.Name)] {
		return false
	}
	return source.Canonical(event.Name) != output
}

func addWatchDirs(watcher *fsnotify.Watcher, root string) error {
	return addWatchDirsWithAdder(root, watcher.Add)
}

// addWatchDirsWithAdder walks root and hands every directory outside
// skippedDirs to add. Paths that vanish mid-walk are ignored.
func addWatchDirsWithAdder(root string, add func(string) error) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skippedDirs[d.Name()] {
			return filepath.SkipDir
		}
		if err := add(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return filepath.SkipDir
			}
			return err
		}
		return nil
	})
}

func addIfDirectory(watcher *fsnotify.Watcher, path string) {
	info, err := os.Stat(path)
	if err != nil {
		return
	}
	if info.IsDir() {
		_ = addWatchDirs(watcher, path)
	}
}
