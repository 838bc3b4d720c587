package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/recall-labs/recall-cli/internal/logger"
)

// watchDebounce is how long a file must stay quiet before it is ingested.
// Editors and downloads produce bursts of write events for one save.
const watchDebounce = 2 * time.Second

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Watch a directory and ingest files as they appear",
	Long: `Watches a directory for new or modified files and ingests each one
once it stops changing. Unsupported file types are ignored.

Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	dir := args[0]
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("watch %s: not a directory", dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	cmd.Printf("Watching %s (ctrl-c to stop)\n", dir)

	w := &dirWatcher{
		cmd:    cmd,
		timers: make(map[string]*time.Timer),
	}
	defer w.stop()

	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) {
				w.schedule(ctx, event.Name)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// dirWatcher debounces file events and runs ingestion once per settled file.
type dirWatcher struct {
	cmd    *cobra.Command
	mu     sync.Mutex
	timers map[string]*time.Timer
}

// schedule (re)arms the debounce timer for a path.
func (w *dirWatcher) schedule(ctx context.Context, path string) {
	if !supportedFile(path) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.timers[path]; ok {
		timer.Reset(watchDebounce)
		return
	}
	w.timers[path] = time.AfterFunc(watchDebounce, func() {
		w.ingest(ctx, path)
	})
}

// ingest runs one file through the pipeline and prints the outcome.
func (w *dirWatcher) ingest(ctx context.Context, path string) {
	w.mu.Lock()
	delete(w.timers, path)
	w.mu.Unlock()

	if ctx.Err() != nil {
		return
	}

	report, err := ingestService.IngestFile(ctx, path)
	if err != nil {
		w.cmd.PrintErrf("%s: %v\n", path, err)
		return
	}
	w.cmd.Printf("%s: %d added, %d skipped, %d failed\n",
		report.DocumentID, report.Added, report.Skipped, report.Failed)
}

// stop cancels all pending timers.
func (w *dirWatcher) stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, timer := range w.timers {
		timer.Stop()
		delete(w.timers, path)
	}
}

// supportedFile filters events down to the extensions the loaders handle.
func supportedFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf", ".txt", ".md", ".json":
		return true
	}
	return false
}
