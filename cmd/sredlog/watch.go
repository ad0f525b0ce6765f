package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/sredlog/internal/logging"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate the time log when new commits land",
	Long: `Watch the repository and regenerate the time log whenever its refs
change. Runs until interrupted.

Examples:
  sredlog watch --output TIME_LOG.md
  sredlog watch --output time_log.json --format json`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file path (required)")
	watchCmd.Flags().StringVarP(&outputFmt, "format", "f", "", "output format: markdown, json or csv")
	watchCmd.MarkFlagRequired("output")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logging.Sync(logger)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// HEAD moves on checkout and commit; refs/heads on commit and branch
	// updates. Watching both catches history changes without watching the
	// whole object store.
	gitDir := filepath.Join(repoPath, ".git")
	if _, err := os.Stat(gitDir); err != nil {
		return fmt.Errorf("cannot watch %s: %w", gitDir, err)
	}
	for _, dir := range []string{gitDir, filepath.Join(gitDir, "refs", "heads")} {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	regenerate := func() {
		rep, _, err := buildReport(cmd, cfg, logger)
		if err != nil {
			logger.Error("failed to rebuild report", zap.Error(err))
			return
		}

		format := cfg.Output.Format
		if outputFmt != "" {
			format = outputFmt
		}

		if err := writeReportFile(outputPath, rep, format); err != nil {
			logger.Error("failed to write report", zap.Error(err))
			return
		}
		logger.Info("regenerated time log",
			zap.String("path", outputPath),
			zap.Float64("total_hours", rep.TotalHours),
		)
	}

	// Initial generation so the output exists before the first change.
	regenerate()

	debounce := cfg.Watch.Debounce.Duration()
	var timer *time.Timer
	pending := make(chan struct{}, 1)

	logger.Info("watching repository", zap.String("repo", repoPath))
	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			// Coalesce event bursts from a single git operation.
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})
		case <-pending:
			regenerate()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", zap.Error(err))
		}
	}
}
