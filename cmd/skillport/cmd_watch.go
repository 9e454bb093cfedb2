package main

import (
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"skillport/internal/construct"
	"skillport/internal/convert"
	"skillport/internal/logging"
)

var (
	watchTo  string
	watchOut string
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Re-convert documents as they change",
	Long: `Watches a source tree and re-converts any known workflow document
when it is created or modified. Conversion itself stays one-shot per
document; watching only drives when a conversion is triggered.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchTo, "to", "", "target platform (claude, cursor, copilot)")
	watchCmd.Flags().StringVar(&watchOut, "out", ".", "output root directory")
}

func runWatch(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}
	targetName := watchTo
	if targetName == "" {
		targetName = cfg.DefaultTarget
	}
	target, err := construct.ParseTarget(targetName)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// fsnotify does not recurse; register every directory.
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			switch d.Name() {
			case ".git", "node_modules", "vendor":
				return filepath.SkipDir
			}
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := logging.Get(logging.CategoryWatch)
	conv := convert.New(cfg)
	fmt.Println(titleStyle.Render(fmt.Sprintf("watching %s → %s (ctrl-c to stop)", root, target)))

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", zap.Error(err))
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
				if ev.Has(fsnotify.Create) {
					_ = watcher.Add(ev.Name)
				}
				continue
			}
			platform, ok := convert.PlatformForPath(ev.Name)
			if !ok {
				continue
			}
			docs := []convert.Document{{Path: ev.Name, Platform: platform}}
			report, err := conv.Batch(ctx, docs, convert.BatchOptions{
				Target:  target,
				OutRoot: watchOut,
				Jobs:    1,
			})
			if err != nil {
				log.Warn("conversion failed", zap.String("path", ev.Name), zap.Error(err))
				continue
			}
			for _, item := range report.Items {
				if item.Err != nil {
					fmt.Printf("  %s %s: %v\n", errStyle.Render("✗"), item.Source, item.Err)
					continue
				}
				fmt.Printf("  %s %s → %s\n", okStyle.Render("✓"), item.Source, item.Output)
				printWarnings(item.Warnings)
			}
		}
	}
}
