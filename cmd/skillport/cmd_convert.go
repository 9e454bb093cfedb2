package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"skillport/internal/construct"
	"skillport/internal/convert"
	"skillport/internal/history"
	"skillport/internal/logging"
)

var (
	convertTo      string
	convertFrom    string
	convertOut     string
	convertJobs    int
	convertDryRun  bool
	convertPreview bool
)

var convertCmd = &cobra.Command{
	Use:   "convert [path...]",
	Short: "Convert workflow documents to a target platform",
	Long: `Converts one or more workflow documents to the target platform.

Paths may be individual documents or directories; directories are
scanned for known platform layouts (.claude/skills, .cursor/rules,
.github/instructions, ...). With no paths on a terminal, an
interactive picker lists the documents found under the current
directory.

Example:
  skillport convert --to cursor .claude/skills/deploy/SKILL.md
  skillport convert --to claude --out ./converted ./myrepo`,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVar(&convertTo, "to", "", "target platform (claude, cursor, copilot)")
	convertCmd.Flags().StringVar(&convertFrom, "from", "", "source platform override for bare files")
	convertCmd.Flags().StringVar(&convertOut, "out", ".", "output root directory")
	convertCmd.Flags().IntVar(&convertJobs, "jobs", 4, "maximum concurrent conversions")
	convertCmd.Flags().BoolVar(&convertDryRun, "dry-run", false, "analyze and report without writing files")
	convertCmd.Flags().BoolVar(&convertPreview, "preview", false, "render the first converted document to the terminal")
}

func runConvert(cmd *cobra.Command, args []string) error {
	targetName := convertTo
	if targetName == "" {
		targetName = cfg.DefaultTarget
	}
	target, err := construct.ParseTarget(targetName)
	if err != nil {
		return err
	}

	docs, err := collectDocuments(args)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		if len(args) == 0 && isatty.IsTerminal(os.Stdout.Fd()) {
			docs, err = pickDocuments(".")
			if err != nil {
				return err
			}
		}
		if len(docs) == 0 {
			return fmt.Errorf("no convertible documents found")
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conv := convert.New(cfg)
	report, err := conv.Batch(ctx, docs, convert.BatchOptions{
		Target:  target,
		OutRoot: convertOut,
		Jobs:    convertJobs,
		DryRun:  convertDryRun,
	})
	if err != nil {
		return err
	}

	printReport(report)
	recordHistory(docs, report)

	if convertPreview && !convertDryRun {
		if err := previewFirst(report); err != nil {
			logging.Get(logging.CategoryConvert).Warn("preview failed", zap.Error(err))
		}
	}
	if report.FailureCount() > 0 {
		return fmt.Errorf("%d of %d documents failed to convert", report.FailureCount(), len(report.Items))
	}
	return nil
}

// collectDocuments resolves path arguments into documents: directories
// are discovered, bare files are classified by layout or --from.
func collectDocuments(args []string) ([]convert.Document, error) {
	var docs []convert.Document
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			found, err := convert.Discover(arg)
			if err != nil {
				return nil, err
			}
			docs = append(docs, found...)
			continue
		}
		platform, ok := convert.PlatformForPath(arg)
		if !ok {
			if convertFrom == "" {
				return nil, fmt.Errorf("cannot classify %s; pass --from", arg)
			}
			p, err := construct.ParseTarget(convertFrom)
			if err != nil {
				return nil, err
			}
			platform = p
		}
		docs = append(docs, convert.Document{Path: arg, Platform: platform})
	}
	return docs, nil
}

func printReport(report *convert.Report) {
	fmt.Println(titleStyle.Render(fmt.Sprintf("Converted %d document(s) to %s", len(report.Items), report.Target)))
	for _, item := range report.Items {
		switch {
		case item.Err != nil:
			fmt.Printf("  %s %s: %v\n", errStyle.Render("✗"), item.Source, item.Err)
		case convertDryRun:
			fmt.Printf("  %s %s %s\n", okStyle.Render("·"), item.Source, dimStyle.Render("(dry run)"))
		default:
			fmt.Printf("  %s %s → %s\n", okStyle.Render("✓"), item.Source, item.Output)
		}
		printWarnings(item.Warnings)
	}
	if report.SettingsPath != "" {
		fmt.Printf("  %s settings written to %s\n", okStyle.Render("✓"), report.SettingsPath)
	}
	fmt.Println(dimStyle.Render(fmt.Sprintf("run %s · %d warning(s) · %s", report.RunID, report.WarningCount(), report.Duration.Round(time.Millisecond))))
}

// recordHistory persists the run to the ledger; failures only log.
func recordHistory(docs []convert.Document, report *convert.Report) {
	if !cfg.History.Enabled || convertDryRun {
		return
	}
	log := logging.Get(logging.CategoryHistory)

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		log.Warn("history ledger unavailable", zap.Error(err))
		return
	}
	defer store.Close()

	source := "mixed"
	if len(docs) > 0 {
		same := true
		for _, d := range docs[1:] {
			if d.Platform != docs[0].Platform {
				same = false
				break
			}
		}
		if same {
			source = string(docs[0].Platform)
		}
	}

	files := make([]history.FileRecord, 0, len(report.Items))
	for _, item := range report.Items {
		rec := history.FileRecord{Path: item.Source, Output: item.Output, Warnings: len(item.Warnings)}
		if item.Err != nil {
			rec.Err = item.Err.Error()
		}
		files = append(files, rec)
	}

	err = store.Record(history.Run{
		ID:        report.RunID,
		StartedAt: report.StartedAt,
		Source:    source,
		Target:    string(report.Target),
		Files:     len(report.Items),
		Warnings:  report.WarningCount(),
		Failures:  report.FailureCount(),
	}, files)
	if err != nil {
		log.Warn("history record failed", zap.Error(err))
	}
}

// previewFirst renders the first successfully converted document.
func previewFirst(report *convert.Report) error {
	for _, item := range report.Items {
		if item.Err != nil || item.Output == "" {
			continue
		}
		data, err := os.ReadFile(item.Output)
		if err != nil {
			return err
		}
		rendered, err := glamour.Render(string(data), "dark")
		if err != nil {
			return err
		}
		fmt.Print(rendered)
		return nil
	}
	return nil
}
