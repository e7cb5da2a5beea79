package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dkfz-mic/adeval/internal/archive"
	"github.com/dkfz-mic/adeval/internal/config"
	"github.com/dkfz-mic/adeval/internal/detection"
	"github.com/dkfz-mic/adeval/internal/models"
	"github.com/dkfz-mic/adeval/internal/reporting"
	"github.com/dkfz-mic/adeval/internal/results"
	"github.com/dkfz-mic/adeval/internal/spinner"
	"github.com/dkfz-mic/adeval/internal/store"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

//go:generate go tool mockgen -source=cmd_evaluate.go -destination=mocks_test.go -package=main

// runRecorder records finished runs in the history database.
type runRecorder interface {
	Insert(ctx context.Context, run *store.Run) error
	Close() error
}

// resultArchiver uploads a written result document.
type resultArchiver interface {
	Upload(ctx context.Context, runID, file string, data []byte) (string, error)
}

// evaluateDeps are the external services used by an evaluation run.
type evaluateDeps struct {
	openRecorder func(ctx context.Context, path string) (runRecorder, error)
	newArchiver  func(url string) (resultArchiver, error)
}

func defaultEvaluateDeps() evaluateDeps {
	return evaluateDeps{
		openRecorder: func(ctx context.Context, path string) (runRecorder, error) {
			return store.Open(ctx, path)
		},
		newArchiver: func(url string) (resultArchiver, error) {
			return archive.NewBlobUploader(url)
		},
	}
}

func newEvaluateCommand() *cobra.Command {
	var (
		segmentationCSV string
		groundTruthCSV  string
		outputPath      string
		workers         int
		interpret       bool
		format          string
		dbPath          string
		archiveURL      string
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate AD detection on a volume table",
		Long: `Evaluate how well the median of the ascending false lumen, descending false
lumen and membrane volumes detects aortic dissection.

The result document is written to --evaluation-output. A .gz or .zst suffix
compresses it. With --ground-truth-csv, ground-truth ascending false lumen
volumes are merged by file name and the Stanford classification is evaluated
among the detected dissections.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pc, err := loadProjectConfig()
			if err != nil {
				return err
			}

			opts := []config.Option{
				config.WithProjectDefaults(pc),
				config.WithGroundTruthCSV(groundTruthCSV),
				config.WithOutputPath(outputPath),
			}
			if outputPath == "" {
				opts = append(opts, config.WithOutputPath(defaultOutputPath(pc.Paths.Results, segmentationCSV)))
			}
			flags := cmd.Flags()
			if flags.Changed("workers") {
				opts = append(opts, config.WithWorkers(workers))
			}
			if flags.Changed("interpret") {
				opts = append(opts, config.WithInterpret(interpret))
			}
			if flags.Changed("format") {
				opts = append(opts, config.WithFormat(format))
			}
			if flags.Changed("db") {
				opts = append(opts, config.WithStorePath(dbPath))
			}
			if flags.Changed("archive-url") {
				opts = append(opts, config.WithArchiveURL(archiveURL))
			}
			cfg := config.NewEvaluationConfig(segmentationCSV, opts...)

			_, err = runEvaluation(cmd.Context(), cmd.OutOrStdout(), cfg, defaultEvaluateDeps())
			return err
		},
	}

	cmd.Flags().StringVarP(&segmentationCSV, "segmentation-csv", "s", "", "CSV of per-case volumes and is_AD labels (required)")
	cmd.Flags().StringVarP(&outputPath, "evaluation-output", "o", "", "Result document path (default <results dir>/<csv name>.evaluation.json)")
	cmd.Flags().StringVarP(&groundTruthCSV, "ground-truth-csv", "g", "", "CSV of ground-truth volumes; enables the Stanford classification")
	cmd.Flags().IntVar(&workers, "workers", 1, "Sweep positions evaluated concurrently")
	cmd.Flags().BoolVar(&interpret, "interpret", false, "Print a plain-language interpretation of the results")
	cmd.Flags().StringVar(&format, "format", "default", "Report format: default, markdown or html")
	cmd.Flags().StringVar(&dbPath, "db", "", "Record the run in this history database")
	cmd.Flags().StringVar(&archiveURL, "archive-url", "", "Upload the result to this Azure Blob container URL")
	_ = cmd.MarkFlagRequired("segmentation-csv")

	return cmd
}

// defaultOutputPath names the result after the input table.
func defaultOutputPath(resultsDir, segmentationCSV string) string {
	name := strings.TrimSuffix(filepath.Base(segmentationCSV), filepath.Ext(segmentationCSV))
	return filepath.Join(resultsDir, name+".evaluation.json")
}

// runEvaluation loads and evaluates the configured tables, writes the result
// document, records and archives it when configured, and prints the report.
func runEvaluation(ctx context.Context, out io.Writer, cfg *config.EvaluationConfig, deps evaluateDeps) (*models.EvaluationResult, error) {
	reportFormat, err := reporting.ParseFormat(cfg.Format())
	if err != nil {
		return nil, err
	}

	table, err := loadTable(cfg.SegmentationCSV(), cfg.GroundTruthCSV())
	if err != nil {
		return nil, err
	}
	slog.Info("evaluating", "cases", table.Len(), "ground_truth", table.HasGroundTruth, "workers", cfg.Workers())

	opts := cfg.DetectionOptions()
	stop := func() {}
	if isTerminal(out) {
		sp := spinner.Start(out, "Evaluating")
		opts.Progress = func(done, total int) {
			sp.Update(fmt.Sprintf("Evaluating sweep position %d/%d", done, total))
		}
		stop = sp.Stop
	}
	res, err := detection.Evaluate(table, opts)
	stop()
	if err != nil {
		return nil, err
	}

	if err := results.Write(cfg.OutputPath(), res); err != nil {
		return nil, err
	}

	runID := ""
	if cfg.StorePath() != "" {
		runID, err = recordRun(ctx, deps, cfg, res)
		if err != nil {
			return nil, err
		}
	}

	if cfg.ArchiveURL() != "" {
		if runID == "" {
			runID = uuid.New().String()
		}
		if err := archiveResult(ctx, out, deps, cfg, runID); err != nil {
			return nil, err
		}
	}

	if err := printReport(out, cfg, res, reportFormat); err != nil {
		return nil, err
	}
	fmt.Fprintf(out, "\nResult written to %s\n", cfg.OutputPath()) //nolint:errcheck
	return res, nil
}

func recordRun(ctx context.Context, deps evaluateDeps, cfg *config.EvaluationConfig, res *models.EvaluationResult) (string, error) {
	rec, err := deps.openRecorder(ctx, cfg.StorePath())
	if err != nil {
		return "", fmt.Errorf("opening run history: %w", err)
	}
	defer rec.Close() //nolint:errcheck

	run := store.NewRun(res, cfg.SegmentationCSV(), cfg.GroundTruthCSV(), cfg.OutputPath())
	if err := rec.Insert(ctx, run); err != nil {
		return "", fmt.Errorf("recording run: %w", err)
	}
	slog.Debug("recorded run", "run_id", run.RunID, "db", cfg.StorePath())
	return run.RunID, nil
}

func archiveResult(ctx context.Context, out io.Writer, deps evaluateDeps, cfg *config.EvaluationConfig, runID string) error {
	arch, err := deps.newArchiver(cfg.ArchiveURL())
	if err != nil {
		return err
	}
	data, err := os.ReadFile(cfg.OutputPath())
	if err != nil {
		return fmt.Errorf("reading result for upload: %w", err)
	}
	url, err := arch.Upload(ctx, runID, cfg.OutputPath(), data)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Result archived to %s\n", url) //nolint:errcheck
	return nil
}

// printReport writes the report to out. An HTML report bound for a terminal
// is written next to the result document instead.
func printReport(out io.Writer, cfg *config.EvaluationConfig, res *models.EvaluationResult, f reporting.Format) error {
	if f == reporting.FormatHTML && isTerminal(out) {
		page, err := reporting.HTMLReport(res, filepath.Base(cfg.SegmentationCSV()))
		if err != nil {
			return err
		}
		path := strings.TrimSuffix(cfg.OutputPath(), filepath.Ext(cfg.OutputPath())) + ".html"
		if err := os.WriteFile(path, []byte(page), 0644); err != nil {
			return fmt.Errorf("writing HTML report: %w", err)
		}
		fmt.Fprintf(out, "HTML report written to %s\n", path) //nolint:errcheck
		return nil
	}
	return reporting.Render(out, res, f, cfg.Interpret())
}
