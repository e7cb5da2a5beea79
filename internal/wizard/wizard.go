// Package wizard collects .adeval.yaml settings interactively.
package wizard

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/dkfz-mic/adeval/internal/archive"
	"github.com/dkfz-mic/adeval/internal/projectconfig"
	"golang.org/x/term"
)

// Answers holds the raw values entered in the form.
type Answers struct {
	ResultsDir   string
	Workers      string
	Format       string
	Interpret    bool
	StoreEnabled bool
	StorePath    string
	ArchiveURL   string
}

// AnswersFrom pre-fills the form from an existing config.
func AnswersFrom(cfg *projectconfig.ProjectConfig) Answers {
	a := Answers{
		ResultsDir: cfg.Paths.Results,
		Workers:    strconv.Itoa(cfg.Evaluation.Workers),
		Format:     cfg.Evaluation.Format,
		StorePath:  cfg.Store.Path,
		ArchiveURL: cfg.Archive.URL,
	}
	if cfg.Evaluation.Interpret != nil {
		a.Interpret = *cfg.Evaluation.Interpret
	}
	if cfg.Store.Enabled != nil {
		a.StoreEnabled = *cfg.Store.Enabled
	}
	return a
}

// Config converts the answers into a project config.
func (a Answers) Config() (*projectconfig.ProjectConfig, error) {
	if err := ValidateWorkers(a.Workers); err != nil {
		return nil, err
	}
	if err := ValidateArchiveURL(a.ArchiveURL); err != nil {
		return nil, err
	}
	workers, _ := strconv.Atoi(strings.TrimSpace(a.Workers))

	cfg := projectconfig.New()
	if dir := strings.TrimSpace(a.ResultsDir); dir != "" {
		cfg.Paths.Results = dir
	}
	cfg.Evaluation.Workers = workers
	if a.Format != "" {
		cfg.Evaluation.Format = a.Format
	}
	interpret := a.Interpret
	cfg.Evaluation.Interpret = &interpret
	enabled := a.StoreEnabled
	cfg.Store.Enabled = &enabled
	if p := strings.TrimSpace(a.StorePath); p != "" {
		cfg.Store.Path = p
	}
	cfg.Archive.URL = strings.TrimSpace(a.ArchiveURL)
	return cfg, nil
}

// ValidateWorkers accepts an integer between 1 and 256.
func ValidateWorkers(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("workers must be a whole number")
	}
	if n < 1 || n > 256 {
		return fmt.Errorf("workers must be between 1 and 256")
	}
	return nil
}

// ValidateArchiveURL accepts an empty string or a blob container URL.
func ValidateArchiveURL(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	_, err := archive.ParseURL(strings.TrimSpace(s))
	return err
}

// RunConfigWizard runs an interactive huh form pre-filled from defaults and
// returns the resulting config.
func RunConfigWizard(in io.Reader, out io.Writer, defaults *projectconfig.ProjectConfig) (*projectconfig.ProjectConfig, error) {
	a := AnswersFrom(defaults)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Results directory").
				Description("Where evaluation result documents are written").
				Value(&a.ResultsDir),
			huh.NewInput().
				Title("Sweep workers").
				Description("Thresholds evaluated concurrently").
				Value(&a.Workers).
				Validate(ValidateWorkers),
			huh.NewSelect[string]().
				Title("Report format").
				Options(
					huh.NewOption("text table", "default"),
					huh.NewOption("markdown", "markdown"),
					huh.NewOption("html", "html"),
				).
				Value(&a.Format),
			huh.NewConfirm().
				Title("Print a plain-language interpretation?").
				Value(&a.Interpret),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Record runs in a local history database?").
				Value(&a.StoreEnabled),
			huh.NewInput().
				Title("History database path").
				Value(&a.StorePath),
			huh.NewInput().
				Title("Archive URL").
				Description("Optional https://<account>.blob.core.windows.net/<container>[/prefix]").
				Value(&a.ArchiveURL).
				Validate(ValidateArchiveURL),
		),
	).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}
	return a.Config()
}
