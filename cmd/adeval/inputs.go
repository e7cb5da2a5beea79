package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dkfz-mic/adeval/internal/dataset"
	"github.com/dkfz-mic/adeval/internal/projectconfig"
	"golang.org/x/term"
)

// loadTable reads the volume table and, when gtPath is set, merges the
// ground-truth ascending volumes into it.
func loadTable(segPath, gtPath string) (*dataset.Table, error) {
	seg, err := dataset.LoadCases(segPath)
	if err != nil {
		return nil, err
	}
	if gtPath == "" {
		return seg, nil
	}
	gt, err := dataset.LoadCases(gtPath)
	if err != nil {
		return nil, err
	}
	return dataset.MergeGroundTruth(seg, gt)
}

// loadProjectConfig loads .adeval.yaml from the working directory upwards.
func loadProjectConfig() (*projectconfig.ProjectConfig, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	return projectconfig.Load(wd)
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
