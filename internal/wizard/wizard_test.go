package wizard

import (
	"testing"

	"github.com/dkfz-mic/adeval/internal/projectconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswersFrom_Defaults(t *testing.T) {
	a := AnswersFrom(projectconfig.New())

	assert.Equal(t, "results/", a.ResultsDir)
	assert.Equal(t, "1", a.Workers)
	assert.Equal(t, "default", a.Format)
	assert.False(t, a.Interpret)
	assert.False(t, a.StoreEnabled)
	assert.Equal(t, ".adeval/history.db", a.StorePath)
	assert.Empty(t, a.ArchiveURL)
}

func TestAnswers_Config(t *testing.T) {
	a := Answers{
		ResultsDir:   " out/ ",
		Workers:      " 4 ",
		Format:       "html",
		Interpret:    true,
		StoreEnabled: true,
		StorePath:    "runs.db",
		ArchiveURL:   "https://acct.blob.core.windows.net/results",
	}

	cfg, err := a.Config()
	require.NoError(t, err)

	assert.Equal(t, "out/", cfg.Paths.Results)
	assert.Equal(t, 4, cfg.Evaluation.Workers)
	assert.Equal(t, "html", cfg.Evaluation.Format)
	require.NotNil(t, cfg.Evaluation.Interpret)
	assert.True(t, *cfg.Evaluation.Interpret)
	require.NotNil(t, cfg.Store.Enabled)
	assert.True(t, *cfg.Store.Enabled)
	assert.Equal(t, "runs.db", cfg.Store.Path)
	assert.Equal(t, "https://acct.blob.core.windows.net/results", cfg.Archive.URL)
}

func TestAnswers_ConfigKeepsDefaultsForBlanks(t *testing.T) {
	cfg, err := Answers{Workers: "2"}.Config()
	require.NoError(t, err)

	assert.Equal(t, projectconfig.DefaultResultsDir, cfg.Paths.Results)
	assert.Equal(t, projectconfig.DefaultFormat, cfg.Evaluation.Format)
	assert.Equal(t, projectconfig.DefaultStorePath, cfg.Store.Path)
}

func TestAnswers_ConfigRoundTripsThroughAnswersFrom(t *testing.T) {
	cfg, err := AnswersFrom(projectconfig.New()).Config()
	require.NoError(t, err)
	assert.Equal(t, projectconfig.New(), cfg)
}

func TestValidateWorkers(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"1", false},
		{"256", false},
		{" 8 ", false},
		{"0", true},
		{"257", true},
		{"four", true},
		{"", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateWorkers(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateArchiveURL(t *testing.T) {
	assert.NoError(t, ValidateArchiveURL(""))
	assert.NoError(t, ValidateArchiveURL("https://acct.blob.core.windows.net/results"))
	assert.Error(t, ValidateArchiveURL("http://acct.blob.core.windows.net/results"))
	assert.Error(t, ValidateArchiveURL("https://acct.blob.core.windows.net/"))
}

func TestAnswers_ConfigRejectsInvalid(t *testing.T) {
	_, err := Answers{Workers: "0"}.Config()
	assert.Error(t, err)

	_, err = Answers{Workers: "1", ArchiveURL: "ftp://x/y"}.Config()
	assert.Error(t, err)
}
