package dataset

import (
	"errors"
	"testing"

	"github.com/dkfz-mic/adeval/internal/evalerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func volumeTable(source string, cases ...CaseRecord) *Table {
	return &Table{
		Source:  source,
		Columns: []string{ColumnAscending, ColumnDescending, ColumnMembrane, ColumnLabel},
		Cases:   cases,
	}
}

func TestMergeGroundTruth(t *testing.T) {
	seg := volumeTable("pred.csv",
		CaseRecord{ID: "/data/pred/diseased/p1.nii.gz", Ascending: 3, Descending: 9, Membrane: 1, IsPositive: 1},
		CaseRecord{ID: "/data/pred/healthy/h1.nii.gz", Ascending: 0, Descending: 0.2, Membrane: 0, IsPositive: 0},
		CaseRecord{ID: "/data/pred/diseased/p2.nii.gz", Ascending: 0, Descending: 5, Membrane: 2, IsPositive: 1},
	)
	gt := volumeTable("gt.csv",
		CaseRecord{ID: `C:\gt\p2.nii.gz`, Ascending: 0, IsPositive: 1},
		CaseRecord{ID: "/gt/p1.nii.gz", Ascending: 4.5, IsPositive: 1},
		CaseRecord{ID: "/gt/h1.nii.gz", Ascending: 0, IsPositive: 0},
	)

	merged, err := MergeGroundTruth(seg, gt)
	require.NoError(t, err)

	assert.True(t, merged.HasGroundTruth)
	assert.Contains(t, merged.Columns, ColumnAscendingGT)
	require.Equal(t, 3, merged.Len())
	assert.Equal(t, "/data/pred/diseased/p1.nii.gz", merged.Cases[0].ID)
	assert.Equal(t, 4.5, merged.Cases[0].AscendingGT)
	assert.Equal(t, 0.0, merged.Cases[1].AscendingGT)
	assert.Equal(t, 0.0, merged.Cases[2].AscendingGT)
	assert.Equal(t, 3.0, merged.Cases[0].Ascending, "measurements come from the test table")

	assert.False(t, seg.HasGroundTruth, "input table must not be modified")
	assert.Equal(t, 0.0, seg.Cases[0].AscendingGT)
	assert.NotContains(t, seg.Columns, ColumnAscendingGT)
}

func TestMergeGroundTruth_Mismatch(t *testing.T) {
	seg := volumeTable("pred.csv",
		CaseRecord{ID: "a/p1.nii", IsPositive: 1},
		CaseRecord{ID: "a/h1.nii"},
	)

	tests := []struct {
		name    string
		gt      *Table
		wantErr string
	}{
		{
			name:    "different row count",
			gt:      volumeTable("gt.csv", CaseRecord{ID: "p1.nii", IsPositive: 1}),
			wantErr: "test data has 2 rows and 4 columns, ground truth has 1 rows and 4 columns",
		},
		{
			name: "different ids",
			gt: volumeTable("gt.csv",
				CaseRecord{ID: "b/p1.nii", IsPositive: 1},
				CaseRecord{ID: "b/h2.nii"},
			),
			wantErr: "extra ids in volume measurements: [h1.nii], extra ids in ground truth measurements: [h2.nii]",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MergeGroundTruth(seg, tt.gt)
			require.Error(t, err)
			assert.True(t, errors.Is(err, evalerr.ErrInvalidInput))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "x.nii.gz", baseName("/a/b/x.nii.gz"))
	assert.Equal(t, "x.nii.gz", baseName(`C:\a\x.nii.gz`))
	assert.Equal(t, "x.nii.gz", baseName("x.nii.gz"))
}
