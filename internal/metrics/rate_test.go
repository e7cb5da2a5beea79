package metrics

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatio(t *testing.T) {
	assert.False(t, Ratio(3, 0).IsDefined())
	assert.Equal(t, Defined(0.25), Ratio(1, 4))
	assert.Equal(t, Defined(0), Ratio(0, 4))
}

func TestRate_JSON(t *testing.T) {
	tests := []struct {
		name string
		rate Rate
		want string
	}{
		{"undefined", Undefined, "null"},
		{"zero", Defined(0), "0"},
		{"fraction", Defined(2.0 / 3.0), "0.6666666666666666"},
		{"one", Defined(1), "1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.rate)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))

			var back Rate
			require.NoError(t, json.Unmarshal(data, &back))
			assert.Equal(t, tt.rate, back)
		})
	}
}

func TestRate_UnmarshalNullInStruct(t *testing.T) {
	var r Result
	require.NoError(t, json.Unmarshal([]byte(`{"tp":1,"npv":null,"sensitivity":0.5}`), &r))
	assert.False(t, r.NPV.IsDefined())
	assert.Equal(t, Defined(0.5), r.Sensitivity)
}

func TestRate_OrAndString(t *testing.T) {
	assert.Equal(t, -1.0, Undefined.Or(-1))
	assert.Equal(t, 0.5, Defined(0.5).Or(-1))
	assert.Equal(t, "undefined", Undefined.String())
	assert.Equal(t, "0.5000", Defined(0.5).String())
}
