package vitals

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/cogload/internal/models"
)

func TestAggregate(t *testing.T) {
	spike := []float64{2, 2, 20, 2, 2}

	cases := []struct {
		name   string
		values []float64
		method string
		want   float64
	}{
		{"median ignores the outlier", spike, Median, 2},
		{"mean does not", spike, Mean, 5.6},
		{"p90 picks it up", spike, P90, 20},
		{"even median", []float64{4, 1, 3, 2}, Median, 2.5},
		{"empty", nil, Median, 0},
		{"case insensitive", spike, "MEDIAN", 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Aggregate(tc.values, tc.method)
			require.NoError(t, err)

			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestAggregateUnknownMethod(t *testing.T) {
	_, err := Aggregate([]float64{1}, "mode")

	assert.ErrorIs(t, err, errUnknownAggregation)
}

func TestAggregateDoesNotReorderInput(t *testing.T) {
	values := []float64{3, 1, 2}

	_, err := Aggregate(values, Median)
	require.NoError(t, err)

	assert.Equal(t, []float64{3, 1, 2}, values)
}

func TestSummarize(t *testing.T) {
	got := Summarize([]models.Score{
		{Focus: 60, Stress: 40, HRV: 30},
		{Focus: 80, Stress: 20, HRV: 50},
		{Focus: 71, Stress: 35, HRV: 41},
	})

	assert.Equal(t, Summary{
		Count:     3,
		AvgFocus:  70,
		MinFocus:  60,
		AvgStress: 32,
		MaxStress: 40,
		AvgHRV:    40,
	}, got)

	assert.Equal(t, Summary{}, Summarize(nil))
}
