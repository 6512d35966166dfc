package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReconstruct(t *testing.T) {
	tests := []struct {
		name string
		runs []TextRun
		want string
	}{
		{
			name: "rows ordered top to bottom",
			runs: []TextRun{
				{X: 10, Y: 100, S: "bottom"},
				{X: 10, Y: 700, S: "top"},
				{X: 10, Y: 400, S: "middle"},
			},
			want: "top\nmiddle\nbottom",
		},
		{
			name: "runs in a row keep extraction order",
			runs: []TextRun{
				{X: 10, Y: 500, S: "10/10"},
				{X: 60, Y: 500, S: "AMAZON MKTPL*NF2LF3661"},
				{X: 400, Y: 500, S: "38.40"},
			},
			want: "10/10 AMAZON MKTPL*NF2LF3661 38.40",
		},
		{
			name: "runs are not re-sorted by x",
			runs: []TextRun{
				{X: 400, Y: 500, S: "38.40"},
				{X: 10, Y: 500, S: "10/10"},
			},
			want: "38.40 10/10",
		},
		{
			name: "sub-unit jitter rounds into one row",
			runs: []TextRun{
				{X: 10, Y: 500.2, S: "10/10"},
				{X: 60, Y: 499.6, S: "SHELL"},
			},
			want: "10/10 SHELL",
		},
		{
			name: "distinct rounded rows stay separate",
			runs: []TextRun{
				{X: 10, Y: 500.4, S: "upper"},
				{X: 10, Y: 498.6, S: "lower"},
			},
			want: "upper\nlower",
		},
		{
			name: "blank runs dropped",
			runs: []TextRun{
				{X: 10, Y: 500, S: "  "},
				{X: 10, Y: 500, S: " total "},
				{X: 10, Y: 300, S: ""},
			},
			want: "total",
		},
		{
			name: "no runs",
			runs: nil,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Reconstruct(tt.runs))
		})
	}
}
