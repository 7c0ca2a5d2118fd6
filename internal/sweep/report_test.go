package sweep_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mrz1836/keysweep/internal/bench"
	"github.com/mrz1836/keysweep/internal/sweep"
)

func TestReport_Text(t *testing.T) {
	report := &sweep.Report{
		Sections: []sweep.Section{
			{Value: 1, Outcome: bench.Succeeded(1, "ok1\n")},
			{Value: 2, Outcome: bench.Failed(2, 2, "boom\nsecond line\n")},
			{Value: 3, Outcome: bench.Succeeded(3, "no trailing newline")},
			{Value: 4, Outcome: bench.Failed(4, -1, "")},
		},
	}

	tests := []struct {
		name string
		opts sweep.TextOptions
		want string
	}{
		{
			name: "reference format drops diagnostics",
			want: "\nKeysize = 1\nok1\n" +
				"\nKeysize = 2\n    Error!\n" +
				"\nKeysize = 3\nno trailing newline" +
				"\nKeysize = 4\n    Error!\n",
		},
		{
			name: "persisted diagnostics",
			opts: sweep.TextOptions{PersistDiagnostics: true},
			want: "\nKeysize = 1\nok1\n" +
				"\nKeysize = 2\n    Error!\n    exit code: 2\n    boom\n    second line\n" +
				"\nKeysize = 3\nno trailing newline" +
				"\nKeysize = 4\n    Error!\n    exit code: -1\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, report.Text(tc.opts))
		})
	}
}

func TestReport_Text_Empty(t *testing.T) {
	assert.Empty(t, (&sweep.Report{}).Text(sweep.TextOptions{}))
}

func TestHeader(t *testing.T) {
	assert.Equal(t, "Keysize = 42", sweep.Header(42))
}
