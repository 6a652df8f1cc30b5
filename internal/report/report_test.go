// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/extmirror/pkg/types"
)

func newReporter(t *testing.T) (*Reporter, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	var out, errOut bytes.Buffer
	return &Reporter{Out: &out, Err: &errOut}, &out, &errOut
}

func TestRecord(t *testing.T) {
	rec := types.TransferRecord{Source: "/in/a.m", Destination: "/out/a.txt", Rel: "a.m"}

	tests := []struct {
		name    string
		outcome types.Outcome
		wantOut string
		wantErr string
	}{
		{"converted", types.Converted(false), "[OK  ] /in/a.m -> /out/a.txt\n", ""},
		{"dry run", types.Converted(true), "[DRY ] /in/a.m -> /out/a.txt\n", ""},
		{"skipped", types.Skipped(), "[SKIP] exists: /out/a.txt\n", ""},
		{"failed", types.Failed(errors.New("permission denied")), "", "[ERR ] /in/a.m (permission denied)\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, out, errOut := newReporter(t)
			r.Record(rec, tt.outcome)
			assert.Equal(t, tt.wantOut, out.String())
			assert.Equal(t, tt.wantErr, errOut.String())
		})
	}
}

func TestHeaderAndSummary(t *testing.T) {
	r, out, errOut := newReporter(t)

	r.Header(types.Roots{Input: "/in", Output: "/in_txt"}, 3, ".m")
	r.Summary(types.RunCounters{Converted: 1, Skipped: 1, Errors: 1})

	assert.Equal(t, "Input : /in\n"+
		"Output: /in_txt\n"+
		"Found : 3 .m file(s)\n\n"+
		"\nSummary\n"+
		"  Converted: 1\n"+
		"  Skipped  : 1\n"+
		"  Errors   : 1\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestNoFiles(t *testing.T) {
	r, out, _ := newReporter(t)
	r.NoFiles("/in", ".m")
	assert.Equal(t, "No .m files found under: /in\n", out.String())
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitOK, ExitCode(types.RunCounters{}))
	assert.Equal(t, ExitOK, ExitCode(types.RunCounters{Converted: 4, Skipped: 2}))
	assert.Equal(t, ExitPartialFailure, ExitCode(types.RunCounters{Converted: 4, Errors: 1}))
}
