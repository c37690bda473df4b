package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/agbru/rangesum/internal/errors"
	"github.com/agbru/rangesum/internal/orchestration"
)

func TestPresentComparisonTable(t *testing.T) {
	noColor(t)
	ok := demoResult()
	failed := orchestration.ReductionResult{Name: "Closed Form", Duration: time.Millisecond, Err: errors.New("boom")}

	var buf bytes.Buffer
	CLIResultPresenter{}.PresentComparisonTable([]orchestration.ReductionResult{ok, failed}, &buf)
	out := buf.String()

	assert.Contains(t, out, "--- Comparison Summary ---")
	assert.Contains(t, out, "Success")
	assert.Contains(t, out, "Failure (boom)")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected title, header and 2 rows, got %d lines:\n%s", len(lines), out)
	}
	// Columns are aligned on plain text: the sum column starts at the
	// same offset in the header and in the successful row.
	header, row := lines[1], lines[2]
	assert.Equal(t, strings.Index(header, "Sum"), strings.Index(row, "435"))
}

func TestFormatTableDuration(t *testing.T) {
	assert.Equal(t, "< 1µs", formatTableDuration(0))
	assert.NotEmpty(t, formatTableDuration(time.Millisecond))
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab   ", padRight("ab", 3))
	assert.Equal(t, "ab", padRight("ab", 0))
	assert.Equal(t, "ab", padRight("ab", -2))
}

func TestCLIResultPresenterHandleError(t *testing.T) {
	noColor(t)
	var buf bytes.Buffer
	code := CLIResultPresenter{}.HandleError(apperrors.ErrOverflow, time.Second, &buf)
	assert.Equal(t, apperrors.ExitErrorOverflow, code)
	assert.NotEmpty(t, buf.String())
}
