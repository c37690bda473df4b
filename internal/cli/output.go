package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	apperrors "github.com/agbru/rangesum/internal/errors"
	"github.com/agbru/rangesum/internal/orchestration"
)

// Report formats accepted by WriteReport.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Report is the serializable summary of one run.
type Report struct {
	RunID       string          `json:"run_id" yaml:"run_id"`
	GeneratedAt time.Time       `json:"generated_at" yaml:"generated_at"`
	Strategy    string          `json:"strategy" yaml:"strategy"`
	Start       uint64          `json:"start" yaml:"start"`
	End         uint64          `json:"end" yaml:"end"`
	Sum         uint64          `json:"sum" yaml:"sum"`
	Chunks      int             `json:"chunks" yaml:"chunks"`
	DurationNS  int64           `json:"duration_ns" yaml:"duration_ns"`
	Verified    *bool           `json:"verified,omitempty" yaml:"verified,omitempty"`
	Partials    []PartialReport `json:"partials" yaml:"partials"`
}

// PartialReport is one chunk's row in a Report.
type PartialReport struct {
	Index      int    `json:"index" yaml:"index"`
	Start      uint64 `json:"start" yaml:"start"`
	End        uint64 `json:"end" yaml:"end"`
	Sum        uint64 `json:"sum" yaml:"sum"`
	DurationNS int64  `json:"duration_ns" yaml:"duration_ns"`
}

// NewReport builds a report from a successful result. Partials are listed
// in chunk order.
func NewReport(runID string, res orchestration.ReductionResult) Report {
	final := res.Result
	partials := make([]PartialReport, 0, len(final.Partials))
	for _, p := range final.Partials {
		partials = append(partials, PartialReport{
			Index:      p.Chunk.Index,
			Start:      p.Chunk.Start,
			End:        p.Chunk.End,
			Sum:        p.Sum,
			DurationNS: p.Duration.Nanoseconds(),
		})
	}
	sort.Slice(partials, func(i, j int) bool { return partials[i].Index < partials[j].Index })

	return Report{
		RunID:       runID,
		GeneratedAt: time.Now().UTC(),
		Strategy:    res.Name,
		Start:       final.Range.Start,
		End:         final.Range.End,
		Sum:         final.Sum,
		Chunks:      len(final.Chunks),
		DurationNS:  res.Duration.Nanoseconds(),
		Partials:    partials,
	}
}

// FormatReport encodes r to w in the given format.
func FormatReport(w io.Writer, formatName string, r Report) error {
	switch formatName {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case FormatText, "":
		return formatTextReport(w, r)
	default:
		return fmt.Errorf("unsupported report format %q", formatName)
	}
}

func formatTextReport(w io.Writer, r Report) error {
	fmt.Fprintf(w, "# Range Sum Result\n")
	fmt.Fprintf(w, "# Run: %s\n", r.RunID)
	fmt.Fprintf(w, "# Generated: %s\n", r.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "# Strategy: %s\n", r.Strategy)
	fmt.Fprintf(w, "# Duration: %s\n", time.Duration(r.DurationNS))
	fmt.Fprintf(w, "# Chunks: %d\n", r.Chunks)
	if r.Verified != nil {
		fmt.Fprintf(w, "# Verified: %t\n", *r.Verified)
	}
	fmt.Fprintf(w, "\n")
	for _, p := range r.Partials {
		fmt.Fprintf(w, "chunk #%d [%d, %d) = %d\n", p.Index, p.Start, p.End, p.Sum)
	}
	_, err := fmt.Fprintf(w, "sum [%d, %d) = %d\n", r.Start, r.End, r.Sum)
	return err
}

// WriteReport writes r to path, creating parent directories as needed.
func WriteReport(path, formatName string, r Report) (err error) {
	if path == "" {
		return nil
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return apperrors.WrapError(err, "creating report directory %s", dir)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return apperrors.WrapError(err, "creating report %s", path)
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = apperrors.WrapError(cerr, "closing report %s", path)
		}
	}()

	return FormatReport(file, formatName, r)
}
