// Package report renders scoring results as the fixed-width score table or
// as a JSON report, optionally xz-compressed.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ulikunitz/xz"

	"github.com/FocuswithJustin/anafora-eval/core/corpus"
	"github.com/FocuswithJustin/anafora-eval/core/eval"
)

// nameWidth is the width of the first table column.
const nameWidth = 40

// Row is one scored key with its derived measures.
type Row struct {
	Name      string   `json:"name"`
	Key       eval.Key `json:"key"`
	Reference int      `json:"reference"`
	Predicted int      `json:"predicted"`
	Correct   int      `json:"correct"`
	Precision float64  `json:"precision"`
	Recall    float64  `json:"recall"`
	F1        float64  `json:"f1"`
}

// Rows returns one Row per key, sorted by the colon-joined key name.
func Rows(results eval.Results) []Row {
	keys := results.Keys()
	rows := make([]Row, 0, len(keys))
	for _, k := range keys {
		s := results[k]
		rows = append(rows, Row{
			Name:      k.String(),
			Key:       k,
			Reference: s.Reference,
			Predicted: s.Predicted,
			Correct:   s.Correct,
			Precision: s.Precision(),
			Recall:    s.Recall(),
			F1:        s.F1(),
		})
	}
	return rows
}

// Report is the JSON document written by WriteJSON.
type Report struct {
	RunID       string         `json:"run_id,omitempty"`
	Mode        string         `json:"mode"`
	Reference   string         `json:"reference"`
	Predicted   string         `json:"predicted,omitempty"`
	Overlap     bool           `json:"overlap"`
	StartedAt   time.Time      `json:"started_at"`
	DurationMS  int64          `json:"duration_ms"`
	Digest      string         `json:"digest,omitempty"`
	Units       int            `json:"units"`
	Comparisons int            `json:"comparisons"`
	Inputs      []corpus.Input `json:"inputs"`
	Scores      []Row          `json:"scores"`
}

// New builds a Report for run. The caller fills in the run metadata.
func New(run *corpus.Run) *Report {
	inputs := run.Inputs
	if inputs == nil {
		inputs = []corpus.Input{}
	}
	return &Report{
		Mode:        run.Mode,
		Units:       run.Units,
		Comparisons: run.Comparisons,
		Inputs:      inputs,
		Scores:      Rows(run.Results),
	}
}

// center pads s to width the way Python's "^" format spec does, putting
// the odd space on the right.
func center(s string, width int) string {
	pad := width - len(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}

// WriteTable writes the tab-separated score table: a header line followed
// by one line per key in name order.
func WriteTable(w io.Writer, results eval.Results) error {
	header := []string{"ref", "pred", "corr", "P", "R", "F1"}
	var b strings.Builder
	fmt.Fprintf(&b, "%-*s", nameWidth, "")
	for _, h := range header {
		b.WriteString("\t")
		b.WriteString(center(h, 5))
	}
	b.WriteString("\n")

	for _, r := range Rows(results) {
		fmt.Fprintf(&b, "%-*s\t%5d\t%5d\t%5d\t%5.3f\t%5.3f\t%5.3f\n",
			nameWidth, r.Name, r.Reference, r.Predicted, r.Correct,
			r.Precision, r.Recall, r.F1)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteJSON writes rep as indented JSON.
func WriteJSON(w io.Writer, rep *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

// WriteFile writes rep as JSON to path, xz-compressed when path ends in
// ".xz".
func WriteFile(path string, rep *Report) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	defer file.Close()

	if !strings.HasSuffix(path, ".xz") {
		if err := WriteJSON(file, rep); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		return file.Close()
	}

	xw, err := xz.NewWriter(file)
	if err != nil {
		return fmt.Errorf("failed to create xz writer: %w", err)
	}
	if err := WriteJSON(xw, rep); err != nil {
		xw.Close()
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := xw.Close(); err != nil {
		return fmt.Errorf("failed to finish xz stream: %w", err)
	}
	return file.Close()
}

// ReadFile reads a report written by WriteFile.
func ReadFile(path string) (*Report, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open report: %w", err)
	}
	defer file.Close()

	var r io.Reader = file
	if strings.HasSuffix(path, ".xz") {
		xr, err := xz.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		r = xr
	}

	var rep Report
	if err := json.NewDecoder(r).Decode(&rep); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}
	return &rep, nil
}
