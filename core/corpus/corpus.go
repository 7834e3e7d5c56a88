// Package corpus scores whole Anafora corpora: a reference tree against a
// predicted tree, or every pair of annotators within one tree.
//
// Documents are loaded leniently. A missing or unparsable file is logged
// and scored as an empty document; schema-invalid annotations are logged and
// removed until the document validates.
package corpus

import (
	"log/slog"
	"time"

	"github.com/FocuswithJustin/anafora-eval/core/anafora"
	"github.com/FocuswithJustin/anafora-eval/core/errors"
	"github.com/FocuswithJustin/anafora-eval/core/eval"
	"github.com/FocuswithJustin/anafora-eval/internal/metrics"
)

// Input load statuses.
const (
	StatusOK      = "ok"
	StatusMissing = "missing"
	StatusInvalid = "invalid"
)

// Input describes one annotation file read during a run.
type Input struct {
	Path        string `json:"path"`
	Digest      string `json:"digest,omitempty"`
	Status      string `json:"status"`
	Annotations int    `json:"annotations"`
	Removed     int    `json:"removed"`
}

// Run is the outcome of scoring a corpus.
type Run struct {
	Mode        string       `json:"mode"`
	Results     eval.Results `json:"-"`
	Inputs      []Input      `json:"inputs"`
	Units       int          `json:"units"`
	Comparisons int          `json:"comparisons"`
}

// Scorer holds what both corpus drivers share.
type Scorer struct {
	// Schema prunes invalid annotations after loading. Nil skips pruning.
	Schema *anafora.Schema
	// Options are passed to eval.ScoreData; Label is set per unit.
	Options eval.Options
	// Logger receives load warnings. Nil uses slog.Default().
	Logger *slog.Logger
	// Metrics is optional.
	Metrics *metrics.Metrics
	// Fingerprint digests file contents for Input.Digest. Nil skips it.
	Fingerprint func([]byte) string
}

func (s *Scorer) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

// Load reads the annotation file at path and removes schema-invalid
// annotations until none remain. Load failures are logged and yield a nil
// document.
func (s *Scorer) Load(path string) (*anafora.Data, Input) {
	start := time.Now()
	in := Input{Path: path, Status: StatusOK}
	log := s.logger()

	data, content, err := anafora.LoadFile(path)
	if content != nil && s.Fingerprint != nil {
		in.Digest = s.Fingerprint(content)
	}
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			in.Status = StatusMissing
			log.Warn("no such file", "path", path)
		} else {
			in.Status = StatusInvalid
			log.Warn("ignoring invalid XML", "path", path, "error", err)
		}
		s.Metrics.DocumentLoaded(in.Status, time.Since(start))
		return nil, in
	}

	if s.Schema != nil {
		in.Removed = s.prune(path, data)
	}
	in.Annotations = data.Len()

	s.Metrics.DocumentLoaded(in.Status, time.Since(start))
	s.Metrics.AnnotationsRemoved(in.Removed)
	return data, in
}

// prune removes invalid annotations until the schema reports no errors.
// Each pass removes at least one annotation or stops.
func (s *Scorer) prune(path string, data *anafora.Data) int {
	removed := 0
	for {
		errs := s.Schema.Errors(data)
		if len(errs) == 0 {
			return removed
		}
		pass := 0
		for _, e := range errs {
			s.logger().Warn("removing invalid annotation", "path", path, "error", e.Error())
			if data.Remove(e.Annotation) {
				pass++
			}
		}
		if pass == 0 {
			return removed
		}
		removed += pass
	}
}

func (s *Scorer) score(reference, predicted *anafora.Data, label string) eval.Results {
	opts := s.Options
	opts.Label = label
	s.Metrics.Compared()
	return eval.ScoreData(reference, predicted, opts)
}
