package corpus

import (
	"os"
	"regexp"
	"strings"

	"github.com/FocuswithJustin/anafora-eval/core/anafora"
	"github.com/FocuswithJustin/anafora-eval/core/eval"
)

// GoldAnnotator is the annotator name kept as-is in role labels.
const GoldAnnotator = "gold"

var annotatorNameRegex = regexp.MustCompile(`([^.]*)[.][^.]*[.]xml$`)

// AnnotatorName extracts the annotator from an Anafora file name such as
// "doc.Schema.alice.completed.xml".
func AnnotatorName(fileName string) (string, bool) {
	m := annotatorNameRegex.FindStringSubmatch(fileName)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// PairLabel joins two annotator names in sorted order: "alice-vs-bob".
func PairLabel(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "-vs-" + b
}

// RoleLabel is PairLabel after renaming every annotator except "gold" to
// "annotator".
func RoleLabel(a, b string) string {
	return PairLabel(role(a), role(b))
}

func role(name string) string {
	if name == GoldAnnotator {
		return name
	}
	return "annotator"
}

type annotated struct {
	name string
	data *anafora.Data
}

// ScoreAnnotators compares, within each document unit under dir, every pair
// of annotator files whose names match nameRegex. Each comparison is
// recorded twice, under its pair label and its role label.
func (s *Scorer) ScoreAnnotators(dir string, nameRegex *regexp.Regexp) (*Run, error) {
	if nameRegex == nil {
		nameRegex = defaultNameRegex
	}
	units, err := anafora.Walk(dir, nameRegex)
	if err != nil {
		return nil, err
	}

	run := &Run{Mode: "annotators", Results: make(eval.Results)}
	log := s.logger()

	for _, unit := range units {
		run.Units++
		s.Metrics.UnitVisited()

		if len(unit.Names) < 2 {
			log.Warn("found fewer than 2 annotators", "unit", unit.SubDir, "files", unit.Names)
			continue
		}

		var annotators []annotated
		for _, name := range unit.Names {
			if strings.Contains(name, ".inprogress.") {
				continue
			}
			annotator, ok := AnnotatorName(name)
			if !ok {
				log.Warn("cannot determine annotator", "unit", unit.SubDir, "file", name)
				continue
			}
			path := unit.Path(name)
			if info, err := os.Stat(path); err == nil && info.Size() == 0 {
				continue
			}
			data, in := s.Load(path)
			run.Inputs = append(run.Inputs, in)
			annotators = append(annotators, annotated{name: annotator, data: data})
		}

		for i := range annotators {
			for j := i + 1; j < len(annotators); j++ {
				a, b := annotators[i], annotators[j]
				results := s.score(a.data, b.data, unit.SubDir)
				run.Results.UpdatePair(PairLabel(a.name, b.name), results)
				run.Results.UpdatePair(RoleLabel(a.name, b.name), results)
				run.Comparisons++
			}
		}
	}
	return run, nil
}
