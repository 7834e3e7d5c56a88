package corpus

import (
	"path/filepath"
	"regexp"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/FocuswithJustin/anafora-eval/core/anafora"
	"github.com/FocuswithJustin/anafora-eval/core/eval"
)

var defaultNameRegex = regexp.MustCompile(anafora.DefaultXMLNameRegex)

// ScoreDirs scores every document unit under referenceDir against the
// matching unit under predictedDir. The predicted file for unit "doc" is the
// first of predictedDir/doc/doc*.xml. A unit with no predicted file is
// scored against an absent document.
func (s *Scorer) ScoreDirs(referenceDir, predictedDir string) (*Run, error) {
	units, err := anafora.Walk(referenceDir, defaultNameRegex)
	if err != nil {
		return nil, err
	}

	run := &Run{Mode: "dirs", Results: make(eval.Results)}
	log := s.logger()

	for _, unit := range units {
		run.Units++
		s.Metrics.UnitVisited()

		if len(unit.Names) > 1 {
			log.Warn("multiple reference files", "unit", unit.SubDir, "files", unit.Names, "using", unit.Names[0])
		}
		reference, in := s.Load(unit.Path(unit.Names[0]))
		run.Inputs = append(run.Inputs, in)

		var predicted *anafora.Data
		if path := s.predictedPath(predictedDir, unit.SubDir); path != "" {
			var in Input
			predicted, in = s.Load(path)
			run.Inputs = append(run.Inputs, in)
		}

		run.Results.Update(s.score(reference, predicted, unit.SubDir))
		run.Comparisons++
	}
	return run, nil
}

// predictedPath finds the predicted file for subDir, or "" when there is none.
func (s *Scorer) predictedPath(predictedDir, subDir string) string {
	pattern := filepath.Join(predictedDir, subDir, filepath.Base(subDir)+"*.xml")
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		s.logger().Warn("bad predicted file pattern", "pattern", pattern, "error", err)
		return ""
	}
	switch len(matches) {
	case 0:
		s.logger().Warn("no predicted file", "pattern", pattern)
		return ""
	case 1:
		return matches[0]
	}
	sort.Strings(matches)
	s.logger().Warn("multiple predicted files", "unit", subDir, "files", matches, "using", matches[0])
	return matches[0]
}
