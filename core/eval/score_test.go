package eval

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FocuswithJustin/anafora-eval/core/anafora"
)

func scoresOf(t *testing.T, r Results, k Key) Scores {
	t.Helper()
	s, ok := r[k]
	require.True(t, ok, "missing key %s", k)
	return *s
}

// Whole annotations differ by property value; span presence still agrees.
func TestScoreDataPropertyMismatch(t *testing.T) {
	ref := anafora.NewData(person("1@e", 0, 5, "Alice"))
	pred := anafora.NewData(person("1@e", 0, 5, "Bob"))

	r := ScoreData(ref, pred, Options{})

	assert.Equal(t, Scores{1, 1, 0}, scoresOf(t, r, TypeKey("Person")))
	assert.Equal(t, Scores{1, 1, 1}, scoresOf(t, r, PropertyKey("Person", SpanProperty)))
	assert.Equal(t, Scores{1, 1, 0}, scoresOf(t, r, PropertyKey("Person", "name")))
	assert.Equal(t, Scores{1, 0, 0}, scoresOf(t, r, ValueKey("Person", "name", "Alice")))
	assert.Equal(t, Scores{0, 1, 0}, scoresOf(t, r, ValueKey("Person", "name", "Bob")))
	assert.Len(t, r, 5)

	assert.Equal(t, 0.0, r[PropertyKey("Person", "name")].F1())
}

func TestScoreDataSpanOnlyAgreement(t *testing.T) {
	// IDs do not take part in matching.
	ref := anafora.NewData(anafora.NewEntity("1", "Person", anafora.Span{Start: 0, End: 5}))
	pred := anafora.NewData(anafora.NewEntity("7", "Person", anafora.Span{Start: 0, End: 5}))

	r := ScoreData(ref, pred, Options{})
	assert.Equal(t, Scores{1, 1, 1}, scoresOf(t, r, TypeKey("Person")))
	assert.Equal(t, 1.0, r[TypeKey("Person")].F1())
}

func TestScoreDataAbsentPredicted(t *testing.T) {
	ref := anafora.NewData(
		person("1", 0, 5, "Alice"),
		person("2", 10, 15, "Bob"),
		anafora.NewEntity("3", "Place", anafora.Span{Start: 20, End: 25}),
	)
	sink := &Collector{}

	r := ScoreData(ref, nil, Options{Diagnostics: sink})

	require.NotEmpty(t, r)
	for k, s := range r {
		assert.Positive(t, s.Reference, k.String())
		assert.Zero(t, s.Predicted, k.String())
		assert.Zero(t, s.Correct, k.String())
		assert.Equal(t, 0.0, s.Recall(), k.String())
		assert.Equal(t, 1.0, s.Precision(), k.String())
	}
	assert.Empty(t, sink.Diagnostics, "no diagnostics without a predicted document")
}

func TestScoreDataEmptyPredictedStillReports(t *testing.T) {
	ref := anafora.NewData(person("1", 0, 5, "Alice"))
	sink := &Collector{}

	ScoreData(ref, anafora.NewData(), Options{Diagnostics: sink, Label: "doc1"})

	require.Len(t, sink.Diagnostics, 1)
	assert.Equal(t, Missed, sink.Diagnostics[0].Kind)
	assert.Equal(t, "doc1", sink.Diagnostics[0].Label)
}

func TestScoreDataSelfComparison(t *testing.T) {
	place := anafora.NewEntity("2", "Place", anafora.Span{Start: 10, End: 15}).
		With("kind", anafora.StringValue("city"))
	doc := anafora.NewData(
		person("1", 0, 5, "Alice"),
		place,
		anafora.NewRelation("3", "LivesIn").
			With("Source", anafora.ReferenceValue(anafora.NewEntity("1", "Person", anafora.Span{Start: 0, End: 5}))).
			With("Target", anafora.ReferenceValue(place)).
			With("since", anafora.NumberValue(2020)),
		person("4", 20, 25, "Carol").With("age", anafora.EmptyValue()),
	)

	for _, eq := range []Equivalence{Exact, Overlapping} {
		t.Run(eq.Name(), func(t *testing.T) {
			r := ScoreData(doc, doc, Options{Equivalence: eq})
			require.NotEmpty(t, r)
			for k, s := range r {
				assert.Equal(t, s.Reference, s.Predicted, k.String())
				assert.Equal(t, s.Reference, s.Correct, k.String())
				assert.Equal(t, 1.0, s.F1(), k.String())
			}
			assert.Contains(t, r, PropertyKey("LivesIn", "Target"))
			assert.NotContains(t, r, ValueKey("LivesIn", "since", "2020"))
		})
	}
}

func TestScoreDataOverlap(t *testing.T) {
	ref := anafora.NewData(word(0, 5))

	overlapping := anafora.NewData(word(3, 8))
	touching := anafora.NewData(word(5, 10))

	exact := ScoreData(ref, overlapping, Options{})
	assert.Equal(t, Scores{1, 1, 0}, scoresOf(t, exact, TypeKey("Word")))

	loose := ScoreData(ref, overlapping, Options{Equivalence: Overlapping})
	assert.Equal(t, Scores{1, 1, 1}, scoresOf(t, loose, TypeKey("Word")))
	assert.Equal(t, Scores{1, 1, 1}, scoresOf(t, loose, PropertyKey("Word", SpanProperty)))

	apart := ScoreData(ref, touching, Options{Equivalence: Overlapping})
	assert.Equal(t, Scores{1, 1, 0}, scoresOf(t, apart, TypeKey("Word")))
}

func TestScoreDataFilter(t *testing.T) {
	ref := anafora.NewData(person("1", 0, 5, "Alice"), word(6, 9))
	pred := anafora.NewData(person("1", 0, 5, "Alice"))

	t.Run("type excluded but properties kept", func(t *testing.T) {
		f, err := ParseFilter([]string{"Person:name"}, nil)
		require.NoError(t, err)
		r := ScoreData(ref, pred, Options{Filter: f})
		assert.NotContains(t, r, TypeKey("Person"))
		assert.NotContains(t, r, TypeKey("Word"))
		assert.Equal(t, Scores{1, 1, 1}, scoresOf(t, r, PropertyKey("Person", "name")))
		assert.Equal(t, Scores{1, 1, 1}, scoresOf(t, r, ValueKey("Person", "name", "Alice")))
		assert.Len(t, r, 2)
	})

	t.Run("exclude wins over include", func(t *testing.T) {
		f, err := ParseFilter([]string{"Person"}, []string{"Person"})
		require.NoError(t, err)
		r := ScoreData(ref, pred, Options{Filter: f})
		assert.Empty(t, r)
	})

	t.Run("exclude a value", func(t *testing.T) {
		f, err := ParseFilter(nil, []string{"Person:name:Alice"})
		require.NoError(t, err)
		r := ScoreData(ref, pred, Options{Filter: f})
		assert.Contains(t, r, PropertyKey("Person", "name"))
		assert.NotContains(t, r, ValueKey("Person", "name", "Alice"))
		assert.Equal(t, Scores{1, 0, 0}, scoresOf(t, r, TypeKey("Word")))
	})
}

func TestScoreDataDuplicatesCountOnce(t *testing.T) {
	ref := anafora.NewData(word(0, 5), word(0, 5))
	pred := anafora.NewData(word(0, 5))

	r := ScoreData(ref, pred, Options{})
	assert.Equal(t, Scores{1, 1, 1}, scoresOf(t, r, TypeKey("Word")))
}

func TestScoreDataDiagnostics(t *testing.T) {
	ref := anafora.NewData(word(0, 5), word(10, 15))
	pred := anafora.NewData(word(10, 15), word(20, 25), word(30, 35))
	sink := &Collector{}

	ScoreData(ref, pred, Options{Diagnostics: sink, Label: "doc.txt"})

	assert.Equal(t, 1, sink.Count(Missed))
	assert.Equal(t, 2, sink.Count(Added))
	for _, d := range sink.Diagnostics {
		assert.Equal(t, "doc.txt", d.Label)
	}
}

func TestLogDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	ScoreData(anafora.NewData(word(0, 5)), anafora.NewData(word(7, 9)),
		Options{Diagnostics: LogDiagnostics(logger), Label: "doc.txt"})

	out := buf.String()
	assert.Contains(t, out, "msg=Missed")
	assert.Contains(t, out, "msg=Added")
	assert.Contains(t, out, "file=doc.txt")

	buf.Reset()
	quiet := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ScoreData(anafora.NewData(word(0, 5)), anafora.NewData(word(7, 9)),
		Options{Diagnostics: LogDiagnostics(quiet)})
	assert.Empty(t, buf.String())
}
