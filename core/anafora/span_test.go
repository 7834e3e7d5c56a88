package anafora

import (
	"testing"
)

func TestParseSpans(t *testing.T) {
	tests := []struct {
		input string
		want  Spans
	}{
		{"0,5", Spans{{0, 5}}},
		{"0,5;7,9", Spans{{0, 5}, {7, 9}}},
		{" 10 , 15 ; 20,25 ", Spans{{10, 15}, {20, 25}}},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSpans(tt.input)
			if err != nil {
				t.Fatalf("ParseSpans(%q) error: %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseSpans(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseSpansInvalid(t *testing.T) {
	for _, input := range []string{"0", "0,", "a,b", "0,5;", "0;5", "-1,4"} {
		t.Run(input, func(t *testing.T) {
			if _, err := ParseSpans(input); err == nil {
				t.Errorf("ParseSpans(%q) should fail", input)
			}
		})
	}
}

func TestSpanOverlaps(t *testing.T) {
	tests := []struct {
		a, b Span
		want bool
	}{
		{Span{0, 5}, Span{3, 8}, true},
		{Span{0, 5}, Span{5, 10}, false},
		{Span{5, 10}, Span{0, 5}, false},
		{Span{0, 10}, Span{2, 3}, true},
		{Span{0, 5}, Span{0, 5}, true},
		{Span{0, 1}, Span{7, 9}, false},
	}

	for _, tt := range tests {
		if got := tt.a.Overlaps(tt.b); got != tt.want {
			t.Errorf("%v.Overlaps(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSpansOverlapsAnyPair(t *testing.T) {
	a := Spans{{0, 2}, {20, 30}}
	b := Spans{{5, 8}, {25, 26}}
	if !a.Overlaps(b) {
		t.Error("discontiguous spans sharing one sub-span should overlap")
	}
	if a.Overlaps(Spans{{2, 20}}) {
		t.Error("spans touching at both ends should not overlap")
	}
	if a.Overlaps(nil) {
		t.Error("empty spans never overlap")
	}
}

func TestSpansString(t *testing.T) {
	s := Spans{{0, 5}, {7, 9}}
	if got := s.String(); got != "0,5;7,9" {
		t.Errorf("String() = %q, want %q", got, "0,5;7,9")
	}
	e := Extent{s, Spans{{1, 2}}}
	if got := e.String(); got != "0,5;7,9|1,2" {
		t.Errorf("Extent.String() = %q, want %q", got, "0,5;7,9|1,2")
	}
	if got := e.Flatten(); !got.Equal(Spans{{0, 5}, {7, 9}, {1, 2}}) {
		t.Errorf("Flatten() = %v", got)
	}
}
