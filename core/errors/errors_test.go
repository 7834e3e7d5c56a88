package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      *NotFoundError
		wantMsg  string
		wantBase error
	}{
		{
			name:     "with ID",
			err:      &NotFoundError{Resource: "file", ID: "doc/doc.gold.xml"},
			wantMsg:  "file not found: doc/doc.gold.xml",
			wantBase: ErrNotFound,
		},
		{
			name:     "without ID",
			err:      &NotFoundError{Resource: "annotation"},
			wantMsg:  "annotation not found",
			wantBase: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if got := tt.err.Unwrap(); !errors.Is(got, tt.wantBase) {
				t.Errorf("Unwrap() = %v, want %v", got, tt.wantBase)
			}
		})
	}

	t.Run("with underlying error", func(t *testing.T) {
		err := &NotFoundError{Resource: "file", ID: "x.xml", Err: fs.ErrNotExist}
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("errors.Is(%v, fs.ErrNotExist) = false", err)
		}
	})
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name    string
		err     *ValidationError
		wantMsg string
	}{
		{
			name:    "with field",
			err:     NewValidation("include", "a:b:c:d", "too many parts"),
			wantMsg: "validation failed for include: too many parts",
		},
		{
			name:    "without field",
			err:     &ValidationError{Message: "empty token"},
			wantMsg: "validation failed: empty token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if !errors.Is(tt.err, ErrInvalidInput) {
				t.Errorf("errors.Is(%v, ErrInvalidInput) = false", tt.err)
			}
		})
	}
}

func TestIOError(t *testing.T) {
	underlying := fmt.Errorf("permission denied")
	err := NewIO("read", "/data/doc.xml", underlying)

	if got, want := err.Error(), "failed to read /data/doc.xml: permission denied"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if err.Unwrap() != underlying {
		t.Errorf("Unwrap() = %v, want %v", err.Unwrap(), underlying)
	}

	noPath := &IOError{Operation: "walk", Err: underlying}
	if got, want := noPath.Error(), "failed to walk: permission denied"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestParseError(t *testing.T) {
	tests := []struct {
		name    string
		err     *ParseError
		wantMsg string
	}{
		{
			name:    "with path",
			err:     NewParse("XML", "doc.xml", "unexpected EOF"),
			wantMsg: "failed to parse XML at doc.xml: unexpected EOF",
		},
		{
			name:    "without path",
			err:     NewParse("span", "", "expected integer"),
			wantMsg: "failed to parse span: expected integer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if !Is(tt.err, ErrInvalidInput) {
				t.Errorf("Is(%v, ErrInvalidInput) = false", tt.err)
			}
		})
	}
}

func TestAsThroughWrapping(t *testing.T) {
	base := NewNotFound("file", "a.xml")
	wrapped := fmt.Errorf("loading reference: %w", base)
	if got, want := wrapped.Error(), "loading reference: file not found: a.xml"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	var nf *NotFoundError
	if !As(wrapped, &nf) {
		t.Fatal("As should find NotFoundError")
	}
	if nf.ID != "a.xml" {
		t.Errorf("ID = %q, want %q", nf.ID, "a.xml")
	}
}
