package cli

import (
	"testing"
	"time"
)

func TestOptionalDuration(t *testing.T) {
	var d OptionalDuration
	if d.String() != "" {
		t.Fatalf("expected empty string for unset duration")
	}
	if _, ok := d.Value(); ok {
		t.Fatalf("expected unset duration to report false")
	}
	if err := d.Set("250ms"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.String() != "250ms" {
		t.Fatalf("expected duration string to be 250ms, got %q", d.String())
	}
	if v, ok := d.Value(); !ok || v != 250*time.Millisecond {
		t.Fatalf("expected duration value 250ms, got %v (ok=%v)", v, ok)
	}
}

func TestOptionalDurationInvalid(t *testing.T) {
	var d OptionalDuration
	if err := d.Set("bad"); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
	if _, ok := d.Value(); ok {
		t.Fatalf("expected invalid duration to remain unset")
	}
}

func TestOptionalInt(t *testing.T) {
	var i OptionalInt
	if i.String() != "" {
		t.Fatalf("expected empty string for unset int")
	}
	if err := i.Set("42"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if i.String() != "42" {
		t.Fatalf("expected int string 42, got %q", i.String())
	}
	if v, ok := i.Value(); !ok || v != 42 {
		t.Fatalf("expected int value 42, got %d (ok=%v)", v, ok)
	}
	if err := i.Set("nope"); err == nil {
		t.Fatalf("expected error for invalid int")
	}
}

func TestOptionalFloat(t *testing.T) {
	var f OptionalFloat
	if f.String() != "" {
		t.Fatalf("expected empty string for unset float")
	}
	if err := f.Set("97.5"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.String() != "97.5" {
		t.Fatalf("expected float string 97.5, got %q", f.String())
	}
	if v, ok := f.Value(); !ok || v != 97.5 {
		t.Fatalf("expected float value 97.5, got %v (ok=%v)", v, ok)
	}
	if err := f.Set("abc"); err == nil {
		t.Fatalf("expected error for invalid float")
	}
}

func TestOptionalString(t *testing.T) {
	var s OptionalString
	if s.String() != "" {
		t.Fatalf("expected empty string for unset value")
	}
	if _, ok := s.Value(); ok {
		t.Fatalf("expected unset string to report false")
	}
	if err := s.Set("ratio"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, ok := s.Value(); !ok || v != "ratio" {
		t.Fatalf("expected string value ratio, got %q (ok=%v)", v, ok)
	}
}

func TestOptionalBool(t *testing.T) {
	var b OptionalBool
	if !b.IsBoolFlag() {
		t.Fatalf("expected IsBoolFlag to be true")
	}
	if b.String() != "" {
		t.Fatalf("expected empty string for unset bool")
	}
	if err := b.Set("true"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, ok := b.Value(); !ok || !v {
		t.Fatalf("expected bool value true, got %v (ok=%v)", v, ok)
	}
	if b.String() != "true" {
		t.Fatalf("expected bool string true, got %q", b.String())
	}
	if err := b.Set("maybe"); err == nil {
		t.Fatalf("expected error for invalid bool")
	}
}
