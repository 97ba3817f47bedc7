package model

import "testing"

func TestFitEncoderSortedClassesAndFallback(t *testing.T) {
	e, err := FitEncoder("fuel", []string{"petrol", "diesel", "petrol", "cng", "petrol", "diesel"})
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	want := []string{"cng", "diesel", "petrol"}
	if len(e.Classes) != len(want) {
		t.Fatalf("classes=%v", e.Classes)
	}
	for i := range want {
		if e.Classes[i] != want[i] {
			t.Fatalf("classes=%v, want %v", e.Classes, want)
		}
	}
	if e.Fallback != "petrol" {
		t.Fatalf("fallback=%q, want petrol", e.Fallback)
	}
}

func TestFitEncoderEmpty(t *testing.T) {
	if _, err := FitEncoder("fuel", nil); err == nil {
		t.Fatal("expected error for empty values")
	}
}

func TestTransformKnownAndUnknown(t *testing.T) {
	e, err := FitEncoder("make", []string{"toyota", "honda", "toyota"})
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	code, known := e.Transform("honda")
	if !known || code != 0 {
		t.Fatalf("honda -> (%v, %v)", code, known)
	}
	code, known = e.Transform("Toyota ")
	if !known || code != 1 {
		t.Fatalf("normalized toyota -> (%v, %v)", code, known)
	}
	code, known = e.Transform("lada")
	if known {
		t.Fatal("lada should be unknown")
	}
	if fb, _ := e.Transform(e.Fallback); code != fb {
		t.Fatalf("unknown code=%v, want fallback code %v", code, fb)
	}
}

func TestNormalizeSynonyms(t *testing.T) {
	cases := []struct{ column, in, want string }{
		{"body", "Hatch", "hatchback"},
		{"fuel", "EV", "electric"},
		{"body", "MPV", "suv"},
		{"fuel", "Hybrid", "petrol"},
		{"fuel", "gasoline", "petrol"},
		{"transmission", "AT", "automatic"},
		{"make", "  Toyota ", "toyota"},
		{"fuel", "diesel", "diesel"},
	}
	for _, c := range cases {
		if got := Normalize(c.column, c.in); got != c.want {
			t.Fatalf("Normalize(%s, %q)=%q, want %q", c.column, c.in, got, c.want)
		}
	}
}

func TestEncoderRoundTripRebuild(t *testing.T) {
	e, err := FitEncoder("body", []string{"suv", "sedan", "suv"})
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	// Simulate an encoder fresh off deserialization: no index yet.
	clone := &Encoder{Column: e.Column, Classes: e.Classes, Fallback: e.Fallback}
	code, known := clone.Transform("sedan")
	if !known || code != 0 {
		t.Fatalf("sedan -> (%v, %v)", code, known)
	}
}
