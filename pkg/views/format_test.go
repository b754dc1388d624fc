package views

import (
	"testing"
	"time"
)

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "R$ 0,00"},
		{9.9, "R$ 9,90"},
		{1234.56, "R$ 1.234,56"},
		{1530.4, "R$ 1.530,40"},
		{1000000, "R$ 1.000.000,00"},
		{-42.5, "-R$ 42,50"},
	}
	for _, tc := range tests {
		if got := FormatBRL(tc.in); got != tc.want {
			t.Errorf("FormatBRL(%v): got %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(12.5); got != "12,5%" {
		t.Errorf("got %q", got)
	}
	if got := FormatPercent(0); got != "0,0%" {
		t.Errorf("got %q", got)
	}
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "-"},
		{45, "45s"},
		{95.5, "1m35s"},
		{3600, "1h00m"},
		{5430, "1h30m"},
	}
	for _, tc := range tests {
		if got := FormatSeconds(tc.in); got != tc.want {
			t.Errorf("FormatSeconds(%v): got %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatDateBR(t *testing.T) {
	d := time.Date(2026, 8, 23, 14, 30, 0, 0, time.UTC)
	if got := FormatDateBR(d); got != "23/08/2026" {
		t.Errorf("got %q", got)
	}
	if got := FormatTimeBR(d); got != "23/08 14:30" {
		t.Errorf("got %q", got)
	}
}
