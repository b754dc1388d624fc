// Package views renders backend aggregates as terminal text. Every render
// function is pure so the output is testable without a live backend.
package views

import (
	"fmt"
	"strings"
	"time"
)

// FormatBRL renders a value as Brazilian currency, e.g. R$ 1.234,56.
func FormatBRL(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}

	whole := int64(v)
	cents := int64(v*100+0.5) - whole*100
	if cents >= 100 {
		whole++
		cents -= 100
	}

	digits := fmt.Sprintf("%d", whole)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}

	sign := ""
	if neg {
		sign = "-"
	}
	return fmt.Sprintf("%sR$ %s,%02d", sign, b.String(), cents)
}

// FormatPercent renders a ratio-or-percentage value with one decimal, e.g.
// 12,5%. Values are assumed to already be in percent units.
func FormatPercent(v float64) string {
	s := fmt.Sprintf("%.1f%%", v)
	return strings.Replace(s, ".", ",", 1)
}

// FormatSeconds renders a duration given in seconds as 1h05m or 2m30s.
func FormatSeconds(secs float64) string {
	if secs <= 0 {
		return "-"
	}
	d := time.Duration(secs * float64(time.Second))
	if d >= time.Hour {
		return fmt.Sprintf("%dh%02dm", int(d.Hours()), int(d.Minutes())%60)
	}
	if d >= time.Minute {
		return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%ds", int(d.Seconds()))
}

// FormatDateBR renders a timestamp as dd/mm/yyyy.
func FormatDateBR(t time.Time) string {
	return t.Format("02/01/2006")
}

// FormatTimeBR renders a timestamp as dd/mm hh:mm.
func FormatTimeBR(t time.Time) string {
	return t.Format("02/01 15:04")
}
