// Package plotfmt provides axis tick formatters for financial plots:
// dollar amounts, percentages and basis points. Each ticker delegates tick
// placement to plot.DefaultTicks and rewrites only the labels.
package plotfmt

import (
	"fmt"
	"strings"

	"gonum.org/v1/plot"
)

// DollarTicks labels ticks as dollar amounts with thousands separators,
// e.g. $1,234.56. Prec is the number of decimal places; negative Prec means
// two.
type DollarTicks struct {
	Prec int
}

// Ticks implements plot.Ticker.
func (t DollarTicks) Ticks(min, max float64) []plot.Tick {
	prec := t.Prec
	if prec < 0 {
		prec = 2
	}
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for i, tick := range ticks {
		if tick.Label == "" {
			continue
		}
		ticks[i].Label = Dollars(tick.Value, prec)
	}
	return ticks
}

// PercentTicks labels ticks as percentages of one, e.g. 0.123 -> 12.3%.
type PercentTicks struct {
	Prec int
}

// Ticks implements plot.Ticker.
func (t PercentTicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for i, tick := range ticks {
		if tick.Label == "" {
			continue
		}
		ticks[i].Label = fmt.Sprintf("%.*f%%", t.Prec, tick.Value*100)
	}
	return ticks
}

// BasisPointTicks labels ticks in basis points, e.g. 0.0045 -> 45bp.
type BasisPointTicks struct{}

// Ticks implements plot.Ticker.
func (BasisPointTicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for i, tick := range ticks {
		if tick.Label == "" {
			continue
		}
		ticks[i].Label = fmt.Sprintf("%.0fbp", tick.Value*1e4)
	}
	return ticks
}

// Dollars formats a value as a dollar amount with thousands separators.
func Dollars(v float64, prec int) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := fmt.Sprintf("%.*f", prec, v)

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i:]
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteString(fracPart)
	return b.String()
}
