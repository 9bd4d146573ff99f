package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/llehouerou/scrob/internal/scrobble"
)

// Chart layout. Bars share the inner width evenly with a fixed gap, and
// the tallest bar fills the plot height.
const (
	chartWidth  = 700
	chartHeight = 220
	chartPad    = 20
	barGap      = 10
	labelSpace  = 20
	chartDays   = 7
)

// WeekChart renders an SVG bar chart of plays per day over the trailing
// seven-day window ending at now. Days without plays get zero-height
// bars; an all-zero week renders all bars at zero rather than failing on
// the zero maximum.
func WeekChart(records []scrobble.Record, now time.Time) string {
	start := startOfDay(now.AddDate(0, 0, -(chartDays - 1)))

	days := make([]time.Time, chartDays)
	counts := make([]int, chartDays)
	bucket := make(map[string]int, chartDays)
	for i := range days {
		day := start.AddDate(0, 0, i)
		days[i] = day
		bucket[dayKey(day)] = i
	}

	for _, rec := range records {
		if rec.At.Before(start) || rec.At.After(now) {
			continue
		}
		if i, ok := bucket[dayKey(rec.At)]; ok {
			counts[i]++
		}
	}

	max := 0
	for _, c := range counts {
		if c > max {
			max = c
		}
	}

	innerWidth := chartWidth - 2*chartPad
	plotHeight := chartHeight - 2*chartPad - labelSpace
	barWidth := (innerWidth - (chartDays-1)*barGap) / chartDays

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d">`+"\n",
		chartWidth, chartHeight)

	for i, count := range counts {
		height := 0
		if max > 0 {
			height = count * plotHeight / max
		}

		x := chartPad + i*(barWidth+barGap)
		y := chartPad + plotHeight - height

		fmt.Fprintf(&b, `  <rect x="%d" y="%d" width="%d" height="%d" fill="#4a90d9"/>`+"\n",
			x, y, barWidth, height)
		fmt.Fprintf(&b, `  <text x="%d" y="%d" text-anchor="middle" font-size="12" font-family="sans-serif">%s</text>`+"\n",
			x+barWidth/2, chartPad+plotHeight+labelSpace-5, days[i].Weekday())
	}

	b.WriteString("</svg>\n")
	return b.String()
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
