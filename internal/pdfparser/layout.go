package pdfparser

import (
	"math"
	"sort"
	"strings"

	"concilia/extrato-match/internal/textutils"
)

// DefaultLineTolerance is the vertical distance, in PDF points, within which
// two runs are considered part of the same visual line.
const DefaultLineTolerance = 2.0

// ReconstructLines rebuilds the visual text lines of a decoded document.
// Runs sharing the same vertical position (rounded to the tolerance) are
// grouped into one line; within a line, runs are ordered left-to-right and
// joined with single spaces. Lines are ordered top-to-bottom per page and
// pages are concatenated in order.
func ReconstructLines(pages []PageRuns, tolerance float64) []string {
	if tolerance <= 0 {
		tolerance = DefaultLineTolerance
	}

	var lines []string
	for _, page := range pages {
		lines = append(lines, reconstructPage(page.Runs, tolerance)...)
	}
	return lines
}

func reconstructPage(runs []TextRun, tolerance float64) []string {
	type bucket struct {
		y    float64
		runs []TextRun
	}

	buckets := make(map[int64]*bucket)
	for _, run := range runs {
		if strings.TrimSpace(run.Text) == "" {
			continue
		}
		key := int64(math.Round(run.Y / tolerance))
		b, ok := buckets[key]
		if !ok {
			b = &bucket{y: run.Y}
			buckets[key] = b
		}
		b.runs = append(b.runs, run)
	}

	ordered := make([]*bucket, 0, len(buckets))
	for _, b := range buckets {
		ordered = append(ordered, b)
	}
	// PDF coordinates grow upward: the top of the page has the largest Y.
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].y > ordered[j].y
	})

	lines := make([]string, 0, len(ordered))
	for _, b := range ordered {
		sort.SliceStable(b.runs, func(i, j int) bool {
			return b.runs[i].X < b.runs[j].X
		})
		parts := make([]string, 0, len(b.runs))
		for _, run := range b.runs {
			parts = append(parts, run.Text)
		}
		lines = append(lines, textutils.NormalizeWhitespace(strings.Join(parts, " ")))
	}
	return lines
}
