package entity

import "math"

// OverallTotalName labels the aggregate line of the accuracy report.
const OverallTotalName = "Overall Total"

// ReportRow is one category line of the accuracy report.
type ReportRow struct {
	Name      string
	Correct   int
	Incorrect int
}

// Total returns how many answers the row covers.
func (r ReportRow) Total() int { return r.Correct + r.Incorrect }

// CorrectPercent returns the share of correct answers rounded to the nearest
// whole percent. A row with no answers reports zero instead of dividing.
func (r ReportRow) CorrectPercent() int {
	total := r.Total()
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(r.Correct) / float64(total) * 100))
}

// IncorrectPercent complements CorrectPercent to 100. A row with no answers
// reports zero on both sides.
func (r ReportRow) IncorrectPercent() int {
	if r.Total() == 0 {
		return 0
	}
	return 100 - r.CorrectPercent()
}

// Report is the computed accuracy summary: one row per category with at
// least one recorded answer, plus the aggregate over exactly those rows.
type Report struct {
	Rows    []ReportRow
	Overall ReportRow
}
