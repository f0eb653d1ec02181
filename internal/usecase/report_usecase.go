package usecase

import (
	"cmp"
	"context"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/eslsoft/trivnet/internal/entity"
	"github.com/eslsoft/trivnet/internal/repository"
	"github.com/eslsoft/trivnet/pkg/filterexpr"
)

// Order keys accepted by the report query surface.
const (
	orderByName     = "name"
	orderByTotal    = "total"
	orderByAccuracy = "accuracy"
)

// reportSchema whitelists the filter fields and order keys of report queries.
var reportSchema = filterexpr.ResourceSchema{
	Filter: map[string]filterexpr.FilterField{
		"category": {
			Kind: filterexpr.KindString,
			Ops: map[filterexpr.Op]string{
				filterexpr.OpEQ: "CategoryEq",
				filterexpr.OpSW: "CategoryPrefix",
				filterexpr.OpIN: "CategoryIn",
			},
		},
		"total": {
			Kind: filterexpr.KindNumber,
			Ops: map[filterexpr.Op]string{
				filterexpr.OpEQ:  "TotalEq",
				filterexpr.OpGTE: "TotalMin",
				filterexpr.OpLTE: "TotalMax",
			},
		},
		"accuracy": {
			Kind: filterexpr.KindNumber,
			Ops: map[filterexpr.Op]string{
				filterexpr.OpEQ:  "AccuracyEq",
				filterexpr.OpGTE: "AccuracyMin",
				filterexpr.OpLTE: "AccuracyMax",
			},
		},
	},
	Order: filterexpr.OrderSchema{
		Default:  orderByName,
		Fallback: orderByName,
		Keys:     []string{orderByName, orderByTotal, orderByAccuracy},
	},
}

// reportParams is the bound form of a report query.
type reportParams struct {
	CategoryEq     *string
	CategoryPrefix *string
	CategoryIn     []string
	TotalEq        *int
	TotalMin       *int
	TotalMax       *int
	AccuracyEq     *float64
	AccuracyMin    *float64
	AccuracyMax    *float64

	PrimaryKey    string
	PrimaryDesc   bool
	SecondaryKey  string
	SecondaryDesc bool
}

func (p reportParams) matches(row entity.ReportRow) bool {
	if p.CategoryEq != nil && row.Name != *p.CategoryEq {
		return false
	}
	if p.CategoryPrefix != nil && !strings.HasPrefix(row.Name, *p.CategoryPrefix) {
		return false
	}
	if len(p.CategoryIn) > 0 && !lo.Contains(p.CategoryIn, row.Name) {
		return false
	}

	if p.TotalEq != nil && row.Total() != *p.TotalEq {
		return false
	}
	if p.TotalMin != nil && row.Total() < *p.TotalMin {
		return false
	}
	if p.TotalMax != nil && row.Total() > *p.TotalMax {
		return false
	}

	accuracy := float64(row.CorrectPercent())
	if p.AccuracyEq != nil && accuracy != *p.AccuracyEq {
		return false
	}
	if p.AccuracyMin != nil && accuracy < *p.AccuracyMin {
		return false
	}
	if p.AccuracyMax != nil && accuracy > *p.AccuracyMax {
		return false
	}

	return true
}

// ReportUsecase computes the per-category accuracy summary.
type ReportUsecase interface {
	Summary(ctx context.Context, query *repository.ReportQuery) (entity.Report, error)
}

// NewReportUsecase wires the stats store into the report computation.
func NewReportUsecase(stats repository.StatsRepository) ReportUsecase {
	return &reportUsecase{stats: stats}
}

type reportUsecase struct {
	stats repository.StatsRepository
}

// Summary binds the query, loads the document, and renders one row per
// matching category with at least one recorded answer. The overall line sums
// exactly the rendered rows.
func (u *reportUsecase) Summary(ctx context.Context, query *repository.ReportQuery) (entity.Report, error) {
	if query == nil {
		query = &repository.ReportQuery{}
	}

	var params reportParams
	if err := filterexpr.Bind(query, &params, reportSchema); err != nil {
		return entity.Report{}, err
	}

	doc, err := u.stats.Load(ctx)
	if err != nil {
		return entity.Report{}, err
	}

	rows := make([]entity.ReportRow, 0, len(doc.Categories))
	for name, tally := range doc.Categories {
		row := entity.ReportRow{Name: name, Correct: tally.Correct, Incorrect: tally.Incorrect}
		if row.Total() == 0 || !params.matches(row) {
			continue
		}
		rows = append(rows, row)
	}

	sortRows(rows, params)

	overall := entity.ReportRow{
		Name:      entity.OverallTotalName,
		Correct:   lo.SumBy(rows, func(r entity.ReportRow) int { return r.Correct }),
		Incorrect: lo.SumBy(rows, func(r entity.ReportRow) int { return r.Incorrect }),
	}

	return entity.Report{Rows: rows, Overall: overall}, nil
}

// sortRows orders rows by the bound primary and secondary keys, breaking any
// remaining ties by name ascending so output stays deterministic.
func sortRows(rows []entity.ReportRow, p reportParams) {
	sort.SliceStable(rows, func(i, j int) bool {
		if c := compareRows(rows[i], rows[j], p.PrimaryKey, p.PrimaryDesc); c != 0 {
			return c < 0
		}
		if c := compareRows(rows[i], rows[j], p.SecondaryKey, p.SecondaryDesc); c != 0 {
			return c < 0
		}
		return rows[i].Name < rows[j].Name
	})
}

func compareRows(a, b entity.ReportRow, key string, desc bool) int {
	var c int
	switch key {
	case orderByTotal:
		c = cmp.Compare(a.Total(), b.Total())
	case orderByAccuracy:
		c = cmp.Compare(a.CorrectPercent(), b.CorrectPercent())
	default:
		c = strings.Compare(a.Name, b.Name)
	}
	if desc {
		c = -c
	}
	return c
}
