package usecase

import (
	"context"
	"testing"

	"github.com/eslsoft/trivnet/internal/entity"
	"github.com/eslsoft/trivnet/internal/repository"
)

func seedReportRepo() *fakeStatsRepo {
	stats := newFakeStatsRepo()
	stats.doc.Categories["Science and Nature"] = entity.Tally{Correct: 3, Incorrect: 1}
	stats.doc.Categories["History"] = entity.Tally{Correct: 1, Incorrect: 0}
	stats.doc.Categories["Geography"] = entity.Tally{Correct: 0, Incorrect: 2}
	stats.doc.Categories["Mythology"] = entity.Tally{}
	return stats
}

func rowNames(rows []entity.ReportRow) []string {
	names := make([]string, len(rows))
	for i, row := range rows {
		names[i] = row.Name
	}
	return names
}

func equalNames(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestSummaryDefaultOrder(t *testing.T) {
	u := NewReportUsecase(seedReportRepo())

	report, err := u.Summary(context.Background(), nil)
	if err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}

	want := []string{"Geography", "History", "Science and Nature"}
	if got := rowNames(report.Rows); !equalNames(got, want) {
		t.Fatalf("expected rows %v, got %v", want, got)
	}

	if report.Overall.Name != entity.OverallTotalName {
		t.Fatalf("expected overall label %q, got %q", entity.OverallTotalName, report.Overall.Name)
	}
	if report.Overall.Correct != 4 || report.Overall.Incorrect != 3 {
		t.Fatalf("expected overall 4/3, got %+v", report.Overall)
	}
}

func TestSummaryFilterByCategoryPrefix(t *testing.T) {
	u := NewReportUsecase(seedReportRepo())

	query := &repository.ReportQuery{}
	query.Filter = "category.startsWith('S')"

	report, err := u.Summary(context.Background(), query)
	if err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}

	if got := rowNames(report.Rows); !equalNames(got, []string{"Science and Nature"}) {
		t.Fatalf("expected only the prefixed row, got %v", got)
	}
	if report.Overall.Correct != 3 || report.Overall.Incorrect != 1 {
		t.Fatalf("expected overall to cover rendered rows only, got %+v", report.Overall)
	}
}

func TestSummaryFilterByTotalAndAccuracy(t *testing.T) {
	u := NewReportUsecase(seedReportRepo())

	query := &repository.ReportQuery{}
	query.Filter = "total >= 2 && accuracy <= 50"

	report, err := u.Summary(context.Background(), query)
	if err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}

	if got := rowNames(report.Rows); !equalNames(got, []string{"Geography"}) {
		t.Fatalf("expected only Geography, got %v", got)
	}
}

func TestSummaryFilterByCategoryList(t *testing.T) {
	u := NewReportUsecase(seedReportRepo())

	query := &repository.ReportQuery{}
	query.Filter = "category in ['History', 'Geography']"

	report, err := u.Summary(context.Background(), query)
	if err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}

	if got := rowNames(report.Rows); !equalNames(got, []string{"Geography", "History"}) {
		t.Fatalf("expected listed categories, got %v", got)
	}
}

func TestSummaryOrderByAccuracyDesc(t *testing.T) {
	u := NewReportUsecase(seedReportRepo())

	query := &repository.ReportQuery{}
	query.OrderBy = "accuracy desc"

	report, err := u.Summary(context.Background(), query)
	if err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}

	want := []string{"History", "Science and Nature", "Geography"}
	if got := rowNames(report.Rows); !equalNames(got, want) {
		t.Fatalf("expected rows %v, got %v", want, got)
	}
}

func TestSummaryOrderByTotalDescBreaksTiesByName(t *testing.T) {
	stats := seedReportRepo()
	stats.doc.Categories["Art"] = entity.Tally{Correct: 1, Incorrect: 1}

	u := NewReportUsecase(stats)

	query := &repository.ReportQuery{}
	query.OrderBy = "total desc"

	report, err := u.Summary(context.Background(), query)
	if err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}

	want := []string{"Science and Nature", "Art", "Geography", "History"}
	if got := rowNames(report.Rows); !equalNames(got, want) {
		t.Fatalf("expected rows %v, got %v", want, got)
	}
}

func TestSummaryRejectsInvalidQueries(t *testing.T) {
	u := NewReportUsecase(seedReportRepo())

	badFilter := &repository.ReportQuery{}
	badFilter.Filter = "player == 'x'"
	if _, err := u.Summary(context.Background(), badFilter); err == nil {
		t.Fatalf("expected error for unknown filter field")
	}

	badOrder := &repository.ReportQuery{}
	badOrder.OrderBy = "player"
	if _, err := u.Summary(context.Background(), badOrder); err == nil {
		t.Fatalf("expected error for unknown order key")
	}
}

func TestSummaryEmptyDocument(t *testing.T) {
	u := NewReportUsecase(newFakeStatsRepo())

	report, err := u.Summary(context.Background(), nil)
	if err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}

	if len(report.Rows) != 0 {
		t.Fatalf("expected no rows, got %v", report.Rows)
	}
	if report.Overall.Correct != 0 || report.Overall.Incorrect != 0 {
		t.Fatalf("expected zero overall, got %+v", report.Overall)
	}
	if report.Overall.CorrectPercent() != 0 || report.Overall.IncorrectPercent() != 0 {
		t.Fatalf("expected zero percentages, got %d/%d", report.Overall.CorrectPercent(), report.Overall.IncorrectPercent())
	}
}
