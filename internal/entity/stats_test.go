package entity

import (
	"reflect"
	"testing"
)

func TestSanitizeCategory(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"encoded ampersand becomes and", "Science &amp; Nature", "Science and Nature"},
		{"literal punctuation replaced", "Art/Design!", "Art_Design_"},
		{"colon and spaces kept", "Entertainment: Video Games", "Entertainment: Video Games"},
		{"literal ampersand replaced", "Science & Nature", "Science _ Nature"},
		{"decoded accents survive", "Pok&eacute;mon", "Pokémon"},
		{"already clean", "History", "History"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SanitizeCategory(tc.in); got != tc.want {
				t.Fatalf("SanitizeCategory(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestRecordAnswerCounts(t *testing.T) {
	doc := NewStatsDocument()
	for i := 0; i < 3; i++ {
		doc.RecordAnswer("Science &amp; Nature", true)
	}
	for i := 0; i < 2; i++ {
		doc.RecordAnswer("Science &amp; Nature", false)
	}

	tally, ok := doc.Categories["Science and Nature"]
	if !ok {
		t.Fatalf("expected sanitized key %q, have %v", "Science and Nature", doc.Categories)
	}
	if tally.Correct != 3 || tally.Incorrect != 2 {
		t.Fatalf("tally = %+v, want {Correct:3 Incorrect:2}", tally)
	}
	if tally.Total() != 5 {
		t.Fatalf("total = %d, want 5", tally.Total())
	}
}

func TestRecordAskedQuestionRetiresSentinel(t *testing.T) {
	doc := NewStatsDocument()
	if !reflect.DeepEqual(doc.Questions, []string{SentinelQuestion}) {
		t.Fatalf("fresh document questions = %v, want only the sentinel", doc.Questions)
	}

	doc.RecordAskedQuestion("What is the airspeed of an unladen swallow?")

	if doc.HasAsked(SentinelQuestion) {
		t.Fatalf("sentinel still present after real question: %v", doc.Questions)
	}
	if !doc.HasAsked("What is the airspeed of an unladen swallow?") {
		t.Fatalf("real question missing: %v", doc.Questions)
	}
}

func TestRecordAskedQuestionDeduplicates(t *testing.T) {
	doc := NewStatsDocument()
	doc.RecordAskedQuestion("It&#039;s a trap?")
	doc.RecordAskedQuestion("It's a trap?")

	if got := len(doc.Questions); got != 1 {
		t.Fatalf("questions = %v, want exactly one decoded entry", doc.Questions)
	}
	if doc.Questions[0] != "It's a trap?" {
		t.Fatalf("stored question = %q, want decoded form", doc.Questions[0])
	}
}

func TestHasAskedDecodesBeforeComparing(t *testing.T) {
	doc := NewStatsDocument()
	doc.RecordAskedQuestion("Who wrote &quot;Dune&quot;?")

	if !doc.HasAsked("Who wrote &quot;Dune&quot;?") {
		t.Fatal("encoded lookup should match decoded history entry")
	}
	if !doc.HasAsked(`Who wrote "Dune"?`) {
		t.Fatal("decoded lookup should match decoded history entry")
	}
}

func TestNormalizeUpgradesMissingFields(t *testing.T) {
	doc := &StatsDocument{Categories: map[string]Tally{"History": {Correct: 1}}}
	doc.Normalize()

	if doc.Questions == nil || len(doc.Questions) != 0 {
		t.Fatalf("upgraded questions = %v, want empty non-nil list", doc.Questions)
	}

	empty := &StatsDocument{}
	empty.Normalize()
	if empty.Categories == nil {
		t.Fatal("normalize should allocate the categories map")
	}
}
