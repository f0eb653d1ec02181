package cmd

import (
	"reflect"
	"strings"
	"testing"
)

func Test_normalizeSections(t *testing.T) {
	cases := []struct {
		in   []string
		want []string
	}{
		{nil, nil},
		{[]string{}, nil},
		{[]string{"  "}, nil},
		{[]string{"Categories"}, []string{"categories"}},
		{[]string{" questions ", "", "CATEGORIES"}, []string{"questions", "categories"}},
	}
	for _, c := range cases {
		got := normalizeSections(c.in)
		if !reflect.DeepEqual(got, c.want) {
			t.Fatalf("%v -> got %v want %v", c.in, got, c.want)
		}
	}
}

func Test_defaultExportFilename(t *testing.T) {
	plain := defaultExportFilename(false)
	if !strings.HasPrefix(plain, "trivnet-stats-") || !strings.HasSuffix(plain, ".jsonl") {
		t.Fatalf("unexpected filename: %q", plain)
	}
	gz := defaultExportFilename(true)
	if !strings.HasSuffix(gz, ".jsonl.gz") {
		t.Fatalf("unexpected gzip filename: %q", gz)
	}
}
