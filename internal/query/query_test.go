package query

import (
	"errors"
	"net/url"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func parse(t *testing.T, rawQuery string) url.Values {
	t.Helper()
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		t.Fatalf("parse query: %v", err)
	}
	return values
}

func TestParsePageDefaults(t *testing.T) {
	p, err := ParsePage(parse(t, ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Number != 1 || p.PerPage != 20 {
		t.Fatalf("expected defaults 1/20, got %d/%d", p.Number, p.PerPage)
	}
	if p.Skip() != 0 || p.Limit() != 20 {
		t.Fatalf("unexpected skip/limit %d/%d", p.Skip(), p.Limit())
	}
}

func TestParsePageNumberValidation(t *testing.T) {
	for _, raw := range []string{"0", "-1", "abc", "1.5", ""} {
		values := url.Values{}
		if raw != "" {
			values.Set("pageNumber", raw)
		}
		_, err := ParsePage(values)
		if raw == "" {
			if err != nil {
				t.Fatalf("absent pageNumber must default, got %v", err)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidPageNumber) {
			t.Fatalf("pageNumber=%q: expected ErrInvalidPageNumber, got %v", raw, err)
		}
		if err.Error() != "Bad Request: Invalid page number" {
			t.Fatalf("unexpected message %q", err.Error())
		}
	}
}

func TestParseDataPerPageValidation(t *testing.T) {
	for _, tt := range []struct {
		raw string
		ok  bool
	}{
		{"1", true}, {"100", true}, {"20", true},
		{"0", false}, {"101", false}, {"-5", false}, {"abc", false}, {"2.5", false},
	} {
		_, err := ParsePage(parse(t, "dataPerPage="+tt.raw))
		if tt.ok && err != nil {
			t.Fatalf("dataPerPage=%q: unexpected error %v", tt.raw, err)
		}
		if !tt.ok && !errors.Is(err, ErrInvalidDataPerPage) {
			t.Fatalf("dataPerPage=%q: expected ErrInvalidDataPerPage, got %v", tt.raw, err)
		}
	}
}

func TestSkipOffset(t *testing.T) {
	p, err := ParsePage(parse(t, "pageNumber=3&dataPerPage=25"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Skip() != 50 || p.Limit() != 25 {
		t.Fatalf("expected skip 50 limit 25, got %d/%d", p.Skip(), p.Limit())
	}
}

func TestMatchEscapesRegexMetacharacters(t *testing.T) {
	p, err := ParsePage(parse(t, "search="+url.QueryEscape("kopi (1+1)?")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	match := p.Match("name", "status")
	clause, ok := match["name"].(bson.M)
	if !ok {
		t.Fatalf("expected regex clause on name, got %v", match)
	}
	if clause["$regex"] != `kopi \(1\+1\)\?` {
		t.Fatalf("metacharacters must be escaped, got %q", clause["$regex"])
	}
	if clause["$options"] != "i" {
		t.Fatalf("search must be case-insensitive")
	}
}

func TestMatchFilters(t *testing.T) {
	p, err := ParsePage(parse(t, "filters="+url.QueryEscape(" open , closed ,")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	match := p.Match("name", "status")
	clause, ok := match["status"].(bson.M)
	if !ok {
		t.Fatalf("expected $in clause on status, got %v", match)
	}
	in, ok := clause["$in"].([]string)
	if !ok || len(in) != 2 || in[0] != "open" || in[1] != "closed" {
		t.Fatalf("expected trimmed tokens, got %v", clause["$in"])
	}
}

func TestMatchCombinesSearchAndFilters(t *testing.T) {
	p, err := ParsePage(parse(t, "search=pasar&filters=active"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	match := p.Match("title", "status")
	if len(match) != 2 {
		t.Fatalf("search and filter must AND together, got %v", match)
	}
}

func TestMatchUnconstrained(t *testing.T) {
	p, err := ParsePage(parse(t, "search=%20%20"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if match := p.Match("title", "status"); len(match) != 0 {
		t.Fatalf("blank search must match all documents, got %v", match)
	}
}

func TestSortIsFixedNewestFirst(t *testing.T) {
	sort := Sort()
	if len(sort) != 1 || sort[0].Key != "createdAt" || sort[0].Value != -1 {
		t.Fatalf("sort must be createdAt descending, got %v", sort)
	}
}

func TestMatchesHelpersMirrorQuerySemantics(t *testing.T) {
	p := Page{Search: "KoPi", Filters: []string{"open"}}
	if !p.MatchesText("Kedai Kopi Kita") {
		t.Fatalf("substring match must be case-insensitive")
	}
	if p.MatchesText("Pasar Malam") {
		t.Fatalf("non-matching text must fail")
	}
	if !p.MatchesStatus("open") || p.MatchesStatus("closed") {
		t.Fatalf("status filter must be exact set membership")
	}

	empty := Page{}
	if !empty.MatchesText("anything") || !empty.MatchesStatus("anything") {
		t.Fatalf("absent search/filter must match everything")
	}
}
