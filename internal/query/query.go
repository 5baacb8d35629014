// Package query implements the shared list-endpoint convention: pagination,
// free-text search, and status filters become one match/sort/skip/limit query
// plus a parallel count query.
package query

import (
	"errors"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

// Pagination bounds. Values outside reject the request before any storage
// access.
const (
	DefaultPageNumber  = 1
	DefaultDataPerPage = 20
	MaxDataPerPage     = 100
)

// Errors carry the exact user-facing messages of the 400 responses.
var (
	ErrInvalidPageNumber  = errors.New("Bad Request: Invalid page number")
	ErrInvalidDataPerPage = errors.New("Bad Request: Invalid number of data per page")
)

// Page is the validated pagination/search/filter input of one list request.
type Page struct {
	Number  int
	PerPage int
	Search  string
	Filters []string
}

// ParsePage validates the raw query parameters. pageNumber must be a positive
// integer (default 1); dataPerPage an integer in [1,100] (default 20).
func ParsePage(values url.Values) (Page, error) {
	p := Page{Number: DefaultPageNumber, PerPage: DefaultDataPerPage}

	if raw := values.Get("pageNumber"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return Page{}, ErrInvalidPageNumber
		}
		p.Number = n
	}
	if raw := values.Get("dataPerPage"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > MaxDataPerPage {
			return Page{}, ErrInvalidDataPerPage
		}
		p.PerPage = n
	}

	p.Search = strings.TrimSpace(values.Get("search"))
	if raw := strings.TrimSpace(values.Get("filters")); raw != "" {
		for _, token := range strings.Split(raw, ",") {
			if token = strings.TrimSpace(token); token != "" {
				p.Filters = append(p.Filters, token)
			}
		}
	}
	return p, nil
}

// Skip is the pagination offset of the page query.
func (p Page) Skip() int64 {
	return int64(p.Number-1) * int64(p.PerPage)
}

// Limit is the page size of the page query.
func (p Page) Limit() int64 {
	return int64(p.PerPage)
}

// Match builds the filter clause applied before sort/pagination. Search and
// filter conditions AND together; when both are absent the clause matches all
// documents. The same clause drives the count query.
func (p Page) Match(textField, statusField string) bson.M {
	match := bson.M{}
	if p.Search != "" && textField != "" {
		match[textField] = bson.M{
			"$regex":   regexp.QuoteMeta(p.Search),
			"$options": "i",
		}
	}
	if len(p.Filters) > 0 && statusField != "" {
		match[statusField] = bson.M{"$in": p.Filters}
	}
	return match
}

// Sort is the fixed ordering of every list endpoint: newest first by creation
// timestamp. Not configurable by the caller.
func Sort() bson.D {
	return bson.D{{Key: "createdAt", Value: -1}}
}

// MatchesText reports whether value satisfies the case-insensitive substring
// search. Used by the in-memory stores so tests share the exact semantics of
// the storage query.
func (p Page) MatchesText(value string) bool {
	if p.Search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(p.Search))
}

// MatchesStatus reports whether value satisfies the set-membership filter.
func (p Page) MatchesStatus(value string) bool {
	if len(p.Filters) == 0 {
		return true
	}
	for _, f := range p.Filters {
		if f == value {
			return true
		}
	}
	return false
}
