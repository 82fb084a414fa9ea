// Package datatables implements the server side of the DataTables
// server-side processing protocol.
package datatables

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"registry/internal/domain"
)

const (
	DefaultLength = 10
	MaxLength     = 5000
	// maxOrderColumns bounds the order[i] keys read from a request.
	maxOrderColumns = 16
)

// Request is a parsed grid request.
type Request struct {
	Draw        int
	Start       int
	Length      int // -1 for all rows
	Search      string
	SearchRegex bool
	Order       []domain.Ordering
}

// ValidationError reports malformed request parameters by name.
type ValidationError struct {
	Details map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Details))
	for k, v := range e.Details {
		parts = append(parts, k+": "+v)
	}
	return "datatables: invalid request: " + strings.Join(parts, ", ")
}

// ColumnPolicy tells the parser which columns exist and which may be sorted.
type ColumnPolicy interface {
	Orderable(column string) bool
}

// ParseRequest reads the grid parameters. columns is the table column order
// used when the request does not name its columns.
func ParseRequest(q url.Values, columns []string, policy ColumnPolicy) (Request, error) {
	details := map[string]string{}
	req := Request{Length: DefaultLength}

	if v := strings.TrimSpace(q.Get("draw")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			details["draw"] = "must be a non-negative integer"
		}
		req.Draw = n
	}
	if v := strings.TrimSpace(q.Get("start")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			details["start"] = "must be a non-negative integer"
		}
		req.Start = n
	}
	if v := strings.TrimSpace(q.Get("length")); v != "" {
		n, err := strconv.Atoi(v)
		switch {
		case err != nil || n == 0 || n < -1:
			details["length"] = "must be a positive integer or -1"
		case n > MaxLength:
			req.Length = MaxLength
		default:
			req.Length = n
		}
	}
	req.Search = strings.TrimSpace(q.Get("search[value]"))
	req.SearchRegex = q.Get("search[regex]") == "true"

	names := requestColumns(q, columns)
	for i := 0; i < maxOrderColumns; i++ {
		idx := q.Get(fmt.Sprintf("order[%d][column]", i))
		if idx == "" {
			break
		}
		n, err := strconv.Atoi(idx)
		if err != nil || n < 0 || n >= len(names) {
			details[fmt.Sprintf("order[%d][column]", i)] = "unknown column"
			continue
		}
		name := names[n]
		if q.Get(fmt.Sprintf("columns[%d][orderable]", n)) == "false" {
			continue
		}
		if policy != nil && !policy.Orderable(name) {
			continue
		}
		dir := strings.ToLower(q.Get(fmt.Sprintf("order[%d][dir]", i)))
		if dir != "" && dir != "asc" && dir != "desc" {
			details[fmt.Sprintf("order[%d][dir]", i)] = "must be asc or desc"
			continue
		}
		req.Order = append(req.Order, domain.Ordering{Column: name, Desc: dir == "desc"})
	}

	if len(details) > 0 {
		return Request{}, &ValidationError{Details: details}
	}
	return req, nil
}

// requestColumns maps column indexes to names, preferring columns[i][data]
// sent by the grid.
func requestColumns(q url.Values, columns []string) []string {
	names := append([]string(nil), columns...)
	for i := range names {
		if data := strings.TrimSpace(q.Get(fmt.Sprintf("columns[%d][data]", i))); data != "" {
			names[i] = data
		}
	}
	return names
}

// Query converts the request into a repository query.
func (r Request) Query() domain.OverviewQuery {
	length := r.Length
	if length < 0 {
		length = -1
	}
	return domain.OverviewQuery{
		Start:  r.Start,
		Length: length,
		Search: r.Search,
		Order:  r.Order,
	}
}

// Response is the envelope returned to the grid.
type Response struct {
	Draw            int    `json:"draw"`
	RecordsTotal    int    `json:"recordsTotal"`
	RecordsFiltered int    `json:"recordsFiltered"`
	Data            any    `json:"data"`
	Error           string `json:"error,omitempty"`
}
