package repo

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type simpleRow struct {
	scan func(dest ...any) error
}

func (r simpleRow) Scan(dest ...any) error {
	if r.scan == nil {
		return pgx.ErrNoRows
	}
	return r.scan(dest...)
}

type testRowsBase struct{}

func (testRowsBase) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }

func (testRowsBase) Conn() *pgx.Conn { return nil }

func (testRowsBase) FieldDescriptions() []pgconn.FieldDescription { return nil }

func (testRowsBase) Values() ([]any, error) {
	return nil, fmt.Errorf("values not supported in test rows")
}

func (testRowsBase) RawValues() [][]byte { return nil }

// valueRows serves fixed rows of plain Go values.
type valueRows struct {
	testRowsBase
	items [][]any
	idx   int
}

func (r *valueRows) Next() bool {
	if r.idx >= len(r.items) {
		return false
	}
	r.idx++
	return true
}

func (r *valueRows) Scan(dest ...any) error {
	if r.idx == 0 || r.idx > len(r.items) {
		return pgx.ErrNoRows
	}
	return scanValues(r.items[r.idx-1], dest)
}

func (r *valueRows) Err() error { return nil }

func (r *valueRows) Close() {}

func scanValues(values []any, dest []any) error {
	if len(values) != len(dest) {
		return fmt.Errorf("unexpected scan args: %d, row has %d", len(dest), len(values))
	}
	for i, v := range values {
		switch d := dest[i].(type) {
		case *string:
			s, ok := v.(string)
			if !ok {
				return fmt.Errorf("dest[%d] is *string, value %T", i, v)
			}
			*d = s
		case *int:
			n, ok := v.(int)
			if !ok {
				return fmt.Errorf("dest[%d] is *int, value %T", i, v)
			}
			*d = n
		case *bool:
			b, ok := v.(bool)
			if !ok {
				return fmt.Errorf("dest[%d] is *bool, value %T", i, v)
			}
			*d = b
		default:
			return fmt.Errorf("dest[%d] unsupported type %T", i, dest[i])
		}
	}
	return nil
}

type recordedQuery struct {
	query string
	args  []any
}

// fakeDB answers queries by marker.
type fakeDB struct {
	mu      sync.Mutex
	rows    map[string][][]any
	fail    map[string]error
	queries []recordedQuery
}

func newFakeDB() *fakeDB {
	return &fakeDB{rows: make(map[string][][]any), fail: make(map[string]error)}
}

func (f *fakeDB) on(marker string, rows ...[]any) {
	f.rows[marker] = rows
}

func (f *fakeDB) record(query string, args []any) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, recordedQuery{query: query, args: args})
	for marker, err := range f.fail {
		if strings.Contains(query, marker) {
			return marker, err
		}
	}
	for marker := range f.rows {
		if strings.Contains(query, marker) {
			return marker, nil
		}
	}
	return "", fmt.Errorf("unexpected query: %s", firstQueryLine(query))
}

func (f *fakeDB) lastQuery(marker string) (recordedQuery, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.queries) - 1; i >= 0; i-- {
		if strings.Contains(f.queries[i].query, marker) {
			return f.queries[i], true
		}
	}
	return recordedQuery{}, false
}

func (f *fakeDB) Exec(_ context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	if _, err := f.record(query, args); err != nil {
		return pgconn.CommandTag{}, err
	}
	return pgconn.NewCommandTag("SELECT 0"), nil
}

func (f *fakeDB) QueryRow(_ context.Context, query string, args ...any) pgx.Row {
	marker, err := f.record(query, args)
	if err != nil {
		return simpleRow{scan: func(...any) error { return err }}
	}
	rows := f.rows[marker]
	if len(rows) == 0 {
		return simpleRow{}
	}
	return simpleRow{scan: func(dest ...any) error { return scanValues(rows[0], dest) }}
}

func (f *fakeDB) Query(_ context.Context, query string, args ...any) (pgx.Rows, error) {
	marker, err := f.record(query, args)
	if err != nil {
		return nil, err
	}
	return &valueRows{items: f.rows[marker]}, nil
}

func firstQueryLine(q string) string {
	q = strings.TrimSpace(q)
	if idx := strings.IndexByte(q, '\n'); idx >= 0 {
		return q[:idx]
	}
	return q
}
