package infra

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

type captureExecutor struct {
	lastQuery string
}

func (c *captureExecutor) Exec(_ context.Context, query string, _ ...any) (pgconn.CommandTag, error) {
	c.lastQuery = query
	return pgconn.NewCommandTag("UPDATE 1"), nil
}

func (c *captureExecutor) QueryRow(_ context.Context, query string, _ ...any) pgx.Row {
	c.lastQuery = query
	return errorRow{err: pgx.ErrNoRows}
}

func (c *captureExecutor) Query(_ context.Context, query string, _ ...any) (pgx.Rows, error) {
	c.lastQuery = query
	return nil, errors.New("not implemented")
}

func TestExtractMarker(t *testing.T) {
	marker, body, err := extractMarker("\n--sql 0f1e2d3c-4b5a-4968-8776-a5b4c3d2e1f0\nselect 1;\n")
	if err != nil {
		t.Fatalf("extractMarker returned error: %v", err)
	}
	if marker != "0f1e2d3c-4b5a-4968-8776-a5b4c3d2e1f0" {
		t.Fatalf("marker = %q", marker)
	}
	if body != "select 1;" {
		t.Fatalf("body = %q", body)
	}
}

func TestSQLRunnerRejectsUnmarkedQueries(t *testing.T) {
	exec := &captureExecutor{}
	runner := NewSQLRunner(exec, zerolog.Nop())

	if _, err := runner.Exec(context.Background(), "delete from notes"); !errors.Is(err, ErrMissingMarker) {
		t.Fatalf("Exec error = %v, want ErrMissingMarker", err)
	}
	if exec.lastQuery != "" {
		t.Fatalf("unmarked query reached the database: %q", exec.lastQuery)
	}
	if err := runner.QueryRow(context.Background(), "select 1").Scan(); !errors.Is(err, ErrMissingMarker) {
		t.Fatalf("QueryRow error = %v, want ErrMissingMarker", err)
	}
}

func TestSQLRunnerStripsMarker(t *testing.T) {
	exec := &captureExecutor{}
	runner := NewSQLRunner(exec, zerolog.Nop())

	tag, err := runner.Exec(context.Background(), "--sql 0f1e2d3c-4b5a-4968-8776-a5b4c3d2e1f0\nupdate notes set note = ''")
	if err != nil {
		t.Fatalf("Exec returned error: %v", err)
	}
	if tag.RowsAffected() != 1 {
		t.Fatalf("RowsAffected = %d", tag.RowsAffected())
	}
	if exec.lastQuery != "update notes set note = ''" {
		t.Fatalf("query = %q", exec.lastQuery)
	}

	err = runner.QueryRow(context.Background(), "--sql 0f1e2d3c-4b5a-4968-8776-a5b4c3d2e1f0\nselect 1").Scan()
	if !IsNoRows(err) {
		t.Fatalf("Scan error = %v, want no rows", err)
	}
}
