package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"registry/internal/domain"
	"registry/internal/infra"
	"registry/internal/sqlinline"
)

// DefaultCollation is the ICU collation used to order text columns.
const DefaultCollation = "cs-CZ-x-icu"

// OverviewRepositoryPG implements domain.OverviewRepository on the
// donors_overview table.
type OverviewRepositoryPG struct {
	db        infra.SQLExecutor
	collation string
}

// NewOverviewRepository creates a repository. An empty collation falls back
// to DefaultCollation.
func NewOverviewRepository(db infra.SQLExecutor, collation string) *OverviewRepositoryPG {
	if strings.TrimSpace(collation) == "" {
		collation = DefaultCollation
	}
	return &OverviewRepositoryPG{db: db, collation: collation}
}

// Query returns one page of donors together with the total and filtered
// counts. Both queries run concurrently.
func (r *OverviewRepositoryPG) Query(ctx context.Context, q domain.OverviewQuery) (domain.OverviewPage, error) {
	orderBy, err := r.orderBy(q.Order)
	if err != nil {
		return domain.OverviewPage{}, err
	}
	pattern := searchPattern(q.Search)

	var limit any
	if q.Length >= 0 {
		limit = q.Length
	}
	offset := q.Start
	if offset < 0 {
		offset = 0
	}

	var page domain.OverviewPage
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		row := r.db.QueryRow(gctx, sqlinline.QOverviewCounts, pattern)
		if err := row.Scan(&page.Total, &page.Filtered); err != nil {
			return fmt.Errorf("count donors: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		rows, err := r.db.Query(gctx, fmt.Sprintf(sqlinline.QOverviewPage, orderBy), pattern, limit, offset)
		if err != nil {
			return fmt.Errorf("list donors: %w", err)
		}
		defer rows.Close()

		items := make([]domain.Overview, 0)
		for rows.Next() {
			item, err := scanOverview(rows)
			if err != nil {
				return fmt.Errorf("scan donor: %w", err)
			}
			items = append(items, *item)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("list donors: %w", err)
		}
		page.Rows = items
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.OverviewPage{}, err
	}
	return page, nil
}

// Get fetches a single donor by rodne cislo.
func (r *OverviewRepositoryPG) Get(ctx context.Context, rc string) (*domain.Overview, error) {
	row := r.db.QueryRow(ctx, sqlinline.QOverviewByRC, domain.NormalizeRC(rc))
	item, err := scanOverview(row)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get donor: %w", err)
	}
	return item, nil
}

// orderBy builds the ORDER BY list. Identifiers come from a fixed set and
// are quoted anyway; rodne_cislo is appended so paging stays stable.
func (r *OverviewRepositoryPG) orderBy(order []domain.Ordering) (string, error) {
	collate := " collate " + pq.QuoteIdentifier(r.collation)
	parts := make([]string, 0, len(order)+1)
	seenRC := false
	for _, o := range order {
		var expr string
		switch o.Column {
		case domain.ColRodneCislo:
			expr = pq.QuoteIdentifier(o.Column)
			seenRC = true
		case domain.ColFirstName, domain.ColLastName, domain.ColAddress, domain.ColCity,
			domain.ColPostalCode, domain.ColKodPojistovny, domain.ColNote:
			expr = pq.QuoteIdentifier(o.Column) + collate
		case domain.ColDonations:
			expr = pq.QuoteIdentifier("donation_count_total")
		case domain.ColLastAward:
			expr = pq.QuoteIdentifier("last_award_rank")
		default:
			return "", fmt.Errorf("%w: %q", domain.ErrUnknownColumn, o.Column)
		}
		if o.Desc {
			expr += " desc"
		} else {
			expr += " asc"
		}
		parts = append(parts, expr)
	}
	if !seenRC {
		parts = append(parts, pq.QuoteIdentifier(domain.ColRodneCislo)+" asc")
	}
	return strings.Join(parts, ", "), nil
}

// searchPattern turns user input into an ILIKE pattern. Empty input
// disables filtering.
func searchPattern(search string) string {
	search = strings.TrimSpace(search)
	if search == "" {
		return ""
	}
	escaper := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + escaper.Replace(search) + "%"
}

func scanOverview(row pgx.Row) (*domain.Overview, error) {
	var (
		o                             domain.Overview
		fm, fmBubenik, trinec, manual int
		total                         int
		note                          string
	)
	awarded := make([]bool, len(domain.Medals))
	dest := []any{
		&o.RodneCislo,
		&o.FirstName,
		&o.LastName,
		&o.Address,
		&o.City,
		&o.PostalCode,
		&o.KodPojistovny,
		&fm,
		&fmBubenik,
		&trinec,
		&manual,
		&total,
	}
	for i := range awarded {
		dest = append(dest, &awarded[i])
	}
	dest = append(dest, &note)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	o.Donations = domain.NewDonationSummary(total, fm, fmBubenik, trinec, manual)
	medals := make(map[string]bool, len(domain.Medals))
	for i, m := range domain.Medals {
		medals[m.Slug] = awarded[i]
	}
	o.LastAward = domain.LastAward(medals)
	if strings.TrimSpace(note) != "" {
		parsed := domain.ParseNotes(note)
		o.Note = &parsed
	}
	return &o, nil
}

var _ domain.OverviewRepository = (*OverviewRepositoryPG)(nil)
