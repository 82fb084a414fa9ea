package cli

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"registry/internal/domain"
	"registry/internal/export"
	"registry/internal/overview"
	"registry/internal/storage"
)

func newExportCmd(app *App) *cobra.Command {
	var (
		outDir string
		name   string
		search string
		order  string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the donors overview to an xlsx file",
		RunE: func(cmd *cobra.Command, args []string) error {
			orderings, err := parseOrder(order)
			if err != nil {
				return err
			}
			return runExport(cmd, app, outDir, name, domain.OverviewQuery{
				Length: -1,
				Search: search,
				Order:  orderings,
			})
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "./exports", "Directory the workbook is written to")
	cmd.Flags().StringVar(&name, "name", export.Filename, "Workbook file name")
	cmd.Flags().StringVar(&search, "search", "", "Only export donors matching this text")
	cmd.Flags().StringVar(&order, "order", "", "Sort keys, e.g. last_name:asc,donations:desc")
	return cmd
}

func runExport(cmd *cobra.Command, app *App, outDir, name string, q domain.OverviewQuery) error {
	ctx := cmd.Context()
	store, err := storage.NewFileStore(outDir)
	if err != nil {
		return err
	}
	overviews, closeFn, err := app.OpenOverviews(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	ctrl := overview.NewController(overview.Options{Catalogue: app.Catalogue}, nil, app.Logger)
	for _, o := range q.Order {
		if !ctrl.Orderable(o.Column) {
			return fmt.Errorf("column %q cannot be used for ordering", o.Column)
		}
	}

	result, err := overviews.Query(ctx, q)
	if err != nil {
		return fmt.Errorf("query donors: %w", err)
	}

	var buf bytes.Buffer
	value := func(row domain.Overview, column string) string {
		return ctrl.Cell(row, column, overview.ModeFilter)
	}
	if err := export.WriteXLSX(&buf, app.Catalogue.Columns, result.Rows, value); err != nil {
		return err
	}
	key, err := store.Write(ctx, name, buf.Bytes())
	if err != nil {
		return err
	}
	path, err := store.Path(key)
	if err != nil {
		return err
	}
	app.Logger.Info().Int("rows", len(result.Rows)).Str("path", path).Msg("export written")
	fmt.Fprintf(cmd.OutOrStdout(), "%s (%d rows)\n", path, len(result.Rows))
	return nil
}

// parseOrder reads "column[:asc|:desc]" pairs separated by commas.
func parseOrder(raw string) ([]domain.Ordering, error) {
	var out []domain.Ordering
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		column, dir, _ := strings.Cut(part, ":")
		o := domain.Ordering{Column: strings.TrimSpace(column)}
		switch strings.ToLower(strings.TrimSpace(dir)) {
		case "", "asc":
		case "desc":
			o.Desc = true
		default:
			return nil, fmt.Errorf("invalid order direction %q", dir)
		}
		out = append(out, o)
	}
	return out, nil
}
