package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/JonMunkholm/catalog-admin/internal/core"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// viewFlags select the visible page, shared by list and export.
type viewFlags struct {
	search   string
	sort     string
	dir      string
	page     int
	pageSize int
}

func (f *viewFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.search, "search", "", "Only products whose title contains this text")
	cmd.Flags().StringVar(&f.sort, "sort", "", "Sort column (title, price)")
	cmd.Flags().StringVar(&f.dir, "dir", "asc", "Sort direction (asc, desc)")
	cmd.Flags().IntVar(&f.page, "page", 1, "Page number")
	cmd.Flags().IntVar(&f.pageSize, "page-size", core.DefaultPageSize, "Rows per page")
}

// state converts the flags to a ViewState.
func (f *viewFlags) state() (core.ViewState, error) {
	st := core.ViewState{Page: f.page, PageSize: f.pageSize, Query: f.search}
	if st.PageSize <= 0 {
		st.PageSize = core.DefaultPageSize
	}
	if f.sort == "" {
		return st, nil
	}

	field, err := core.ParseSortField(f.sort)
	if err != nil {
		return st, err
	}
	switch core.SortDir(f.dir) {
	case core.DirAsc, core.DirDesc:
		st.Sort = core.SortSpec{Field: field, Dir: core.SortDir(f.dir)}
	default:
		return st, fmt.Errorf("invalid sort direction %q (want asc or desc)", f.dir)
	}
	return st, nil
}

// fetchView loads every product and computes the page the flags select.
// It also returns how many products the API returned.
func fetchView(ctx context.Context, f *viewFlags) (core.View, int, error) {
	st, err := f.state()
	if err != nil {
		return core.View{}, 0, err
	}
	products, err := api.List(ctx)
	if err != nil {
		return core.View{}, 0, fmt.Errorf("list products: %w", err)
	}
	logger.Debug("products fetched", "count", len(products))
	return core.Compute(products, st), len(products), nil
}

func newListCmd() *cobra.Command {
	var f viewFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, fetched, err := fetchView(cmd.Context(), &f)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if view.Total == 0 {
				fmt.Fprintln(out, "No products found.")
				return nil
			}
			printRows(out, view.Rows)
			fmt.Fprintf(out, "\n%s (page %d of %d, %s fetched)\n",
				view.PageInfo(), view.State.Page, view.TotalPages, pluralize(fetched, "product"))
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func printRows(w io.Writer, rows []core.Product) {
	const row = "%-6s  %-40s  %10s  %s\n"
	fmt.Fprintf(w, row, "ID", "TITLE", "PRICE", "CATEGORY")
	fmt.Fprintf(w, row, "--", "-----", "-----", "--------")
	for _, p := range rows {
		fmt.Fprintf(w, row, fmt.Sprint(p.ID), truncate(p.Title, 40), p.Price.String(), p.CategoryName())
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return humanize.Comma(int64(n)) + " " + noun + "s"
}
