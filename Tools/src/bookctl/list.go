package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/ahinestrog/bookcatalog/api/catalog"
	"github.com/ahinestrog/bookcatalog/internal/listing"
	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	var (
		category string
		sortFlag string
		page     int
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List books, filtered, sorted and paginated like the catalog page",
		Example: `  bookctl list
  bookctl list --category Fiction --sort asc --page-size 10 --page 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			order := listing.SortOrder(sortFlag)
			if order != listing.SortNone && order != listing.SortAsc && order != listing.SortDesc {
				return fmt.Errorf("--sort must be asc or desc, got %q", sortFlag)
			}

			books, err := a.client.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing books: %w", err)
			}

			s := listing.DefaultState().WithCategory(category).WithPageSize(pageSize).WithPage(page)
			s.Sort = order
			res := listing.Derive(books, s)

			if len(res.Books) == 0 {
				warn(cmd.ErrOrStderr(), "no books to show")
				return nil
			}
			printBooks(cmd, res.Books)
			fmt.Fprintf(cmd.OutOrStdout(), "\npage %d/%d (%d matching)\n", res.State.Page, res.TotalPages, res.Matching)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", catalog.AllCategories, "Only show this classification")
	cmd.Flags().StringVar(&sortFlag, "sort", "", "Sort by title: asc or desc")
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&pageSize, "page-size", listing.DefaultPageSize, "Books per page (5, 10 or 15)")
	return cmd
}

func printBooks(cmd *cobra.Command, books []catalog.Book) {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tAUTHOR\tCLASSIFICATION\tPAGES\tPRICE")
	for _, b := range books {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\n", b.BookID, b.Title, b.Author, b.Classification, b.PageCount, b.Price)
	}
	_ = tw.Flush()
}
