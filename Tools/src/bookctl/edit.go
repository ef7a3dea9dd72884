package main

import (
	"errors"
	"fmt"

	"github.com/ahinestrog/bookcatalog/api/catalog"
	"github.com/spf13/cobra"
)

// bookFlags are the editable fields shared by add and update.
type bookFlags struct {
	title, author, publisher, isbn, classification, price string
	pages                                                 int
}

func (f *bookFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "Title")
	cmd.Flags().StringVar(&f.author, "author", "", "Author")
	cmd.Flags().StringVar(&f.publisher, "publisher", "", "Publisher")
	cmd.Flags().StringVar(&f.isbn, "isbn", "", "ISBN")
	cmd.Flags().StringVar(&f.classification, "classification", "", "Classification (category)")
	cmd.Flags().IntVar(&f.pages, "pages", 0, "Page count")
	cmd.Flags().StringVar(&f.price, "price", "", "Price, e.g. 12.99")
}

// apply copies every flag given on the command line into b.
func (f *bookFlags) apply(cmd *cobra.Command, b *catalog.Book) error {
	set := func(name string, dst *string, v string) {
		if cmd.Flags().Changed(name) {
			*dst = v
		}
	}
	set("title", &b.Title, f.title)
	set("author", &b.Author, f.author)
	set("publisher", &b.Publisher, f.publisher)
	set("isbn", &b.ISBN, f.isbn)
	set("classification", &b.Classification, f.classification)
	if cmd.Flags().Changed("pages") {
		if f.pages < 0 {
			return errors.New("--pages must not be negative")
		}
		b.PageCount = f.pages
	}
	if cmd.Flags().Changed("price") {
		p, err := catalog.ParseMoney(f.price)
		if err != nil {
			return err
		}
		b.Price = p
	}
	return nil
}

func newAddCmd(a *app) *cobra.Command {
	var f bookFlags
	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Add a book",
		Example: `  bookctl add --title "Kindred" --author "Octavia E. Butler" --classification Fiction --pages 264 --price 9.99`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var b catalog.Book
			if err := f.apply(cmd, &b); err != nil {
				return err
			}
			created, err := a.client.Create(cmd.Context(), b)
			if err != nil {
				return fmt.Errorf("adding book: %w", err)
			}
			ok(cmd.OutOrStdout(), "added book %d: %s", created.BookID, created.Title)
			return nil
		},
	}
	f.register(cmd)
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newUpdateCmd(a *app) *cobra.Command {
	var f bookFlags
	cmd := &cobra.Command{
		Use:     "update <id>",
		Short:   "Change fields of a book; fields not given keep their value",
		Example: `  bookctl update 12 --price 14.50`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			b, err := a.client.Get(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("getting book %d: %w", id, err)
			}
			if err := f.apply(cmd, b); err != nil {
				return err
			}
			if err := a.client.Update(cmd.Context(), id, *b); err != nil {
				return fmt.Errorf("updating book %d: %w", id, err)
			}
			ok(cmd.OutOrStdout(), "updated book %d", id)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.client.Delete(cmd.Context(), id); err != nil {
				if errors.Is(err, catalog.ErrNotFound) {
					return fmt.Errorf("book %d does not exist", id)
				}
				return fmt.Errorf("deleting book %d: %w", id, err)
			}
			ok(cmd.OutOrStdout(), "deleted book %d", id)
			return nil
		},
	}
}
