package main

import (
	"fmt"
	"os"

	"github.com/ahinestrog/bookcatalog/api/catalog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type importEntry struct {
	Title          string  `yaml:"title"`
	Author         string  `yaml:"author"`
	Publisher      string  `yaml:"publisher"`
	ISBN           string  `yaml:"isbn"`
	Classification string  `yaml:"classification"`
	PageCount      int     `yaml:"pageCount"`
	Price          float64 `yaml:"price"`
}

func (e importEntry) book() (catalog.Book, error) {
	price, err := catalog.FromFloat(e.Price)
	if err != nil {
		return catalog.Book{}, err
	}
	return catalog.Book{
		Title:          e.Title,
		Author:         e.Author,
		Publisher:      e.Publisher,
		ISBN:           e.ISBN,
		Classification: e.Classification,
		PageCount:      e.PageCount,
		Price:          price,
	}, nil
}

func readImportFile(path string) ([]importEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entries []importEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return entries, nil
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.yml>",
		Short: "Create every book listed in a YAML file",
		Long: `Create every book listed in a YAML file. The file is a list of entries:

  - title: Kindred
    author: Octavia E. Butler
    classification: Fiction
    pageCount: 264
    price: 9.99

Entries without a title are skipped. A failed entry does not stop the import.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := readImportFile(args[0])
			if err != nil {
				return err
			}

			var created, failed int
			for i, e := range entries {
				if e.Title == "" {
					warn(cmd.ErrOrStderr(), "entry %d has no title, skipped", i+1)
					continue
				}
				in, err := e.book()
				if err != nil {
					failed++
					warn(cmd.ErrOrStderr(), "%s: %v", e.Title, err)
					continue
				}
				b, err := a.client.Create(cmd.Context(), in)
				if err != nil {
					failed++
					warn(cmd.ErrOrStderr(), "%s: %v", e.Title, err)
					continue
				}
				created++
				ok(cmd.OutOrStdout(), "added book %d: %s", b.BookID, b.Title)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d books failed to import", failed, len(entries))
			}
			ok(cmd.OutOrStdout(), "imported %d books", created)
			return nil
		},
	}
}
