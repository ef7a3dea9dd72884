package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			b, err := a.client.Get(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("getting book %d: %w", id, err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", color.CyanString("#%d", b.BookID), color.New(color.Bold).Sprint(b.Title))
			fmt.Fprintf(out, "  Author:         %s\n", b.Author)
			fmt.Fprintf(out, "  Publisher:      %s\n", b.Publisher)
			fmt.Fprintf(out, "  ISBN:           %s\n", b.ISBN)
			fmt.Fprintf(out, "  Classification: %s\n", b.Classification)
			fmt.Fprintf(out, "  Pages:          %d\n", b.PageCount)
			fmt.Fprintf(out, "  Price:          %s\n", b.Price)
			return nil
		},
	}
}
