package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			p, err := api.Get(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("get product %d: %w", id, err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID:          %d\n", p.ID)
			fmt.Fprintf(out, "Title:       %s\n", p.Title)
			fmt.Fprintf(out, "Price:       %s\n", p.Price)
			fmt.Fprintf(out, "Category:    %s\n", p.CategoryName())
			if p.Description != "" {
				fmt.Fprintf(out, "Description: %s\n", p.Description)
			}
			if len(p.Images) > 0 {
				fmt.Fprintln(out, "Images:")
				for _, img := range p.Images {
					fmt.Fprintf(out, "  %s\n", img)
				}
			}
			return nil
		},
	}
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid product id %q", s)
	}
	return id, nil
}
