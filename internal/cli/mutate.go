package cli

import (
	"fmt"

	"github.com/JonMunkholm/catalog-admin/internal/core"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// productFlags hold the editable product fields as typed on the command line.
type productFlags struct {
	title       string
	price       string
	description string
	category    string
	images      string
}

func (f *productFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "Product title")
	cmd.Flags().StringVar(&f.price, "price", "", "Price (non-numeric becomes 0)")
	cmd.Flags().StringVar(&f.description, "description", "", "Description")
	cmd.Flags().StringVar(&f.category, "category", "", "Category id")
	cmd.Flags().StringVar(&f.images, "images", "", "Comma separated image URLs")
}

func (f *productFlags) form() core.PayloadForm {
	return core.PayloadForm{
		Title:       f.title,
		Price:       f.price,
		Description: f.description,
		CategoryID:  f.category,
		Images:      f.images,
	}
}

// apply overwrites the fields of form whose flags were set.
func (f *productFlags) apply(fs *pflag.FlagSet, form *core.PayloadForm) {
	if fs.Changed("title") {
		form.Title = f.title
	}
	if fs.Changed("price") {
		form.Price = f.price
	}
	if fs.Changed("description") {
		form.Description = f.description
	}
	if fs.Changed("category") {
		form.CategoryID = f.category
	}
	if fs.Changed("images") {
		form.Images = f.images
	}
}

func newCreateCmd() *cobra.Command {
	var f productFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := api.Create(cmd.Context(), f.form().CreatePayload())
			if err != nil {
				return fmt.Errorf("create product: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created product %d (%s)\n", p.ID, p.Title)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newUpdateCmd() *cobra.Command {
	var f productFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a product",
		Long:  "update changes only the fields given as flags; the rest keep their current values.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			current, err := api.Get(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("get product %d: %w", id, err)
			}
			form := core.FormFromProduct(*current)
			f.apply(cmd.Flags(), &form)

			p, err := api.Update(cmd.Context(), id, form.UpdatePayload())
			if err != nil {
				return fmt.Errorf("update product %d: %w", id, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated product %d (%s)\n", p.ID, p.Title)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}
