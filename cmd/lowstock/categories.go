package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var categoriesJSON bool

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Print the two-level category tree with subject ids",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newServices()
		if err != nil {
			return err
		}

		tree, err := svc.category.GetTree(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if categoriesJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{"tree": tree})
		}
		for _, node := range tree {
			fmt.Fprintf(out, "%s (%d)\n", node.Name, node.ID)
			for _, child := range node.Children {
				fmt.Fprintf(out, "  %s (%d)\n", child.Name, child.ID)
			}
		}
		return nil
	},
}

func init() {
	categoriesCmd.Flags().BoolVar(&categoriesJSON, "json", false, "Print the tree as JSON")
	rootCmd.AddCommand(categoriesCmd)
}
