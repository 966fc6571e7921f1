package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/GTDGit/lowstock/internal/service"
)

var (
	searchSubject   int64
	searchThreshold int
	searchPages     int
	searchOut       string
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "List items of a subject whose smallest positive size stock is within the threshold",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newServices()
		if err != nil {
			return err
		}

		params := service.SearchParams{
			SubjectID: searchSubject,
			Threshold: searchThreshold,
			MaxPages:  searchPages,
		}
		if !cmd.Flags().Changed("threshold") {
			params.Threshold = svc.cfg.Search.DefaultThreshold
		}
		if !cmd.Flags().Changed("pages") {
			params.MaxPages = svc.cfg.Search.DefaultMaxPages
		}

		results, report, err := svc.search.Search(cmd.Context(), params)
		if err != nil {
			return err
		}

		text := service.FormatExport(results)
		if text != "" {
			text += "\n"
		}
		if searchOut == "" {
			fmt.Fprint(cmd.OutOrStdout(), text)
		} else if err := os.WriteFile(searchOut, []byte(text), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", searchOut, err)
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "%d results from %d pages (%s), %d/%d detail batches ok\n",
			len(results), report.Pages.PagesFetched, report.Pages.Reason,
			report.Batches.Batches-report.Batches.Failed, report.Batches.Batches)
		return nil
	},
}

func init() {
	searchCmd.Flags().Int64VarP(&searchSubject, "subject", "s", 0, "Subject id to search (required)")
	searchCmd.MarkFlagRequired("subject")
	searchCmd.Flags().IntVarP(&searchThreshold, "threshold", "t", 0, "Largest minimum size stock to report, 1-999 (default DEFAULT_THRESHOLD)")
	searchCmd.Flags().IntVarP(&searchPages, "pages", "p", 0, "Catalog pages to scan, 1-50 (default DEFAULT_MAX_PAGES)")
	searchCmd.Flags().StringVarP(&searchOut, "out", "o", "", "Write results to this file instead of stdout")
	rootCmd.AddCommand(searchCmd)
}
