package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gitvitae/gitvitae/internal/display"
	"github.com/gitvitae/gitvitae/internal/history"
	"github.com/gitvitae/gitvitae/internal/report"
)

var historyLimitFlag int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past analysis runs",
	Long: `List analysis runs recorded in the local history database
(~/.gitvitae/history.db), newest first.

Examples:
  gitvitae history
  gitvitae history --limit 25`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := listHistory(); err != nil {
			fmt.Fprintf(os.Stderr, "gitvitae: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimitFlag, "limit", 10, "Maximum runs to list")
	rootCmd.AddCommand(historyCmd)
}

func listHistory() error {
	path, err := history.DefaultPath()
	if err != nil {
		return err
	}
	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Recent(historyLimitFlag)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No analysis runs recorded yet.")
		return nil
	}

	for _, run := range runs {
		fmt.Printf("#%d  %s\n", run.ID, run.CreatedAt.Local().Format("2006-01-02 15:04"))
		fmt.Printf("    Repo:    %s\n", run.RepoPath)
		if run.Author != "" {
			fmt.Printf("    Author:  %s\n", run.Author)
		}
		fmt.Printf("    Since:   %s\n", run.Since)
		fmt.Printf("    Commits: %d\n", run.Commits)

		var a report.Analysis
		if err := json.Unmarshal([]byte(run.ReportJSON), &a); err == nil && a.Summary != "" {
			fmt.Printf("    Summary: %s\n", display.Truncate(a.Summary, 100))
		}
		fmt.Println()
	}
	return nil
}
