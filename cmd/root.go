package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/gitvitae/gitvitae/internal/analyzer"
	"github.com/gitvitae/gitvitae/internal/browse"
	"github.com/gitvitae/gitvitae/internal/commit"
	"github.com/gitvitae/gitvitae/internal/display"
	"github.com/gitvitae/gitvitae/internal/git"
	"github.com/gitvitae/gitvitae/internal/history"
	"github.com/gitvitae/gitvitae/internal/projectctx"
	"github.com/gitvitae/gitvitae/internal/report"
	"github.com/gitvitae/gitvitae/internal/server"
)

var version = "dev"

// SetVersion sets the version shown by --version.
func SetVersion(v string) {
	rootCmd.Version = v
}

var (
	repoFlag      string
	authorFlag    string
	sinceFlag     string
	webFlag       bool
	portFlag      int
	analyzeFlag   bool
	tuiFlag       bool
	jsonFlag      bool
	batchSizeFlag int
	delayFlag     time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "gitvitae",
	Short: "Turn git commit history into an experience report",
	Long: `gitvitae extracts commit history filtered by author and date and can send
it to an OpenAI-compatible model to produce a structured experience report.

Examples:
  gitvitae --repo ~/work/api --author jane@example.com
  gitvitae --repo ~/work/api --author jane@example.com --analyze
  gitvitae --web --port 3000`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runRoot(); err != nil {
			fmt.Fprintf(os.Stderr, "gitvitae: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		// Missing .env files are fine; the environment wins either way.
		_ = godotenv.Load()
	}

	rootCmd.Flags().StringVar(&repoFlag, "repo", ".", "Repository root")
	rootCmd.Flags().StringVar(&authorFlag, "author", "", "Author filter (substring; empty matches all)")
	rootCmd.Flags().StringVar(&sinceFlag, "since", git.DefaultSince, "Inclusive lower date bound")
	rootCmd.Flags().BoolVar(&webFlag, "web", false, "Start the HTTP server instead of running the CLI")
	rootCmd.Flags().IntVar(&portFlag, "port", 3000, "HTTP server port")
	rootCmd.Flags().BoolVar(&analyzeFlag, "analyze", false, "Run model analysis instead of printing raw commits")
	rootCmd.Flags().BoolVar(&tuiFlag, "tui", false, "Browse commits interactively (terminal only)")
	rootCmd.Flags().BoolVar(&jsonFlag, "json", false, "Print machine-readable JSON output")
	rootCmd.Flags().IntVar(&batchSizeFlag, "batch-size", analyzer.DefaultBatchSize, "Commits per model request")
	rootCmd.Flags().DurationVar(&delayFlag, "delay", analyzer.DefaultDelay, "Pause between model requests")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runRoot() error {
	if webFlag {
		srv := server.New()
		fmt.Printf("gitvitae web interface on http://localhost:%d\n", portFlag)
		return srv.ListenAndServe(portFlag)
	}

	commits, err := git.Log(git.LogQuery{RepoPath: repoFlag, Author: authorFlag, Since: sinceFlag})
	if err != nil {
		return err
	}

	if analyzeFlag {
		return runAnalyze(commits)
	}
	return listCommits(commits)
}

func listCommits(commits []commit.Record) error {
	if jsonFlag {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(commits)
	}

	if tuiFlag && display.StdoutIsTerminal() {
		return browse.Run(commits)
	}

	if len(commits) == 0 {
		fmt.Println("No commits found.")
		return nil
	}
	styled := display.StdoutIsTerminal()
	for _, r := range commits {
		fmt.Println(display.CommitLine(r, styled))
	}
	fmt.Printf("\n%d commit(s)\n", len(commits))
	return nil
}

func runAnalyze(commits []commit.Record) error {
	client, err := analyzer.NewClientFromEnv()
	if err != nil {
		return err
	}

	a := analyzer.New(client)
	a.BatchSize = batchSizeFlag
	a.Delay = delayFlag
	a.Progress = os.Stderr

	partials, err := a.Analyze(context.Background(), commits, projectctx.Build(repoFlag))
	if err != nil {
		return err
	}
	merged := report.Merge(partials)

	if jsonFlag {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(merged); err != nil {
			return err
		}
	} else {
		fmt.Print(display.RenderReport(merged, display.StdoutIsTerminal()))
	}

	saveRun(merged, len(commits))
	return nil
}

// saveRun records a completed analysis in the local history database.
// Failures only warn; the report was already delivered.
func saveRun(merged report.Analysis, commitCount int) {
	path, err := history.DefaultPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "gitvitae: warning: %v\n", err)
		return
	}
	store, err := history.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gitvitae: warning: %v\n", err)
		return
	}
	defer store.Close()

	reportJSON, err := json.Marshal(merged)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gitvitae: warning: %v\n", err)
		return
	}
	if err := store.Record(history.Run{
		RepoPath:   repoFlag,
		Author:     authorFlag,
		Since:      sinceFlag,
		Commits:    commitCount,
		ReportJSON: string(reportJSON),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "gitvitae: warning: %v\n", err)
	}
}
