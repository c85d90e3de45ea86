package cmd

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zhubert/tutor/internal/api"
)

const historyDateLayout = "2006-01-02 15:04"

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show quiz results, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		client := api.New(cfg.GetAPIBase(), api.WithTimeout(cfg.RequestTimeout()))
		return printHistory(cmd.Context(), cmd.OutOrStdout(), client)
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
}

// printHistory writes one line per completed quiz, numbered from the
// oldest, followed by the overall totals.
func printHistory(ctx context.Context, out io.Writer, client *api.Client) error {
	if ctx == nil {
		ctx = context.Background()
	}
	history, err := client.History(ctx)
	if err != nil {
		return fmt.Errorf("error loading quiz history: %w", err)
	}
	if len(history) == 0 {
		fmt.Fprintln(out, "No quizzes taken yet.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for i := len(history) - 1; i >= 0; i-- {
		entry := history[i]
		correct, total, accuracy := entry.Score()
		date := entry.Timestamp
		if t, ok := entry.Time(); ok {
			date = t.Format(historyDateLayout)
		}
		fmt.Fprintf(w, "Quiz %d\t%s\t%d/%d (%d%%)\t%s\n", i+1, date, correct, total, accuracy, api.Level(accuracy))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	stats := api.Stats(history)
	fmt.Fprintf(out, "\n%d quizzes, %d/%d correct, average %d%%\n",
		stats.Quizzes, stats.Correct, stats.Questions, stats.AverageAccuracy)
	return nil
}
