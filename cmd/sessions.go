package cmd

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zhubert/tutor/internal/api"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List chat sessions, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		client := api.New(cfg.GetAPIBase(), api.WithTimeout(cfg.RequestTimeout()))
		return printSessions(cmd.Context(), cmd.OutOrStdout(), client)
	},
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
}

// printSessions writes one "id  title" line per session, newest first.
func printSessions(ctx context.Context, out io.Writer, client *api.Client) error {
	if ctx == nil {
		ctx = context.Background()
	}
	sessions, err := client.ListSessions(ctx)
	if err != nil {
		return fmt.Errorf("error listing sessions: %w", err)
	}
	if len(sessions) == 0 {
		fmt.Fprintln(out, "No sessions.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, s := range api.Reversed(sessions) {
		fmt.Fprintf(w, "%s\t%s\n", s.ID, s.DisplayTitle())
	}
	return w.Flush()
}
