package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd(e *env) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show a user's learning statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := userNamed(e, name)
			if err != nil {
				return err
			}
			st, err := e.svc.Stats(u.ID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n", u.Username)
			fmt.Fprintf(out, "  %-14s %4s  %9s\n", "", "count", "avg score")
			fmt.Fprintf(out, "  %-14s %4d  %9.2f\n", "correct", st.Correct.Count, st.Correct.AverageScore)
			fmt.Fprintf(out, "  %-14s %4d  %9.2f\n", "wrong", st.Wrong.Count, st.Wrong.AverageScore)
			fmt.Fprintf(out, "  %-14s %4d  %9.2f\n", "not answered", st.NotAnswered.Count, st.NotAnswered.AverageScore)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "user", "", "User name (default: active user)")
	return cmd
}
