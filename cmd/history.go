package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/masterly/internal/store"
)

func newHistoryCmd(e *env) *cobra.Command {
	var (
		name  string
		all   bool
		limit int
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past quizzes",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID := ""
			if !all {
				u, err := userNamed(e, name)
				if err != nil {
					return err
				}
				userID = u.ID
			}
			events, err := e.svc.History(ctxOf(cmd), userID, limit)
			if err != nil {
				return fmt.Errorf("query history: %w", err)
			}
			if len(events) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No quizzes yet.")
				return nil
			}
			for _, ev := range events {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-12s  %s\n",
					ev.Timestamp.Local().Format("2006-01-02 15:04"), ev.Username, describe(ev))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "user", "", "User name (default: active user)")
	cmd.Flags().BoolVar(&all, "all", false, "Every user")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of events to show")
	return cmd
}

func describe(ev store.QuizEvent) string {
	switch ev.Action {
	case store.QuizActionStart:
		return fmt.Sprintf("started, %d questions", ev.PoolSize)
	case store.QuizActionFinish:
		s := fmt.Sprintf("finished, %d of %d correct", ev.Correct, ev.Answered)
		if ev.Early {
			s += fmt.Sprintf(" (stopped early, %d of %d answered)", ev.Answered, ev.PoolSize)
		}
		return s
	}
	return ev.Action
}
