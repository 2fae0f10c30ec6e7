package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTopicCmd(e *env) *cobra.Command {
	topicCmd := &cobra.Command{
		Use:   "topic",
		Short: "Inspect topics",
	}
	topicCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List topics with their question counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			topics := e.svc.ListTopics()
			if len(topics) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No topics yet.")
				return nil
			}
			for _, t := range topics {
				fmt.Fprintf(cmd.OutOrStdout(), "%-30s  %3d questions\n", t.Name, len(t.QuestionIDs))
			}
			return nil
		},
	})
	return topicCmd
}
