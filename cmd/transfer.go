package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/masterly/internal/tracker"
)

func newExportCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write all users, topics and questions to a JSON file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := tracker.ExportFileName
			if len(args) == 1 {
				path = args[0]
			}
			if path == "-" {
				data, err := e.svc.Export()
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(append(data, '\n'))
				return err
			}
			if err := e.svc.ExportFile(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved to %s\n", path)
			return nil
		},
	}
}

func newImportCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all data with the contents of a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.svc.ImportFile(ctxOf(cmd), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d users, %d topics and %d questions\n",
				len(e.svc.ListUsers()), len(e.svc.ListTopics()), len(e.svc.ListQuestions("")))
			return nil
		},
	}
}
