package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/masterly/internal/apperr"
	"github.com/abhisek/masterly/internal/catalog"
)

func newUserCmd(e *env) *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Manage learners",
	}

	var selectAfter bool
	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := ctxOf(cmd)
			u, err := e.svc.CreateUser(ctx, args[0])
			if err != nil {
				return err
			}
			if selectAfter {
				if err := e.svc.SelectUser(ctx, u.ID); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created user %s (%s)\n", u.Username, u.ID)
			return nil
		},
	}
	addCmd.Flags().BoolVar(&selectAfter, "select", false, "Make the new user active")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			users := e.svc.ListUsers()
			if len(users) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No users yet.")
				return nil
			}
			active, _ := e.svc.ActiveUser()
			for _, u := range users {
				mark := " "
				if u.ID == active.ID {
					mark = "*"
				}
				st := u.Progress.Stats()
				fmt.Fprintf(cmd.OutOrStdout(), "%s %-20s  %3d correct  %3d wrong  %3d pending\n",
					mark, u.Username, st.Correct.Count, st.Wrong.Count, st.NotAnswered.Count)
			}
			return nil
		},
	}

	selectCmd := &cobra.Command{
		Use:   "select <name>",
		Short: "Make a user active",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := userNamed(e, args[0])
			if err != nil {
				return err
			}
			if err := e.svc.SelectUser(ctxOf(cmd), u.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Active user: %s\n", u.Username)
			return nil
		},
	}

	userCmd.AddCommand(addCmd, listCmd, selectCmd)
	return userCmd
}

// userNamed resolves a name, or the active user when name is empty.
func userNamed(e *env, name string) (catalog.User, error) {
	if name == "" {
		u, ok := e.svc.ActiveUser()
		if !ok {
			return catalog.User{}, apperr.Precondition(apperr.ReasonNoActiveUser, "no active user; pass --user or run: masterly user select NAME")
		}
		return u, nil
	}
	u, ok := e.svc.UserByName(name)
	if !ok {
		return catalog.User{}, apperr.NotFound("no user named %q", name)
	}
	return u, nil
}
