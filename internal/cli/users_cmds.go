package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/jrsteele09/go-budget-console/internal/utils"
	"github.com/jrsteele09/go-budget-console/users"
	"github.com/spf13/cobra"
)

func (r *runner) newUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage accounts (admin only)",
	}
	cmd.AddCommand(r.newUsersListCmd(), r.newUsersCreateCmd(), r.newUsersUpdateCmd())
	return cmd
}

func (r *runner) newUsersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := r.app.Auth.ListUsers(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "ID\tUSERNAME\tNAME\tROLE\tDEPARTMENT\tACTIVE")
			for _, u := range list {
				_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
					u.ID, u.Username, u.FullName, u.Role, fallback(utils.Value(u.Department), "-"), yesNo(u.IsActive))
			}
			return w.Flush()
		},
	}
}

func (r *runner) newUsersCreateCmd() *cobra.Command {
	var req users.CreateRequest
	var role, department string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if role != "" {
				parsed, err := users.ParseRole(role)
				if err != nil {
					return err
				}
				req.Role = parsed
			}
			if department != "" {
				req.Department = utils.Ptr(department)
			}

			created, err := r.app.Auth.CreateUser(cmd.Context(), req)
			if err != nil {
				return err
			}
			r.app.Notifier.Info(fmt.Sprintf("Created %s (id %d, %s)", created.Username, created.ID, created.Role))
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Username, "username", "", "account name")
	cmd.Flags().StringVar(&req.Password, "password", "", "initial password")
	cmd.Flags().StringVar(&req.FullName, "full-name", "", "display name")
	cmd.Flags().StringVar(&role, "role", "", "admin, leader, department or viewer (default viewer)")
	cmd.Flags().StringVar(&department, "department", "", "department for department users")
	return cmd
}

func (r *runner) newUsersUpdateCmd() *cobra.Command {
	var fullName, role, department string
	var active bool

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change an account; only the flags given are applied",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("user id %q is not a number", args[0])
			}

			var req users.UpdateRequest
			flags := cmd.Flags()
			if flags.Changed("full-name") {
				req.FullName = utils.Ptr(fullName)
			}
			if flags.Changed("role") {
				parsed, err := users.ParseRole(role)
				if err != nil {
					return err
				}
				req.Role = &parsed
			}
			if flags.Changed("department") {
				req.Department = utils.Ptr(department)
			}
			if flags.Changed("active") {
				req.IsActive = utils.Ptr(active)
			}

			updated, err := r.app.Auth.UpdateUser(cmd.Context(), id, req)
			if err != nil {
				return err
			}
			r.app.Notifier.Info(fmt.Sprintf("Updated %s (%s, active %s)", updated.Username, updated.Role, yesNo(updated.IsActive)))
			return nil
		},
	}
	cmd.Flags().StringVar(&fullName, "full-name", "", "display name")
	cmd.Flags().StringVar(&role, "role", "", "new role")
	cmd.Flags().StringVar(&department, "department", "", "department")
	cmd.Flags().BoolVar(&active, "active", true, "enable or disable the account")
	return cmd
}
