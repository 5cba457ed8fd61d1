package cli

import (
	"bufio"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/jrsteele09/go-budget-console/internal/errors"
	"github.com/jrsteele09/go-budget-console/internal/utils"
	"github.com/jrsteele09/go-budget-console/token"
	"github.com/spf13/cobra"
)

func (r *runner) newLoginCmd() *cobra.Command {
	var username, password string
	var passwordStdin bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and keep the session for later commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if passwordStdin {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read password from stdin: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}

			if err := r.app.Store.Login(cmd.Context(), username, password); err != nil {
				if errors.Is(err, errors.ErrMissingCredentials) {
					return fmt.Errorf("username and password are required")
				}
				return err
			}

			user := r.app.Store.User()
			r.app.Notifier.Info(fmt.Sprintf("Logged in as %s (%s)", user.Username, user.Role))
			result := r.app.Guard.Navigate(r.cfg.GetDefaultRoute())
			printScreen(cmd, result.Route.Title, result.Path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "account name")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read the password from stdin")
	return cmd
}

func (r *runner) newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			wasLoggedIn := r.app.Store.IsLoggedIn()
			if err := r.app.Store.Logout(); err != nil {
				return err
			}
			r.app.Guard.ForceLogin()
			if wasLoggedIn {
				r.app.Notifier.Info("Logged out")
			} else {
				r.app.Notifier.Info("Not logged in")
			}
			return nil
		},
	}
}

func (r *runner) newWhoAmICmd() *cobra.Command {
	var remote bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user and what it may do",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap := r.app.Store.Snapshot()
			if !snap.IsLoggedIn() {
				return errors.ErrNotLoggedIn
			}

			user := snap.User
			if remote {
				fresh, err := r.app.Auth.Me(cmd.Context())
				if err != nil {
					return err
				}
				user = fresh
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintf(w, "Username:\t%s\n", user.Username)
			_, _ = fmt.Fprintf(w, "Full name:\t%s\n", fallback(user.FullName, "(none)"))
			_, _ = fmt.Fprintf(w, "Role:\t%s\n", user.Role)
			_, _ = fmt.Fprintf(w, "Department:\t%s\n", fallback(utils.Value(user.Department), "(none)"))
			_, _ = fmt.Fprintf(w, "Admin:\t%s\n", yesNo(user.IsAdmin()))
			_, _ = fmt.Fprintf(w, "Leader:\t%s\n", yesNo(user.IsLeader()))
			_, _ = fmt.Fprintf(w, "Can edit:\t%s\n", yesNo(user.CanEdit()))
			if expiry, ok := token.PeekExpiry(snap.Token); ok {
				_, _ = fmt.Fprintf(w, "Token expires:\t%s (in %s)\n", expiry.Local().Format(time.RFC1123), time.Until(expiry).Round(time.Minute))
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&remote, "remote", false, "ask the backend instead of using the saved profile")
	return cmd
}

func printScreen(cmd *cobra.Command, title, path string) {
	if title == "" {
		title = path
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Screen: %s (%s)\n", title, path)
}

func fallback(v, d string) string {
	if v == "" {
		return d
	}
	return v
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
