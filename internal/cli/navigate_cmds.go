package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (r *runner) newNavigateCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "navigate [path]",
		Aliases: []string{"nav", "open"},
		Short:   "Open a screen, or list the screens you may open",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return r.printMenu(cmd)
			}

			result := r.app.Guard.Navigate(args[0])
			printScreen(cmd, result.Route.Title, result.Path)
			if len(result.Params) > 0 {
				keys := make([]string, 0, len(result.Params))
				for k := range result.Params {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for _, k := range keys {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %s = %s\n", k, result.Params[k])
				}
			}
			return nil
		},
	}
}

func (r *runner) printMenu(cmd *cobra.Command) error {
	menu := r.app.Guard.Menu()
	if len(menu) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No screens available, run 'budgetctl login'")
		return nil
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "PATH\tSCREEN")
	for _, route := range menu {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", route.Path, route.Title)
	}
	return w.Flush()
}

func (r *runner) newGetCmd() *cobra.Command {
	var params []string

	cmd := &cobra.Command{
		Use:   "get <path>",
		Short: "GET an API path through the session and print the JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := url.Values{}
			for _, p := range params {
				key, value, ok := strings.Cut(p, "=")
				if !ok {
					return fmt.Errorf("query parameter %q is not key=value", p)
				}
				query.Add(key, value)
			}

			var raw json.RawMessage
			if err := r.app.Client.Get(cmd.Context(), args[0], query, &raw); err != nil {
				return err
			}

			var pretty bytes.Buffer
			if err := json.Indent(&pretty, raw, "", "  "); err != nil {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(raw))
				return nil
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), pretty.String())
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&params, "query", "q", nil, "query parameter as key=value, repeatable")
	return cmd
}
