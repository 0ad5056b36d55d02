package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func routesCmd() *cobra.Command {
	var flags siteFlags

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List the route table",
		Long: `List the route table in order: name, path, and the href the
address bar shows for it under the configured history mode and base.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := flags.app()
			if err != nil {
				return err
			}
			r, err := app.Router()
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tPATH\tHREF")
			for _, route := range app.Table().Routes() {
				href, err := r.Href(route.Name)
				if err != nil {
					return err
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", route.Name, route.Path, href)
			}
			return tw.Flush()
		},
	}

	flags.register(cmd)
	return cmd
}
