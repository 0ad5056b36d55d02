package main

import (
	stderrors "errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vango-dev/folio/internal/errors"
	"github.com/vango-dev/folio/pkg/router"
)

func resolveCmd() *cobra.Command {
	var (
		flags siteFlags
		href  bool
	)

	cmd := &cobra.Command{
		Use:   "resolve <path>...",
		Short: "Resolve paths against the route table",
		Long: `Resolve each path against the route table and print the
matching route name, or "not found". Exits with status 1 if any path
does not match.

With --href the arguments are address-bar hrefs and are first
translated using the configured history mode and base.

Examples:
  folio resolve / /cv /about
  folio resolve --history=hash --href '/#/cv'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := flags.app()
			if err != nil {
				return err
			}
			r, err := app.Router()
			if err != nil {
				return err
			}

			missed := 0
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, arg := range args {
				location := arg
				if href {
					loc, ok := r.LocationFor(arg)
					if !ok {
						fmt.Fprintf(tw, "%s\tnot found\n", arg)
						missed++
						continue
					}
					location = loc
				}

				route, err := r.Resolve(location)
				switch {
				case err == nil:
					fmt.Fprintf(tw, "%s\t%s\n", arg, route.Name)
				case stderrors.Is(err, router.ErrNotFound):
					fmt.Fprintf(tw, "%s\tnot found\n", arg)
					missed++
				default:
					tw.Flush()
					return errors.FromRouteError(err)
				}
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			if missed > 0 {
				return errQuiet
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&href, "href", false, "Treat arguments as address-bar hrefs")
	return cmd
}
