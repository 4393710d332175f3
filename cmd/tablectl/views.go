package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/JonMunkholm/committees/internal/views"
	"github.com/spf13/cobra"
)

func newViewsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "views",
		Short: "List the registered views",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KEY\tTITLE\tENDPOINT\tFILTERS")
			for _, v := range views.All() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", v.Key, v.Title, v.Endpoint, strings.Join(v.FilterKeyNames(), ","))
			}
			return tw.Flush()
		},
	}
}
