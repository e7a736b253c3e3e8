package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCatalogCmd(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Show the loaded catalog generation",
		RunE: func(cmd *cobra.Command, args []string) error {
			ec, err := buildEngineContext(opts)
			if err != nil {
				return err
			}
			defer ec.close()

			snap := ec.store.Current()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "source:       %s\n", snap.Source)
			fmt.Fprintf(out, "loaded at:    %s\n", snap.LoadedAt.Format("2006-01-02 15:04:05"))
			fmt.Fprintf(out, "notification: version %s, %d records\n",
				snap.Notification.Version(), snap.Notification.Len())
			fmt.Fprintf(out, "initiating:   version %s, %d records\n",
				snap.Initiating.Version(), snap.Initiating.Len())
			return nil
		},
	}
	return cmd
}
