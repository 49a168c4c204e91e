package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var snapshotKind string

// snapshotCmd stores the rows of one or all kinds in the snapshot bucket.
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Store a snapshot of lists and members in object storage",
	Long: `Snapshot reads every row of a resource kind and uploads it as JSON to
{storage.bucket}/{sync.snapshot_prefix}/{kind}/. Older snapshots beyond
sync.snapshot_keep are removed.

Examples:
  # All kinds (members only when an audience is configured)
  snapshot

  # Lists only
  snapshot --kind list`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		rt, err := loadRuntime()
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		snaps, err := openSnapshots(ctx, rt.cfg, rt.service, rt.logger)
		if err != nil {
			return err
		}

		kinds := snapshotKinds(rt.cfg.Mailchimp)
		if snapshotKind != "" {
			kinds = []string{snapshotKind}
		}

		results, err := snaps.TakeAll(ctx, kinds)
		if err != nil {
			return fmt.Errorf("failed to take snapshot: %w", err)
		}
		return printJSON(results)
	},
}

func init() {
	snapshotCmd.Flags().StringVar(&snapshotKind, "kind", "", "Resource kind (default: all)")
	RootCmd.AddCommand(snapshotCmd)
}
