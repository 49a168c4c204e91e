package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"audience-sync/core/reconcile"
	"audience-sync/feature/journal"
	"audience-sync/feature/mailchimp"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	applyKind        string
	applyFile        string
	applyObject      string
	applyFailOnError bool
	applyDryRun      bool
	yesConfirm       bool
)

// applyCmd applies a change set to the configured audience.
var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply an add/update/delete change set to the audience",
	Long: `Apply runs the add, update and delete batches of a change set against
the configured audience. Items are processed in order and failures are
reported per item unless --fail-on-error is set.

The change set is read from a local JSON file or from an object in the
snapshot bucket.

Examples:
  # Report the change set without writing
  apply --file changes.json --dry-run

  # Apply from the snapshot bucket, confirming deletes automatically
  apply --object snapshots/changes/20260301.json --yes

  # Stop at the first failure
  apply --file changes.json --fail-on-error`,
	RunE: runApply,
}

func init() {
	applyCmd.Flags().StringVar(&applyKind, "kind", mailchimp.KindMember, "Resource kind")
	applyCmd.Flags().StringVar(&applyFile, "file", "", "Change set JSON file")
	applyCmd.Flags().StringVar(&applyObject, "object", "", "Change set object in the snapshot bucket")
	applyCmd.Flags().BoolVar(&applyFailOnError, "fail-on-error", false, "Stop at the first failed item (default: sync.fail_on_error)")
	applyCmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "Report the change set without writing")
	applyCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm deletes (non-interactive)")
	applyCmd.MarkFlagsMutuallyExclusive("file", "object")
	applyCmd.MarkFlagsOneRequired("file", "object")

	RootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	rt, err := loadRuntime()
	if err != nil {
		return err
	}
	defer rt.logger.Sync()
	l := rt.logger

	batches, err := loadChangeSet(ctx, rt)
	if err != nil {
		return err
	}

	l.Info("Change set loaded",
		zap.Int("add", len(batches.Add)),
		zap.Int("update", len(batches.Update)),
		zap.Int("delete", len(batches.Delete)),
	)

	if applyDryRun {
		l.Info("Dry-run mode: No changes were made.")
		return nil
	}
	if batches.Len() == 0 {
		l.Info("No actions required.")
		return nil
	}
	if len(batches.Delete) > 0 && !confirmDestructiveAction(len(batches.Delete)) {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	j, err := openJournal(rt.cfg, l)
	if err != nil {
		return err
	}
	if j != nil {
		rt.service.SetHooks(j)
	}

	opts := reconcile.Options{FailOnError: applyFailOnError || rt.cfg.Sync.FailOnError}
	report, err := rt.service.Apply(ctx, applyKind, batches, reconcile.NewLogStatus(l), opts)
	if report != nil {
		printApplyReport(l, report)
	}
	if j != nil {
		printJournalSummary(ctx, l, j)
	}
	if err != nil {
		return fmt.Errorf("failed to apply change set: %w", err)
	}
	return nil
}

func loadChangeSet(ctx context.Context, rt *runtime) (reconcile.Batches, error) {
	if applyObject != "" {
		snaps, err := openSnapshots(ctx, rt.cfg, rt.service, rt.logger)
		if err != nil {
			return reconcile.Batches{}, err
		}
		return snaps.Store().LoadChangeSet(ctx, applyObject)
	}

	f, err := os.Open(applyFile)
	if err != nil {
		return reconcile.Batches{}, fmt.Errorf("failed to open change set: %w", err)
	}
	defer f.Close()

	var b reconcile.Batches
	dec := json.NewDecoder(f)
	dec.UseNumber()
	if err := dec.Decode(&b); err != nil {
		return reconcile.Batches{}, fmt.Errorf("failed to decode change set: %w", err)
	}
	return b, nil
}

// printApplyReport logs the summary and the failed items.
func printApplyReport(l *zap.Logger, report *reconcile.Report) {
	s := report.Summary
	l.Info("Apply report",
		zap.Int("total", s.Total),
		zap.Int("committed", s.Committed),
		zap.Int("skipped", s.Skipped),
		zap.Int("failed", s.Failed),
		zap.Int("pending", s.Pending),
	)

	for _, o := range report.Outcomes {
		if o.State != reconcile.StateFailed {
			continue
		}
		l.Warn("Failed item",
			zap.Stringer("kind", o.Kind),
			zap.Int("index", o.Index),
			zap.String("error", o.Error),
		)
	}
}

// printJournalSummary logs what the journal recorded for this run.
func printJournalSummary(ctx context.Context, l *zap.Logger, j *journal.Journal) {
	summary, err := journal.Summary(ctx, j.DB(), j.RunID())
	if err != nil {
		l.Warn("Failed to summarise journal", zap.String("run_id", j.RunID()), zap.Error(err))
		return
	}
	fields := []zap.Field{zap.String("run_id", j.RunID())}
	for _, s := range summary {
		fields = append(fields, zap.Int64(s.State, s.Count))
	}
	l.Info("Journal recorded", fields...)
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction(deletes int) bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Printf("\n⚠️  %d members will be deleted. Type 'yes' to confirm: ", deletes)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
