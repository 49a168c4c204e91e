package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// listsCmd prints the audiences of the account.
var listsCmd = &cobra.Command{
	Use:   "lists",
	Short: "List the audiences visible to the API key",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := loadRuntime()
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		lists, err := rt.service.Lists(context.Background())
		if err != nil {
			return fmt.Errorf("failed to list audiences: %w", err)
		}
		rt.logger.Info("Audiences loaded", zap.Int("count", len(lists)))
		return printJSON(lists)
	},
}

func init() {
	RootCmd.AddCommand(listsCmd)
}
