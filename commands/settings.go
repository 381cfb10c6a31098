package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func setEndpointCmd(getEnv func() *env) *cobra.Command {
	return &cobra.Command{
		Use:   "set-endpoint [url]",
		Short: "Save the classification endpoint to the settings file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := getEnv()
			if err := e.manager.SetEndpoint(args[0]); err != nil {
				return fmt.Errorf("failed to save endpoint: %w", err)
			}
			e.logger.Info("Endpoint saved", zap.String("endpoint", args[0]))
			fmt.Fprintf(cmd.OutOrStdout(), "Endpoint set to %s\n", args[0])
			return nil
		},
	}
}

func ignoreSenderCmd(getEnv func() *env) *cobra.Command {
	return &cobra.Command{
		Use:   "ignore-sender [address]",
		Short: "Skip messages from a sender when importing from Gmail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := getEnv()
			if err := e.manager.AddIgnoreSender(args[0]); err != nil {
				return fmt.Errorf("failed to save ignore rule: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Ignoring %s on Gmail import\n", args[0])
			return nil
		},
	}
}
