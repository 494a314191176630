package main

import (
	"context"
	"fmt"
	"time"

	"portfolio-site/internal/domain"
	"portfolio-site/pkg/email"

	"github.com/spf13/cobra"
)

type relayTestOptions struct {
	name    string
	email   string
	subject string
	message string
	timeout time.Duration
}

func newRelayCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "relay",
		Short: "Work with the contact relay",
	}
	cmd.AddCommand(newRelayTestCmd(root))
	return cmd
}

func newRelayTestCmd(root *rootFlags) *cobra.Command {
	opts := relayTestOptions{}

	cmd := &cobra.Command{
		Use:   "test",
		Short: "Send a test message through the configured relay",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			initLogging(cfg)

			relay, err := email.NewRelay(cfg)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()
			if err := relay.Send(ctx, domain.ContactMessage{
				Name:    opts.name,
				Email:   opts.email,
				Subject: opts.subject,
				Message: opts.message,
			}); err != nil {
				return fmt.Errorf("relay %s: %w", cfg.RelayProvider, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "relay %s accepted the test message\n", cfg.RelayProvider)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.name, "name", "Relay Test", "Sender name")
	cmd.Flags().StringVar(&opts.email, "email", "relay-test@example.com", "Sender email")
	cmd.Flags().StringVar(&opts.subject, "subject", "Relay test", "Message subject")
	cmd.Flags().StringVar(&opts.message, "message", "This is a test message from portfolio relay test.", "Message body")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 15*time.Second, "Give up after this long")

	return cmd
}
