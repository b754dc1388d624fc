package status

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/3afrios/friosdesk/cmd/friosdesk/internal"
)

func NewStatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check backend connectivity and show the active configuration",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return statusCmd()
		},
	}

	return cmd
}

func statusCmd() error {
	cfg, err := internal.LoadConfig()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	fmt.Printf("%s friosdesk v%s\n\n", internal.Logo, internal.FormatVersion())
	fmt.Printf("Config:   %s\n", internal.GetConfigPath())
	fmt.Printf("Backend:  %s\n", cfg.API.BaseURL)
	fmt.Printf("Refresh:  %ds\n", cfg.Chat.RefreshSeconds)
	fmt.Printf("SLA:      %d min\n\n", cfg.Chat.SLAWarnMinutes)

	client := internal.NewAPIClient(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	start := time.Now()
	if err := client.Ping(ctx); err != nil {
		fmt.Printf("Backend:  ✗ unreachable (%v)\n", err)
		return nil
	}
	fmt.Printf("Backend:  ✓ online (%s)\n", time.Since(start).Round(time.Millisecond))
	return nil
}
