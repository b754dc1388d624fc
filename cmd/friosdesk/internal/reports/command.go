package reports

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/3afrios/friosdesk/cmd/friosdesk/internal"
	"github.com/3afrios/friosdesk/pkg/api"
	"github.com/3afrios/friosdesk/pkg/views"
)

func NewReportsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "reports",
		Aliases: []string{"r"},
		Short:   "Operational reports",
	}

	cmd.AddCommand(
		newOrdersCommand(),
		newServiceCommand(),
		newSalespeopleCommand(),
	)

	return cmd
}

func newOrdersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "orders",
		Short: "Flattened orders table",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return withClient(func(ctx context.Context, client *api.Client) error {
				items, err := client.OrdersReport(ctx)
				if err != nil {
					return fmt.Errorf("error fetching orders report: %w", err)
				}
				fmt.Print(views.RenderOrdersReport(items))
				return nil
			})
		},
	}
}

func newServiceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "service",
		Short: "Service-level summary",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return withClient(func(ctx context.Context, client *api.Client) error {
				m, err := client.ServiceMetricsSnapshot(ctx)
				if err != nil {
					return fmt.Errorf("error fetching service metrics: %w", err)
				}
				fmt.Print(views.RenderServiceMetrics(m))
				return nil
			})
		},
	}
}

func newSalespeopleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "salespeople",
		Short: "Salespeople filter options",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return withClient(func(ctx context.Context, client *api.Client) error {
				people, err := client.Salespeople(ctx)
				if err != nil {
					return fmt.Errorf("error fetching salespeople: %w", err)
				}
				fmt.Print(views.RenderSalespeople(people))
				return nil
			})
		},
	}
}

func withClient(fn func(ctx context.Context, client *api.Client) error) error {
	cfg, err := internal.LoadConfig()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	return fn(context.Background(), internal.NewAPIClient(cfg))
}
