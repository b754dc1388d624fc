package customers

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/3afrios/friosdesk/cmd/friosdesk/internal"
	"github.com/3afrios/friosdesk/pkg/views"
)

func NewCustomersCommand() *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "customers",
		Short: "Show the customer analytics report",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return customersCmd(list)
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false, "List registered customers instead of the report")

	return cmd
}

func customersCmd(list bool) error {
	cfg, err := internal.LoadConfig()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	client := internal.NewAPIClient(cfg)
	ctx := context.Background()

	if list {
		all, err := client.Customers(ctx)
		if err != nil {
			return fmt.Errorf("error fetching customers: %w", err)
		}
		fmt.Print(views.RenderCustomerList(all))
		return nil
	}

	m, err := client.CustomerMetricsSnapshot(ctx)
	if err != nil {
		return fmt.Errorf("error fetching customer metrics: %w", err)
	}

	fmt.Print(views.RenderCustomerMetrics(m))
	return nil
}
