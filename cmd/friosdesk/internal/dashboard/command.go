package dashboard

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/3afrios/friosdesk/cmd/friosdesk/internal"
	"github.com/3afrios/friosdesk/pkg/views"
)

func NewDashboardCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"d"},
		Short:   "Show the business overview",
		Args:    cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return dashboardCmd()
		},
	}

	return cmd
}

func dashboardCmd() error {
	cfg, err := internal.LoadConfig()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	client := internal.NewAPIClient(cfg)
	m, err := client.DashboardMetricsSnapshot(context.Background())
	if err != nil {
		return fmt.Errorf("error fetching dashboard metrics: %w", err)
	}

	fmt.Print(views.RenderDashboard(m))
	return nil
}
