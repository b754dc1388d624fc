package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/3afrios/friosdesk/cmd/friosdesk/internal"
	"github.com/3afrios/friosdesk/pkg/views"
)

func NewSalesCommand() *cobra.Command {
	var start string
	var end string

	cmd := &cobra.Command{
		Use:     "sales",
		Aliases: []string{"s"},
		Short:   "Show the sales report for a period",
		Args:    cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return salesCmd(start, end)
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Period start (YYYY-MM-DD, backend default when omitted)")
	cmd.Flags().StringVar(&end, "end", "", "Period end (YYYY-MM-DD, backend default when omitted)")

	return cmd
}

func salesCmd(start, end string) error {
	cfg, err := internal.LoadConfig()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	startDate, err := parseDate(start)
	if err != nil {
		return fmt.Errorf("invalid --start: %w", err)
	}
	endDate, err := parseDate(end)
	if err != nil {
		return fmt.Errorf("invalid --end: %w", err)
	}

	client := internal.NewAPIClient(cfg)
	m, err := client.SalesMetricsForPeriod(context.Background(), startDate, endDate)
	if err != nil {
		return fmt.Errorf("error fetching sales metrics: %w", err)
	}

	fmt.Print(views.RenderSales(m))
	return nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", s)
}
