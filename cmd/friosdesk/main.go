// friosdesk - terminal operations console for the 3A Frios store:
// live WhatsApp chat, sales dashboards and encarte broadcasts.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/3afrios/friosdesk/cmd/friosdesk/internal"
	"github.com/3afrios/friosdesk/cmd/friosdesk/internal/broadcast"
	"github.com/3afrios/friosdesk/cmd/friosdesk/internal/chat"
	"github.com/3afrios/friosdesk/cmd/friosdesk/internal/customers"
	"github.com/3afrios/friosdesk/cmd/friosdesk/internal/dashboard"
	"github.com/3afrios/friosdesk/cmd/friosdesk/internal/reports"
	"github.com/3afrios/friosdesk/cmd/friosdesk/internal/sales"
	"github.com/3afrios/friosdesk/cmd/friosdesk/internal/status"
	"github.com/3afrios/friosdesk/cmd/friosdesk/internal/version"
)

func NewFriosdeskCommand() *cobra.Command {
	short := fmt.Sprintf("%s friosdesk - Console 3A Frios v%s\n\n", internal.Logo, internal.GetVersion())

	cmd := &cobra.Command{
		Use:     "friosdesk",
		Short:   short,
		Example: "friosdesk chat",
	}

	cmd.AddCommand(
		chat.NewChatCommand(),
		dashboard.NewDashboardCommand(),
		sales.NewSalesCommand(),
		customers.NewCustomersCommand(),
		reports.NewReportsCommand(),
		broadcast.NewBroadcastCommand(),
		status.NewStatusCommand(),
		version.NewVersionCommand(),
	)

	return cmd
}

func main() {
	cmd := NewFriosdeskCommand()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
