package broadcast

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/3afrios/friosdesk/cmd/friosdesk/internal"
	"github.com/3afrios/friosdesk/pkg/broadcast"
	"github.com/3afrios/friosdesk/pkg/views"
)

func NewBroadcastCommand() *cobra.Command {
	var message string
	var file string
	var customers []int
	var cron string
	var name string

	cmd := &cobra.Command{
		Use:     "broadcast",
		Aliases: []string{"b"},
		Short:   "Send the promotional encarte to customers",
		Args:    cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return broadcastCmd(message, file, customers, cron, name)
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "Broadcast text")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Flyer file to attach (image or PDF)")
	cmd.Flags().IntSliceVarP(&customers, "customers", "c", nil, "Target customer IDs (everyone when omitted)")
	cmd.Flags().StringVar(&cron, "cron", "", "Wait for the next tick of this cron expression before sending")
	cmd.Flags().StringVarP(&name, "name", "n", "", "Broadcast name, for the logs")

	return cmd
}

func broadcastCmd(message, file string, customers []int, cron, name string) error {
	cfg, err := internal.LoadConfig()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	if cron == "" {
		cron = cfg.Broadcast.Cron
	}

	if file != "" {
		if _, err := os.Stat(file); err != nil {
			return fmt.Errorf("flyer file: %w", err)
		}
	}

	client := internal.NewAPIClient(cfg)
	runner := broadcast.NewRunner(client)

	ctx := context.Background()
	exec, err := runner.Start(ctx, &broadcast.Definition{
		Name:        name,
		Content:     message,
		FilePath:    file,
		CustomerIDs: customers,
		Cron:        cron,
	})
	if err != nil {
		return fmt.Errorf("error starting broadcast: %w", err)
	}

	if !exec.ScheduledFor.IsZero() {
		fmt.Printf("Encarte agendado para %s (broadcast %s). Aguardando...\n",
			views.FormatTimeBR(exec.ScheduledFor), exec.ID)
	}

	exec, err = runner.Wait(ctx, exec.ID)
	if err != nil {
		return fmt.Errorf("error waiting for broadcast: %w", err)
	}

	switch exec.Status {
	case broadcast.StatusCompleted:
		ids := make([]string, len(exec.SentTo))
		for i, id := range exec.SentTo {
			ids[i] = fmt.Sprintf("%d", id)
		}
		fmt.Printf("Encarte enviado para %d cliente(s): %s\n", len(exec.SentTo), strings.Join(ids, ", "))
		return nil
	case broadcast.StatusCanceled:
		fmt.Println("Broadcast cancelado.")
		return nil
	default:
		return fmt.Errorf("broadcast failed: %s", exec.Error)
	}
}
