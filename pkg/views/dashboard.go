package views

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/3afrios/friosdesk/pkg/api"
)

// RenderDashboard prints the landing-page aggregate.
func RenderDashboard(m *api.DashboardMetrics) string {
	var b strings.Builder

	b.WriteString("=== 3A Frios | Visão Geral ===\n\n")

	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Faturamento total\t%s\n", FormatBRL(m.TotalRevenue))
	fmt.Fprintf(w, "Faturamento hoje\t%s\n", FormatBRL(m.RevenueToday))
	fmt.Fprintf(w, "Faturamento no mês\t%s\n", FormatBRL(m.RevenueMonth))
	fmt.Fprintf(w, "Pedidos\t%d (hoje: %d, mês: %d)\n", m.TotalOrders, m.OrdersToday, m.OrdersMonth)
	fmt.Fprintf(w, "Clientes\t%d\n", m.TotalCustomers)
	fmt.Fprintf(w, "Ticket médio\t%s\n", FormatBRL(m.TicketMedio))
	fmt.Fprintf(w, "Lucro bruto\t%s (margem %s)\n", FormatBRL(m.GrossProfit), FormatPercent(m.GrossMarginPercent))
	fmt.Fprintf(w, "Crescimento vs. mês anterior\t%s\n", FormatPercent(m.GrowthVsLastMonthPercent))
	w.Flush()

	b.WriteString("\n--- Operação ---\n")
	w = tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Conversas ativas\t%d\n", m.ActiveConversations)
	fmt.Fprintf(w, "Pedidos pendentes\t%d\n", m.PendingOrders)
	fmt.Fprintf(w, "Pedidos em andamento\t%d\n", m.InProgressOrders)
	fmt.Fprintf(w, "Pedidos atrasados\t%d\n", m.LateOrders)
	fmt.Fprintf(w, "Taxa de cancelamento\t%s\n", FormatPercent(m.CancellationRate))
	fmt.Fprintf(w, "Pedidos via WhatsApp\t%s\n", FormatPercent(m.WhatsappOrdersPercentage))
	w.Flush()

	if len(m.SalesByDay) > 0 {
		b.WriteString("\n--- Vendas por dia ---\n")
		w = tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
		for _, d := range m.SalesByDay {
			fmt.Fprintf(w, "%s\t%s\n", FormatDateBR(d.Date), FormatBRL(d.Total))
		}
		w.Flush()
	}

	if len(m.SalesByChannel) > 0 {
		b.WriteString("\n--- Vendas por canal ---\n")
		w = tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
		for _, c := range m.SalesByChannel {
			fmt.Fprintf(w, "%s\t%s\t%s\n", c.Channel, FormatBRL(c.Total), FormatPercent(c.Percentage))
		}
		w.Flush()
	}

	if len(m.TopProducts) > 0 {
		b.WriteString("\n--- Mais vendidos ---\n")
		w = tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
		for i, p := range m.TopProducts {
			fmt.Fprintf(w, "%d.\t%s\t%d un\t%s\n", i+1, p.ProductName, p.Quantity, FormatBRL(p.TotalRevenue))
		}
		w.Flush()
	}

	return b.String()
}
