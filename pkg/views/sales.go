package views

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/3afrios/friosdesk/pkg/api"
)

// RenderSales prints the sales report for a period.
func RenderSales(m *api.SalesMetrics) string {
	var b strings.Builder

	fmt.Fprintf(&b, "=== Relatório de Vendas | %s a %s ===\n\n",
		FormatDateBR(m.PeriodStart), FormatDateBR(m.PeriodEnd))

	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Faturamento\t%s\n", FormatBRL(m.Summary.Revenue))
	fmt.Fprintf(w, "Pedidos\t%d\n", m.Summary.Orders)
	fmt.Fprintf(w, "Ticket médio\t%s\n", FormatBRL(m.Summary.TicketMedio))
	fmt.Fprintf(w, "Margem média\t%s\n", FormatPercent(m.Summary.AverageMargin))
	fmt.Fprintf(w, "Descontos\t%s\n", FormatBRL(m.Summary.TotalDiscount))
	fmt.Fprintf(w, "Custo total\t%s\n", FormatBRL(m.Summary.TotalCost))
	fmt.Fprintf(w, "Lucro bruto\t%s\n", FormatBRL(m.Summary.GrossProfit))
	w.Flush()

	b.WriteString("\n--- Períodos correntes ---\n")
	w = tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Hoje\t%s\t%d pedidos\tlucro %s\n", FormatBRL(m.Today.Revenue), m.Today.Orders, FormatBRL(m.Today.GrossProfit))
	fmt.Fprintf(w, "Semana\t%s\t%d pedidos\tlucro %s\n", FormatBRL(m.CurrentWeek.Revenue), m.CurrentWeek.Orders, FormatBRL(m.CurrentWeek.GrossProfit))
	fmt.Fprintf(w, "Mês\t%s\t%d pedidos\tlucro %s\n", FormatBRL(m.CurrentMonth.Revenue), m.CurrentMonth.Orders, FormatBRL(m.CurrentMonth.GrossProfit))
	w.Flush()

	b.WriteString("\n--- Mês atual vs. anterior ---\n")
	w = tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Atual\t%s\t%d pedidos\n", FormatBRL(m.Comparison.CurrentRevenue), m.Comparison.CurrentOrders)
	fmt.Fprintf(w, "Anterior\t%s\t%d pedidos\n", FormatBRL(m.Comparison.PreviousRevenue), m.Comparison.PreviousOrders)
	w.Flush()

	if len(m.ByPaymentMethod) > 0 {
		b.WriteString("\n--- Por forma de pagamento ---\n")
		w = tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
		for _, p := range m.ByPaymentMethod {
			fmt.Fprintf(w, "%s\t%s\t%d pedidos\n", p.PaymentMethod, FormatBRL(p.Total), p.Count)
		}
		w.Flush()
	}

	if len(m.ByProduct) > 0 {
		b.WriteString("\n--- Rentabilidade por produto ---\n")
		w = tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
		for _, p := range m.ByProduct {
			fmt.Fprintf(w, "%s\t%d un\t%s\tlucro %s\tmargem %s\n",
				p.ProductName, p.Quantity, FormatBRL(p.TotalRevenue), FormatBRL(p.TotalProfit), FormatPercent(p.MarginPercent))
		}
		w.Flush()
	}

	if len(m.ByWeekday) > 0 {
		b.WriteString("\n--- Por dia da semana ---\n")
		w = tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
		for _, d := range m.ByWeekday {
			fmt.Fprintf(w, "%s\t%d pedidos\t%s\n", d.DayName, d.Count, FormatBRL(d.Revenue))
		}
		w.Flush()
	}

	if len(m.ByHour) > 0 {
		b.WriteString("\n--- Por hora do dia ---\n")
		w = tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
		for _, h := range m.ByHour {
			fmt.Fprintf(w, "%02dh\t%d pedidos\t%s\n", h.Hour, h.Count, FormatBRL(h.Revenue))
		}
		w.Flush()
	}

	return b.String()
}
