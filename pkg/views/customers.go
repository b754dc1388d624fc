package views

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/3afrios/friosdesk/pkg/api"
)

// RenderCustomerMetrics prints the customer analytics report.
func RenderCustomerMetrics(m *api.CustomerMetrics) string {
	var b strings.Builder

	fmt.Fprintf(&b, "=== Relatório de Clientes | %s a %s ===\n\n",
		FormatDateBR(m.PeriodStart), FormatDateBR(m.PeriodEnd))

	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Total de clientes\t%d\n", m.Summary.TotalCustomers)
	fmt.Fprintf(w, "Ativos\t%d\n", m.Summary.ActiveCustomers)
	fmt.Fprintf(w, "Inativos\t%d\n", m.Summary.InactiveCustomers)
	fmt.Fprintf(w, "Novos no período\t%d\n", m.Summary.NewCustomers)
	fmt.Fprintf(w, "Recorrentes\t%d\n", m.Summary.RecurringCustomers)
	fmt.Fprintf(w, "Ocasionais\t%d\n", m.Summary.OccasionalCustomers)
	fmt.Fprintf(w, "Taxa de recompra\t%s\n", FormatPercent(m.Summary.RepeatRate))
	fmt.Fprintf(w, "Pedidos por cliente\t%.1f\n", m.Summary.AvgOrdersPerCustomer)
	fmt.Fprintf(w, "Ticket por cliente\t%s\n", FormatBRL(m.Summary.AvgTicketPerCustomer))
	w.Flush()

	if len(m.TopCustomers) > 0 {
		b.WriteString("\n--- Maiores clientes ---\n")
		w = tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
		for i, c := range m.TopCustomers {
			fmt.Fprintf(w, "%d.\t%s\t%s\t%d pedidos\tticket %s\n",
				i+1, c.Name, FormatBRL(c.TotalRevenue), c.OrdersCount, FormatBRL(c.AvgTicket))
		}
		w.Flush()
	}

	if len(m.NewCustomersByPeriod) > 0 {
		b.WriteString("\n--- Novos clientes ---\n")
		w = tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
		for _, p := range m.NewCustomersByPeriod {
			fmt.Fprintf(w, "%s\t%d\n", FormatDateBR(p.Date), p.Count)
		}
		w.Flush()
	}

	return b.String()
}

// RenderCustomerList prints the raw customer table.
func RenderCustomerList(customers []api.Customer) string {
	if len(customers) == 0 {
		return "Nenhum cliente cadastrado.\n"
	}

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNome\tTelefone\tCadastro")
	for _, c := range customers {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", c.ID, c.Name, c.Phone, FormatDateBR(c.CreatedAt))
	}
	w.Flush()
	return b.String()
}
