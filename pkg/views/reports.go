package views

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/3afrios/friosdesk/pkg/api"
)

// RenderServiceMetrics prints the service-level aggregate.
func RenderServiceMetrics(m *api.ServiceMetrics) string {
	var b strings.Builder

	b.WriteString("=== Atendimento ===\n\n")
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Conversas\t%d (abertas: %d, fechadas: %d)\n",
		m.TotalConversations, m.OpenConversations, m.ClosedConversations)
	fmt.Fprintf(w, "Mensagens\t%d\n", m.TotalMessages)
	fmt.Fprintf(w, "Mensagens por conversa\t%.1f\n", m.AvgMessagesPerConversation)
	w.Flush()

	return b.String()
}

// RenderConversationMetrics prints the full support aggregate used by the
// chat console's metrics panel.
func RenderConversationMetrics(m *api.ConversationMetrics) string {
	var b strings.Builder

	b.WriteString("=== Métricas de Atendimento ===\n\n")
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Conversas\t%d (abertas: %d, fechadas: %d)\n",
		m.TotalConversations, m.OpenConversations, m.ClosedConversations)
	fmt.Fprintf(w, "Respondidas\t%d\n", m.RespondedConversations)
	fmt.Fprintf(w, "Sem resposta\t%d\n", m.UnansweredConversations)
	fmt.Fprintf(w, "Abandonadas\t%d\n", m.AbandonedConversations)
	fmt.Fprintf(w, "Fora do SLA\t%d\n", m.ConversationsOutOfSLA)
	fmt.Fprintf(w, "1ª resposta (média)\t%s\n", FormatSeconds(m.AvgFirstResponseTimeSeconds))
	fmt.Fprintf(w, "Resolução (média)\t%s\n", FormatSeconds(m.AvgResolutionTimeSeconds))
	fmt.Fprintf(w, "Conversas com pedido\t%d\n", m.ConversationsWithOrders)
	fmt.Fprintf(w, "Taxa de conversão\t%s\n", FormatPercent(m.ConversionRate*100))
	fmt.Fprintf(w, "Receita via conversas\t%s\n", FormatBRL(m.TotalRevenueFromConvs))
	fmt.Fprintf(w, "Ticket médio\t%s\n", FormatBRL(m.AvgTicketFromConvs))
	w.Flush()

	return b.String()
}

// RenderOrdersReport prints the flattened orders table.
func RenderOrdersReport(items []api.OrderReportItem) string {
	if len(items) == 0 {
		return "Nenhum pedido no período.\n"
	}

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tData\tCliente\tVendedor\tValor\tStatus\tPagamento\tItens")
	for _, o := range items {
		sales := o.SalespersonName
		if sales == "" {
			sales = "-"
		}
		pay := o.PaymentMethod
		if pay == "" {
			pay = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%d\n",
			o.ID, FormatDateBR(o.CreatedAt), o.CustomerName, sales,
			FormatBRL(o.TotalAmount), o.Status, pay, o.ItemsCount)
	}
	w.Flush()
	return b.String()
}

// RenderSalespeople prints the report filter options.
func RenderSalespeople(people []api.Salesperson) string {
	if len(people) == 0 {
		return "Nenhum vendedor cadastrado.\n"
	}

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNome")
	for _, p := range people {
		fmt.Fprintf(w, "%d\t%s\n", p.ID, p.Name)
	}
	w.Flush()
	return b.String()
}
