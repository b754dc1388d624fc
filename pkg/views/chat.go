package views

import (
	"fmt"
	"strings"

	"github.com/3afrios/friosdesk/pkg/api"
	"github.com/3afrios/friosdesk/pkg/console"
)

// BadgeFn computes the delay badge for a conversation, usually
// Store.DelayBadge.
type BadgeFn func(c *api.Conversation) (console.Badge, bool)

// MediaFn resolves a backend media path to a full URL, usually
// Client.MediaURL.
type MediaFn func(path string) string

// RenderConversationList prints the sidebar: one line per conversation with
// customer, last message preview and the delay badge.
func RenderConversationList(convs []api.Conversation, selected int, badge BadgeFn) string {
	if len(convs) == 0 {
		return "Nenhuma conversa encontrada.\n"
	}

	var b strings.Builder
	for _, c := range convs {
		marker := "  "
		if c.ID == selected {
			marker = "> "
		}

		name := fmt.Sprintf("conversa #%d", c.ID)
		if c.Customer != nil {
			name = fmt.Sprintf("%s (%s)", c.Customer.Name, c.Customer.Phone)
		}

		line := fmt.Sprintf("%s[%d] %s", marker, c.ID, name)

		if last := c.LastMessage(); last != nil {
			line += " | " + preview(last)
		}
		if bd, ok := badge(&c); ok {
			if bd.Warning {
				line += fmt.Sprintf(" [!! %s]", bd.Label)
			} else {
				line += fmt.Sprintf(" [%s]", bd.Label)
			}
		}

		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// RenderTranscript prints the selected conversation's messages, customer on
// the left and agent/bot prefixed, with media links resolved.
func RenderTranscript(msgs []api.Message, media MediaFn) string {
	if len(msgs) == 0 {
		return "Sem mensagens nesta conversa.\n"
	}

	var b strings.Builder
	for _, m := range msgs {
		var who string
		switch m.SenderType {
		case api.SenderAgent:
			who = "você"
		case api.SenderBot:
			who = "bot"
		default:
			who = "cliente"
		}

		when := ""
		if m.Timestamp != nil {
			when = FormatTimeBR(*m.Timestamp) + " "
		}

		fmt.Fprintf(&b, "%s%s: %s", when, who, m.Content)
		if m.MediaURL != "" {
			fmt.Fprintf(&b, " [%s: %s]", mediaLabel(m.MediaType), media(m.MediaURL))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func preview(m *api.Message) string {
	text := m.Content
	if text == "" && m.MediaURL != "" {
		text = "[" + mediaLabel(m.MediaType) + "]"
	}
	const max = 40
	if r := []rune(text); len(r) > max {
		text = string(r[:max]) + "…"
	}
	return text
}

func mediaLabel(mediaType string) string {
	switch mediaType {
	case api.MediaImage:
		return "imagem"
	case api.MediaPDF:
		return "pdf"
	default:
		return "arquivo"
	}
}
