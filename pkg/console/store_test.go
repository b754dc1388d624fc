package console

import (
	"testing"
	"time"

	"github.com/3afrios/friosdesk/pkg/api"
)

func ts(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func conv(id int, name, phone string, updated *time.Time, msgs ...api.Message) api.Conversation {
	return api.Conversation{
		ID:         id,
		CustomerID: id,
		Status:     api.ConversationOpen,
		CreatedAt:  time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:  updated,
		Messages:   msgs,
		Customer:   &api.Customer{ID: id, Name: name, Phone: phone},
	}
}

func fixedNow() time.Time {
	return time.Date(2026, 8, 21, 12, 0, 0, 0, time.UTC)
}

func TestSetConversationsSelectsFirstByDefault(t *testing.T) {
	s := NewStore(fixedNow, 0)

	s.SetConversations([]api.Conversation{
		conv(3, "Dona Maria", "5511999990000", nil),
		conv(1, "Seu José", "5511888880000", nil),
	})

	if got := s.Selected(); got != 3 {
		t.Errorf("expected first conversation in fetch order selected, got %d", got)
	}
}

func TestSetConversationsKeepsExistingSelection(t *testing.T) {
	s := NewStore(fixedNow, 0)
	s.SetConversations([]api.Conversation{conv(3, "A", "1", nil), conv(1, "B", "2", nil)})

	if !s.Select(1) {
		t.Fatal("Select(1) failed")
	}
	s.SetConversations([]api.Conversation{conv(1, "B", "2", nil), conv(3, "A", "1", nil)})

	if got := s.Selected(); got != 1 {
		t.Errorf("selection should survive a refresh, got %d", got)
	}
}

func TestSetConversationsResetsGoneSelection(t *testing.T) {
	s := NewStore(fixedNow, 0)
	s.SetConversations([]api.Conversation{conv(3, "A", "1", nil), conv(1, "B", "2", nil)})
	s.Select(1)

	s.SetConversations([]api.Conversation{conv(3, "A", "1", nil)})
	if got := s.Selected(); got != 3 {
		t.Errorf("gone selection should fall back to the first conversation, got %d", got)
	}

	s.SetConversations(nil)
	if got := s.Selected(); got != 0 {
		t.Errorf("empty list should clear the selection, got %d", got)
	}
}

func TestSelectUnknownConversation(t *testing.T) {
	s := NewStore(fixedNow, 0)
	s.SetConversations([]api.Conversation{conv(3, "A", "1", nil)})

	if s.Select(99) {
		t.Error("selecting an unknown conversation should fail")
	}
	if got := s.Selected(); got != 3 {
		t.Errorf("failed select should not change the selection, got %d", got)
	}
}

func TestReplaceMessagesIsUnconditional(t *testing.T) {
	s := NewStore(fixedNow, 0)
	s.SetConversations([]api.Conversation{conv(3, "A", "1", nil)})

	s.ReplaceMessages(3, []api.Message{
		{ID: 1, ConversationID: 3, Content: "oi", SenderType: api.SenderCustomer, Timestamp: ts("2026-08-21T11:00:00Z")},
		{ID: 2, ConversationID: 3, Content: "olá", SenderType: api.SenderAgent, Timestamp: ts("2026-08-21T11:01:00Z")},
	})
	if got := len(s.Transcript()); got != 2 {
		t.Fatalf("transcript: got %d messages", got)
	}

	// A shorter server response still replaces the local copy.
	s.ReplaceMessages(3, []api.Message{
		{ID: 1, ConversationID: 3, Content: "oi", SenderType: api.SenderCustomer, Timestamp: ts("2026-08-21T11:00:00Z")},
	})
	if got := len(s.Transcript()); got != 1 {
		t.Errorf("transcript should be replaced wholesale, got %d messages", got)
	}
}

func TestReplaceMessagesIgnoresOtherConversations(t *testing.T) {
	s := NewStore(fixedNow, 0)
	s.SetConversations([]api.Conversation{conv(3, "A", "1", nil), conv(1, "B", "2", nil)})

	s.ReplaceMessages(1, []api.Message{{ID: 9, ConversationID: 1, SenderType: api.SenderCustomer}})
	if got := len(s.Transcript()); got != 0 {
		t.Errorf("transcript of a non-selected conversation must not land, got %d", got)
	}
}

func TestApplyPushAppendsToSelectedTranscript(t *testing.T) {
	s := NewStore(fixedNow, 0)
	s.SetConversations([]api.Conversation{conv(3, "A", "1", nil), conv(1, "B", "2", nil)})

	msg := api.Message{ID: 50, ConversationID: 3, Content: "cheguei", SenderType: api.SenderCustomer, Timestamp: ts("2026-08-21T11:59:00Z")}
	s.ApplyPush(msg)

	tr := s.Transcript()
	if len(tr) != 1 || tr[0].ID != 50 {
		t.Fatalf("pushed message should append to selected transcript, got %+v", tr)
	}

	sel, ok := s.SelectedConversation()
	if !ok {
		t.Fatal("selected conversation missing")
	}
	if sel.UpdatedAt == nil || !sel.UpdatedAt.Equal(*msg.Timestamp) {
		t.Errorf("conversation activity should bump to the message timestamp, got %v", sel.UpdatedAt)
	}
}

func TestApplyPushSkipsNonSelectedTranscript(t *testing.T) {
	s := NewStore(fixedNow, 0)
	s.SetConversations([]api.Conversation{conv(3, "A", "1", nil), conv(1, "B", "2", nil)})

	s.ApplyPush(api.Message{ID: 51, ConversationID: 1, Content: "oi", SenderType: api.SenderCustomer, Timestamp: ts("2026-08-21T11:59:00Z")})

	if got := len(s.Transcript()); got != 0 {
		t.Errorf("push for another conversation must not touch the transcript, got %d", got)
	}

	// The owning conversation still gets the preview and activity bump.
	for _, c := range s.Visible("") {
		if c.ID == 1 {
			if len(c.Messages) != 1 {
				t.Errorf("conversation preview should grow, got %d messages", len(c.Messages))
			}
			return
		}
	}
	t.Fatal("conversation 1 missing from list")
}

func TestApplyPushSeesSelectionChanges(t *testing.T) {
	s := NewStore(fixedNow, 0)
	s.SetConversations([]api.Conversation{conv(3, "A", "1", nil), conv(1, "B", "2", nil)})

	// The merge path reads the selection through the Ref, so a switch made
	// after the loop started is still honored.
	ref := s.SelectedRef()
	s.Select(1)
	if ref.Get() != 1 {
		t.Fatal("ref should track the selection")
	}

	s.ApplyPush(api.Message{ID: 52, ConversationID: 1, Content: "novo", SenderType: api.SenderCustomer, Timestamp: ts("2026-08-21T11:59:30Z")})
	tr := s.Transcript()
	if len(tr) != 1 || tr[0].ID != 52 {
		t.Errorf("push should land in the newly selected transcript, got %+v", tr)
	}
}

func TestApplyPushDoesNotDeduplicate(t *testing.T) {
	s := NewStore(fixedNow, 0)
	s.SetConversations([]api.Conversation{conv(3, "A", "1", nil)})

	msg := api.Message{ID: 60, ConversationID: 3, Content: "dup", SenderType: api.SenderCustomer, Timestamp: ts("2026-08-21T11:58:00Z")}
	s.ApplyPush(msg)
	s.ApplyPush(msg)

	if got := len(s.Transcript()); got != 2 {
		t.Errorf("duplicates are kept until the next refresh, got %d", got)
	}
}

func TestApplyPushUnknownConversationIsIgnored(t *testing.T) {
	s := NewStore(fixedNow, 0)
	s.SetConversations([]api.Conversation{conv(3, "A", "1", nil)})

	s.ApplyPush(api.Message{ID: 61, ConversationID: 999, SenderType: api.SenderCustomer, Timestamp: ts("2026-08-21T11:58:00Z")})

	if got := len(s.Visible("")); got != 1 {
		t.Errorf("unknown conversation must not be invented locally, got %d", got)
	}
}

func TestVisibleSearchMatchesNameAndPhone(t *testing.T) {
	s := NewStore(fixedNow, 0)
	s.SetConversations([]api.Conversation{
		conv(1, "Dona Maria", "5511999990000", nil),
		conv(2, "Padaria do Zé", "5511888880000", nil),
		conv(3, "Mercadinho Central", "5511777770000", nil),
	})

	if got := s.Visible("MARIA"); len(got) != 1 || got[0].ID != 1 {
		t.Errorf("name search should be case-insensitive, got %+v", got)
	}
	if got := s.Visible("8888"); len(got) != 1 || got[0].ID != 2 {
		t.Errorf("phone substring search failed, got %+v", got)
	}
	if got := s.Visible("nada disso"); len(got) != 0 {
		t.Errorf("no match expected, got %d", len(got))
	}
	if got := s.Visible(""); len(got) != 3 {
		t.Errorf("empty search shows everything, got %d", len(got))
	}
}

func TestVisibleOrderPinsSelectedFirst(t *testing.T) {
	s := NewStore(fixedNow, 0)
	s.SetConversations([]api.Conversation{
		conv(1, "A", "1", ts("2026-08-21T08:00:00Z")),
		conv(2, "B", "2", ts("2026-08-21T11:00:00Z")),
		conv(3, "C", "3", ts("2026-08-21T10:00:00Z")),
	})
	s.Select(1)

	got := s.Visible("")
	if len(got) != 3 {
		t.Fatalf("expected 3 conversations, got %d", len(got))
	}
	if got[0].ID != 1 {
		t.Errorf("selected conversation must be pinned first, got %d", got[0].ID)
	}
	if got[1].ID != 2 || got[2].ID != 3 {
		t.Errorf("rest should order by activity desc, got %d then %d", got[1].ID, got[2].ID)
	}
}

func TestVisibleFallsBackToCreatedAt(t *testing.T) {
	s := NewStore(fixedNow, 0)

	pinned := conv(9, "C", "9", ts("2026-08-21T11:00:00Z"))
	older := conv(1, "A", "1", nil)
	older.CreatedAt = time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	newer := conv(2, "B", "2", nil)
	newer.CreatedAt = time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)

	// Fetch order puts the older one first; selection stays on 9, so the
	// other two must order by created_at since neither has updated_at.
	s.SetConversations([]api.Conversation{pinned, older, newer})
	got := s.Visible("")
	if got[0].ID != 9 || got[1].ID != 2 || got[2].ID != 1 {
		t.Errorf("created_at fallback ordering failed: %d, %d, %d", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestDelayBadge(t *testing.T) {
	s := NewStore(fixedNow, 0) // now = 12:00

	tests := []struct {
		name     string
		last     *api.Message
		want     string
		warning  bool
		hasBadge bool
	}{
		{
			name:     "customer waiting 3 min",
			last:     &api.Message{SenderType: api.SenderCustomer, Timestamp: ts("2026-08-21T11:57:00Z")},
			want:     "3 min sem resposta",
			warning:  false,
			hasBadge: true,
		},
		{
			name:     "customer waiting 12 min",
			last:     &api.Message{SenderType: api.SenderCustomer, Timestamp: ts("2026-08-21T11:48:00Z")},
			want:     "12 min sem resposta",
			warning:  true,
			hasBadge: true,
		},
		{
			name:     "exactly at threshold is not yet a warning",
			last:     &api.Message{SenderType: api.SenderCustomer, Timestamp: ts("2026-08-21T11:55:00Z")},
			want:     "5 min sem resposta",
			warning:  false,
			hasBadge: true,
		},
		{
			name:     "agent already replied",
			last:     &api.Message{SenderType: api.SenderAgent, Timestamp: ts("2026-08-21T11:30:00Z")},
			hasBadge: false,
		},
		{
			name:     "bot reply counts as answered",
			last:     &api.Message{SenderType: api.SenderBot, Timestamp: ts("2026-08-21T11:30:00Z")},
			hasBadge: false,
		},
		{
			name:     "no messages",
			last:     nil,
			hasBadge: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := conv(1, "A", "1", nil)
			if tc.last != nil {
				c.Messages = []api.Message{*tc.last}
			}
			badge, ok := s.DelayBadge(&c)
			if ok != tc.hasBadge {
				t.Fatalf("hasBadge: got %v, want %v", ok, tc.hasBadge)
			}
			if !ok {
				return
			}
			if badge.Label != tc.want {
				t.Errorf("label: got %q, want %q", badge.Label, tc.want)
			}
			if badge.Warning != tc.warning {
				t.Errorf("warning: got %v, want %v", badge.Warning, tc.warning)
			}
		})
	}
}

func TestRef(t *testing.T) {
	r := NewRef(10)
	if r.Get() != 10 {
		t.Errorf("initial value: got %d", r.Get())
	}
	r.Set(42)
	if r.Get() != 42 {
		t.Errorf("after set: got %d", r.Get())
	}
}

func TestClockAdvances(t *testing.T) {
	c := NewClock(20 * time.Millisecond)
	defer c.Stop()

	first := c.Now()
	time.Sleep(60 * time.Millisecond)
	if !c.Now().After(first) {
		t.Error("clock should advance with ticks")
	}
}
