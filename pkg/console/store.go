package console

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/3afrios/friosdesk/pkg/api"
)

// DefaultSLAWarn is the unanswered-customer age that flips the delay badge
// to a warning.
const DefaultSLAWarn = 5 * time.Minute

// Badge is the "time without reply" marker shown next to a conversation.
type Badge struct {
	Label   string
	Warning bool
}

// Store holds the console's view of the conversations. The REST list is the
// authority and replaces local state wholesale; pushed messages are merged
// in between refreshes. Safe for concurrent use.
type Store struct {
	mu            sync.RWMutex
	conversations []api.Conversation
	transcript    []api.Message

	selected *Ref[int]
	nowFn    func() time.Time
	slaWarn  time.Duration
}

// NewStore builds a store. nowFn is usually Clock.Now; slaWarn of zero falls
// back to DefaultSLAWarn.
func NewStore(nowFn func() time.Time, slaWarn time.Duration) *Store {
	if nowFn == nil {
		nowFn = time.Now
	}
	if slaWarn <= 0 {
		slaWarn = DefaultSLAWarn
	}
	return &Store{
		selected: NewRef(0),
		nowFn:    nowFn,
		slaWarn:  slaWarn,
	}
}

// SelectedRef exposes the selection cell, used by the push merge path.
func (s *Store) SelectedRef() *Ref[int] {
	return s.selected
}

// Selected returns the selected conversation ID, 0 when nothing is selected.
func (s *Store) Selected() int {
	return s.selected.Get()
}

// SetConversations replaces the list with the backend's response. When the
// current selection is gone (or nothing was selected yet) the first
// conversation in fetch order becomes selected.
func (s *Store) SetConversations(convs []api.Conversation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conversations = convs

	sel := s.selected.Get()
	if sel != 0 {
		for i := range convs {
			if convs[i].ID == sel {
				return
			}
		}
	}
	if len(convs) > 0 {
		s.selected.Set(convs[0].ID)
	} else {
		s.selected.Set(0)
	}
}

// Select switches the active conversation. The caller is expected to follow
// up with a transcript fetch and ReplaceMessages.
func (s *Store) Select(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.conversations {
		if s.conversations[i].ID == id {
			s.selected.Set(id)
			return true
		}
	}
	return false
}

// SelectedConversation returns a copy of the selected conversation.
func (s *Store) SelectedConversation() (api.Conversation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sel := s.selected.Get()
	for i := range s.conversations {
		if s.conversations[i].ID == sel {
			return s.conversations[i], true
		}
	}
	return api.Conversation{}, false
}

// ReplaceMessages overwrites the transcript with the backend's response.
// Always a full replacement, even when the local copy looks newer.
func (s *Store) ReplaceMessages(conversationID int, msgs []api.Message) {
	if conversationID != s.selected.Get() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = msgs
}

// Transcript returns a copy of the selected conversation's messages.
func (s *Store) Transcript() []api.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]api.Message, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// ApplyPush merges one pushed message. The owning conversation gets the
// message appended to its preview and its activity bumped; the transcript
// only grows when the message belongs to the conversation selected right
// now, read through the Ref. Duplicates are not filtered: the next REST
// refresh squashes them.
func (s *Store) ApplyPush(msg api.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for i := range s.conversations {
		if s.conversations[i].ID != msg.ConversationID {
			continue
		}
		found = true
		s.conversations[i].Messages = append(s.conversations[i].Messages, msg)
		if msg.Timestamp != nil {
			s.conversations[i].UpdatedAt = msg.Timestamp
		} else {
			now := s.nowFn()
			s.conversations[i].UpdatedAt = &now
		}
		break
	}
	if !found {
		log.Debug().Int("conversation_id", msg.ConversationID).Msg("Push for unknown conversation, waiting for next list refresh")
	}

	if msg.ConversationID == s.selected.Get() {
		s.transcript = append(s.transcript, msg)
	}
}

// Visible filters and orders the list for display: case-insensitive
// substring match on customer name or phone, selected conversation pinned
// first, the rest by most recent activity.
func (s *Store) Visible(search string) []api.Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(search))

	out := make([]api.Conversation, 0, len(s.conversations))
	for i := range s.conversations {
		c := s.conversations[i]
		if needle != "" && !matches(&c, needle) {
			continue
		}
		out = append(out, c)
	}

	sel := s.selected.Get()
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ID == sel {
			return true
		}
		if out[j].ID == sel {
			return false
		}
		return out[i].LastActivity().After(out[j].LastActivity())
	})

	return out
}

func matches(c *api.Conversation, needle string) bool {
	if c.Customer == nil {
		return false
	}
	return strings.Contains(strings.ToLower(c.Customer.Name), needle) ||
		strings.Contains(strings.ToLower(c.Customer.Phone), needle)
}

// DelayBadge computes the "N min sem resposta" marker for a conversation.
// It only applies while the customer is waiting, i.e. the last message came
// from the customer. Past the SLA threshold the badge turns into a warning.
func (s *Store) DelayBadge(c *api.Conversation) (Badge, bool) {
	last := c.LastMessage()
	if last == nil || last.SenderType != api.SenderCustomer || last.Timestamp == nil {
		return Badge{}, false
	}

	waiting := s.nowFn().Sub(*last.Timestamp)
	if waiting < 0 {
		waiting = 0
	}
	mins := int(waiting / time.Minute)

	return Badge{
		Label:   fmt.Sprintf("%d min sem resposta", mins),
		Warning: waiting > s.slaWarn,
	}, true
}
