package broadcast

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/3afrios/friosdesk/pkg/api"
)

// testDispatcher records broadcast calls and fakes the backend reply.
type testDispatcher struct {
	delay     time.Duration
	fail      bool
	calls     int
	content   string
	customers []int
}

func (d *testDispatcher) BroadcastEncarte(ctx context.Context, content, filePath string, customerIDs []int) (*api.BroadcastResult, error) {
	d.calls++
	d.content = content
	d.customers = customerIDs
	if d.delay > 0 {
		select {
		case <-time.After(d.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if d.fail {
		return nil, fmt.Errorf("backend unavailable")
	}
	if len(customerIDs) == 0 {
		customerIDs = []int{1, 2, 3}
	}
	return &api.BroadcastResult{SentTo: customerIDs}, nil
}

func TestRunner_StartAndComplete(t *testing.T) {
	d := &testDispatcher{}
	runner := NewRunner(d)

	exec, err := runner.Start(context.Background(), &Definition{
		Name:    "Encarte da semana",
		Content: "Promoção de queijos até sexta!",
	})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if exec.ID == "" {
		t.Error("expected a generated execution ID")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	exec, err = runner.Wait(ctx, exec.ID)
	if err != nil {
		t.Fatalf("wait: %v", err)
	}
	if exec.Status != StatusCompleted {
		t.Errorf("expected completed, got %s", exec.Status)
	}
	if len(exec.SentTo) != 3 {
		t.Errorf("expected 3 recipients, got %v", exec.SentTo)
	}
	if d.content != "Promoção de queijos até sexta!" {
		t.Errorf("content not forwarded: %q", d.content)
	}
}

func TestRunner_TargetedCustomers(t *testing.T) {
	d := &testDispatcher{}
	runner := NewRunner(d)

	exec, err := runner.Start(context.Background(), &Definition{
		ID:          "targeted",
		Content:     "só para vocês",
		CustomerIDs: []int{4, 8},
	})
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	exec, _ = runner.Wait(ctx, exec.ID)
	if exec.Status != StatusCompleted {
		t.Fatalf("expected completed, got %s", exec.Status)
	}
	if len(d.customers) != 2 || d.customers[0] != 4 {
		t.Errorf("customer targeting not forwarded: %v", d.customers)
	}
}

func TestRunner_DispatchFailure(t *testing.T) {
	d := &testDispatcher{fail: true}
	runner := NewRunner(d)

	exec, err := runner.Start(context.Background(), &Definition{ID: "boom", Content: "x"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	exec, _ = runner.Wait(ctx, exec.ID)
	if exec.Status != StatusFailed {
		t.Errorf("expected failed, got %s", exec.Status)
	}
	if exec.Error == "" {
		t.Error("expected the dispatch error recorded")
	}
}

func TestRunner_StopCancels(t *testing.T) {
	d := &testDispatcher{delay: 500 * time.Millisecond}
	runner := NewRunner(d)

	exec, err := runner.Start(context.Background(), &Definition{ID: "killable", Content: "x"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	time.Sleep(50 * time.Millisecond)
	if err := runner.Stop("killable"); err != nil {
		t.Fatalf("stop: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	exec, _ = runner.Wait(ctx, exec.ID)
	if exec.Status != StatusCanceled {
		t.Errorf("expected canceled, got %s", exec.Status)
	}
}

func TestRunner_ScheduledDispatchWaits(t *testing.T) {
	d := &testDispatcher{}
	runner := NewRunner(d)

	// New Year's midnight: the next tick is far away, so the broadcast
	// must stay pending and cancel cleanly.
	exec, err := runner.Start(context.Background(), &Definition{
		ID:      "scheduled",
		Content: "encarte agendado",
		Cron:    "0 0 1 1 *",
	})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if exec.ScheduledFor.IsZero() {
		t.Error("expected a scheduled time")
	}

	time.Sleep(50 * time.Millisecond)
	got, _ := runner.GetStatus("scheduled")
	if got.Status != StatusPending {
		t.Errorf("expected pending until the tick, got %s", got.Status)
	}
	if d.calls != 0 {
		t.Error("dispatch must not fire before the scheduled time")
	}

	if err := runner.Stop("scheduled"); err != nil {
		t.Fatalf("stop: %v", err)
	}
}

func TestRunner_InvalidCron(t *testing.T) {
	runner := NewRunner(&testDispatcher{})
	_, err := runner.Start(context.Background(), &Definition{Content: "x", Cron: "not a cron"})
	if err == nil {
		t.Error("expected error for invalid cron expression")
	}
}

func TestRunner_EmptyDefinition(t *testing.T) {
	runner := NewRunner(&testDispatcher{})

	if _, err := runner.Start(context.Background(), nil); err == nil {
		t.Error("expected error for nil definition")
	}
	if _, err := runner.Start(context.Background(), &Definition{ID: "empty"}); err == nil {
		t.Error("expected error for definition without content or file")
	}
}

func TestRunner_DuplicateID(t *testing.T) {
	d := &testDispatcher{delay: 200 * time.Millisecond}
	runner := NewRunner(d)

	def := &Definition{ID: "dup", Content: "x"}
	if _, err := runner.Start(context.Background(), def); err != nil {
		t.Fatalf("first start: %v", err)
	}
	if _, err := runner.Start(context.Background(), def); err == nil {
		t.Error("expected error for duplicate broadcast ID")
	}
}

func TestRunner_ListExecutions(t *testing.T) {
	runner := NewRunner(&testDispatcher{})

	for i := 0; i < 3; i++ {
		_, err := runner.Start(context.Background(), &Definition{
			ID:      fmt.Sprintf("list-%d", i),
			Content: "x",
		})
		if err != nil {
			t.Fatalf("start %d: %v", i, err)
		}
	}

	time.Sleep(200 * time.Millisecond)

	if got := runner.ListExecutions(); len(got) != 3 {
		t.Errorf("expected 3 executions, got %d", len(got))
	}
}
