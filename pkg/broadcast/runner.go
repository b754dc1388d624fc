// Package broadcast dispatches encarte campaigns to the backend.
//
// A broadcast posts one promotional message, optionally with a flyer file,
// to every customer or to a targeted list. Dispatches can fire immediately
// or wait for the next tick of a cron expression.
package broadcast

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/adhocore/gronx"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/3afrios/friosdesk/pkg/api"
)

// Status represents the current state of a broadcast.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusCanceled  Status = "canceled"
)

// Definition describes one encarte broadcast.
type Definition struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Content     string `json:"content"`
	FilePath    string `json:"file_path,omitempty"`
	CustomerIDs []int  `json:"customer_ids,omitempty"`
	// Cron delays the dispatch to the expression's next tick. Empty means
	// send now.
	Cron string `json:"cron,omitempty"`
}

// Execution tracks the runtime state of a broadcast.
type Execution struct {
	ID           string
	Definition   *Definition
	Status       Status
	ScheduledFor time.Time
	StartTime    time.Time
	EndTime      time.Time
	SentTo       []int
	Error        string
}

// Dispatcher delivers the broadcast. *api.Client satisfies it.
type Dispatcher interface {
	BroadcastEncarte(ctx context.Context, content, filePath string, customerIDs []int) (*api.BroadcastResult, error)
}

// Runner executes broadcasts against the backend.
type Runner struct {
	mu         sync.RWMutex
	dispatcher Dispatcher
	executions map[string]*Execution
	cancel     map[string]context.CancelFunc
}

// NewRunner creates a broadcast runner on top of the given dispatcher.
func NewRunner(dispatcher Dispatcher) *Runner {
	return &Runner{
		dispatcher: dispatcher,
		executions: make(map[string]*Execution),
		cancel:     make(map[string]context.CancelFunc),
	}
}

// Start begins executing a broadcast asynchronously. A missing ID gets a
// generated one; the returned execution can be polled via GetStatus.
func (r *Runner) Start(ctx context.Context, def *Definition) (*Execution, error) {
	if def == nil {
		return nil, fmt.Errorf("broadcast definition is nil")
	}
	if def.Content == "" && def.FilePath == "" {
		return nil, fmt.Errorf("broadcast needs content or a file")
	}
	if def.ID == "" {
		def.ID = uuid.NewString()
	}

	var scheduledFor time.Time
	if def.Cron != "" {
		if !gronx.New().IsValid(def.Cron) {
			return nil, fmt.Errorf("invalid cron expression %q", def.Cron)
		}
		next, err := gronx.NextTick(def.Cron, false)
		if err != nil {
			return nil, fmt.Errorf("compute next tick for %q: %w", def.Cron, err)
		}
		scheduledFor = next
	}

	r.mu.Lock()
	if _, exists := r.executions[def.ID]; exists {
		r.mu.Unlock()
		return nil, fmt.Errorf("broadcast %q is already registered", def.ID)
	}

	exec := &Execution{
		ID:           def.ID,
		Definition:   def,
		Status:       StatusPending,
		ScheduledFor: scheduledFor,
	}
	r.executions[def.ID] = exec

	execCtx, cancelFn := context.WithCancel(ctx)
	r.cancel[def.ID] = cancelFn
	r.mu.Unlock()

	go r.run(execCtx, exec)

	return exec, nil
}

// Stop cancels a pending or running broadcast.
func (r *Runner) Stop(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	exec, ok := r.executions[id]
	if !ok {
		return fmt.Errorf("broadcast %q not found", id)
	}
	if exec.Status != StatusPending && exec.Status != StatusRunning {
		return fmt.Errorf("broadcast %q is not active (status: %s)", id, exec.Status)
	}

	exec.Status = StatusCanceled
	exec.EndTime = time.Now()

	if cancel, ok := r.cancel[id]; ok {
		cancel()
		delete(r.cancel, id)
	}

	log.Info().Str("broadcast_id", id).Msg("Broadcast canceled")
	return nil
}

// GetStatus returns the current execution state of a broadcast.
func (r *Runner) GetStatus(id string) (*Execution, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exec, ok := r.executions[id]
	if !ok {
		return nil, fmt.Errorf("broadcast %q not found", id)
	}
	return exec, nil
}

// ListExecutions returns all known broadcast executions.
func (r *Runner) ListExecutions() []*Execution {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Execution, 0, len(r.executions))
	for _, exec := range r.executions {
		result = append(result, exec)
	}
	return result
}

// Wait blocks until the broadcast reaches a terminal state or the context
// ends. Useful for the one-shot CLI path.
func (r *Runner) Wait(ctx context.Context, id string) (*Execution, error) {
	for {
		exec, err := r.GetStatus(id)
		if err != nil {
			return nil, err
		}

		r.mu.RLock()
		status := exec.Status
		r.mu.RUnlock()

		switch status {
		case StatusCompleted, StatusFailed, StatusCanceled:
			return exec, nil
		}

		select {
		case <-ctx.Done():
			return exec, ctx.Err()
		case <-time.After(50 * time.Millisecond):
		}
	}
}

func (r *Runner) run(ctx context.Context, exec *Execution) {
	defer func() {
		r.mu.Lock()
		delete(r.cancel, exec.ID)
		r.mu.Unlock()
	}()

	if !exec.ScheduledFor.IsZero() {
		wait := time.Until(exec.ScheduledFor)
		log.Info().Str("broadcast_id", exec.ID).Time("scheduled_for", exec.ScheduledFor).Msg("Broadcast waiting for schedule")
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			r.finish(exec, StatusCanceled, ctx.Err().Error())
			return
		}
	}

	r.mu.Lock()
	if exec.Status != StatusPending {
		r.mu.Unlock()
		return
	}
	exec.Status = StatusRunning
	exec.StartTime = time.Now()
	def := exec.Definition
	r.mu.Unlock()

	log.Info().
		Str("broadcast_id", exec.ID).
		Int("targets", len(def.CustomerIDs)).
		Msg("Dispatching encarte broadcast")

	result, err := r.dispatcher.BroadcastEncarte(ctx, def.Content, def.FilePath, def.CustomerIDs)
	if err != nil {
		if ctx.Err() != nil {
			r.finish(exec, StatusCanceled, ctx.Err().Error())
			return
		}
		r.finish(exec, StatusFailed, err.Error())
		return
	}

	r.mu.Lock()
	exec.SentTo = result.SentTo
	exec.Status = StatusCompleted
	exec.EndTime = time.Now()
	r.mu.Unlock()

	log.Info().
		Str("broadcast_id", exec.ID).
		Int("sent_to", len(result.SentTo)).
		Msg("Broadcast completed")
}

func (r *Runner) finish(exec *Execution, status Status, errMsg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if exec.Status == StatusCanceled && status != StatusCanceled {
		return
	}
	exec.Status = status
	exec.Error = errMsg
	exec.EndTime = time.Now()
}
