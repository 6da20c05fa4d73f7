package assistant

import "errors"

// GateState is the confirmation gate's current phase
type GateState int

const (
	// GateIdle means no action is pending
	GateIdle GateState = iota
	// GateProposed means one action awaits operator confirmation
	GateProposed
	// GateExecuting means a confirmed action is in flight
	GateExecuting
)

var (
	// ErrNoPending is returned when confirm or cancel is called with nothing pending
	ErrNoPending = errors.New("no action is pending")
	// ErrExecuting is returned when a transition is attempted mid-execution
	ErrExecuting = errors.New("an action is already executing")
)

// PendingAction is the single proposed action held by the gate: the exact
// name/arguments captured at proposal time plus its preview and optional
// server signature. Confirming sends these captured values, never a
// re-derived copy.
type PendingAction struct {
	ID        string
	Action    Action
	Preview   string
	Signature string
}

// Gate is the client-held checkpoint between proposal and execution. It
// stores at most one pending action and blocks execution until the operator
// confirms or cancels. It is driven from a single UI loop and is not safe
// for concurrent use.
type Gate struct {
	state   GateState
	pending *PendingAction
}

// NewGate creates an idle gate
func NewGate() *Gate {
	return &Gate{state: GateIdle}
}

// State returns the gate's current phase
func (g *Gate) State() GateState {
	return g.state
}

// Pending returns the action awaiting confirmation, if any
func (g *Gate) Pending() *PendingAction {
	return g.pending
}

// Propose stores a new pending action, discarding any previous one. Only the
// newest proposal is confirmable. Returns true if an older pending action was
// discarded.
func (g *Gate) Propose(p PendingAction) (bool, error) {
	if g.state == GateExecuting {
		return false, ErrExecuting
	}
	discarded := g.state == GateProposed
	g.pending = &p
	g.state = GateProposed
	return discarded, nil
}

// Confirm moves the gate to executing and returns the captured pending
// action. The caller sends exactly these bytes to the server.
func (g *Gate) Confirm() (*PendingAction, error) {
	switch g.state {
	case GateIdle:
		return nil, ErrNoPending
	case GateExecuting:
		return nil, ErrExecuting
	}
	g.state = GateExecuting
	return g.pending, nil
}

// Cancel discards the pending action without any network call and re-arms
// the gate.
func (g *Gate) Cancel() error {
	switch g.state {
	case GateIdle:
		return ErrNoPending
	case GateExecuting:
		return ErrExecuting
	}
	g.pending = nil
	g.state = GateIdle
	return nil
}

// Finish records the completion (success or failure) of the executing action
// and re-arms the gate so a new message can propose immediately.
func (g *Gate) Finish() error {
	if g.state != GateExecuting {
		return ErrNoPending
	}
	g.pending = nil
	g.state = GateIdle
	return nil
}
