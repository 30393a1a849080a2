package model

// ProcessingPhase discriminates the three variants of OrderProcessingState:
// Pending, Completed(Order) or Failed(reason).
type ProcessingPhase string

const (
	PhasePending   ProcessingPhase = "pending"
	PhaseCompleted ProcessingPhase = "completed"
	PhaseFailed    ProcessingPhase = "failed"
)

// OrderProcessingState is the in-memory, volatile status-store entry.
// Inserted as Pending by the Admission Handler before enqueue; mutated
// exactly once to a terminal variant by the Queue Worker; never deleted
// during the process lifetime.
type OrderProcessingState struct {
	Phase  ProcessingPhase
	Order  *Order // set only when Phase == PhaseCompleted
	Reason string // set only when Phase == PhaseFailed
}

// Pending constructs the initial state recorded by admission.
func Pending() OrderProcessingState {
	return OrderProcessingState{Phase: PhasePending}
}

// Completed constructs the terminal success state recorded by the worker.
func Completed(order *Order) OrderProcessingState {
	return OrderProcessingState{Phase: PhaseCompleted, Order: order}
}

// Failed constructs the terminal failure state recorded by the worker.
func Failed(reason string) OrderProcessingState {
	return OrderProcessingState{Phase: PhaseFailed, Reason: reason}
}

// IsTerminal reports whether no further transition is permitted.
func (s OrderProcessingState) IsTerminal() bool {
	return s.Phase == PhaseCompleted || s.Phase == PhaseFailed
}
