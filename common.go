package gather

// Outcome represents the completion of one task: a value or an error, tagged
// with the task's declaration index. It's the message type carried by slot
// channels and the merged completion stream.
type Outcome[T any] struct {
	Value T     // The value produced on success
	Err   error // The error produced on failure
	Index int   // Declaration index of the owning task
}

// Failed reports whether this outcome records a task failure.
func (o Outcome[T]) Failed() bool {
	return o.Err != nil
}
