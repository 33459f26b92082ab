package types

// TaskID names one task in the set. IDs are assigned at startup and never
// reused; the zero value means "no task".
type TaskID string

func (t TaskID) String() string { return string(t) }
