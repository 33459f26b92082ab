package types

import "strconv"

// Priority is the static priority assigned to a task at creation and
// immutable afterwards. Lower numeric value denotes higher urgency. All
// arbitration code compares through MoreUrgent/MoreUrgentOrEqual so the
// sign convention lives in exactly one place.
type Priority int

// MoreUrgent reports whether p outranks q.
func (p Priority) MoreUrgent(q Priority) bool { return p < q }

// MoreUrgentOrEqual reports whether p outranks or ties q.
func (p Priority) MoreUrgentOrEqual(q Priority) bool { return p <= q }

func (p Priority) String() string { return "prio:" + strconv.Itoa(int(p)) }
