package chat

// Reconcile removes the optimistic entry identified by tempID and appends
// the server-confirmed entries, producing the next collection in one pass
// so the caller can swap it in a single state update (no duplicate flash).
func Reconcile(current []Message, tempID int64, confirmed []Message) []Message {
	next := make([]Message, 0, len(current)+len(confirmed))
	for _, m := range current {
		if m.ID != tempID {
			next = append(next, m)
		}
	}
	return append(next, confirmed...)
}

// Rollback drops the optimistic entry after a failed send.
func Rollback(current []Message, tempID int64) []Message {
	next := make([]Message, 0, len(current))
	for _, m := range current {
		if m.ID != tempID {
			next = append(next, m)
		}
	}
	return next
}
