package order

// Forward-only, single-step lifecycle. No backward moves, no skipping.
var validNext = map[Status]Status{
	StatusProcessing:     StatusOutForDelivery,
	StatusOutForDelivery: StatusDelivered,
}

// CanTransition reports whether to is the single valid successor of from.
func CanTransition(from, to Status) bool {
	next, ok := validNext[from]
	return ok && next == to
}

// NextStatus returns the successor of from, if it has one. Delivered is
// terminal.
func NextStatus(from Status) (Status, bool) {
	next, ok := validNext[from]
	return next, ok
}
