package cspy

// SearchPosition is a snapshot of the search at the moment a candidate
// value is rejected: the assignments made so far and the constraint
// arcs the candidate could not satisfy.
type SearchPosition interface {
	Assignment() Assignment
	Conflicts() []Arc
}

// Tracer receives a SearchPosition each time the engine rejects a
// candidate value. The position is only valid for the duration of the
// call; implementations that retain it must copy what they need.
type Tracer interface {
	Trace(p SearchPosition)
}
