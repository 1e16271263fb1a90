package pages

import "sync/atomic"

// Sequencer hands out fetch tokens. Only the most recently issued token is
// current, so a response that completes after a newer fetch began is stale.
type Sequencer struct {
	n atomic.Uint64
}

// Begin issues a new token, making every earlier token stale.
func (s *Sequencer) Begin() uint64 {
	return s.n.Add(1)
}

// Current reports whether token is the latest one issued.
func (s *Sequencer) Current(token uint64) bool {
	return s.n.Load() == token
}
