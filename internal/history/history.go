// Package history keeps the bounded stack of surface snapshots used for undo.
package history

import "github.com/example/rasterpaint/internal/surface"

// DefaultDepth is the number of snapshots kept when no depth is configured.
const DefaultDepth = 20

// Stack is a bounded LIFO of snapshots. When a push would exceed the depth
// the oldest snapshot is dropped. The stack is never empty: it starts with a
// seed snapshot and Pop refuses to remove the last entry.
type Stack struct {
	depth int
	snaps []*surface.Surface
}

// New returns a stack holding seed as its only entry. A depth below one is
// raised to one.
func New(depth int, seed *surface.Surface) *Stack {
	if depth < 1 {
		depth = 1
	}
	return &Stack{depth: depth, snaps: []*surface.Surface{seed}}
}

// Depth returns the maximum number of retained snapshots.
func (s *Stack) Depth() int { return s.depth }

// Len returns the number of retained snapshots.
func (s *Stack) Len() int { return len(s.snaps) }

// Push appends snap, evicting the oldest entry when the stack is full.
func (s *Stack) Push(snap *surface.Surface) {
	s.snaps = append(s.snaps, snap)
	if len(s.snaps) > s.depth {
		s.snaps[0] = nil
		s.snaps = s.snaps[1:]
	}
}

// Pop discards the newest snapshot and returns the one now on top. It
// returns false and leaves the stack unchanged when only one entry remains.
func (s *Stack) Pop() (*surface.Surface, bool) {
	n := len(s.snaps)
	if n <= 1 {
		return nil, false
	}
	s.snaps[n-1] = nil
	s.snaps = s.snaps[:n-1]
	return s.snaps[n-2], true
}

// Top returns the newest snapshot.
func (s *Stack) Top() *surface.Surface {
	return s.snaps[len(s.snaps)-1]
}

// Reset drops every snapshot and reseeds the stack.
func (s *Stack) Reset(seed *surface.Surface) {
	for i := range s.snaps {
		s.snaps[i] = nil
	}
	s.snaps = append(s.snaps[:0], seed)
}
