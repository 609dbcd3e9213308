package scene

import "github.com/gogpu/sceneview"

// BranchStack is the LIFO of inherited branch states built during
// depth-first traversal. It always contains at least the root entry pushed
// at construction; popping past the root is a programming error and panics.
//
// The stack is exclusively owned by one traversal on one goroutine.
type BranchStack struct {
	states []BranchState
}

// NewBranchStack creates a stack holding the given root state.
func NewBranchStack(root BranchState) *BranchStack {
	s := &BranchStack{states: make([]BranchState, 0, 8)}
	s.states = append(s.states, root)
	return s
}

// Depth returns the number of states on the stack (always >= 1).
func (s *BranchStack) Depth() int { return len(s.states) }

// Top returns the current state.
func (s *BranchStack) Top() *BranchState { return &s.states[len(s.states)-1] }

// Bottom returns the root state.
func (s *BranchStack) Bottom() *BranchState { return &s.states[0] }

// Push derives a new state from Top and the branch's own transform and
// overrides, and pushes it.
func (s *BranchStack) Push(b *Branch) {
	s.states = append(s.states, derive(s.Top(), b))
}

// PushExplicit pushes a caller-built state without derivation.
func (s *BranchStack) PushExplicit(state BranchState) {
	s.states = append(s.states, state)
}

// Pop removes the top state. Popping the root entry panics.
func (s *BranchStack) Pop() {
	if len(s.states) <= 1 {
		panic("scene: BranchStack.Pop would empty the stack below its root entry")
	}
	s.states = s.states[:len(s.states)-1]
}

// SetRootViewFlags replaces the root state's view flags. Permitted only
// while the stack holds exactly the root entry, i.e. before any branch has
// been pushed; it models one-time scene setup.
func (s *BranchStack) SetRootViewFlags(vf sceneview.ViewFlags) {
	if len(s.states) != 1 {
		panic("scene: SetRootViewFlags after branches were pushed")
	}
	s.states[0].ViewFlags = vf
}

// SetRootPolicy replaces the root state's symbology policy, under the same
// root-only restriction as SetRootViewFlags.
func (s *BranchStack) SetRootPolicy(p sceneview.OverridePolicy) {
	if len(s.states) != 1 {
		panic("scene: SetRootPolicy after branches were pushed")
	}
	s.states[0].Policy = p
}
