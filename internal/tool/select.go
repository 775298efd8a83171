package tool

import "github.com/example/sketchpad/internal/shape"

// Select picks the topmost visible shape under the pointer.
type Select struct {
	host Host
}

func (s *Select) Kind() Kind { return KindSelect }

func (s *Select) PointerDown(p shape.Point) {
	if hit := s.host.HitTest(p); hit != nil {
		s.host.Select(hit.ID())
		return
	}
	s.host.Select("")
}

func (s *Select) PointerMove(shape.Point) {}
func (s *Select) PointerUp(shape.Point) {}
func (s *Select) DoubleClick() {}
func (s *Select) Cancel() {}
func (s *Select) Drawing() bool { return false }
