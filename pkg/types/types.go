// Package types implements the partial-type arena described by the type
// store component: a union-find-style store of in-progress types that is
// read back into a closed, printable Type once the net graph has drained
// every equation.
package types

import "fmt"

// Handle indexes a slot in a Store's arena. Callers only ever obtain
// Handles from Store.New; the first one a Store hands out is 0.
type Handle int

type kind int

const (
	kindFree kind = iota
	kindIndirect
	kindArrow
	kindCloneable
	kindUncloneable
	kindUnsafe
)

type partial struct {
	kind kind
	a, b Handle
	slot int // assigned by AssignFreeVars; -1 until numbered
}

// Store is a non-generational arena of partial types. Unlike the net
// graph's edges, type handles are never freed or reused, so there is no
// staleness to guard against and no reuse to track.
type Store struct {
	arena []partial
}

// NewStore returns an empty type arena.
func NewStore() *Store {
	return &Store{}
}

// New allocates a fresh, as yet unconstrained Free slot.
func (s *Store) New() Handle {
	s.arena = append(s.arena, partial{kind: kindFree, slot: -1})
	return Handle(len(s.arena) - 1)
}

// Union makes h an Indirect pointer to target, the union-find "link" step.
func (s *Store) Union(h, target Handle) {
	s.arena[h] = partial{kind: kindIndirect, a: target}
}

// SetArrow resolves h to Arrow(a, b).
func (s *Store) SetArrow(h, a, b Handle) {
	s.arena[h] = partial{kind: kindArrow, a: a, b: b}
}

// SetCloneable resolves h to Cloneable(a).
func (s *Store) SetCloneable(h, a Handle) {
	s.arena[h] = partial{kind: kindCloneable, a: a}
}

// SetUncloneable resolves h to Uncloneable(a).
func (s *Store) SetUncloneable(h, a Handle) {
	s.arena[h] = partial{kind: kindUncloneable, a: a}
}

// SetUnsafe resolves h to Unsafe(a).
func (s *Store) SetUnsafe(h, a Handle) {
	s.arena[h] = partial{kind: kindUnsafe, a: a}
}

// AssignFreeVars numbers every still-Free slot in ascending arena order,
// deterministically, so that Read can render them as Var(i).
func (s *Store) AssignFreeVars() {
	next := 0
	for i := range s.arena {
		if s.arena[i].kind == kindFree && s.arena[i].slot < 0 {
			s.arena[i].slot = next
			next++
		}
	}
}

// Type is a closed, printable type: Arrow, Cloneable, Uncloneable, Unsafe,
// or Var(i). It is produced only by Read, after AssignFreeVars.
type Type interface {
	fmt.Stringer
	isType()
}

// Arrow is a function type a -> b.
type Arrow struct{ A, B Type }

// Cloneable marks a type as safely duplicable ('!').
type Cloneable struct{ A Type }

// Uncloneable marks a type as not duplicable ('?').
type Uncloneable struct{ A Type }

// Unsafe marks a type produced by mixing affine and non-affine use ('#').
type Unsafe struct{ A Type }

// Var is a closed type variable, numbered by AssignFreeVars.
type Var struct{ Index int }

func (Arrow) isType()       {}
func (Cloneable) isType()   {}
func (Uncloneable) isType() {}
func (Unsafe) isType()      {}
func (Var) isType()         {}

func (a Arrow) String() string       { return fmt.Sprintf("(%s->%s)", a.A, a.B) }
func (c Cloneable) String() string   { return "!" + c.A.String() }
func (u Uncloneable) String() string { return "?" + u.A.String() }
func (u Unsafe) String() string      { return "#" + u.A.String() }
func (v Var) String() string         { return varName(v.Index) }

// varName renders i as a base-26 upper-case name: 0->A, 1->B, ..., 25->Z,
// 26->AA, 27->AB, and so on.
func varName(i int) string {
	var buf []byte
	for {
		buf = append([]byte{byte('A' + i%26)}, buf...)
		i = i/26 - 1
		if i < 0 {
			break
		}
	}
	return string(buf)
}

// Read follows Indirect chains (T1: guaranteed to terminate, since Union
// only ever points a handle at a strictly more-resolved one) and renders
// the closed Type rooted at h. Read must only be called after
// AssignFreeVars, so that every remaining Free slot has a slot number.
func (s *Store) Read(h Handle) Type {
	p := s.arena[h]
	switch p.kind {
	case kindIndirect:
		return s.Read(p.a)
	case kindFree:
		if p.slot < 0 {
			panic("types: Read called on an unnumbered Free handle; call AssignFreeVars first")
		}
		return Var{Index: p.slot}
	case kindArrow:
		return Arrow{A: s.Read(p.a), B: s.Read(p.b)}
	case kindCloneable:
		return Cloneable{A: s.Read(p.a)}
	case kindUncloneable:
		return Uncloneable{A: s.Read(p.a)}
	case kindUnsafe:
		return Unsafe{A: s.Read(p.a)}
	default:
		panic("types: corrupt partial-type slot")
	}
}
