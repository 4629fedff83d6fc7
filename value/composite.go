package value

import (
	"fmt"

	"github.com/kelbyrg/sbs/internal/errs"
)

// List is an ordered, mutable composite.
type List []Value

func (List) sbsValue() {}

// Tuple is an ordered, immutable composite.
type Tuple []Value

func (Tuple) sbsValue() {}

// Deque is an ordered, double-ended composite.
type Deque []Value

func (Deque) sbsValue() {}

// Set is an unordered composite. Its element order on the wire is
// whatever order the producer iterated in; per spec §3/§9 Open Question
// 4, cross-language round-trip equality for Set/FrozenSet is defined
// modulo element order, so consumers must compare these as sets.
type Set []Value

func (Set) sbsValue() {}

// FrozenSet is Set's immutable counterpart; same ordering caveat applies.
type FrozenSet []Value

func (FrozenSet) sbsValue() {}

// Pair is one key/value entry of a Dict, in traversal order.
type Pair struct {
	Key Value
	Val Value
}

// Dict is an ordered mapping composite. Pairs are emitted and decoded in
// traversal order (spec §3: "Dict/Counter emit each key-value pair in
// traversal order; duplicate keys are impossible by source-value
// construction").
type Dict []Pair

func (Dict) sbsValue() {}

// CounterPair is one key/count entry of a Counter.
type CounterPair struct {
	Key   Value
	Count Int
}

// Counter is Dict's integer-valued counterpart. Per spec §4.1/§9 Open
// Question 5, the encoder forces every count through the Int path; a
// non-Int count is rejected at construction time here rather than
// silently coerced or dropped, since a typed Go constructor has no
// "silent" failure mode to fall back on.
type Counter []CounterPair

func (Counter) sbsValue() {}

// NamedField is one (name, value) field of a NamedTuple.
type NamedField struct {
	Name  string
	Value Value
}

// NamedTuple is an ordered composite carrying its own type name and named
// fields (spec §3/§4.1).
type NamedTuple struct {
	TypeName string
	Fields   []NamedField
}

func (NamedTuple) sbsValue() {}

// NewCounter validates that every count is representable, returning
// errs.ErrIncorrect if any entry's Count carries a nil big.Int.
func NewCounter(pairs ...CounterPair) (Counter, error) {
	for i, p := range pairs {
		if p.Count.V == nil {
			return nil, fmt.Errorf("counter entry %d: %w: nil Int count", i, errs.ErrIncorrect)
		}
	}

	return Counter(pairs), nil
}
