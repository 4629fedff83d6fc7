package value

// Equal reports whether a and b represent the same value, per spec §8
// Testable Property 1 ("decode(encode(v)) == v"): structurally equal
// except Set/FrozenSet element order, which is never normalized (spec §3,
// §9 Open Question 4) and so is compared as a multiset.
func Equal(a, b Value) bool {
	ka, ok := KindOf(a)
	if !ok {
		return false
	}
	kb, ok := KindOf(b)
	if !ok || ka != kb {
		return false
	}

	switch av := a.(type) {
	case Str:
		return av == b.(Str)
	case Int:
		bv := b.(Int)
		if av.V == nil || bv.V == nil {
			return av.V == bv.V
		}
		return av.V.Cmp(bv.V) == 0
	case Float:
		return av == b.(Float)
	case Bool:
		return av == b.(Bool)
	case Complex:
		bv := b.(Complex)
		return av.Re == bv.Re && av.Im == bv.Im
	case None:
		return true
	case Ellipsis:
		return true
	case Bytes:
		return bytesEqual(av, b.(Bytes))
	case ByteArray:
		return bytesEqual(av, b.(ByteArray))
	case MemoryView:
		return bytesEqual(av, b.(MemoryView))
	case Decimal:
		return av == b.(Decimal)
	case UUID:
		return av == b.(UUID)
	case DateTime:
		return av.T.Equal(b.(DateTime).T)
	case Date:
		return av.T.Equal(b.(Date).T)
	case Time:
		return av.T.Equal(b.(Time).T)
	case TimeDelta:
		bv := b.(TimeDelta)
		return av.Days == bv.Days && av.Seconds == bv.Seconds && av.Micros == bv.Micros
	case Range:
		bv := b.(Range)
		return Equal(av.Start, bv.Start) && Equal(av.Stop, bv.Stop) && Equal(av.Step, bv.Step)
	case List:
		return sequenceEqual(av, b.(List))
	case Tuple:
		return sequenceEqual(av, b.(Tuple))
	case Deque:
		return sequenceEqual(av, b.(Deque))
	case Set:
		return multisetEqual(av, b.(Set))
	case FrozenSet:
		return multisetEqual(av, b.(FrozenSet))
	case Dict:
		return dictEqual(av, b.(Dict))
	case Counter:
		return counterEqual(av, b.(Counter))
	case NamedTuple:
		return namedTupleEqual(av, b.(NamedTuple))
	default:
		return false
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

func sequenceEqual(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}

	return true
}

// multisetEqual compares two Set/FrozenSet element slices ignoring order,
// matching each element of a against an unused element of b.
func multisetEqual(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}

	used := make([]bool, len(b))
	for _, av := range a {
		found := false
		for j, bv := range b {
			if used[j] {
				continue
			}
			if Equal(av, bv) {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

func dictEqual(a, b Dict) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i].Key, b[i].Key) || !Equal(a[i].Val, b[i].Val) {
			return false
		}
	}

	return true
}

func counterEqual(a, b Counter) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i].Key, b[i].Key) || !Equal(a[i].Count, b[i].Count) {
			return false
		}
	}

	return true
}

func namedTupleEqual(a, b NamedTuple) bool {
	if a.TypeName != b.TypeName || len(a.Fields) != len(b.Fields) {
		return false
	}
	for i := range a.Fields {
		if a.Fields[i].Name != b.Fields[i].Name || !Equal(a.Fields[i].Value, b.Fields[i].Value) {
			return false
		}
	}

	return true
}
