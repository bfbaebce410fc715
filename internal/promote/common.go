package promote

import (
	"github.com/quartzdb/dtype/internal/dtype"
)

// FindCommonType joins a non-empty list of descriptors to their least
// upper bound in the promotion lattice.
//
// Extension types are consulted in order through their common-type
// capability; the first non-nil answer wins. All-instant and all-duration
// lists collapse to the canonical nanosecond resolution. Booleans mixed
// with any numeric kind join to object; the n-ary join is stricter here
// than the pairwise widening table. Everything else falls back to
// kind-preserving numeric widening.
func FindCommonType(types []dtype.Descriptor) (dtype.Descriptor, error) {
	if len(types) == 0 {
		return dtype.Descriptor{}, dtype.NewConfigurationError("no types given")
	}

	first := types[0]
	same := true
	for _, t := range types[1:] {
		if !first.Equal(t) {
			same = false
			break
		}
	}
	if same {
		return first, nil
	}

	types = dedupe(types)

	hasExt := false
	for _, t := range types {
		if t.Kind == dtype.KindExtension {
			hasExt = true
			break
		}
	}
	if hasExt {
		for _, t := range types {
			if t.Kind != dtype.KindExtension || t.Ext == nil {
				continue
			}
			if joined, ok := t.Ext.CommonWith(types); ok {
				return joined, nil
			}
		}
		return dtype.ObjectType(), nil
	}

	if allKind(types, dtype.KindInstant) {
		// Mixed aware/naive or cross-zone instants have no temporal join;
		// only a uniform zone survives the collapse to nanoseconds.
		zone := types[0].Zone
		for _, t := range types[1:] {
			if t.Zone != zone {
				return dtype.ObjectType(), nil
			}
		}
		if zone != "" {
			return dtype.ZonedInstantType(dtype.UnitNano, zone), nil
		}
		return dtype.InstantType(dtype.UnitNano), nil
	}
	if allKind(types, dtype.KindDuration) {
		return dtype.DurationType(dtype.UnitNano), nil
	}

	// Bool never joins with a numeric kind, unlike conventional widening
	// which would quietly treat it as an integer.
	hasBool := false
	for _, t := range types {
		if t.Kind == dtype.KindBool {
			hasBool = true
			break
		}
	}
	if hasBool {
		for _, t := range types {
			if t.Kind.IsNumeric() {
				return dtype.ObjectType(), nil
			}
		}
	}

	out := types[0]
	for _, t := range types[1:] {
		out = PromoteNumeric(out, t)
	}
	return out, nil
}

// dedupe removes duplicates preserving first occurrence.
func dedupe(types []dtype.Descriptor) []dtype.Descriptor {
	out := make([]dtype.Descriptor, 0, len(types))
	for _, t := range types {
		dup := false
		for _, seen := range out {
			if seen.Equal(t) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, t)
		}
	}
	return out
}

func allKind(types []dtype.Descriptor, k dtype.Kind) bool {
	for _, t := range types {
		if t.Kind != k {
			return false
		}
	}
	return true
}

// PromoteNumeric is the conventional pairwise widening table over
// bool < int < float < complex, by increasing width. Pairs outside the
// numeric lattice join to object.
func PromoteNumeric(a, b dtype.Descriptor) dtype.Descriptor {
	if a.Equal(b) {
		return a
	}

	// Bool is the bottom element for pairwise widening.
	if a.Kind == dtype.KindBool {
		if b.Kind.IsNumeric() || b.Kind == dtype.KindBool {
			return b
		}
		return dtype.ObjectType()
	}
	if b.Kind == dtype.KindBool {
		if a.Kind.IsNumeric() {
			return a
		}
		return dtype.ObjectType()
	}

	if !a.Kind.IsNumeric() || !b.Kind.IsNumeric() {
		return dtype.ObjectType()
	}

	if a.Kind == b.Kind {
		if b.Width > a.Width {
			return b
		}
		return a
	}

	switch pair(a.Kind, b.Kind) {
	case pair(dtype.KindInt, dtype.KindUint):
		return joinIntUint(a, b)
	case pair(dtype.KindUint, dtype.KindInt):
		return joinIntUint(b, a)
	case pair(dtype.KindInt, dtype.KindFloat):
		return joinIntFloat(a, b)
	case pair(dtype.KindFloat, dtype.KindInt):
		return joinIntFloat(b, a)
	case pair(dtype.KindUint, dtype.KindFloat):
		return joinIntFloat(a, b)
	case pair(dtype.KindFloat, dtype.KindUint):
		return joinIntFloat(b, a)
	case pair(dtype.KindInt, dtype.KindComplex), pair(dtype.KindUint, dtype.KindComplex):
		return joinComplex(joinIntFloat(a, dtype.Float32()), b)
	case pair(dtype.KindComplex, dtype.KindInt), pair(dtype.KindComplex, dtype.KindUint):
		return joinComplex(joinIntFloat(b, dtype.Float32()), a)
	case pair(dtype.KindFloat, dtype.KindComplex):
		return joinComplex(a, b)
	case pair(dtype.KindComplex, dtype.KindFloat):
		return joinComplex(b, a)
	}
	return dtype.ObjectType()
}

type kindPair struct{ a, b dtype.Kind }

func pair(a, b dtype.Kind) kindPair { return kindPair{a, b} }

// joinIntUint finds the smallest signed integer covering both ranges.
// A full 64-bit unsigned range has no signed cover and widens to float64.
func joinIntUint(i, u dtype.Descriptor) dtype.Descriptor {
	if u.Width == 64 {
		return dtype.Float64()
	}
	need := u.Width * 2
	if i.Width > need {
		need = i.Width
	}
	for _, w := range []int{8, 16, 32, 64} {
		if w >= need {
			return dtype.IntType(w)
		}
	}
	return dtype.Float64()
}

// joinIntFloat picks a float wide enough that the integer range fits the
// mantissa: 8/16-bit integers fit float32, wider ones need float64.
func joinIntFloat(i, f dtype.Descriptor) dtype.Descriptor {
	need := 32
	if i.Width > 16 {
		need = 64
	}
	if f.Width > need {
		need = f.Width
	}
	return dtype.FloatType(need)
}

// joinComplex widens a float into complex at matching component width.
func joinComplex(f, c dtype.Descriptor) dtype.Descriptor {
	need := 2 * f.Width
	if f.Kind == dtype.KindComplex {
		need = f.Width
	}
	if c.Width > need {
		need = c.Width
	}
	return dtype.ComplexType(need)
}
