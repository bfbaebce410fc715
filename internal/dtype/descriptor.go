package dtype

import (
	"fmt"
	"strconv"
	"strings"
)

// Descriptor describes the element representation and null strategy of a
// typed array. Descriptors are immutable value objects: they are created
// by the constructors below, by inference, or by promotion, and compared
// with Equal.
type Descriptor struct {
	// Kind selects the storage family.
	Kind Kind

	// Width is the bit width for bool/int/uint/float/complex kinds.
	// Complex widths count both components (64 or 128).
	Width int

	// Unit is the resolution of instant/duration kinds.
	Unit Unit

	// Zone is the IANA zone name of a zoned instant; empty means naive.
	Zone string

	// Ext is the capability implementation of an extension kind.
	Ext ExtensionType

	// Freq is the frequency tag of a period kind.
	Freq string

	// Elem is the subtype of an interval kind.
	Elem *Descriptor
}

// Numeric and boolean constructors.
func BoolType() Descriptor    { return Descriptor{Kind: KindBool, Width: 8} }
func Int8() Descriptor        { return Descriptor{Kind: KindInt, Width: 8} }
func Int16() Descriptor       { return Descriptor{Kind: KindInt, Width: 16} }
func Int32() Descriptor       { return Descriptor{Kind: KindInt, Width: 32} }
func Int64() Descriptor       { return Descriptor{Kind: KindInt, Width: 64} }
func Uint8() Descriptor       { return Descriptor{Kind: KindUint, Width: 8} }
func Uint16() Descriptor      { return Descriptor{Kind: KindUint, Width: 16} }
func Uint32() Descriptor      { return Descriptor{Kind: KindUint, Width: 32} }
func Uint64() Descriptor      { return Descriptor{Kind: KindUint, Width: 64} }
func Float32() Descriptor     { return Descriptor{Kind: KindFloat, Width: 32} }
func Float64() Descriptor     { return Descriptor{Kind: KindFloat, Width: 64} }
func Complex64() Descriptor   { return Descriptor{Kind: KindComplex, Width: 64} }
func Complex128() Descriptor  { return Descriptor{Kind: KindComplex, Width: 128} }
func ObjectType() Descriptor  { return Descriptor{Kind: KindObject} }

// IntType returns the signed integer descriptor of the given width.
func IntType(width int) Descriptor { return Descriptor{Kind: KindInt, Width: width} }

// UintType returns the unsigned integer descriptor of the given width.
func UintType(width int) Descriptor { return Descriptor{Kind: KindUint, Width: width} }

// FloatType returns the float descriptor of the given width.
func FloatType(width int) Descriptor { return Descriptor{Kind: KindFloat, Width: width} }

// ComplexType returns the complex descriptor of the given total width.
func ComplexType(width int) Descriptor { return Descriptor{Kind: KindComplex, Width: width} }

// InstantType returns a naive instant descriptor at the given resolution.
func InstantType(u Unit) Descriptor {
	return Descriptor{Kind: KindInstant, Width: 64, Unit: u}
}

// ZonedInstantType returns a zoned instant descriptor.
func ZonedInstantType(u Unit, zone string) Descriptor {
	return Descriptor{Kind: KindInstant, Width: 64, Unit: u, Zone: zone}
}

// DurationType returns a duration descriptor at the given resolution.
func DurationType(u Unit) Descriptor {
	return Descriptor{Kind: KindDuration, Width: 64, Unit: u}
}

// StringType returns a fixed-width string descriptor holding n runes.
func StringType(n int) Descriptor {
	return Descriptor{Kind: KindString, Width: n}
}

// ExtensionOf wraps an extension capability in a descriptor.
func ExtensionOf(ext ExtensionType) Descriptor {
	return Descriptor{Kind: KindExtension, Ext: ext}
}

// PeriodType returns a period descriptor with the given frequency tag.
func PeriodType(freq string) Descriptor {
	return Descriptor{Kind: KindPeriod, Freq: freq}
}

// IntervalType returns an interval descriptor over elem.
func IntervalType(elem Descriptor) Descriptor {
	return Descriptor{Kind: KindInterval, Elem: &elem}
}

// Equal reports whether two descriptors denote the same type. Extension
// descriptors compare by capability name.
func (d Descriptor) Equal(o Descriptor) bool {
	if d.Kind != o.Kind {
		return false
	}
	switch d.Kind {
	case KindInstant:
		return d.Unit == o.Unit && d.Zone == o.Zone
	case KindDuration:
		return d.Unit == o.Unit
	case KindExtension:
		return d.Ext != nil && o.Ext != nil && d.Ext.Name() == o.Ext.Name()
	case KindPeriod:
		return d.Freq == o.Freq
	case KindInterval:
		if d.Elem == nil || o.Elem == nil {
			return d.Elem == o.Elem
		}
		return d.Elem.Equal(*o.Elem)
	case KindObject:
		return true
	default:
		return d.Width == o.Width
	}
}

// IsObject reports whether d is the object fallback type.
func (d Descriptor) IsObject() bool { return d.Kind == KindObject }

// HasUnit reports whether a temporal descriptor carries a resolution.
// Non-temporal descriptors trivially have one.
func (d Descriptor) HasUnit() bool {
	if !d.Kind.IsTemporal() {
		return true
	}
	return d.Unit != UnitNone
}

// NullSentinel returns the scalar standing for "missing" under d, or
// (nil, false) for kinds with no in-band null representation.
func (d Descriptor) NullSentinel() (Scalar, bool) {
	switch d.Kind {
	case KindFloat, KindComplex:
		return NaN{}, true
	case KindInstant:
		return Instant{Unit: d.Unit, Count: NullCount, Zone: d.Zone}, true
	case KindDuration:
		return Duration{Unit: d.Unit, Count: NullCount}, true
	case KindObject:
		return Missing{}, true
	case KindExtension:
		if d.Ext != nil {
			return d.Ext.NullValue(), true
		}
		return Missing{}, true
	default:
		return nil, false
	}
}

// String renders a descriptor in the spelling Parse accepts.
func (d Descriptor) String() string {
	switch d.Kind {
	case KindBool:
		return "bool"
	case KindInt:
		return fmt.Sprintf("int%d", d.Width)
	case KindUint:
		return fmt.Sprintf("uint%d", d.Width)
	case KindFloat:
		return fmt.Sprintf("float%d", d.Width)
	case KindComplex:
		return fmt.Sprintf("complex%d", d.Width)
	case KindObject:
		return "object"
	case KindInstant:
		if d.Unit == UnitNone {
			return "instant"
		}
		if d.Zone != "" {
			return fmt.Sprintf("instant[%s, %s]", d.Unit, d.Zone)
		}
		return fmt.Sprintf("instant[%s]", d.Unit)
	case KindDuration:
		if d.Unit == UnitNone {
			return "duration"
		}
		return fmt.Sprintf("duration[%s]", d.Unit)
	case KindExtension:
		if d.Ext != nil {
			return d.Ext.Name()
		}
		return "extension"
	case KindPeriod:
		return fmt.Sprintf("period[%s]", d.Freq)
	case KindInterval:
		if d.Elem != nil {
			return fmt.Sprintf("interval[%s]", d.Elem.String())
		}
		return "interval"
	case KindString:
		return fmt.Sprintf("string%d", d.Width)
	}
	return string(d.Kind)
}

// Parse resolves a descriptor spelling such as "int32", "float64",
// "instant[ns]", "instant[us, UTC]" or "duration[ms]". It is the CLI
// boundary inverse of String; extension types are not parseable.
func Parse(s string) (Descriptor, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "bool":
		return BoolType(), nil
	case "object":
		return ObjectType(), nil
	case "instant", "duration":
		// Family named without a resolution. Callers decide whether that
		// is an error; arrays reject it.
		if s == "instant" {
			return Descriptor{Kind: KindInstant, Width: 64}, nil
		}
		return Descriptor{Kind: KindDuration, Width: 64}, nil
	}

	for _, p := range []struct {
		prefix string
		kind   Kind
		widths []int
	}{
		{"int", KindInt, []int{8, 16, 32, 64}},
		{"uint", KindUint, []int{8, 16, 32, 64}},
		{"float", KindFloat, []int{32, 64}},
		{"complex", KindComplex, []int{64, 128}},
	} {
		if !strings.HasPrefix(s, p.prefix) {
			continue
		}
		rest := strings.TrimPrefix(s, p.prefix)
		w, err := strconv.Atoi(rest)
		if err != nil {
			continue
		}
		for _, valid := range p.widths {
			if w == valid {
				return Descriptor{Kind: p.kind, Width: w}, nil
			}
		}
		return Descriptor{}, NewConfigurationError(fmt.Sprintf("invalid width %d for %s", w, p.prefix))
	}

	if rest, ok := bracketArg(s, "instant"); ok {
		parts := strings.SplitN(rest, ",", 2)
		u, err := parseUnit(strings.TrimSpace(parts[0]))
		if err != nil {
			return Descriptor{}, err
		}
		if len(parts) == 2 {
			return ZonedInstantType(u, strings.TrimSpace(parts[1])), nil
		}
		return InstantType(u), nil
	}
	if rest, ok := bracketArg(s, "duration"); ok {
		u, err := parseUnit(strings.TrimSpace(rest))
		if err != nil {
			return Descriptor{}, err
		}
		return DurationType(u), nil
	}
	if rest, ok := bracketArg(s, "period"); ok {
		return PeriodType(strings.TrimSpace(rest)), nil
	}

	return Descriptor{}, NewConfigurationError(fmt.Sprintf("unknown type %q", s))
}

func bracketArg(s, family string) (string, bool) {
	if strings.HasPrefix(s, family+"[") && strings.HasSuffix(s, "]") {
		return s[len(family)+1 : len(s)-1], true
	}
	return "", false
}

func parseUnit(s string) (Unit, error) {
	switch Unit(s) {
	case UnitSecond, UnitMilli, UnitMicro, UnitNano:
		return Unit(s), nil
	}
	return UnitNone, NewConfigurationError(fmt.Sprintf("unknown resolution %q", s))
}
