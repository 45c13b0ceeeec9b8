package screener

import (
	"fmt"
	"strings"

	"github.com/stockai/screener/internal/domain"
)

// AnyValue is the sentinel a UI sends for "no constraint on this field".
const AnyValue = "Any"

// Constraint is one predicate over a single field. Implementations are
// evaluated against the field accessors in the registry, never against
// raw struct fields.
type Constraint interface {
	// Matches reports whether the record satisfies the constraint.
	// Records missing the underlying value never match a bounded
	// numeric constraint.
	Matches(r *domain.StockRecord) bool

	// Field returns the field the constraint applies to.
	Field() Field
}

// Range keeps records whose numeric value lies within [Min, Max]. Either
// bound may be nil for a one-sided range. Min > Max is well formed but
// matches nothing.
type Range struct {
	Key Field
	Min *float64
	Max *float64
}

func (c Range) Field() Field { return c.Key }

func (c Range) Matches(r *domain.StockRecord) bool {
	spec := fieldRegistry[c.Key]
	v, ok := spec.Numeric(r)
	if !ok {
		return c.Min == nil && c.Max == nil
	}
	if c.Min != nil && v < *c.Min {
		return false
	}
	if c.Max != nil && v > *c.Max {
		return false
	}
	return true
}

// Equals keeps records whose text value matches exactly. The AnyValue
// sentinel always matches. Signal comparison is case-sensitive against
// the canonical labels.
type Equals struct {
	Key   Field
	Value string
}

func (c Equals) Field() Field { return c.Key }

func (c Equals) Matches(r *domain.StockRecord) bool {
	if c.Value == AnyValue || c.Value == "" {
		return true
	}
	spec := fieldRegistry[c.Key]
	return spec.Text(r) == c.Value
}

// Bucket keeps records whose numeric value falls in a named bucket from
// the field's bucket table.
type Bucket struct {
	Key   Field
	Label string
	rng   bucketRange
}

func (c Bucket) Field() Field { return c.Key }

func (c Bucket) Matches(r *domain.StockRecord) bool {
	spec := fieldRegistry[c.Key]
	v, ok := spec.Numeric(r)
	if !ok {
		return false
	}
	return c.rng.contains(v)
}

// TickerList keeps records whose symbol is in the given set. Symbols
// are compared case-insensitively. An empty list passes everything.
type TickerList struct {
	symbols map[string]struct{}
}

// NewTickerList builds a TickerList, upper-casing and trimming each
// symbol.
func NewTickerList(symbols []string) TickerList {
	set := make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s != "" {
			set[s] = struct{}{}
		}
	}
	return TickerList{symbols: set}
}

func (c TickerList) Field() Field { return FieldSymbol }

func (c TickerList) Matches(r *domain.StockRecord) bool {
	if len(c.symbols) == 0 {
		return true
	}
	_, ok := c.symbols[strings.ToUpper(r.Symbol)]
	return ok
}

// FilterSet is a validated conjunction of constraints. Construction
// fails closed: an unknown field or malformed constraint rejects the
// whole set rather than silently passing records through.
type FilterSet struct {
	constraints []Constraint
}

// NewFilterSet validates every constraint against the field registry.
func NewFilterSet(constraints ...Constraint) (*FilterSet, error) {
	for _, c := range constraints {
		spec, ok := fieldRegistry[c.Field()]
		if !ok {
			return nil, fmt.Errorf("unknown field %q", c.Field())
		}
		switch cc := c.(type) {
		case Range:
			if spec.Numeric == nil {
				return nil, fmt.Errorf("field %q does not support range filters", c.Field())
			}
			if cc.Min == nil && cc.Max == nil {
				return nil, fmt.Errorf("range filter on %q has no bounds", c.Field())
			}
		case Bucket:
			if _, ok := lookupBucket(cc.Key, cc.Label); !ok {
				return nil, fmt.Errorf("unknown bucket %q for field %q", cc.Label, cc.Key)
			}
		case Equals:
			if spec.Text == nil {
				return nil, fmt.Errorf("field %q does not support equality filters", c.Field())
			}
			if spec.IsSignal && cc.Value != AnyValue && cc.Value != "" && !domain.Signal(cc.Value).Valid() {
				return nil, fmt.Errorf("unknown signal %q", cc.Value)
			}
		}
	}
	// Field keys are unique within a set: a later constraint on the
	// same key overwrites the earlier one, keeping its position.
	resolved := make([]Constraint, 0, len(constraints))
	byField := make(map[Field]int, len(constraints))
	for _, c := range constraints {
		if b, ok := c.(Bucket); ok {
			b.rng, _ = lookupBucket(b.Key, b.Label)
			c = b
		}
		if i, ok := byField[c.Field()]; ok {
			resolved[i] = c
			continue
		}
		byField[c.Field()] = len(resolved)
		resolved = append(resolved, c)
	}
	return &FilterSet{constraints: resolved}, nil
}

// WithConstraint returns a new set with the constraint added, replacing
// any existing constraint on the same field.
func (f *FilterSet) WithConstraint(c Constraint) (*FilterSet, error) {
	return NewFilterSet(append(f.Constraints(), c)...)
}

// WithoutField returns a new set with any constraint on key removed.
func (f *FilterSet) WithoutField(key Field) *FilterSet {
	if f == nil {
		return nil
	}
	kept := make([]Constraint, 0, len(f.constraints))
	for _, c := range f.constraints {
		if c.Field() != key {
			kept = append(kept, c)
		}
	}
	return &FilterSet{constraints: kept}
}

// Matches reports whether the record satisfies every constraint.
// Evaluation short-circuits on the first failure.
func (f *FilterSet) Matches(r *domain.StockRecord) bool {
	for _, c := range f.constraints {
		if !c.Matches(r) {
			return false
		}
	}
	return true
}

// Empty reports whether the set carries no constraints.
func (f *FilterSet) Empty() bool {
	return f == nil || len(f.constraints) == 0
}

// Constraints returns the validated constraints in order.
func (f *FilterSet) Constraints() []Constraint {
	if f == nil {
		return nil
	}
	return f.constraints
}
