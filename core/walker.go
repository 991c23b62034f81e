package core

// Walker rebuilds a JSON value with every scalar passed through the
// Anonymizer while leaving the document shape intact: same field names
// in the same order, same array lengths, same nesting. Counters for
// visited values land in the attached Stats.
type Walker struct {
	anonymizer *Anonymizer
	stats      *Stats
}

// NewWalker creates a walker for one policy and stats accumulator
func NewWalker(policy *Policy, stats *Stats) *Walker {
	return &Walker{
		anonymizer: NewAnonymizer(policy),
		stats:      stats,
	}
}

// Walk transforms a decoded document. The input value is not modified;
// a new value of identical shape is returned.
func (w *Walker) Walk(v any) any {
	return w.walkValue("", v)
}

// walkValue is the depth-first recursion. The name is the field-name
// context of the current value: object values carry their field name,
// array elements inherit the array's own context, the root has none.
// Recursion depth is unguarded.
func (w *Walker) walkValue(name string, v any) any {
	switch t := v.(type) {
	case Document:
		// Empty objects are terminal: counted, never traversed
		if len(t) == 0 {
			w.stats.CountValue(t)
			return Document{}
		}
		out := make(Document, 0, len(t))
		for _, f := range t {
			out = append(out, Field{Name: f.Name, Value: w.walkValue(f.Name, f.Value)})
		}
		return out
	case Array:
		if len(t) == 0 {
			w.stats.CountValue(t)
			return Array{}
		}
		out := make(Array, 0, len(t))
		for _, element := range t {
			out = append(out, w.walkValue(name, element))
		}
		return out
	default:
		// Strings are always leaves here, even when their content
		// looks like serialized JSON
		w.stats.CountValue(t)
		return w.anonymizer.Anonymize(name, t)
	}
}
