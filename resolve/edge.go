package resolve

// Edge is one resolution attempt made from an importing file.
type Edge struct {
	From      string
	Specifier string
	Outcome   Kind
	// Target is set when Outcome is Resolved.
	Target string
	// Err is set for every other outcome.
	Err error
}

// Resolved reports whether the attempt produced a target file.
func (e Edge) Resolved() bool {
	return e.Outcome == Resolved
}

// Attempt resolves specifier from fromFile and classifies the outcome.
// Errors that are not *Error count as Unresolved.
func Attempt(r interface {
	Resolve(fromFile, specifier string) (string, error)
}, fromFile, specifier string) Edge {
	edge := Edge{From: fromFile, Specifier: specifier}
	target, err := r.Resolve(fromFile, specifier)
	if err != nil {
		kind, ok := KindOf(err)
		if !ok {
			kind = Unresolved
		}
		edge.Outcome = kind
		edge.Err = err
		return edge
	}
	edge.Outcome = Resolved
	edge.Target = target
	return edge
}
