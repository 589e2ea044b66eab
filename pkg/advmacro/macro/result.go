package macro

// Result is the outcome of trying to expand one %Arg.property reference.
type Result struct {
	// Success is true when Expanded should replace the reference.
	Success bool
	// Unresolved is true when a property was named but found nowhere.
	// The reference is then kept as literal text.
	Unresolved bool
	// Expanded is the substituted text when Success is true.
	Expanded string
	// NewIndex is the byte offset scanning resumes at.
	NewIndex int
}

// Fail reports that the text at index is not a structured reference.
func Fail(index int) Result {
	return Result{NewIndex: index}
}

// Unresolved reports a structured reference whose property was not found.
func Unresolved(index int) Result {
	return Result{Unresolved: true, NewIndex: index}
}

// Ok reports a successful expansion that consumed text up to newIndex.
func Ok(expanded string, newIndex int) Result {
	return Result{Success: true, Expanded: expanded, NewIndex: newIndex}
}
