package types

// Diagnostic is one validation finding about a schema document.
type Diagnostic struct {
	Path     string
	Message  string
	Severity Severity
	Details  *OrderedMap[string]
}

// HasErrors reports whether any diagnostic has ERROR severity.
func HasErrors(diagnostics []Diagnostic) bool {
	for _, diagnostic := range diagnostics {
		if diagnostic.Severity == SeverityError {
			return true
		}
	}
	return false
}

// FirstError returns the first ERROR-severity diagnostic.
func FirstError(diagnostics []Diagnostic) (Diagnostic, bool) {
	for _, diagnostic := range diagnostics {
		if diagnostic.Severity == SeverityError {
			return diagnostic, true
		}
	}
	return Diagnostic{}, false
}

// DocumentDiagnostics groups the diagnostics produced while loading one
// input document.
type DocumentDiagnostics struct {
	Source      string
	Diagnostics []Diagnostic
}
