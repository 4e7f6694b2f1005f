package diag

// Severity grades a finding. The validator only assigns severities; whether
// errors block a build and warnings stay advisory is the caller's decision
// (the CLI can promote warnings via --warnings-as-errors).
type Severity uint8

const (
	// SevInfo is for purely informational findings.
	SevInfo Severity = iota
	// SevWarning marks permitted-but-unchecked ownership, such as storing
	// a type that carries no owns annotation.
	SevWarning
	// SevError marks a violation of the declared ownership graph, such as
	// an uncovered stored member or a half-declared retain cycle.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}
