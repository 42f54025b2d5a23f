package projection

import (
	"fmt"
	"strings"
)

// Kind selects a projection function.
type Kind int

const (
	// TT is the temperature projection function.
	TT Kind = iota
	// EE is the E-mode polarisation projection function.
	EE
	// EB is the projection function mixing E and B polarisation.
	EB

	numKinds = 3
)

func (k Kind) String() string {
	switch k {
	case TT:
		return "TT"
	case EE:
		return "EE"
	case EB:
		return "EB"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind parses "TT", "EE" or "EB" (case-insensitive).
func ParseKind(s string) (Kind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TT":
		return TT, nil
	case "EE":
		return EE, nil
	case "EB":
		return EB, nil
	}
	return 0, configError("ParseKind", "unknown projection function %q", s)
}

// spin is the helicity carried by the first 3j-symbol of the kind.
func (k Kind) spin() int {
	if k == TT {
		return 0
	}
	return 2
}

// oddParity reports whether the kind sums over l+l1+L odd.
func (k Kind) oddParity() bool { return k == EB }
