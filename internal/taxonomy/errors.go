package taxonomy

import (
	"fmt"

	"github.com/jonathan/resume-matcher/internal/types"
)

// LoadError represents a failure to read or build a taxonomy. It is fatal at startup.
type LoadError struct {
	Source  string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Source == "" {
		if e.Cause != nil {
			return fmt.Sprintf("taxonomy load error: %s: %v", e.Message, e.Cause)
		}
		return fmt.Sprintf("taxonomy load error: %s", e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("taxonomy load error (%s): %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("taxonomy load error (%s): %s", e.Source, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// DuplicateAliasError reports an alias that normalizes to the same form for two different skills.
type DuplicateAliasError struct {
	Alias  string
	First  types.SkillID
	Second types.SkillID
}

func (e *DuplicateAliasError) Error() string {
	return fmt.Sprintf("alias %q maps to both %q and %q", e.Alias, e.First, e.Second)
}
