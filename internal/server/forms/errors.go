package forms

import (
	"slices"
	"strings"

	"github.com/dmitrijs2005/sitereg/internal/common"
)

// ValidationErrors maps a form field (by its JSON name) to the message
// shown next to it.
type ValidationErrors map[string]string

func (e ValidationErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var b strings.Builder
	b.WriteString("validation failed")
	for i, k := range keys {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(e[k])
	}
	return b.String()
}

// Is reports ValidationErrors as common.ErrorValidation.
func (e ValidationErrors) Is(target error) bool {
	return target == common.ErrorValidation
}
