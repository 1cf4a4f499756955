package services

import "regexp"

var (
	fenceOpen  = regexp.MustCompile("^\\s*```(?:(?i:csv)\\b)?\\s*")
	fenceClose = regexp.MustCompile("\\s*```\\s*$")
)

// StripCodeFence removes leading ``` fences (optionally tagged csv) and
// trailing ``` fences from a model reply, repeating until none remain. Only
// the very start and end of the text are matched; the payload between them
// is left untouched.
func StripCodeFence(content string) string {
	for {
		stripped := fenceOpen.ReplaceAllString(content, "")
		stripped = fenceClose.ReplaceAllString(stripped, "")
		if stripped == content {
			return content
		}
		content = stripped
	}
}

func applyFuncOptions[T any](entity T, opts ...func(entity T) error) error {
	for _, opt := range opts {
		err := opt(entity)
		if err != nil {
			return err
		}
	}
	return nil
}
