package generation

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/phrazzld/gtm-api/internal/domain"
)

// fenceRegexp matches the first triple-backtick block, optionally tagged
// as json, and captures its interior.
var fenceRegexp = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// excerptLimit caps the diagnostic excerpt attached to parse failures.
const excerptLimit = 200

// ExtractPlaybook recovers the structured playbook from raw model output.
// Strategy is fixed and two-stage: prefer the interior of the first
// fenced code block, otherwise fall back to the whole trimmed text. The
// candidate is parsed once and validated field by field; there is no
// backtracking to alternate fence regions.
func ExtractPlaybook(raw string) (*domain.Playbook, error) {
	candidate := strings.TrimSpace(raw)
	if m := fenceRegexp.FindStringSubmatch(raw); m != nil {
		candidate = strings.TrimSpace(m[1])
	}

	var playbook domain.Playbook
	if err := json.Unmarshal([]byte(candidate), &playbook); err != nil {
		malformed := &MalformedOutputError{Excerpt: excerpt(candidate), Err: err}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			malformed.Field = typeErr.Field
		}
		return nil, malformed
	}

	if err := playbook.Validate(); err != nil {
		malformed := &MalformedOutputError{Err: err}
		var fieldErr *domain.FieldError
		if errors.As(err, &fieldErr) {
			malformed.Field = fieldErr.Field
		}
		return nil, malformed
	}

	return &playbook, nil
}

func excerpt(s string) string {
	if len(s) <= excerptLimit {
		return s
	}
	return s[:excerptLimit] + "..."
}
