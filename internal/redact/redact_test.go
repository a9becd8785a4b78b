package redact

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringRedactsVendorKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "openai key",
			in:   "401 Unauthorized: invalid api key sk-AbCdEf1234567890",
			want: "401 Unauthorized: invalid api key [REDACTED_KEY]",
		},
		{
			name: "google key in query string",
			in:   "GET https://generativelanguage.googleapis.com/v1?key=AIzaSyFakeKey123456 failed",
			want: "GET https://generativelanguage.googleapis.com/v1?key=[REDACTED_KEY] failed",
		},
		{
			name: "header assignment",
			in:   `request rejected, authorization: Beareraaaabbbbcccc11112222`,
			want: `request rejected, authorization: ` + RedactedKeyPlaceholder,
		},
		{
			name: "no credentials",
			in:   "connection refused",
			want: "connection refused",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, String(tc.in))
		})
	}
}

func TestError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", Error(nil))
	assert.Equal(t, "provider openai: bad key [REDACTED_KEY]",
		Error(errors.New("provider openai: bad key sk-AbCdEf1234567890")))
}
