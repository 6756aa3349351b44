package shared

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if len(a) != 36 {
		t.Errorf("expected 36-char uuid, got %q", a)
	}
	if a == b {
		t.Error("expected unique ids")
	}
}

func TestMarshalJSON(t *testing.T) {
	v := map[string]int{"a": 1}

	compact, err := MarshalJSON(v, false)
	if err != nil || string(compact) != `{"a":1}` {
		t.Errorf("compact = %s (%v)", compact, err)
	}

	pretty, err := MarshalJSON(v, true)
	if err != nil || !strings.Contains(string(pretty), "\n  \"a\": 1") {
		t.Errorf("pretty = %s (%v)", pretty, err)
	}

	if _, err := MarshalJSON(func() {}, false); err == nil {
		t.Error("expected error for unsupported value")
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := WithLogger(NewLogger(&buf), "component", "test")
	logger.Info("hello", "key", "value")

	out := buf.String()
	for _, want := range []string{"hello", "component=test", "key=value"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q missing %q", out, want)
		}
	}
}

func TestErrors(t *testing.T) {
	t.Run("IsInvalidArgument", func(t *testing.T) {
		tt := []struct {
			name string
			err  error
			want bool
		}{
			{"nil", nil, false},
			{"upstream INVALID_ARGUMENT", &UpstreamError{Status: 400, Body: `{"error":{"status":"INVALID_ARGUMENT"}}`}, true},
			{"upstream phrase", &UpstreamError{Status: 400, Body: "Request contains an invalid argument."}, true},
			{"wrapped transport error", fmt.Errorf("request failed: %w", errors.New("Invalid Argument from proxy")), true},
			{"unauthorized", &UpstreamError{Status: 401, Body: "UNAUTHENTICATED"}, false},
			{"validation error never retried", NewValidationError(ErrInvalidInput, "invalid argument: limit"), false},
		}

		for _, tc := range tt {
			t.Run(tc.name, func(t *testing.T) {
				if got := IsInvalidArgument(tc.err); got != tc.want {
					t.Errorf("IsInvalidArgument() = %v, want %v", got, tc.want)
				}
			})
		}
	})

	t.Run("ValidationError wraps sentinel", func(t *testing.T) {
		err := fmt.Errorf("dispatch: %w", NewValidationError(ErrMissingArgument, "query is required"))
		if !IsValidationError(err) {
			t.Error("expected validation error")
		}
		if !errors.Is(err, ErrMissingArgument) {
			t.Error("expected sentinel to be reachable")
		}
		if !strings.Contains(err.Error(), "query is required") {
			t.Errorf("unexpected message %q", err.Error())
		}
	})

	t.Run("UpstreamError message", func(t *testing.T) {
		err := &UpstreamError{Status: 403, Body: " forbidden \n"}
		if err.Error() != "upstream error (status 403): forbidden" {
			t.Errorf("unexpected message %q", err.Error())
		}
		if (&UpstreamError{Status: 502}).Error() != "upstream error (status 502)" {
			t.Error("unexpected message for empty body")
		}
	})
}
