package services

import (
	"errors"

	"github.com/HuLaxx/Shiftify-sub000/internal/shared"
)

var errNoCandidates = errors.New("no fallback candidates configured")

// outcome tags the result of one fallback attempt.
type outcome int

const (
	accepted outcome = iota
	retryable
	fatal
)

func classify(err error) outcome {
	switch {
	case err == nil:
		return accepted
	case shared.IsInvalidArgument(err):
		return retryable
	default:
		return fatal
	}
}

// firstAccepted tries attempt with each candidate in order and returns the first accepted result with its candidate.
//
// A retryable failure moves to the next candidate; a fatal one stops immediately.
// When every candidate is retryable the last error is returned.
func firstAccepted[C, T any](candidates []C, attempt func(C) (T, error)) (T, C, error) {
	var (
		zero    T
		none    C
		lastErr error = errNoCandidates
	)
	for _, candidate := range candidates {
		result, err := attempt(candidate)
		switch classify(err) {
		case accepted:
			return result, candidate, nil
		case fatal:
			return zero, candidate, err
		}
		lastErr = err
	}
	return zero, none, lastErr
}

// uniqueCandidates returns values in order without blanks or repeats.
func uniqueCandidates(values ...string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
