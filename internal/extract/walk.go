package extract

import (
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// walker traverses a decoded JSON tree with an explicit stack.
//
// seen holds objects by identity; it lives for one traversal only.
type walker struct {
	seen map[uintptr]struct{}
}

func newWalker() *walker {
	return &walker{seen: make(map[uintptr]struct{})}
}

// Walk visits every object under root depth-first in document order.
//
// Object keys are visited in sorted order. Returning false from visit skips the object's children.
func Walk(root any, visit func(m map[string]any) bool) {
	newWalker().walk(root, visit)
}

func (w *walker) walk(root any, visit func(m map[string]any) bool) {
	stack := []any{root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch typed := node.(type) {
		case map[string]any:
			if !w.mark(typed) {
				continue
			}
			if !visit(typed) {
				continue
			}
			keys := make([]string, 0, len(typed))
			for k := range typed {
				keys = append(keys, k)
			}
			slices.Sort(keys)
			for i := len(keys) - 1; i >= 0; i-- {
				stack = push(stack, typed[keys[i]])
			}
		case []any:
			for i := len(typed) - 1; i >= 0; i-- {
				stack = push(stack, typed[i])
			}
		}
	}
}

// push appends containers only; scalars have nothing to visit.
func push(stack []any, v any) []any {
	switch v.(type) {
	case map[string]any, []any:
		return append(stack, v)
	}
	return stack
}

// mark records m as visited and reports whether it was new.
func (w *walker) mark(m map[string]any) bool {
	if m == nil {
		return false
	}
	id := reflect.ValueOf(m).Pointer()
	if _, ok := w.seen[id]; ok {
		return false
	}
	w.seen[id] = struct{}{}
	return true
}

// dig follows string keys through objects and int indexes through arrays.
func dig(v any, keys ...any) any {
	cur := v
	for _, k := range keys {
		switch key := k.(type) {
		case string:
			m, ok := cur.(map[string]any)
			if !ok {
				return nil
			}
			cur = m[key]
		case int:
			a, ok := cur.([]any)
			if !ok || key < 0 || key >= len(a) {
				return nil
			}
			cur = a[key]
		}
	}
	return cur
}

func digMap(v any, keys ...any) map[string]any {
	m, _ := dig(v, keys...).(map[string]any)
	return m
}

func digString(v any, keys ...any) string {
	s, _ := dig(v, keys...).(string)
	return strings.TrimSpace(s)
}

// text reads a display string from a plain string, {simpleText} or {runs:[{text}]}.
func text(v any) string {
	switch typed := v.(type) {
	case string:
		return strings.TrimSpace(typed)
	case map[string]any:
		if s, ok := typed["simpleText"].(string); ok {
			return strings.TrimSpace(s)
		}
		runs, _ := typed["runs"].([]any)
		var b strings.Builder
		for _, run := range runs {
			if s, ok := dig(run, "text").(string); ok {
				b.WriteString(s)
			}
		}
		return strings.TrimSpace(b.String())
	}
	return ""
}

// firstRun returns the text of the first run, or the simpleText.
func firstRun(v any) string {
	if s := digString(v, "runs", 0, "text"); s != "" {
		return s
	}
	return digString(v, "simpleText")
}

// number reads a count from a JSON number or a numeric string.
func number(v any) (int, bool) {
	switch typed := v.(type) {
	case float64:
		return int(typed), true
	case int:
		return typed, true
	case string:
		n, err := strconv.Atoi(stripSeparators(typed))
		return n, err == nil
	}
	return 0, false
}

func stripSeparators(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ',', '.', ' ', '\u00a0', '\t', '\n':
			return -1
		}
		return r
	}, s)
}
