package extract

import (
	"testing"

	tu "github.com/HuLaxx/Shiftify-sub000/internal/testing"
)

func TestWalk(t *testing.T) {
	t.Run("visits objects in document order", func(t *testing.T) {
		root := tu.Node(t, `{"a":{"id":"1","b":[{"id":"2"},{"id":"3"}]},"c":{"id":"4"}}`)

		var ids []string
		Walk(root, func(m map[string]any) bool {
			if id, ok := m["id"].(string); ok {
				ids = append(ids, id)
			}
			return true
		})

		want := []string{"1", "2", "3", "4"}
		if len(ids) != len(want) {
			t.Fatalf("expected %v, got %v", want, ids)
		}
		for i := range want {
			if ids[i] != want[i] {
				t.Errorf("position %d: expected %s, got %s", i, want[i], ids[i])
			}
		}
	})

	t.Run("skips children when visit returns false", func(t *testing.T) {
		root := tu.Node(t, `{"skip":true,"child":{"seen":true}}`)
		visits := 0
		Walk(root, func(m map[string]any) bool {
			visits++
			return m["skip"] == nil
		})
		if visits != 1 {
			t.Errorf("expected 1 visit, got %d", visits)
		}
	})

	t.Run("shared object is visited once", func(t *testing.T) {
		shared := map[string]any{"id": "x"}
		root := map[string]any{"a": shared, "b": []any{shared, shared}}

		visits := 0
		Walk(root, func(m map[string]any) bool {
			if m["id"] == "x" {
				visits++
			}
			return true
		})
		if visits != 1 {
			t.Errorf("expected shared object visited once, got %d", visits)
		}
	})

	t.Run("deep nesting does not exhaust the stack", func(t *testing.T) {
		var root any = map[string]any{"leaf": true}
		for range 200000 {
			root = map[string]any{"next": []any{root}}
		}

		found := false
		Walk(root, func(m map[string]any) bool {
			if m["leaf"] == true {
				found = true
			}
			return true
		})
		if !found {
			t.Error("expected to reach the leaf")
		}
	})

	t.Run("scalars", func(t *testing.T) {
		Walk("text", func(map[string]any) bool {
			t.Error("visit should not be called for scalars")
			return true
		})
		Walk(nil, func(map[string]any) bool {
			t.Error("visit should not be called for nil")
			return true
		})
	})
}

func TestHelpers(t *testing.T) {
	node := tu.Node(t, `{"a":[{"b":"x"}],"runs":{"runs":[{"text":"Hello"},{"text":", world"}]},"simple":{"simpleText":" s "}}`)

	t.Run("dig", func(t *testing.T) {
		if got := dig(node, "a", 0, "b"); got != "x" {
			t.Errorf("expected x, got %v", got)
		}
		if got := dig(node, "a", 5, "b"); got != nil {
			t.Errorf("expected nil for out of range index, got %v", got)
		}
		if got := dig(node, "a", "b"); got != nil {
			t.Errorf("expected nil for key on array, got %v", got)
		}
	})

	t.Run("text", func(t *testing.T) {
		if got := text(dig(node, "runs")); got != "Hello, world" {
			t.Errorf("unexpected runs text %q", got)
		}
		if got := text(dig(node, "simple")); got != "s" {
			t.Errorf("unexpected simple text %q", got)
		}
		if got := firstRun(dig(node, "runs")); got != "Hello" {
			t.Errorf("unexpected first run %q", got)
		}
	})

	t.Run("number", func(t *testing.T) {
		tt := []struct {
			in   any
			want int
			ok   bool
		}{
			{float64(42), 42, true},
			{"1,234", 1234, true},
			{"1 234", 1234, true},
			{"abc", 0, false},
			{true, 0, false},
		}
		for _, tc := range tt {
			got, ok := number(tc.in)
			if got != tc.want || ok != tc.ok {
				t.Errorf("number(%v) = (%d, %v), want (%d, %v)", tc.in, got, ok, tc.want, tc.ok)
			}
		}
	})
}
