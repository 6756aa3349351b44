package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/HuLaxx/Shiftify-sub000/internal/shared"
	tu "github.com/HuLaxx/Shiftify-sub000/internal/testing"
)

func row(title, artist, videoID string) map[string]any {
	column := func(text string) map[string]any {
		return map[string]any{"musicResponsiveListItemFlexColumnRenderer": map[string]any{
			"text": map[string]any{"runs": []any{map[string]any{"text": text}}},
		}}
	}
	return map[string]any{"musicResponsiveListItemRenderer": map[string]any{
		"flexColumns":      []any{column(title), column(artist)},
		"playlistItemData": map[string]any{"videoId": videoID},
	}}
}

// upstream serves canned innertube responses keyed by browse id, and search results.
func upstream(t *testing.T) *httptest.Server {
	t.Helper()

	pages := map[string]any{
		"PL1": map[string]any{"contents": []any{row("Song A", "Artist A", "vidA"), row("Song B", "Artist B", "vidB")}},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		var body map[string]any
		_ = json.Unmarshal(data, &body)

		switch {
		case strings.HasSuffix(r.URL.Path, "/search"):
			_ = json.NewEncoder(w).Encode(map[string]any{})
		case strings.HasSuffix(r.URL.Path, "/like/like"):
			_, _ = w.Write([]byte(`{}`))
		default:
			id, _ := body["browseId"].(string)
			page, ok := pages[id]
			if !ok {
				page = map[string]any{}
			}
			_ = json.NewEncoder(w).Encode(page)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

// newTestRunner wires a runner to a fake upstream with a temp cookie file and database.
func newTestRunner(t *testing.T) (*Runner, *bytes.Buffer) {
	t.Helper()

	dir := t.TempDir()
	cookieFile := filepath.Join(dir, "cookies.txt")
	if err := os.WriteFile(cookieFile, []byte("SAPISID=secret; VISITOR_INFO1_LIVE=abc\n"), 0600); err != nil {
		t.Fatalf("failed to write cookie file: %v", err)
	}

	server := upstream(t)
	config := shared.DefaultConfig()
	config.YouTube.BaseURL = server.URL
	config.YouTube.CookieFile = cookieFile
	config.Database.Path = filepath.Join(dir, "runs.db")

	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Config:     config,
		HTTPClient: server.Client(),
		Logger:     shared.DiscardLogger(),
		Output:     output,
	})
	return runner, output
}

func run(t *testing.T, r *Runner, args ...string) error {
	t.Helper()
	return newApp(r).Run(context.Background(), append([]string{"shiftify"}, args...))
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			httpClient := &http.Client{}

			runner := NewRunner(RunnerOpts{
				Config:     config,
				ConfigPath: "/test/path/config.toml",
				Logger:     logger,
				Output:     output,
				HTTPClient: httpClient,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.configPath != "/test/path/config.toml" {
				t.Errorf("expected configPath to be set, got %s", runner.configPath)
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.httpClient != httpClient {
				t.Error("expected httpClient to be set")
			}
		})

		t.Run("with nil options uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
			if runner.httpClient != http.DefaultClient {
				t.Error("expected httpClient to default to http.DefaultClient")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, true); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, false); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			expected := `{"key":"value"}` + "\n"
			if output.String() != expected {
				t.Errorf("expected %q, got %q", expected, output.String())
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

			err := runner.writeJSON(make(chan int), false)
			if err == nil || !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil || !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: tu.NewLimitedWriter(1, &bytes.Buffer{})})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil || !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writePlain("hello %s", "world"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if output.String() != "hello world" {
				t.Errorf("expected 'hello world', got %q", output.String())
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writePlain("test")
			if err == nil || !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		commands := NewRunner(RunnerOpts{}).register()

		if len(commands) == 0 {
			t.Error("expected at least one command to be registered")
		}

		seen := map[string]bool{}
		for i, cmd := range commands {
			if cmd == nil {
				t.Fatalf("command at index %d is nil", i)
			}
			if seen[cmd.Name] {
				t.Errorf("duplicate command %q", cmd.Name)
			}
			seen[cmd.Name] = true
		}
		for _, name := range []string{"verify", "playlists", "tracks", "search", "like", "unlike", "export", "serve", "setup", "runs", "tui"} {
			if !seen[name] {
				t.Errorf("command %q not registered", name)
			}
		}
	})

	t.Run("cookies", func(t *testing.T) {
		dir := t.TempDir()
		flagFile := filepath.Join(dir, "flag.txt")
		configFile := filepath.Join(dir, "config.txt")
		_ = os.WriteFile(flagFile, []byte("A=1"), 0600)
		_ = os.WriteFile(configFile, []byte("B=2"), 0600)

		tt := []struct {
			name       string
			flag       string
			configured string
			want       string
			wantErr    bool
		}{
			{"flag wins", flagFile, configFile, "A=1", false},
			{"config fallback", "", configFile, "B=2", false},
			{"nothing configured", "", "", "", true},
			{"missing file", filepath.Join(dir, "nope"), "", "", true},
		}

		for _, tc := range tt {
			t.Run(tc.name, func(t *testing.T) {
				runner := NewRunner(RunnerOpts{Logger: shared.DiscardLogger()})
				runner.cookiesFile = tc.flag
				runner.config.YouTube.CookieFile = tc.configured

				got, err := runner.cookies()
				if tc.wantErr {
					if !errors.Is(err, shared.ErrMissingCredentials) {
						t.Errorf("expected ErrMissingCredentials, got %v", err)
					}
					return
				}
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got != tc.want {
					t.Errorf("expected %q, got %q", tc.want, got)
				}
			})
		}
	})

	t.Run("preferredAuthUser", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		runner.config.YouTube.AuthUser = ""
		if got := runner.preferredAuthUser(); got != "0" {
			t.Errorf("expected default 0, got %s", got)
		}

		runner.config.YouTube.AuthUser = "2"
		if got := runner.preferredAuthUser(); got != "2" {
			t.Errorf("expected config value 2, got %s", got)
		}

		runner.authUser = "1"
		if got := runner.preferredAuthUser(); got != "1" {
			t.Errorf("expected flag value 1, got %s", got)
		}
	})
}

func TestCommands(t *testing.T) {
	t.Run("verify", func(t *testing.T) {
		runner, output := newTestRunner(t)

		if err := run(t, runner, "verify"); err != nil {
			t.Fatalf("verify failed: %v", err)
		}
		if !strings.Contains(output.String(), "Cookies are valid (account 0)") {
			t.Errorf("unexpected output %q", output.String())
		}
	})

	t.Run("playlists", func(t *testing.T) {
		runner, output := newTestRunner(t)

		if err := run(t, runner, "playlists", "--json", "--pretty=false"); err != nil {
			t.Fatalf("playlists failed: %v", err)
		}
		if !strings.Contains(output.String(), `"id":"LM"`) {
			t.Errorf("expected liked music entry, got %s", output.String())
		}
	})

	t.Run("tracks as csv", func(t *testing.T) {
		runner, output := newTestRunner(t)

		if err := run(t, runner, "--auth-user", "1", "tracks", "--id", "PL1", "--format", "csv"); err != nil {
			t.Fatalf("tracks failed: %v", err)
		}

		lines := strings.Split(strings.TrimSpace(output.String()), "\n")
		if len(lines) != 3 {
			t.Fatalf("expected header and 2 rows, got %q", output.String())
		}
		if !strings.Contains(lines[1], "Song A") || !strings.Contains(lines[1], "vidA") {
			t.Errorf("unexpected first row %q", lines[1])
		}
	})

	t.Run("tracks to file", func(t *testing.T) {
		runner, _ := newTestRunner(t)
		path := filepath.Join(t.TempDir(), "out", "tracks.json")

		if err := run(t, runner, "tracks", "--id", "PL1", "--format", "json", "--output", path); err != nil {
			t.Fatalf("tracks failed: %v", err)
		}
		if data := tu.MustReadFile(t, path); !strings.Contains(string(data), "Song B") {
			t.Errorf("expected tracks in file, got %s", data)
		}
	})

	t.Run("tracks rejects unknown format", func(t *testing.T) {
		runner, _ := newTestRunner(t)

		err := run(t, runner, "tracks", "--format", "xml")
		if !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})

	t.Run("tracks --record then runs", func(t *testing.T) {
		runner, output := newTestRunner(t)

		if err := run(t, runner, "tracks", "--id", "PL1", "--record"); err != nil {
			t.Fatalf("tracks failed: %v", err)
		}
		output.Reset()

		if err := run(t, runner, "runs", "list", "--json", "--pretty=false"); err != nil {
			t.Fatalf("runs list failed: %v", err)
		}

		var runs []map[string]any
		if err := json.Unmarshal(output.Bytes(), &runs); err != nil {
			t.Fatalf("runs list is not JSON: %v (%s)", err, output.String())
		}
		if len(runs) != 1 || runs[0]["playlistId"] != "PL1" || runs[0]["trackCount"] != float64(2) {
			t.Fatalf("unexpected runs %v", runs)
		}

		output.Reset()
		if err := run(t, runner, "runs", "show", "--format", "txt", runs[0]["runId"].(string)); err != nil {
			t.Fatalf("runs show failed: %v", err)
		}
		if !strings.Contains(output.String(), "Song A") {
			t.Errorf("expected recorded tracks, got %q", output.String())
		}
	})

	t.Run("search without match", func(t *testing.T) {
		runner, output := newTestRunner(t)

		if err := run(t, runner, "search", "--json", "--pretty=false", "nothing"); err != nil {
			t.Fatalf("search failed: %v", err)
		}
		if strings.TrimSpace(output.String()) != `{"videoId":null}` {
			t.Errorf("unexpected output %q", output.String())
		}
	})

	t.Run("search requires a query", func(t *testing.T) {
		runner, _ := newTestRunner(t)

		if err := run(t, runner, "search"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("like", func(t *testing.T) {
		runner, output := newTestRunner(t)

		if err := run(t, runner, "like", "vid1"); err != nil {
			t.Fatalf("like failed: %v", err)
		}
		if !strings.Contains(output.String(), "Liked vid1") {
			t.Errorf("unexpected output %q", output.String())
		}
	})

	t.Run("missing cookies", func(t *testing.T) {
		runner, _ := newTestRunner(t)

		err := run(t, runner, "--cookies-file", filepath.Join(t.TempDir(), "absent"), "verify")
		if !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("explicit missing config", func(t *testing.T) {
		runner, _ := newTestRunner(t)

		err := run(t, runner, "--config", filepath.Join(t.TempDir(), "absent.toml"), "verify")
		if !errors.Is(err, shared.ErrMissingConfig) {
			t.Errorf("expected ErrMissingConfig, got %v", err)
		}
	})
}

func TestSetupCookies(t *testing.T) {
	curl := `curl 'https://music.youtube.com/youtubei/v1/browse' \
  -H 'x-goog-authuser: 2' \
  -H 'cookie: SAPISID=abc; VISITOR_INFO1_LIVE=xyz'`

	t.Run("writes cookie file", func(t *testing.T) {
		runner, output := newTestRunner(t)
		path := filepath.Join(t.TempDir(), "nested", "cookies.txt")

		if err := run(t, runner, "setup", "cookies", "--curl", curl, "--output", path); err != nil {
			t.Fatalf("setup cookies failed: %v", err)
		}

		data := tu.MustReadFile(t, path)
		if strings.TrimSpace(string(data)) != "SAPISID=abc; VISITOR_INFO1_LIVE=xyz" {
			t.Errorf("unexpected cookie file %q", data)
		}
		if !strings.Contains(output.String(), "--auth-user 2") {
			t.Errorf("expected auth user hint, got %q", output.String())
		}
	})

	t.Run("requires exactly one source", func(t *testing.T) {
		runner, _ := newTestRunner(t)

		if err := run(t, runner, "setup", "cookies"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
		if err := run(t, runner, "setup", "cookies", "--curl", curl, "--curl-file", "x.sh"); !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})
}
