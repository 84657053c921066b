package engine

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"skillgate/internal/config"
	"skillgate/internal/registry"
)

const fixtureRegistry = `{"skills": [
	{"slug": "safe-pkg", "name": "Safe Package", "safety_rating": "safe", "url": "https://registry.example.com/skills/safe-pkg"},
	{"slug": "risky-pkg", "name": "Risky Package", "safety_rating": "unsafe"},
	{"slug": "left-pad", "safety_rating": "caution"},
	{"slug": "requests", "rating": "safe"}
]}`

func newFixtureServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(fixtureRegistry))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestEngine(t *testing.T, baseURL string) (*Engine, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	client, err := registry.NewClient(baseURL, 0)
	if err != nil {
		t.Fatal(err)
	}
	e := New(client)
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	e.Stdout = stdout
	e.Stderr = stderr
	return e, stdout, stderr
}

func newTestConfig(t *testing.T, baseURL string) *config.Config {
	t.Helper()
	cfg := config.New()
	cfg.Inputs.APIURL = baseURL
	cfg.Output.Summary = filepath.Join(t.TempDir(), "summary.md")
	return cfg
}

func TestRun_CleanRun(t *testing.T) {
	t.Setenv("GITHUB_OUTPUT", "")
	srv := newFixtureServer(t)
	e, stdout, _ := newTestEngine(t, srv.URL)

	cfg := newTestConfig(t, srv.URL)
	cfg.Inputs.Packages = "safe-pkg"
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}

	if code := e.Run(context.Background(), cfg); code != ExitClean {
		t.Fatalf("exit code = %d, want %d\nstdout: %s", code, ExitClean, stdout.String())
	}
	if !strings.Contains(stdout.String(), "[OK] safe-pkg: safe") {
		t.Fatalf("missing console line:\n%s", stdout.String())
	}
}

func TestRun_ThresholdExceeded(t *testing.T) {
	t.Setenv("GITHUB_OUTPUT", "")
	srv := newFixtureServer(t)
	e, stdout, _ := newTestEngine(t, srv.URL)

	cfg := newTestConfig(t, srv.URL)
	cfg.Inputs.Packages = "safe-pkg,risky-pkg"
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}

	if code := e.Run(context.Background(), cfg); code != ExitIssues {
		t.Fatalf("exit code = %d, want %d", code, ExitIssues)
	}
	if !strings.Contains(stdout.String(), "[FAIL] risky-pkg: unsafe - exceeds threshold") {
		t.Fatalf("missing failure line:\n%s", stdout.String())
	}

	// The full report is still produced on a failing run.
	raw, err := os.ReadFile(cfg.Output.Summary)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), "❌ Exceeds threshold") {
		t.Fatalf("summary missing exceedance row:\n%s", raw)
	}
}

func TestRun_NothingToScan(t *testing.T) {
	t.Setenv("GITHUB_OUTPUT", filepath.Join(t.TempDir(), "outputs"))
	srv := newFixtureServer(t)
	e, _, stderr := newTestEngine(t, srv.URL)

	cfg := newTestConfig(t, srv.URL)
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}

	if code := e.Run(context.Background(), cfg); code != ExitClean {
		t.Fatalf("exit code = %d, want %d", code, ExitClean)
	}
	if !strings.Contains(stderr.String(), "Warning: no packages to scan") {
		t.Fatalf("missing warning:\n%s", stderr.String())
	}

	raw, err := os.ReadFile(os.Getenv("GITHUB_OUTPUT"))
	if err != nil {
		t.Fatal(err)
	}
	got := string(raw)
	if !strings.Contains(got, "results=[]") || !strings.Contains(got, "has-issues=false") {
		t.Fatalf("empty-set outputs wrong:\n%s", got)
	}
}

func TestRun_RegistryDownIsFatal(t *testing.T) {
	t.Setenv("GITHUB_OUTPUT", "")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	e, _, stderr := newTestEngine(t, srv.URL)
	cfg := newTestConfig(t, srv.URL)
	cfg.Inputs.Packages = "safe-pkg"
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}

	if code := e.Run(context.Background(), cfg); code != ExitFatal {
		t.Fatalf("exit code = %d, want %d", code, ExitFatal)
	}
	if !strings.Contains(stderr.String(), "Error: registry:") {
		t.Fatalf("missing fatal error line:\n%s", stderr.String())
	}
}

func TestRun_AutoDetection(t *testing.T) {
	t.Setenv("GITHUB_OUTPUT", "")
	srv := newFixtureServer(t)
	e, stdout, _ := newTestEngine(t, srv.URL)

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "package.json"), []byte(`{"dependencies":{"left-pad":"1.0.0"}}`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "requirements.txt"), []byte("requests==2.0  # pinned\n# full comment line\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := newTestConfig(t, srv.URL)
	cfg.Inputs.ScanConfig = true
	cfg.Inputs.Dir = dir
	cfg.Inputs.FailOn = "caution"
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}

	if code := e.Run(context.Background(), cfg); code != ExitIssues {
		t.Fatalf("exit code = %d, want %d (left-pad is caution)\n%s", code, ExitIssues, stdout.String())
	}
	out := stdout.String()
	if !strings.Contains(out, "left-pad") || !strings.Contains(out, "requests") {
		t.Fatalf("detected packages missing from console:\n%s", out)
	}
}

func TestRun_MalformedManifestWarnsAndContinues(t *testing.T) {
	t.Setenv("GITHUB_OUTPUT", "")
	srv := newFixtureServer(t)
	e, _, stderr := newTestEngine(t, srv.URL)

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "package.json"), []byte(`{broken`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := newTestConfig(t, srv.URL)
	cfg.Inputs.Packages = "safe-pkg"
	cfg.Inputs.ScanConfig = true
	cfg.Inputs.Dir = dir
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}

	if code := e.Run(context.Background(), cfg); code != ExitClean {
		t.Fatalf("exit code = %d, want %d", code, ExitClean)
	}
	if !strings.Contains(stderr.String(), "Warning: could not parse package.json") {
		t.Fatalf("missing manifest warning:\n%s", stderr.String())
	}
}

type recordingCommenter struct {
	owner, repo string
	number      int
	body        string
	calls       int
}

func (c *recordingCommenter) PostComment(_ context.Context, owner, repo string, number int, body string) error {
	c.owner, c.repo, c.number, c.body = owner, repo, number, body
	c.calls++
	return nil
}

func TestRun_PostsComment(t *testing.T) {
	t.Setenv("GITHUB_OUTPUT", "")
	srv := newFixtureServer(t)
	e, _, _ := newTestEngine(t, srv.URL)
	commenter := &recordingCommenter{}
	e.Commenter = commenter

	cfg := newTestConfig(t, srv.URL)
	cfg.Inputs.Packages = "risky-pkg"
	cfg.Output.Comment = "acme/widgets#7"
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}

	if code := e.Run(context.Background(), cfg); code != ExitIssues {
		t.Fatalf("exit code = %d, want %d", code, ExitIssues)
	}
	if commenter.calls != 1 {
		t.Fatalf("PostComment calls = %d, want 1", commenter.calls)
	}
	if commenter.owner != "acme" || commenter.repo != "widgets" || commenter.number != 7 {
		t.Fatalf("comment target = %s/%s#%d", commenter.owner, commenter.repo, commenter.number)
	}
	if !strings.Contains(commenter.body, "| Package | Rating | Status |") {
		t.Fatalf("comment body missing report:\n%s", commenter.body)
	}
}

func TestRun_NDJSONConsole(t *testing.T) {
	t.Setenv("GITHUB_OUTPUT", "")
	srv := newFixtureServer(t)
	e, stdout, _ := newTestEngine(t, srv.URL)

	cfg := newTestConfig(t, srv.URL)
	cfg.Inputs.Packages = "safe-pkg"
	cfg.Output.ConsoleFormat = "ndjson"
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}

	if code := e.Run(context.Background(), cfg); code != ExitClean {
		t.Fatalf("exit code = %d", code)
	}
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d ndjson lines, want 2:\n%s", len(lines), stdout.String())
	}
	if !strings.Contains(lines[0], `"type":"package.result"`) {
		t.Fatalf("unexpected first line: %s", lines[0])
	}
	if !strings.Contains(lines[1], `"type":"run.finished"`) {
		t.Fatalf("unexpected last line: %s", lines[1])
	}
}

func TestExitCodeForRun(t *testing.T) {
	if got := exitCodeForRun(true, true); got != ExitFatal {
		t.Errorf("fatal wins: got %d", got)
	}
	if got := exitCodeForRun(false, true); got != ExitIssues {
		t.Errorf("issues: got %d", got)
	}
	if got := exitCodeForRun(false, false); got != ExitClean {
		t.Errorf("clean: got %d", got)
	}
}
