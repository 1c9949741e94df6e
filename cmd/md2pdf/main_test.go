package main

// Notes:
// - runMain is exercised end to end with a mock converter and a recording
//   opener; no browser is launched. Real rendering is covered by the
//   integration tests of the md2pdf package.
// - Output files are written into t.TempDir() so tests can run in parallel.

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	md2pdf "github.com/alnah/md2pdf-angebot"
	"github.com/alnah/md2pdf-angebot/internal/hints"
)

var fixedNow = time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)

// mockConverter records inputs and returns fake PDFs.
type mockConverter struct {
	mu     sync.Mutex
	inputs []md2pdf.Input
	errs   map[string]error // by Input.Name
	closed bool
}

func (m *mockConverter) Convert(_ context.Context, in md2pdf.Input) (*md2pdf.ConvertResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inputs = append(m.inputs, in)
	if err := m.errs[in.Name]; err != nil {
		return nil, err
	}
	res := &md2pdf.ConvertResult{HTML: []byte("<html>" + in.Name + "</html>")}
	if !in.HTMLOnly {
		res.PDF = []byte("%PDF-1.4 " + in.Name)
		res.Pages = 1
	}
	return res, nil
}

func (m *mockConverter) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// recordingOpener remembers what would have been opened.
type recordingOpener struct {
	mu    sync.Mutex
	paths []string
	err   error
}

func (o *recordingOpener) Open(_ context.Context, path string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.paths = append(o.paths, path)
	return o.err
}

type harness struct {
	env    *Environment
	conv   *mockConverter
	opener *recordingOpener
	stdout *bytes.Buffer
	logs   *observer.ObservedLogs
	dir    string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	h := &harness{
		conv:   &mockConverter{},
		opener: &recordingOpener{},
		stdout: &bytes.Buffer{},
		logs:   logs,
		dir:    t.TempDir(),
	}
	h.env = &Environment{
		Now:       func() time.Time { return fixedNow },
		Stdout:    h.stdout,
		Stderr:    &bytes.Buffer{},
		Logger:    zap.New(core),
		Opener:    h.opener,
		WorkDir:   h.dir,
		ConfigDir: t.TempDir(),
		NewConverter: func(...md2pdf.Option) (Converter, error) {
			return h.conv, nil
		},
	}
	return h
}

func (h *harness) write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(h.dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func (h *harness) run(args ...string) int {
	return runMain(append([]string{"md2pdf"}, args...), h.env)
}

// ---------------------------------------------------------------------------
// TestRunMain_Usage - Help, version, and argument errors
// ---------------------------------------------------------------------------

func TestRunMain_Usage(t *testing.T) {
	t.Parallel()

	t.Run("no arguments prints usage", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)
		if code := h.run(); code != ExitSuccess {
			t.Errorf("exit = %d, want %d", code, ExitSuccess)
		}
		if !strings.Contains(h.stdout.String(), "Usage: md2pdf") {
			t.Errorf("stdout missing usage: %q", h.stdout.String())
		}
		if len(h.conv.inputs) != 0 {
			t.Error("converter should not run")
		}
	})

	t.Run("help flag", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)
		if code := h.run("--help", "a.md"); code != ExitSuccess {
			t.Errorf("exit = %d", code)
		}
		if !strings.Contains(h.stdout.String(), "--angebot") {
			t.Error("usage should list --angebot")
		}
	})

	t.Run("version flag", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)
		if code := h.run("--version"); code != ExitSuccess {
			t.Errorf("exit = %d", code)
		}
		if got := h.stdout.String(); got != "md2pdf "+Version+"\n" {
			t.Errorf("stdout = %q", got)
		}
	})

	t.Run("unknown flag", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)
		if code := h.run("--bogus", "a.md"); code != ExitUsage {
			t.Errorf("exit = %d, want %d", code, ExitUsage)
		}
		if !strings.Contains(h.env.Stderr.(*bytes.Buffer).String(), "md2pdf --help") {
			t.Error("stderr should point to --help")
		}
	})

	t.Run("invalid engine", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)
		if code := h.run("--engine", "webkit", "a.md"); code != ExitUsage {
			t.Errorf("exit = %d, want %d", code, ExitUsage)
		}
	})

	t.Run("output with several inputs", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)
		a := h.write(t, "a.md", "# A")
		b := h.write(t, "b.md", "# B")
		if code := h.run("-o", "out.pdf", a, b); code != ExitUsage {
			t.Errorf("exit = %d, want %d", code, ExitUsage)
		}
		if len(h.conv.inputs) != 0 {
			t.Error("converter should not run")
		}
	})
}

// ---------------------------------------------------------------------------
// TestRunMain_Convert - Single and batch conversion
// ---------------------------------------------------------------------------

func TestRunMain_Convert(t *testing.T) {
	t.Parallel()

	t.Run("single file next to input", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)
		in := h.write(t, "notes.md", "# Notes")

		if code := h.run(in); code != ExitSuccess {
			t.Fatalf("exit = %d, logs: %v", code, h.logs.All())
		}

		out := filepath.Join(h.dir, "notes.pdf")
		data, err := os.ReadFile(out)
		if err != nil {
			t.Fatalf("read output: %v", err)
		}
		if string(data) != "%PDF-1.4 notes" {
			t.Errorf("pdf = %q", data)
		}
		if got := h.stdout.String(); got != "Created "+out+"\n" {
			t.Errorf("stdout = %q", got)
		}
		if len(h.opener.paths) != 1 || h.opener.paths[0] != out {
			t.Errorf("opened = %v", h.opener.paths)
		}
		if !h.conv.closed {
			t.Error("converter not closed")
		}

		in0 := h.conv.inputs[0]
		if in0.Markdown != "# Notes" || in0.Name != "notes" || in0.SourceDir != h.dir {
			t.Errorf("input = %+v", in0)
		}
		if !in0.ShowHeaderFooter || in0.Angebot || in0.Branding != nil || !in0.Now.Equal(fixedNow) {
			t.Errorf("input options = %+v", in0)
		}
	})

	t.Run("explicit output and no-open", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)
		in := h.write(t, "notes.md", "# Notes")
		out := filepath.Join(h.dir, "sub", "dir", "final.pdf")

		if code := h.run("--no-open", "--no-header", in, out); code != ExitSuccess {
			t.Fatalf("exit = %d, logs: %v", code, h.logs.All())
		}
		if _, err := os.Stat(out); err != nil {
			t.Errorf("output missing: %v", err)
		}
		if len(h.opener.paths) != 0 {
			t.Errorf("opened = %v, want none", h.opener.paths)
		}
		if h.conv.inputs[0].ShowHeaderFooter {
			t.Error("--no-header not applied")
		}
	})

	t.Run("batch continues after failure", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)
		h.write(t, "a.md", "# A")
		h.write(t, "b.md", "# B")
		h.write(t, "c.md", "# C")
		h.conv.errs = map[string]error{"b": md2pdf.ErrEmptyMarkdown}

		code := h.run("--no-open", filepath.Join(h.dir, "*.md"), filepath.Join(h.dir, "missing.md"))
		if code != ExitFailure {
			t.Errorf("exit = %d, want %d", code, ExitFailure)
		}

		for _, name := range []string{"a.pdf", "c.pdf"} {
			if _, err := os.Stat(filepath.Join(h.dir, name)); err != nil {
				t.Errorf("%s missing: %v", name, err)
			}
		}
		if _, err := os.Stat(filepath.Join(h.dir, "b.pdf")); !errors.Is(err, os.ErrNotExist) {
			t.Error("b.pdf should not exist")
		}
		if !strings.HasSuffix(h.stdout.String(), "\n2 succeeded, 2 failed\n") {
			t.Errorf("stdout = %q", h.stdout.String())
		}

		failures := h.logs.FilterMessage("conversion failed").All()
		if len(failures) != 2 {
			t.Fatalf("failures logged = %d, want 2", len(failures))
		}
		if failures[1].ContextMap()["kind"] != "input" {
			t.Errorf("missing file kind = %v", failures[1].ContextMap()["kind"])
		}
	})

	t.Run("quiet suppresses status lines", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)
		h.write(t, "a.md", "# A")
		h.write(t, "b.md", "# B")

		if code := h.run("-q", "--no-open", filepath.Join(h.dir, "*.md")); code != ExitSuccess {
			t.Fatalf("exit = %d", code)
		}
		if h.stdout.Len() != 0 {
			t.Errorf("stdout = %q, want empty", h.stdout.String())
		}
	})

	t.Run("verbose reports pages", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)
		in := h.write(t, "a.md", "# A")

		if code := h.run("-v", "--no-open", in); code != ExitSuccess {
			t.Fatalf("exit = %d", code)
		}
		if !strings.Contains(h.stdout.String(), "(1 pages, 0s)") {
			t.Errorf("stdout = %q", h.stdout.String())
		}
	})

	t.Run("open failure is a warning", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)
		h.opener.err = errors.New("no viewer")
		in := h.write(t, "a.md", "# A")

		if code := h.run(in); code != ExitSuccess {
			t.Errorf("exit = %d, want success", code)
		}
		if h.logs.FilterMessage("cannot open PDF").Len() != 1 {
			t.Errorf("expected open warning, got %v", h.logs.All())
		}
	})

	t.Run("directory input fails", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)
		sub := filepath.Join(h.dir, "docs.md")
		if err := os.Mkdir(sub, 0o750); err != nil {
			t.Fatal(err)
		}
		if code := h.run("--no-open", sub); code != ExitFailure {
			t.Errorf("exit = %d, want %d", code, ExitFailure)
		}
	})

	t.Run("no glob matches", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)
		if code := h.run(filepath.Join(h.dir, "*.md")); code != ExitSuccess {
			t.Errorf("exit = %d, want %d", code, ExitSuccess)
		}
		if h.logs.FilterMessage("no files match pattern"+hints.ForNoMatches()).Len() != 1 {
			t.Errorf("expected no-match warning, got %v", h.logs.All())
		}
	})
}

// ---------------------------------------------------------------------------
// TestRunMain_SaveHTML - Debug HTML instead of PDF
// ---------------------------------------------------------------------------

func TestRunMain_SaveHTML(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	in := h.write(t, "notes.md", "# Notes")

	if code := h.run("--save-html", in); code != ExitSuccess {
		t.Fatalf("exit = %d, logs: %v", code, h.logs.All())
	}

	data, err := os.ReadFile(filepath.Join(h.dir, DebugHTMLName))
	if err != nil {
		t.Fatalf("read debug html: %v", err)
	}
	if string(data) != "<html>notes</html>" {
		t.Errorf("html = %q", data)
	}
	if _, err := os.Stat(filepath.Join(h.dir, "notes.pdf")); !errors.Is(err, os.ErrNotExist) {
		t.Error("no PDF should be written")
	}
	if len(h.opener.paths) != 0 {
		t.Errorf("opened = %v, want none", h.opener.paths)
	}
	if !h.conv.inputs[0].HTMLOnly {
		t.Error("HTMLOnly not requested")
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_Angebot - Branding is loaded once and passed to every file
// ---------------------------------------------------------------------------

func TestRunMain_Angebot(t *testing.T) {
	t.Parallel()

	t.Run("config next to executable", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)
		cfg := "company:\n  name: Beispiel AG\ncolors:\n  primary: \"#aa0000\"\n"
		if err := os.WriteFile(filepath.Join(h.env.ConfigDir, "angebot.yaml"), []byte(cfg), 0o600); err != nil {
			t.Fatal(err)
		}
		h.write(t, "a.md", "**Auftraggeber:** Kunde\n\n# A")
		h.write(t, "b.md", "# B")

		if code := h.run("--angebot", "--no-open", filepath.Join(h.dir, "*.md")); code != ExitSuccess {
			t.Fatalf("exit = %d, logs: %v", code, h.logs.All())
		}

		if len(h.conv.inputs) != 2 {
			t.Fatalf("inputs = %d", len(h.conv.inputs))
		}
		first, second := h.conv.inputs[0], h.conv.inputs[1]
		if !first.Angebot || first.Branding == nil {
			t.Fatalf("first input = %+v", first)
		}
		if first.Branding != second.Branding {
			t.Error("branding should be loaded once and shared")
		}
		if first.Branding.CompanyName != "Beispiel AG" || first.Branding.PrimaryColor != "#aa0000" {
			t.Errorf("branding = %+v", first.Branding)
		}
		if first.Branding.BankName != "Musterbank" {
			t.Errorf("unset fields should keep defaults, got bank %q", first.Branding.BankName)
		}
	})

	t.Run("explicit config path", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)
		cfgPath := h.write(t, "brand.yml", "company:\n  name: Explizit GmbH\n")
		in := h.write(t, "a.md", "# A")

		if code := h.run("--angebot", "--no-open", "-c", cfgPath, in); code != ExitSuccess {
			t.Fatalf("exit = %d", code)
		}
		if got := h.conv.inputs[0].Branding.CompanyName; got != "Explizit GmbH" {
			t.Errorf("company = %q", got)
		}
	})

	t.Run("malformed config falls back to defaults", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)
		if err := os.WriteFile(filepath.Join(h.env.ConfigDir, "angebot.yaml"), []byte("company: [oops"), 0o600); err != nil {
			t.Fatal(err)
		}
		in := h.write(t, "a.md", "# A")

		if code := h.run("--angebot", "--no-open", in); code != ExitSuccess {
			t.Fatalf("exit = %d", code)
		}
		if got := h.conv.inputs[0].Branding.CompanyName; got != "Musterfirma GmbH" {
			t.Errorf("company = %q, want default", got)
		}
		if h.logs.FilterLevelExact(zapcore.WarnLevel).Len() == 0 {
			t.Error("expected a config warning")
		}
	})

	t.Run("normal mode skips config", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)
		in := h.write(t, "a.md", "# A")
		if code := h.run("--no-open", in); code != ExitSuccess {
			t.Fatalf("exit = %d", code)
		}
		if h.conv.inputs[0].Branding != nil {
			t.Error("branding should be nil outside quotation mode")
		}
	})
}

// ---------------------------------------------------------------------------
// TestWithHint - Hints for browser and timeout errors
// ---------------------------------------------------------------------------

func TestWithHint(t *testing.T) {
	t.Parallel()

	browser := withHint(md2pdf.ErrBrowserConnect, "chromedp")
	if !errors.Is(browser, md2pdf.ErrBrowserConnect) {
		t.Error("hint must keep the error chain")
	}
	if !strings.Contains(browser.Error(), "hint:") {
		t.Errorf("missing hint: %q", browser)
	}

	timeout := withHint(context.DeadlineExceeded, "rod")
	if !strings.Contains(timeout.Error(), "--timeout") {
		t.Errorf("missing timeout hint: %q", timeout)
	}

	plain := errors.New("plain")
	if withHint(plain, "rod") != plain {
		t.Error("other errors should pass through")
	}
}
