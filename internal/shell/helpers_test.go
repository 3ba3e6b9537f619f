package shell

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/app"
)

// scriptedPrompter answers prompts from a fixed script. A Choose step names
// the option label to pick. Running out of answers behaves like closed stdin.
type scriptedPrompter struct {
	t       *testing.T
	answers []string
	asked   []string
}

func script(t *testing.T, answers ...string) *scriptedPrompter {
	return &scriptedPrompter{t: t, answers: answers}
}

func (p *scriptedPrompter) next(prompt string) (string, bool) {
	p.asked = append(p.asked, prompt)
	if len(p.answers) == 0 {
		return "", false
	}
	v := p.answers[0]
	p.answers = p.answers[1:]
	return v, true
}

func (p *scriptedPrompter) Choose(title string, options []string) (int, error) {
	p.t.Helper()
	v, ok := p.next(title)
	if !ok {
		return -1, ErrQuit
	}
	for i, opt := range options {
		if opt == v {
			return i, nil
		}
	}
	p.t.Fatalf("menu %q has no option %q (options: %v)", title, v, options)
	return -1, nil
}

func (p *scriptedPrompter) Ask(label string) (string, error) {
	v, ok := p.next(label)
	if !ok {
		return "", ErrQuit
	}
	return v, nil
}

func (p *scriptedPrompter) remaining() int { return len(p.answers) }

// testConfig writes a config that keeps the store in memory and the log in
// the temp dir.
func testConfig(t *testing.T) string {
	t.Helper()
	for _, name := range []string{"STORE_DRIVER", "STORE_DSN", "SQLITE_PATH", "LOG_OUTPUT", "LOG_MODE", "LOG_LEVEL", "OTEL_ENABLED", "GO_ENV"} {
		t.Setenv(name, "")
	}
	dir := t.TempDir()
	t.Chdir(dir)
	body := strings.Join([]string{
		"env: test",
		"log:",
		"  mode: test",
		"  output: [" + filepath.ToSlash(filepath.Join(dir, "test.log")) + "]",
		"store:",
		"  driver: sqlite",
		`  path: ":memory:"`,
		"",
	}, "\n")
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func newTestApp(t *testing.T) *app.App {
	t.Helper()
	a, err := app.New(app.Options{ConfigPath: testConfig(t)})
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a
}

type sessionFixture struct {
	app    *app.App
	out    *bytes.Buffer
	prompt *scriptedPrompter
}

func runSession(t *testing.T, a *app.App, answers ...string) *sessionFixture {
	t.Helper()
	f := &sessionFixture{app: a, out: &bytes.Buffer{}, prompt: script(t, answers...)}
	s := NewSession(a.Aggregates, a.Metrics, f.prompt, NewPrinter(f.out))
	require.NoError(t, s.Run(t.Context()))
	return f
}
