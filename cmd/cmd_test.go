package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/masterly/internal/apperr"
	"github.com/abhisek/masterly/internal/llm"
	"github.com/abhisek/masterly/internal/logging"
)

type harness struct {
	t        *testing.T
	dir      string
	provider *llm.MockProvider
}

func newHarness(t *testing.T) *harness {
	for _, k := range []string{"ANTHROPIC_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY", "OPENROUTER_API_KEY", "MASTERLY_LLM_PROVIDER", "MASTERLY_DB"} {
		t.Setenv(k, "")
	}
	return &harness{t: t, dir: t.TempDir(), provider: llm.NewMockProvider()}
}

// run executes one command line against the harness database.
func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	e := &env{
		newProvider: func(_ context.Context, _ llm.Config, rec llm.Recorder, log *logging.Logger) (llm.Provider, error) {
			return llm.WithRecording(h.provider, rec, log), nil
		},
	}
	var out bytes.Buffer
	err := e.execute(h.command(e, &out, args...))
	return out.String(), err
}

func (h *harness) command(e *env, out *bytes.Buffer, args ...string) *cobra.Command {
	root := newRootCmd(e)
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs(append([]string{
		"--db", filepath.Join(h.dir, "masterly.db"),
		"--log-file", filepath.Join(h.dir, "masterly.log"),
		"--env-file", filepath.Join(h.dir, "none.env"),
	}, args...))
	return root
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run(args...)
	require.NoError(h.t, err, out)
	return out
}

func TestUserCommands(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("user", "list")
	assert.Contains(t, out, "No users yet.")

	h.mustRun("user", "add", "Ana", "--select")
	h.mustRun("user", "add", "Bo")
	_, err := h.run("user", "add", "ana")
	assert.Equal(t, apperr.KindDuplicate, apperr.KindOf(err))

	out = h.mustRun("user", "list")
	assert.Contains(t, out, "* Ana")
	assert.Contains(t, out, "  Bo")
	assert.Contains(t, out, "6 pending")

	h.mustRun("user", "select", "BO")
	out = h.mustRun("user", "list")
	assert.Contains(t, out, "* Bo")

	_, err = h.run("user", "select", "Cy")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestQuestionAddAndList(t *testing.T) {
	h := newHarness(t)
	h.mustRun("user", "add", "Ana", "--select")

	out := h.mustRun("question", "add", "--new-topic", "Chemistry", "--text", "H2O is?",
		"-a", "Water", "-b", "Salt", "-c", "Air", "-d", "Gold", "--correct", "a",
		"--difficulty", "1", "--effort", "10")
	assert.Contains(t, out, "(score 1.06)")

	out = h.mustRun("question", "list", "--topic", "chemistry")
	assert.Contains(t, out, "H2O is?")

	out = h.mustRun("topic", "list")
	assert.Contains(t, out, "Chemistry")
	assert.Contains(t, out, "Go Basics")

	_, err := h.run("question", "add", "--topic", "Nope", "--text", "x")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	_, err = h.run("question", "add", "--topic", "Chemistry", "--text", "Bad",
		"-a", "1", "-b", "2", "-c", "3", "-d", "4", "--correct", "E",
		"--difficulty", "1", "--effort", "10")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	out = h.mustRun("stats")
	assert.Contains(t, out, "not answered      7")
}

func TestExportImportReset(t *testing.T) {
	h := newHarness(t)
	h.mustRun("user", "add", "Ana")
	file := filepath.Join(h.dir, "data.json")

	h.mustRun("export", file)
	_, err := os.Stat(file)
	require.NoError(t, err)

	out, err := h.run("reset")
	assert.Error(t, err, out)
	out = h.mustRun("reset", "--yes")
	assert.Contains(t, out, "All data deleted.")

	// Defaults come back on the next start.
	out = h.mustRun("user", "list")
	assert.Contains(t, out, "No users yet.")

	out = h.mustRun("import", file)
	assert.Contains(t, out, "Loaded 1 users, 2 topics and 6 questions")

	out = h.mustRun("export", "-")
	assert.Contains(t, out, `"username": "Ana"`)
}

func TestStatsNeedsUser(t *testing.T) {
	h := newHarness(t)
	_, err := h.run("stats")
	assert.Equal(t, apperr.ReasonNoActiveUser, apperr.ReasonOf(err))
}

func TestFailingCommandClosesStore(t *testing.T) {
	h := newHarness(t)
	e := &env{}
	var out bytes.Buffer
	err := e.execute(h.command(e, &out, "stats"))

	require.Error(t, err)
	assert.Equal(t, apperr.KindPrecondition, apperr.KindOf(err))
	assert.Nil(t, e.store)

	// The next command opens the same file without trouble.
	h.mustRun("user", "list")
}

func TestHistoryEmpty(t *testing.T) {
	h := newHarness(t)
	out := h.mustRun("history", "--all")
	assert.Contains(t, out, "No quizzes yet.")
}

func TestDraftWithoutProvider(t *testing.T) {
	h := newHarness(t)
	_, err := h.run("question", "draft", "--topic", "Rivers")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no LLM provider configured")
}

func TestDraftSaveAndLLMList(t *testing.T) {
	h := newHarness(t)
	t.Setenv("MASTERLY_LLM_PROVIDER", "mock")
	h.provider.Push(llm.MockResponse{
		Content: []byte(`{"question":"Longest river in Africa?","options":{"A":"Nile","B":"Congo","C":"Niger","D":"Zambezi"},` +
			`"correct":"A","difficulty":2,"effort_seconds":20,"rationale":"The Nile is about 6650 km long."}`),
		Usage: llm.Usage{InputTokens: 300, OutputTokens: 80},
	})

	out := h.mustRun("question", "draft", "--topic", "Rivers", "--save")
	assert.Contains(t, out, "Longest river in Africa?")
	assert.Contains(t, out, " * A) Nile")
	assert.Contains(t, out, "Saved as")

	out = h.mustRun("question", "list", "--topic", "rivers")
	assert.Contains(t, out, "Longest river in Africa?")

	out = h.mustRun("llm", "list")
	assert.Contains(t, out, "question-draft")
	assert.Contains(t, out, "Total (partial)")
}

func TestVersionSkipsSetup(t *testing.T) {
	root := newRootCmd(&env{})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})
	require.NoError(t, root.Execute())
	assert.Equal(t, "masterly (devel)\n", out.String())
}
