package tui

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/bassamadnan/mailsort/classifier"
	"github.com/bassamadnan/mailsort/config"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeClassifier struct {
	mu      sync.Mutex
	calls   [][]string
	results []classifier.Result
	err     error
}

func (f *fakeClassifier) Classify(_ context.Context, emails []string) ([]classifier.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, emails)
	return f.results, f.err
}

type fakeImporter struct {
	bodies []string
	err    error
}

func (f *fakeImporter) FetchBodies(context.Context) ([]string, error) {
	return f.bodies, f.err
}

func newTestModel(c Classifier, imp Importer) Model {
	m := NewInitialModel(context.Background(), c, imp, config.Defaults(), zap.NewNop())
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(Model)
}

func key(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	next, ok := updated.(Model)
	require.True(t, ok, "Update should return a Model")
	return next, cmd
}

// runCmd executes cmd, expanding batches, and returns every message produced.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, runCmd(c)...)
		}
		return msgs
	}
	return []tea.Msg{msg}
}

func findMsg[T tea.Msg](t *testing.T, msgs []tea.Msg) T {
	t.Helper()
	for _, msg := range msgs {
		if typed, ok := msg.(T); ok {
			return typed
		}
	}
	var zero T
	t.Fatalf("no %T among %d messages", zero, len(msgs))
	return zero
}

func TestClassifySuccess(t *testing.T) {
	fc := &fakeClassifier{results: []classifier.Result{{Email: "hi", PredictedCategory: "Fees"}}}
	m := newTestModel(fc, nil)
	m.input.SetValue("hi")

	m, cmd := update(t, m, key(tea.KeyCtrlS))
	require.NotNil(t, cmd)
	assert.True(t, m.loading, "loading should be set while the request is in flight")
	assert.Empty(t, m.results)

	done := findMsg[classifiedMsg](t, runCmd(cmd))
	m, _ = update(t, m, done)

	assert.False(t, m.loading)
	assert.Equal(t, []classifier.Result{{Email: "hi", PredictedCategory: "Fees"}}, m.results)
	assert.Equal(t, noticeClassified, m.notice)
	assert.False(t, m.noticeIsError)
	assert.Equal(t, [][]string{{"hi"}}, fc.calls)
}

func TestClassifyFailureShowsSentinel(t *testing.T) {
	fc := &fakeClassifier{err: errors.New("connection refused")}
	m := newTestModel(fc, nil)
	m.input.SetValue("first\n\nsecond")

	m, cmd := update(t, m, key(tea.KeyCtrlS))
	assert.True(t, m.loading)

	m, _ = update(t, m, findMsg[classifiedMsg](t, runCmd(cmd)))

	assert.False(t, m.loading)
	assert.Equal(t, []classifier.Result{{Email: "Error", PredictedCategory: "Failed"}}, m.results)
	assert.Equal(t, noticeFailed, m.notice)
	assert.True(t, m.noticeIsError)
	assert.Equal(t, [][]string{{"first", "second"}}, fc.calls)
}

func TestClassifyAgainstHTTPService(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    []classifier.Result
	}{
		{
			name: "success",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`[{"email":"hi","predicted_category":"Fees"}]`))
			},
			want: []classifier.Result{{Email: "hi", PredictedCategory: "Fees"}},
		},
		{
			name: "null body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`null`))
			},
			want: classifier.FailureResult(),
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			want: classifier.FailureResult(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			m := newTestModel(classifier.NewClient(srv.URL+"/predict", srv.Client(), zap.NewNop()), nil)
			m.input.SetValue("hi")

			m, cmd := update(t, m, key(tea.KeyCtrlS))
			assert.True(t, m.loading)
			m, _ = update(t, m, findMsg[classifiedMsg](t, runCmd(cmd)))

			assert.False(t, m.loading)
			assert.Equal(t, tt.want, m.results)
		})
	}
}

func TestClassifyEmptyInputIsNoop(t *testing.T) {
	fc := &fakeClassifier{}
	m := newTestModel(fc, nil)
	m.results = []classifier.Result{{Email: "kept", PredictedCategory: "General"}}
	m.input.SetValue("  \n\n\t\n ")

	m, cmd := update(t, m, key(tea.KeyCtrlS))

	assert.Nil(t, cmd)
	assert.False(t, m.loading)
	assert.Empty(t, fc.calls)
	assert.Equal(t, []classifier.Result{{Email: "kept", PredictedCategory: "General"}}, m.results)
}

func TestClassifyIgnoredWhileLoading(t *testing.T) {
	fc := &fakeClassifier{}
	m := newTestModel(fc, nil)
	m.input.SetValue("hi")

	m, first := update(t, m, key(tea.KeyCtrlS))
	require.NotNil(t, first)

	m, second := update(t, m, key(tea.KeyCtrlS))
	assert.Nil(t, second)
	assert.True(t, m.loading)
}

func TestNoticeIsModal(t *testing.T) {
	fc := &fakeClassifier{results: []classifier.Result{{Email: "hi", PredictedCategory: "Fees"}}}
	m := newTestModel(fc, nil)
	m.input.SetValue("hi")
	m, cmd := update(t, m, key(tea.KeyCtrlS))
	m, _ = update(t, m, findMsg[classifiedMsg](t, runCmd(cmd)))
	require.NotEmpty(t, m.notice)

	m, cmd = update(t, m, key(tea.KeyCtrlS))
	assert.Nil(t, cmd, "keys are swallowed while a notice is shown")
	assert.False(t, m.loading)
	assert.Contains(t, m.View(), noticeClassified)

	m, _ = update(t, m, key(tea.KeyEnter))
	assert.Empty(t, m.notice)
	assert.Equal(t, "hi", m.input.Value(), "dismissing the notice must not edit the input")
}

func TestCopyResults(t *testing.T) {
	var copied string
	oldClipboard := clipboardWriteAll
	clipboardWriteAll = func(s string) error { copied = s; return nil }
	defer func() { clipboardWriteAll = oldClipboard }()

	m := newTestModel(&fakeClassifier{}, nil)
	m.setResults([]classifier.Result{
		{Email: "a", PredictedCategory: "Fees"},
		{Email: "b", PredictedCategory: "General"},
	})

	m, _ = update(t, m, key(tea.KeyCtrlY))

	assert.Equal(t, "a → Fees\nb → General", copied)
	assert.Equal(t, noticeCopied, m.notice)
}

func TestCopyWithoutResults(t *testing.T) {
	called := false
	oldClipboard := clipboardWriteAll
	clipboardWriteAll = func(string) error { called = true; return nil }
	defer func() { clipboardWriteAll = oldClipboard }()

	m := newTestModel(&fakeClassifier{}, nil)
	m, cmd := update(t, m, key(tea.KeyCtrlY))

	assert.False(t, called)
	assert.Empty(t, m.notice)
	assert.True(t, m.statusIsTemp)
	assert.True(t, m.statusIsError, "nothing to copy is reported in the error style")
	assert.Contains(t, m.statusBarText, "Nothing to copy")
	assert.NotNil(t, cmd)
}

func TestStaleStatusTimerDoesNotClearNewerStatus(t *testing.T) {
	m := newTestModel(&fakeClassifier{}, nil)

	m, _ = update(t, m, key(tea.KeyCtrlY))
	first := m.tempStatusSeq
	m, _ = update(t, m, key(tea.KeyCtrlG))
	require.NotEqual(t, first, m.tempStatusSeq)

	m, _ = update(t, m, clearTempStatusMsg{seq: first})
	assert.True(t, m.statusIsTemp, "an older timer must not clear the latest status")
	assert.Contains(t, m.statusBarText, "Gmail import is off")

	m, _ = update(t, m, clearTempStatusMsg{seq: m.tempStatusSeq})
	assert.False(t, m.statusIsTemp)
	assert.False(t, m.statusIsError)
	assert.NotContains(t, m.statusBarText, "Gmail import is off")
}

func TestCopyFailure(t *testing.T) {
	oldClipboard := clipboardWriteAll
	clipboardWriteAll = func(string) error { return errors.New("no clipboard utility") }
	defer func() { clipboardWriteAll = oldClipboard }()

	m := newTestModel(&fakeClassifier{}, nil)
	m.setResults([]classifier.Result{{Email: "a", PredictedCategory: "Fees"}})
	m, _ = update(t, m, key(tea.KeyCtrlY))

	assert.Equal(t, noticeCopyFailed, m.notice)
	assert.True(t, m.noticeIsError)
}

func TestImportFillsInput(t *testing.T) {
	imp := &fakeImporter{bodies: []string{"Fee receipt missing", "Wifi down in\n\nblock C"}}
	m := newTestModel(&fakeClassifier{}, imp)

	m, cmd := update(t, m, key(tea.KeyCtrlG))
	assert.True(t, m.importing)

	m, _ = update(t, m, findMsg[importedMsg](t, runCmd(cmd)))
	assert.False(t, m.importing)
	assert.Equal(t, []string{"Fee receipt missing", "Wifi down in\nblock C"}, classifier.Split(m.input.Value()))
}

func TestImportFailure(t *testing.T) {
	m := newTestModel(&fakeClassifier{}, &fakeImporter{err: errors.New("token expired")})

	m, cmd := update(t, m, key(tea.KeyCtrlG))
	m, _ = update(t, m, findMsg[importedMsg](t, runCmd(cmd)))

	assert.False(t, m.importing)
	assert.Equal(t, noticeImportError, m.notice)
}

func TestImportDisabled(t *testing.T) {
	m := newTestModel(&fakeClassifier{}, nil)

	m, _ = update(t, m, key(tea.KeyCtrlG))

	assert.False(t, m.importing)
	assert.Contains(t, m.statusBarText, "Gmail import is off")
	assert.True(t, m.statusIsError)
}

func TestViewShowsResultsTable(t *testing.T) {
	m := newTestModel(&fakeClassifier{}, nil)
	m.setResults([]classifier.Result{{Email: "My hostel room has no water", PredictedCategory: "Hostel"}})

	view := m.View()
	assert.Contains(t, view, "Results:")
	assert.Contains(t, view, "My hostel room has no water")
	assert.Contains(t, view, "Hostel")
}

func TestViewLoadingButton(t *testing.T) {
	m := newTestModel(&fakeClassifier{}, nil)
	m.input.SetValue("hi")
	m, _ = update(t, m, key(tea.KeyCtrlS))

	assert.Contains(t, m.View(), "Processing...")
}

func TestQuit(t *testing.T) {
	m := newTestModel(&fakeClassifier{}, nil)
	_, cmd := update(t, m, key(tea.KeyCtrlC))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}
