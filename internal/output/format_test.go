package output_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"todocli/internal/api"
	"todocli/internal/output"
	"todocli/internal/testutil"
)

func TestMain(m *testing.M) {
	// Goldens hold plain text regardless of the terminal running the tests.
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func TestFormatTask_List(t *testing.T) {
	tasks := []api.Task{
		{ID: 10, Title: "Buy milk"},
		{ID: 11, Title: "Walk dog", Completed: true},
		{ID: 12, Title: "   "},
	}

	var buf bytes.Buffer
	for i, task := range tasks {
		output.FormatTask(&buf, i+1, task)
	}

	testutil.Golden(t, "list", buf.String())
}

func TestFormatTask_MultilineTitleFlattened(t *testing.T) {
	var buf bytes.Buffer
	output.FormatTask(&buf, 1, api.Task{ID: 1, Title: "line one\nline two"})
	if got, want := buf.String(), "   1  [ ]  line one line two\n"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestFormatTaskDetail(t *testing.T) {
	var buf bytes.Buffer
	output.FormatTaskDetail(&buf, api.Task{
		ID:          7,
		Title:       "Buy milk",
		Description: "2 liters",
		Completed:   true,
	})
	testutil.Golden(t, "detail", buf.String())
}

func TestFormatTaskDetail_NoDescription(t *testing.T) {
	var buf bytes.Buffer
	output.FormatTaskDetail(&buf, api.Task{ID: 3, Title: "Call mom"})
	testutil.Golden(t, "detail_open", buf.String())
}
