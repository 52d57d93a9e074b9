package output

import (
	"bytes"
	"testing"

	"plptask/internal/posts"
	"plptask/internal/tasks"
	"plptask/internal/testutil"
	"plptask/internal/theme"
)

func plain(w *bytes.Buffer) theme.Styles {
	return theme.WriterStyles(theme.Light, w)
}

func sampleTasks() []tasks.Task {
	return []tasks.Task{
		{ID: 3, Text: "Walk dog", Completed: false},
		{ID: 2, Text: "Buy milk", Completed: true},
		{ID: 1, Text: "Read\nbook", Completed: false},
	}
}

func TestFormatTaskList_All(t *testing.T) {
	var buf bytes.Buffer
	FormatTaskList(&buf, plain(&buf), sampleTasks(), tasks.FilterAll)
	testutil.Golden(t, "tasklist_all", buf.Bytes())
}

func TestFormatTaskList_ActiveKeepsPositions(t *testing.T) {
	var buf bytes.Buffer
	FormatTaskList(&buf, plain(&buf), sampleTasks(), tasks.FilterActive)
	testutil.Golden(t, "tasklist_active", buf.Bytes())
}

func TestFormatTaskList_Empty(t *testing.T) {
	var buf bytes.Buffer
	FormatTaskList(&buf, plain(&buf), nil, tasks.FilterAll)
	testutil.Golden(t, "tasklist_empty", buf.Bytes())
}

func TestFormatTaskList_NoneCompleted(t *testing.T) {
	var buf bytes.Buffer
	list := []tasks.Task{{ID: 1, Text: "open"}}
	FormatTaskList(&buf, plain(&buf), list, tasks.FilterCompleted)

	want := "Your Tasks (0) [completed]\n" +
		"------------\n" +
		"No completed tasks found.\n" +
		"------------\n" +
		"Total: 1  Active: 1  Completed: 0  Remaining: 1\n" +
		PersistenceNote + "\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestFormatPost(t *testing.T) {
	var buf bytes.Buffer
	FormatPost(&buf, plain(&buf), posts.Post{ID: 7, Title: "qui est esse", Body: "line one\nline two", UserID: 1})
	testutil.Golden(t, "post", buf.Bytes())
}

func TestFormatPostsSummary(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		loaded  int
		total   int
		hasMore bool
		want    string
	}{
		{"more", "", 10, 100, true, "10 of 100 posts loaded, more available.\n"},
		{"end", "", 100, 100, false, "You've reached the end! 100 of 100 posts loaded.\n"},
		{"search", "qui", 20, 20, false, "Showing results for \"qui\" (20 of 20 posts)\nYou've reached the end! 20 of 20 posts loaded.\n"},
		{"no match", "zzz", 0, 0, false, "Showing results for \"zzz\" (0 of 0 posts)\nNo posts found matching \"zzz\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			FormatPostsSummary(&buf, plain(&buf), tt.query, tt.loaded, tt.total, tt.hasMore)
			if buf.String() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, buf.String())
			}
		})
	}
}

func TestNormalizeTitle(t *testing.T) {
	tests := map[string]string{
		"plain":   "plain",
		"a\nb":    "a b",
		"a\r\nb":  "a  b",
		"   ":     "(untitled)",
		"":        "(untitled)",
	}
	for in, want := range tests {
		if got := normalizeTitle(in); got != want {
			t.Errorf("normalizeTitle(%q) = %q, want %q", in, got, want)
		}
	}
}
