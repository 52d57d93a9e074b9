package tasks

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sample() []Task {
	return []Task{
		{ID: 5, Text: "e", Completed: false},
		{ID: 4, Text: "d", Completed: true},
		{ID: 3, Text: "c", Completed: false},
		{ID: 2, Text: "b", Completed: true},
		{ID: 1, Text: "a", Completed: false},
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		filter Filter
		want   []int64
	}{
		{FilterAll, []int64{5, 4, 3, 2, 1}},
		{FilterActive, []int64{5, 3, 1}},
		{FilterCompleted, []int64{4, 2}},
	}
	for _, tt := range tests {
		t.Run(string(tt.filter), func(t *testing.T) {
			var got []int64
			for _, task := range Apply(sample(), tt.filter) {
				got = append(got, task.ID)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ids mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApply_DoesNotModifyInput(t *testing.T) {
	in := sample()
	Apply(in, FilterCompleted)
	if diff := cmp.Diff(sample(), in); diff != "" {
		t.Errorf("input modified:\n%s", diff)
	}
}

func TestCompute(t *testing.T) {
	got := Compute(sample())
	want := Stats{All: 5, Active: 3, Completed: 2, Remaining: 3}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
	if empty := Compute(nil); empty != (Stats{}) {
		t.Errorf("expected zero stats, got %+v", empty)
	}
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		in      string
		want    Filter
		wantErr bool
	}{
		{"", FilterAll, false},
		{"all", FilterAll, false},
		{" Active ", FilterActive, false},
		{"COMPLETED", FilterCompleted, false},
		{"done", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFilter(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFilter(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFilter(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEmptyMessage(t *testing.T) {
	if got := EmptyMessage(0, FilterActive); got != "No tasks yet. Add your first task above!" {
		t.Errorf("unexpected message %q", got)
	}
	if got := EmptyMessage(3, FilterCompleted); got != "No completed tasks found." {
		t.Errorf("unexpected message %q", got)
	}
}

func TestDecodeSnapshot(t *testing.T) {
	list, err := decodeSnapshot(`[{"id":1714557600000,"text":"Buy milk","completed":false,"createdAt":"2024-05-01T10:00:00.000Z"}]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 1 || list[0].ID != 1714557600000 || list[0].Created().IsZero() {
		t.Errorf("unexpected decode %+v", list)
	}

	for _, bad := range []string{`{}`, `[{"id":1}]`, `[{"id":1,"text":"","completed":false,"createdAt":""}]`, `not json`} {
		if _, err := decodeSnapshot(bad); err == nil {
			t.Errorf("expected %s to be rejected", bad)
		}
	}
}
