package template

import (
	"errors"
	"reflect"
	"testing"
)

func TestExpand(t *testing.T) {
	fields := Fields{Target: "/home/user/notes.txt", Name: "Editor"}

	tests := []struct {
		name string
		exec string
		want []string
	}{
		{
			name: "substitutes target in place",
			exec: "editor --readonly %f",
			want: []string{"editor", "--readonly", "/home/user/notes.txt"},
		},
		{
			name: "uppercase and uri codes too",
			exec: "browser %U",
			want: []string{"browser", "/home/user/notes.txt"},
		},
		{
			name: "appends target when no code present",
			exec: "editor --readonly",
			want: []string{"editor", "--readonly", "/home/user/notes.txt"},
		},
		{
			name: "embedded code inside an argument",
			exec: "viewer --file=%f",
			want: []string{"viewer", "--file=/home/user/notes.txt"},
		},
		{
			name: "every code substitutes",
			exec: "app %f %u",
			want: []string{"app", "/home/user/notes.txt", "/home/user/notes.txt"},
		},
		{
			name: "escaped percent",
			exec: "app --ratio=100%% %f",
			want: []string{"app", "--ratio=100%", "/home/user/notes.txt"},
		},
		{
			name: "name code",
			exec: "runner --title %c %f",
			want: []string{"runner", "--title", "Editor", "/home/user/notes.txt"},
		},
		{
			name: "unknown standalone code drops",
			exec: "app %d %f",
			want: []string{"app", "/home/user/notes.txt"},
		},
		{
			name: "quoted argument stays whole",
			exec: `sh -c "editor %f"`,
			want: []string{"sh", "-c", "editor /home/user/notes.txt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Expand(tt.exec, fields)
			if err != nil {
				t.Fatalf("Expand failed: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expand(%q) = %v, want %v", tt.exec, got, tt.want)
			}
		})
	}
}

func TestExpandIconCode(t *testing.T) {
	got, err := Expand("app %i %f", Fields{Target: "/tmp/f", Icon: "app-icon"})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"app", "--icon", "app-icon", "/tmp/f"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	// Without an icon the code disappears entirely.
	got, err = Expand("app %i %f", Fields{Target: "/tmp/f"})
	if err != nil {
		t.Fatal(err)
	}
	want = []string{"app", "/tmp/f"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestExpandEmptyCommand(t *testing.T) {
	for _, exec := range []string{"", "   ", "%f"} {
		if _, err := Expand(exec, Fields{}); !errors.Is(err, ErrEmptyCommand) {
			t.Errorf("Expand(%q) err = %v, want ErrEmptyCommand", exec, err)
		}
	}
}

func TestExpandNoTargetNeeded(t *testing.T) {
	got, err := Expand("xterm -e htop", Fields{})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"xterm", "-e", "htop"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
