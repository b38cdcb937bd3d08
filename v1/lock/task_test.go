package lock

import (
	"strconv"
	"testing"
	"time"
)

func TestTaskKeyDeterministic(t *testing.T) {
	task := Task{Name: "Report", Timeout: time.Minute}
	a := task.Key([]string{"acct-1", "2026-08"})
	b := task.Key([]string{"acct-1", "2026-08"})
	if a != b {
		t.Fatalf("same inputs produced %q and %q", a, b)
	}
	if a != "lock:Report:acct-1:2026-08" {
		t.Fatalf("unexpected key %q", a)
	}
}

func TestTaskKeyDistinctNames(t *testing.T) {
	args := []string{"acct-1"}
	a := Task{Name: "Report"}.Key(args)
	b := Task{Name: "Cleanup"}.Key(args)
	if a == b {
		t.Fatalf("distinct task names collided on %q", a)
	}
}

func TestTaskKeyDropsEmptyComponents(t *testing.T) {
	if got := (Task{Name: "Report"}).Key(nil); got != "lock:Report" {
		t.Fatalf("expected empty identifier dropped, got %q", got)
	}
	if got := (Task{}).Key([]string{"x"}); got != "lock:x" {
		t.Fatalf("expected empty name dropped, got %q", got)
	}
}

func TestTaskKeyIdentifierOverride(t *testing.T) {
	task := Task{
		Name: "Import",
		Identifier: func(args []string) string {
			return strconv.Itoa(len(args))
		},
	}
	if got := task.Key([]string{"a", "b", "c"}); got != "lock:Import:3" {
		t.Fatalf("override not applied, got %q", got)
	}
}
