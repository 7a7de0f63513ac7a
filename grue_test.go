package grue

import (
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

func TestWithStack(t *testing.T) {
	if got := WithStack(nil); got != nil {
		t.Errorf("got %v, want nil", got)
	}
	err := WithStack(os.ErrNotExist)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("got %v, want it to wrap %v", err, os.ErrNotExist)
	}
	if again := WithStack(err); again != err {
		t.Errorf("got %v, want the same error back", again)
	}
	if trace := StackTrace(err); !strings.Contains(trace, "TestWithStack") {
		t.Errorf("got %q, want a trace mentioning TestWithStack", trace)
	}
}

func TestSyncMap(t *testing.T) {
	m := NewSyncMap[string, int]()
	if !m.SetIfAbsent("b", 2) {
		t.Errorf("got false, want true")
	}
	if m.SetIfAbsent("b", 3) {
		t.Errorf("got true, want false")
	}
	m.Set("a", 1)
	if v, found := m.GetHas("b"); !found || v != 2 {
		t.Errorf("got %v, %v, want 2, true", v, found)
	}
	if diff := cmp.Diff([]string{"a", "b"}, m.Keys(func(a, b string) bool { return a < b })); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
	m.Del("a")
	if got := m.Len(); got != 1 {
		t.Errorf("got %v, want 1", got)
	}
}
