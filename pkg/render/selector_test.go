package render

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"tagforge-hq/tagforge/pkg/config"
	"tagforge-hq/tagforge/pkg/engine"
	"tagforge-hq/tagforge/pkg/pagectx"
	"tagforge-hq/tagforge/pkg/snippet"
)

type fakeStore struct {
	snippets map[snippet.Position][]*snippet.Snippet
	calls    int
	err      error
}

func (f *fakeStore) Get(_ context.Context, id string) (*snippet.Snippet, error) {
	for _, list := range f.snippets {
		for _, s := range list {
			if s.ID == id {
				return s, nil
			}
		}
	}
	return nil, &snippet.NotFoundError{ID: id}
}

func (f *fakeStore) FindActiveByPosition(_ context.Context, position snippet.Position) ([]*snippet.Snippet, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.snippets[position], nil
}

func testPage() pagectx.Context {
	return pagectx.Context{
		PageType: pagectx.PageTypeHome,
		Device:   pagectx.DeviceDesktop,
		URL:      "/",
		Now:      time.Date(2026, 3, 14, 15, 30, 0, 0, time.UTC),
	}
}

func headSnippet(id string, priority int) *snippet.Snippet {
	s := &snippet.Snippet{
		ID:       id,
		Name:     id,
		Code:     "<script>console.log('" + id + "');</script>",
		CodeType: snippet.CodeJavaScript,
		Position: snippet.PositionHead,
		Priority: priority,
		Status:   snippet.StatusEnabled,
	}
	s.ApplyDefaults()
	return s
}

func TestSelectOrdersByPriority(t *testing.T) {
	store := &fakeStore{snippets: map[snippet.Position][]*snippet.Snippet{
		snippet.PositionHead: {
			headSnippet("thirty", 30),
			headSnippet("ten-a", 10),
			headSnippet("ten-b", 10),
			headSnippet("twenty", 20),
		},
	}}
	sel := NewSelector(nil, store, nil, nil)

	got, err := sel.Select(context.Background(), snippet.PositionHead, testPage(), engine.NewEvaluator(nil, nil))
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}

	want := []string{"ten-a", "ten-b", "twenty", "thirty"}
	if len(got) != len(want) {
		t.Fatalf("Select() returned %d renderables, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("renderable[%d].ID = %q, want %q", i, got[i].ID, id)
		}
	}
}

func TestSelectGates(t *testing.T) {
	mobileOnly := headSnippet("mobile-only", 10)
	mobileOnly.Device = snippet.DeviceMobile

	gated := headSnippet("gated", 10)
	gated.Conditions = &engine.Node{
		Logic: engine.LogicAnd,
		Rules: []engine.Node{
			{Type: engine.RuleTypePageType, Operator: engine.OpEquals, Value: "single"},
		},
	}

	blank := headSnippet("blank", 10)
	blank.Code = "   \n  "

	store := &fakeStore{snippets: map[snippet.Position][]*snippet.Snippet{
		snippet.PositionHead: {mobileOnly, gated, blank, headSnippet("kept", 10)},
	}}
	sel := NewSelector(nil, store, nil, nil)

	got, err := sel.Select(context.Background(), snippet.PositionHead, testPage(), engine.NewEvaluator(nil, nil))
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "kept" {
		t.Errorf("Select() = %+v, want only the kept snippet", got)
	}
}

func TestSelectStoreError(t *testing.T) {
	store := &fakeStore{err: errors.New("disk gone")}
	sel := NewSelector(nil, store, nil, nil)

	if _, err := sel.Select(context.Background(), snippet.PositionHead, testPage(), engine.NewEvaluator(nil, nil)); err == nil {
		t.Fatal("Select() should propagate store errors")
	}
}

func TestSelectServices(t *testing.T) {
	services := map[string]config.ServiceConfig{
		"google_analytics": {
			Enabled:    true,
			TrackingID: "G-ABC123DEF4",
		},
		"hotjar": {
			Enabled: false,
		},
	}
	sel := NewSelector(services, nil, nil, nil)

	got, err := sel.Select(context.Background(), snippet.PositionHead, testPage(), engine.NewEvaluator(nil, nil))
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Select() returned %d renderables, want 1", len(got))
	}
	if got[0].ID != "google_analytics" {
		t.Errorf("renderable.ID = %q, want google_analytics", got[0].ID)
	}
	if want := "G-ABC123DEF4"; !strings.Contains(got[0].Code, want) {
		t.Errorf("rendered code missing tracking ID %q", want)
	}
}

func TestSelectDualPositionService(t *testing.T) {
	services := map[string]config.ServiceConfig{
		"google_tag_manager": {
			Enabled:    true,
			TrackingID: "GTM-ABC1234",
		},
	}
	sel := NewSelector(services, nil, nil, nil)

	head, err := sel.Select(context.Background(), snippet.PositionHead, testPage(), engine.NewEvaluator(nil, nil))
	if err != nil {
		t.Fatalf("Select(head) error = %v", err)
	}
	body, err := sel.Select(context.Background(), snippet.PositionBody, testPage(), engine.NewEvaluator(nil, nil))
	if err != nil {
		t.Fatalf("Select(body) error = %v", err)
	}

	if len(head) != 1 || !strings.Contains(head[0].Code, "googletagmanager.com/gtm.js") {
		t.Errorf("head block = %+v, want the gtm.js loader", head)
	}
	if len(body) != 1 || !strings.Contains(body[0].Code, "noscript") {
		t.Errorf("body block = %+v, want the noscript frame", body)
	}
}

func TestApplyLoadMethod(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		codeType snippet.CodeType
		method   snippet.LoadMethod
		want     string
	}{
		{
			name:     "normal untouched",
			code:     "<script src=\"a.js\"></script>",
			codeType: snippet.CodeJavaScript,
			method:   snippet.LoadNormal,
			want:     "<script src=\"a.js\"></script>",
		},
		{
			name:     "async added to script tag",
			code:     "<script src=\"a.js\"></script>",
			codeType: snippet.CodeJavaScript,
			method:   snippet.LoadAsync,
			want:     "<script async src=\"a.js\"></script>",
		},
		{
			name:     "bare code wrapped then deferred",
			code:     "console.log(1);",
			codeType: snippet.CodeJavaScript,
			method:   snippet.LoadDefer,
			want:     "<script defer>\nconsole.log(1);\n</script>",
		},
		{
			name:     "html never rewritten",
			code:     "<script src=\"a.js\"></script>",
			codeType: snippet.CodeHTML,
			method:   snippet.LoadAsync,
			want:     "<script src=\"a.js\"></script>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := applyLoadMethod(tt.code, tt.codeType, tt.method); got != tt.want {
				t.Errorf("applyLoadMethod() = %q, want %q", got, tt.want)
			}
		})
	}
}
