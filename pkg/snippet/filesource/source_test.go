package filesource

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"tagforge-hq/tagforge/pkg/snippet"
)

const snippetYAML = `snippets:
  - id: pixel-1
    name: Facebook pixel
    code: '<script src="https://connect.facebook.net/en_US/fbevents.js"></script>'
    position: head
    priority: 20
  - id: banner-1
    name: Consent banner
    code: '<script src="https://www.googletagmanager.com/consent.js"></script>'
    position: head
    priority: 10
  - id: footer-1
    name: Footer widget
    code: '<script src="https://static.hotjar.com/c/hotjar.js"></script>'
    position: footer
  - id: disabled-1
    name: Retired pixel
    code: '<script src="https://www.facebook.com/tr"></script>'
    position: head
    status: disabled
`

func writeSnippetFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadAndQuery(t *testing.T) {
	dir := t.TempDir()
	writeSnippetFile(t, dir, "site.yaml", snippetYAML)

	src, err := New(dir, nil)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	head, err := src.FindActiveByPosition(context.Background(), snippet.PositionHead)
	if err != nil {
		t.Fatalf("FindActiveByPosition() failed: %v", err)
	}

	// Disabled snippet filtered out, remainder in priority order.
	if len(head) != 2 {
		t.Fatalf("got %d head snippets, want 2", len(head))
	}
	if head[0].ID != "banner-1" || head[1].ID != "pixel-1" {
		t.Errorf("head order = [%s %s], want [banner-1 pixel-1]", head[0].ID, head[1].ID)
	}

	sn, err := src.Get(context.Background(), "footer-1")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if sn.Position != snippet.PositionFooter {
		t.Errorf("Position = %q, want footer", sn.Position)
	}
	if sn.Priority != snippet.DefaultPriority {
		t.Errorf("defaulted Priority = %d, want %d", sn.Priority, snippet.DefaultPriority)
	}

	var nf *snippet.NotFoundError
	if _, err := src.Get(context.Background(), "nope"); !errors.As(err, &nf) {
		t.Errorf("Get(missing) = %v, want *snippet.NotFoundError", err)
	}
}

func TestLoadRejectsInvalidSnippet(t *testing.T) {
	dir := t.TempDir()
	writeSnippetFile(t, dir, "bad.yaml", `snippets:
  - id: bad-1
    name: No code at all
    position: head
`)

	if _, err := New(dir, nil); err == nil {
		t.Fatal("New() accepted a snippet without code")
	}
}

func TestReloadKeepsSnapshotOnError(t *testing.T) {
	dir := t.TempDir()
	writeSnippetFile(t, dir, "site.yaml", snippetYAML)

	src, err := New(dir, nil)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	writeSnippetFile(t, dir, "site.yaml", "snippets: [not, valid, records")
	if err := src.Reload(); err == nil {
		t.Fatal("Reload() accepted malformed YAML")
	}

	// Previous snapshot still serves.
	head, err := src.FindActiveByPosition(context.Background(), snippet.PositionHead)
	if err != nil {
		t.Fatalf("FindActiveByPosition() failed: %v", err)
	}
	if len(head) != 2 {
		t.Errorf("snapshot lost after failed reload: %d snippets", len(head))
	}
}

func TestReloadPicksUpChanges(t *testing.T) {
	dir := t.TempDir()
	writeSnippetFile(t, dir, "site.yaml", snippetYAML)

	src, err := New(dir, nil)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	writeSnippetFile(t, dir, "extra.yaml", `snippets:
  - id: extra-1
    name: Clarity tag
    code: '<script src="https://www.clarity.ms/tag/abc"></script>'
    position: head
    priority: 1
`)
	if err := src.Reload(); err != nil {
		t.Fatalf("Reload() failed: %v", err)
	}

	head, err := src.FindActiveByPosition(context.Background(), snippet.PositionHead)
	if err != nil {
		t.Fatalf("FindActiveByPosition() failed: %v", err)
	}
	if len(head) != 3 || head[0].ID != "extra-1" {
		t.Errorf("new snippet not first: %+v", ids(head))
	}
}

func ids(snippets []*snippet.Snippet) []string {
	out := make([]string, len(snippets))
	for i, s := range snippets {
		out[i] = s.ID
	}
	return out
}
