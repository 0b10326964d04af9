package docs

import (
	"strings"
	"testing"
)

func TestTopics(t *testing.T) {
	t.Parallel()

	topics := Topics()
	if len(topics) == 0 {
		t.Fatalf("no embedded topics")
	}
	for _, want := range []string{"assignments", "deploy", "quickstart"} {
		found := false
		for _, got := range topics {
			if got == want {
				found = true
			}
		}
		if !found {
			t.Fatalf("topic %q missing from %v", want, topics)
		}
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	body, ok := Get("quickstart")
	if !ok || !strings.Contains(body, "Quickstart") {
		t.Fatalf("quickstart topic not readable")
	}
	if _, ok := Get("no-such-topic"); ok {
		t.Fatalf("unknown topics must report missing")
	}
	if _, ok := Get("  "); ok {
		t.Fatalf("blank topics must report missing")
	}
}

func TestRenderFallsBackOnEmpty(t *testing.T) {
	t.Parallel()

	if got := Render("", 80); got != "" {
		t.Fatalf("empty markdown must render empty; got %q", got)
	}
}

func TestMarkdownStyleIsFixed(t *testing.T) {
	t.Parallel()

	// The renderer must never be built with the auto-detecting style,
	// which can block on terminal capability queries.
	switch got := markdownStyle(); got {
	case "dark", "light":
	default:
		t.Fatalf("markdownStyle() = %q, want a fixed style", got)
	}
}
