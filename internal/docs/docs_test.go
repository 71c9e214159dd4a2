package docs

import (
	"sort"
	"strings"
	"testing"
)

func TestTopicsSortedAndResolvable(t *testing.T) {
	topics := Topics()
	if len(topics) == 0 {
		t.Fatalf("expected at least one embedded topic")
	}
	if !sort.StringsAreSorted(topics) {
		t.Fatalf("expected sorted topics, got %v", topics)
	}
	for _, topic := range topics {
		body, ok := Get(topic)
		if !ok || strings.TrimSpace(body) == "" {
			t.Fatalf("topic %q did not resolve to content", topic)
		}
	}
}

func TestGetIsCaseInsensitive(t *testing.T) {
	if _, ok := Get("FILTERS"); !ok {
		t.Fatalf("expected case-insensitive lookup")
	}
	if _, ok := Get("no-such-topic"); ok {
		t.Fatalf("expected unknown topic to miss")
	}
	if _, ok := Get("  "); ok {
		t.Fatalf("expected blank topic to miss")
	}
}
