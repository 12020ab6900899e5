package guide

import (
	"strings"
	"testing"
)

func TestEveryTopicHasText(t *testing.T) {
	for _, topic := range Topics {
		text, ok := Lookup(topic)
		if !ok || strings.TrimSpace(text) == "" {
			t.Fatalf("topic %q missing", topic)
		}
		if !strings.Contains(Index(), topic) {
			t.Fatalf("index does not list %q", topic)
		}
	}
}

func TestAliases(t *testing.T) {
	want, _ := Lookup("filters")
	for _, alias := range []string{"filter", "FILTERS", " where "} {
		got, ok := Lookup(alias)
		if !ok || got != want {
			t.Fatalf("alias %q did not resolve to filters", alias)
		}
	}
}

func TestUnknownTopic(t *testing.T) {
	if _, ok := Lookup("nope"); ok {
		t.Fatal("expected unknown topic")
	}
}
