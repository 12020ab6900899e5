// Package guide holds the long-form help shown by `csvp guide`.
package guide

import (
	"embed"
	"fmt"
	"strings"
)

//go:embed topics/*.txt
var topicFS embed.FS

// Topics lists the guide topics in display order.
var Topics = []string{"filters", "stats", "columns", "formats", "encoding"}

var summaries = map[string]string{
	"filters":  "Filter expression syntax and examples",
	"stats":    "Statistics reported for each column type",
	"columns":  "Column selection by name, index and range",
	"formats":  "Output formats and color control",
	"encoding": "Character encodings and auto-detection",
}

var aliases = map[string]string{
	"filter":     "filters",
	"where":      "filters",
	"statistics": "stats",
	"cols":       "columns",
	"format":     "formats",
	"encodings":  "encoding",
}

// Lookup returns the text for a topic or one of its aliases.
func Lookup(topic string) (string, bool) {
	name := strings.ToLower(strings.TrimSpace(topic))
	if canon, ok := aliases[name]; ok {
		name = canon
	}
	if _, ok := summaries[name]; !ok {
		return "", false
	}
	b, err := topicFS.ReadFile("topics/" + name + ".txt")
	if err != nil {
		return "", false
	}
	return string(b), true
}

// Index renders the topic list.
func Index() string {
	var b strings.Builder
	b.WriteString("csvp guide - detailed help for specific topics\n\n")
	b.WriteString("USAGE:\n    csvp guide <topic>\n\n")
	b.WriteString("TOPICS:\n")
	for _, t := range Topics {
		b.WriteString(fmt.Sprintf("    %-10s  %s\n", t, summaries[t]))
	}
	b.WriteString("\nEXAMPLES:\n    csvp guide filters\n    csvp guide stats\n")
	return b.String()
}
