// Package docs embeds the user manual, one markdown file per topic.
package docs

import (
	"embed"
	"fmt"
	"path"
	"strings"
)

//go:embed *.md
var docs embed.FS

// Index is the topic listing the others.
const Index = "readme"

// Topics returns the name of every topic but the index, in alphabetical order.
func Topics() []string {
	files, _ := docs.ReadDir(".") // sorted by name
	topics := make([]string, 0, len(files))
	for _, f := range files {
		name := strings.TrimSuffix(f.Name(), path.Ext(f.Name()))
		if name != Index {
			topics = append(topics, name)
		}
	}
	return topics
}

// Read returns the concatenated content of the given topics. "*" stands for
// all topics.
func Read(topics ...string) (string, error) {
	var b strings.Builder
	for _, topic := range topics {
		names := []string{topic}
		if topic == "*" {
			names = Topics()
		}
		for _, name := range names {
			content, err := docs.ReadFile(name + ".md")
			if err != nil {
				return "", fmt.Errorf("unknown topic %q, available topics: %s", name, strings.Join(Topics(), ", "))
			}
			b.Write(content)
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}
