// Package docs embeds the documentation topics shown by fxm topic.
//
// readme.md is the entry point: each of its lines of the form
// "* name: summary" announces the topic stored in name.md.
package docs

import (
	"bufio"
	"bytes"
	"embed"
	"fmt"
	"regexp"
	"strings"
)

//go:embed *.md
var files embed.FS

// Entry is a topic announced by readme.md.
type Entry struct {
	Name    string
	Summary string
}

var indexLine = regexp.MustCompile(`^\*\s+([^:]+):\s*(.*)$`)

// Index returns the topics announced by readme.md, in order.
func Index() ([]Entry, error) {
	data, err := files.ReadFile("readme.md")
	if err != nil {
		return nil, err
	}
	var entries []Entry
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		if m := indexLine.FindStringSubmatch(scanner.Text()); m != nil {
			entries = append(entries, Entry{Name: strings.TrimSpace(m[1]), Summary: m[2]})
		}
	}
	return entries, scanner.Err()
}

// Names returns the names of the indexed topics.
func Names() []string {
	entries, _ := Index()
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

// Read returns the named topics one after the other. "*" reads the readme
// followed by every indexed topic.
func Read(names ...string) (string, error) {
	var b strings.Builder
	for _, name := range names {
		expanded := []string{name}
		if name == "*" {
			expanded = append([]string{"readme"}, Names()...)
		}
		for _, n := range expanded {
			content, err := files.ReadFile(n + ".md")
			if err != nil {
				return "", fmt.Errorf("topic %q not found: %w", n, err)
			}
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			b.Write(content)
		}
	}
	return b.String(), nil
}
