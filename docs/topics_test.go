package docs

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// TestTopics keeps the documentation in sync with itself:
// every topic listed in readme.md must load, and every .md file
// (except readme.md) must be listed in readme.md.
func TestTopics(t *testing.T) {
	file, err := os.Open("readme.md")
	if err != nil {
		t.Fatalf("failed to open readme.md: %v", err)
	}
	defer file.Close()

	var topicsInReadme []string
	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if matches := topicRegex.FindStringSubmatch(scanner.Text()); len(matches) > 1 {
			topicsInReadme = append(topicsInReadme, strings.TrimSpace(matches[1]))
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("error scanning readme.md: %v", err)
	}

	for _, topic := range topicsInReadme {
		t.Run("load_"+topic, func(t *testing.T) {
			if _, err := GetTopic(topic); err != nil {
				t.Errorf("failed to get topic %q: %v", topic, err)
			}
		})
	}

	all, err := GetAllTopics()
	if err != nil {
		t.Fatal(err)
	}
	for _, topic := range all {
		if !slices.Contains(topicsInReadme, topic) {
			t.Errorf("topic %q is not listed in readme.md", topic)
		}
	}
}

// TestCodeBlocks ensures every fenced code block in the topics carries a
// language tag, so terminal rendering highlights them correctly.
func TestCodeBlocks(t *testing.T) {
	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatal(err)
	}

	for _, file := range files {
		t.Run(file, func(t *testing.T) {
			content, err := os.ReadFile(file)
			if err != nil {
				t.Fatal(err)
			}

			root := goldmark.DefaultParser().Parse(text.NewReader(content))
			ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
				if !entering {
					return ast.WalkContinue, nil
				}
				if fcb, ok := n.(*ast.FencedCodeBlock); ok {
					if fcb.Info == nil || len(fcb.Info.Segment.Value(content)) == 0 {
						t.Errorf("%s: fenced code block without a language tag", file)
					}
				}
				return ast.WalkContinue, nil
			})
		})
	}
}
