// Package lint checks quiz markdown files against the house "title + code
// block + answers" conventions. It is advisory tooling for quiz authors:
// every finding is a warning, nothing is rewritten.
package lint

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Issue is one style warning at a position in a file.
type Issue struct {
	File    string
	Line    int // 1-based
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s:%d: %s", i.File, i.Line, i.Message)
}

var codeLikeTokens = []string{
	"==",
	"!=",
	">=",
	"<=",
	" is ",
	" in ",
	" def ",
	" class ",
	" print(",
	" len(",
	"__dict__",
	"__slots__",
	"__len__",
}

const codeLikeChars = `[]=(){}'"%+-,.:`

var answerPrefix = regexp.MustCompile(`^- \[[ xX]\]\s*`)

// IsCodeLike is the heuristic for "looks more like code or program output
// than plain prose".
func IsCodeLike(text string) bool {
	for _, token := range codeLikeTokens {
		if strings.Contains(text, token) {
			return true
		}
	}
	if strings.ContainsAny(text, codeLikeChars) {
		return true
	}
	stripped := strings.ReplaceAll(text, " ", "")
	if stripped == "" {
		return false
	}
	for _, r := range stripped {
		if !(r >= '0' && r <= '9') && r != ',' && r != '.' && r != '-' {
			return false
		}
	}
	return true
}

// File reads and lints one markdown file.
func File(path string) ([]Issue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Lint(path, strings.Split(string(data), "\n")), nil
}

// Lint checks every question block in the given lines.
func Lint(path string, lines []string) []Issue {
	var issues []Issue
	for _, block := range questionBlocks(lines) {
		issues = append(issues, lintBlock(path, block)...)
	}
	return issues
}

// questionBlock is one '## ' heading plus the lines under it, up to the next
// heading or a '---' slide separator.
type questionBlock struct {
	start int // 0-based index of the heading line
	lines []string
}

func questionBlocks(lines []string) []questionBlock {
	var blocks []questionBlock
	i := 0
	for i < len(lines) {
		if !strings.HasPrefix(lines[i], "## ") {
			i++
			continue
		}
		block := questionBlock{start: i, lines: []string{lines[i]}}
		i++
		for i < len(lines) && !strings.HasPrefix(lines[i], "## ") {
			if strings.TrimSpace(lines[i]) == "---" {
				break
			}
			block.lines = append(block.lines, lines[i])
			i++
		}
		blocks = append(blocks, block)
	}
	return blocks
}

func lintBlock(path string, block questionBlock) []Issue {
	var issues []Issue

	// The title is the first non-empty line under the heading.
	title := ""
	for _, line := range block.lines[1:] {
		if strings.TrimSpace(line) != "" {
			title = strings.TrimRight(line, " \t")
			break
		}
	}

	hasCodeBlock := false
	for _, line := range block.lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			hasCodeBlock = true
			break
		}
	}

	if title != "" && IsCodeLike(title) {
		if !hasCodeBlock {
			issues = append(issues, Issue{
				File: path,
				Line: block.start + 1,
				Message: "title looks code-like but no code block is present - " +
					"consider moving code into a fenced block under the title",
			})
		} else {
			issues = append(issues, Issue{
				File: path,
				Line: block.start + 1,
				Message: "title mixes prose and code - consider keeping the title " +
					"pure prose and moving code into the block below",
			})
		}
	}

	for offset, line := range block.lines {
		stripped := strings.TrimLeft(line, " \t")
		if !strings.HasPrefix(stripped, "- [") || !strings.Contains(stripped, "]") {
			continue
		}
		answer := answerPrefix.ReplaceAllString(stripped, "")
		if answer == "" || strings.Contains(answer, "`") {
			continue
		}
		if IsCodeLike(answer) {
			issues = append(issues, Issue{
				File: path,
				Line: block.start + offset + 1,
				Message: "answer looks code-like but has no backticks - consider " +
					"wrapping the entire answer in `...`",
			})
		}
	}

	return issues
}
