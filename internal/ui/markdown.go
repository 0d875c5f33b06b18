package ui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

// SegmentKind classifies a slice of message content.
type SegmentKind int

const (
	SegmentText SegmentKind = iota
	SegmentCode
	SegmentDiagram
)

// Segment is one renderable slice of a message: prose, a fenced code
// block, or a mermaid diagram fence.
type Segment struct {
	Kind     SegmentKind
	Language string // fence language tag, code segments only
	Content  string
}

// SplitSegments splits message content on fenced blocks. ```mermaid
// fences become diagram segments, every other fence becomes a code
// segment, and an unterminated fence runs to the end of the content.
func SplitSegments(content string) []Segment {
	var segments []Segment
	var text strings.Builder
	var block strings.Builder

	flushText := func() {
		if strings.TrimSpace(text.String()) != "" {
			segments = append(segments, Segment{Kind: SegmentText, Content: strings.TrimRight(text.String(), "\n")})
		}
		text.Reset()
	}

	inBlock := false
	lang := ""
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "```") {
			if !inBlock {
				inBlock = true
				lang = strings.TrimSpace(strings.TrimPrefix(line, "```"))
				block.Reset()
				flushText()
			} else {
				inBlock = false
				segments = append(segments, fenceSegment(lang, block.String()))
				lang = ""
			}
			continue
		}

		if inBlock {
			if block.Len() > 0 {
				block.WriteString("\n")
			}
			block.WriteString(line)
		} else {
			text.WriteString(line)
			text.WriteString("\n")
		}
	}

	if inBlock {
		segments = append(segments, fenceSegment(lang, block.String()))
	} else {
		flushText()
	}

	return segments
}

func fenceSegment(lang, content string) Segment {
	if strings.EqualFold(lang, "mermaid") {
		return Segment{Kind: SegmentDiagram, Content: content}
	}
	return Segment{Kind: SegmentCode, Language: lang, Content: content}
}

// Compiled regex patterns for markdown parsing
var (
	boldPattern       = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	underscoreItalic  = regexp.MustCompile(`(?:^|[^a-zA-Z0-9_])_([^_]+)_(?:[^a-zA-Z0-9_]|$)`)
	inlineCodePattern = regexp.MustCompile("`([^`]+)`")
	linkPattern       = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
)

// renderInlineMarkdown applies inline formatting (bold, italic, code, links) to a line
func renderInlineMarkdown(line string) string {
	// Process inline code first (to avoid formatting inside code)
	// We need to protect code spans from other formatting
	type codeSpan struct {
		placeholder string
		rendered    string
	}
	var codeSpans []codeSpan
	codeIdx := 0

	// Extract and replace inline code with placeholders
	line = inlineCodePattern.ReplaceAllStringFunc(line, func(match string) string {
		code := inlineCodePattern.FindStringSubmatch(match)[1]
		placeholder := fmt.Sprintf("\x00CODE%d\x00", codeIdx)
		codeSpans = append(codeSpans, codeSpan{
			placeholder: placeholder,
			rendered:    MarkdownInlineCodeStyle.Render(code),
		})
		codeIdx++
		return placeholder
	})

	// Process bold (**text**)
	line = boldPattern.ReplaceAllStringFunc(line, func(match string) string {
		text := boldPattern.FindStringSubmatch(match)[1]
		return MarkdownBoldStyle.Render(text)
	})

	// Process italic with underscores (_text_)
	// Only match underscores at word boundaries (not in identifiers like foo_bar_baz)
	line = underscoreItalic.ReplaceAllStringFunc(line, func(match string) string {
		submatch := underscoreItalic.FindStringSubmatch(match)
		text := submatch[1]
		// Preserve any prefix/suffix boundary characters that were matched
		prefix := ""
		suffix := ""
		if len(match) > 0 && len(text)+2 < len(match) {
			start := strings.Index(match, "_"+text+"_")
			if start > 0 {
				prefix = match[:start]
			}
			end := start + len("_"+text+"_")
			if end < len(match) {
				suffix = match[end:]
			}
		}
		return prefix + MarkdownItalicStyle.Render(text) + suffix
	})

	// Process links [text](url)
	line = linkPattern.ReplaceAllStringFunc(line, func(match string) string {
		parts := linkPattern.FindStringSubmatch(match)
		text := parts[1]
		url := parts[2]
		return MarkdownLinkStyle.Render(text) + " (" + MarkdownLinkStyle.Render(url) + ")"
	})

	// Restore code spans
	for _, cs := range codeSpans {
		line = strings.Replace(line, cs.placeholder, cs.rendered, 1)
	}

	return line
}

// wrapText wraps text to the specified width, handling ANSI escape codes
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	return wordwrap.String(text, width)
}

// renderMarkdownLine renders a single line with markdown formatting
func renderMarkdownLine(line string, width int) string {
	trimmed := strings.TrimSpace(line)

	// Headers - don't wrap, they should be concise
	if strings.HasPrefix(trimmed, "#### ") {
		return MarkdownH4Style.Render(strings.TrimPrefix(trimmed, "#### "))
	}
	if strings.HasPrefix(trimmed, "### ") {
		return MarkdownH3Style.Render(strings.TrimPrefix(trimmed, "### "))
	}
	if strings.HasPrefix(trimmed, "## ") {
		return MarkdownH2Style.Render(strings.TrimPrefix(trimmed, "## "))
	}
	if strings.HasPrefix(trimmed, "# ") {
		return MarkdownH1Style.Render(strings.TrimPrefix(trimmed, "# "))
	}

	// Horizontal rule
	if trimmed == "---" || trimmed == "***" || trimmed == "___" {
		return MarkdownHRStyle.Render("────────────────────────────────")
	}

	// Blockquote
	if strings.HasPrefix(trimmed, "> ") {
		content := strings.TrimPrefix(trimmed, "> ")
		return MarkdownBlockquoteStyle.Render(wrapText(renderInlineMarkdown(content), width-4))
	}

	// Unordered list items
	if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
		content := trimmed[2:]
		bullet := MarkdownListBulletStyle.Render("•")
		// Wrap list item content, accounting for indent and bullet
		wrapped := wrapText(renderInlineMarkdown(content), width-6)
		// Indent continuation lines
		lines := strings.Split(wrapped, "\n")
		if len(lines) > 1 {
			for i := 1; i < len(lines); i++ {
				lines[i] = "    " + lines[i]
			}
			wrapped = strings.Join(lines, "\n")
		}
		return "  " + bullet + " " + wrapped
	}

	// Numbered list items
	for i := 1; i <= 99; i++ {
		prefix := fmt.Sprintf("%d. ", i)
		if strings.HasPrefix(trimmed, prefix) {
			content := strings.TrimPrefix(trimmed, prefix)
			number := MarkdownListBulletStyle.Render(fmt.Sprintf("%d.", i))
			wrapped := wrapText(renderInlineMarkdown(content), width-6)
			lines := strings.Split(wrapped, "\n")
			if len(lines) > 1 {
				for j := 1; j < len(lines); j++ {
					lines[j] = "     " + lines[j]
				}
				wrapped = strings.Join(lines, "\n")
			}
			return "  " + number + " " + wrapped
		}
	}

	// Regular line with inline formatting and wrapping
	return wrapText(renderInlineMarkdown(line), width)
}

// RenderText renders a prose segment with inline markdown and wrapping.
// Fenced blocks never reach this; SplitSegments routes them to their own
// components.
func RenderText(content string, width int) string {
	if width <= 0 {
		width = DefaultWrapWidth
	}

	var result strings.Builder
	for _, line := range strings.Split(content, "\n") {
		result.WriteString(renderMarkdownLine(line, width))
		result.WriteString("\n")
	}
	return strings.TrimRight(result.String(), "\n")
}
