// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the pdfchat TUI.
package components

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
)

// =============================================================================
// SYNTAX HIGHLIGHTING
// =============================================================================

// HighlightCode applies terminal syntax highlighting to a code snippet.
// Answers from the backend often quote code from the document; in plain
// output modes (the REPL, ask with markdown off) glamour is bypassed and
// this colors fenced blocks directly.
func HighlightCode(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get("monokai")
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return buf.String()
}

// =============================================================================
// FENCED BLOCK PARSER
// =============================================================================

// HighlightFencedBlocks rewrites markdown text with the contents of
// fenced code blocks syntax-highlighted, leaving everything else alone.
// The fence markers themselves are dropped.
func HighlightFencedBlocks(text string) string {
	lines := strings.Split(text, "\n")
	var result []string
	var codeLines []string
	var language string
	inBlock := false

	for _, line := range lines {
		if strings.HasPrefix(line, "```") {
			if inBlock {
				result = append(result, strings.TrimRight(HighlightCode(strings.Join(codeLines, "\n"), language), "\n"))
				codeLines = nil
				language = ""
				inBlock = false
			} else {
				language = strings.TrimSpace(strings.TrimPrefix(line, "```"))
				inBlock = true
			}
			continue
		}
		if inBlock {
			codeLines = append(codeLines, line)
		} else {
			result = append(result, line)
		}
	}

	// Unclosed block: emit highlighted as-is.
	if inBlock && len(codeLines) > 0 {
		result = append(result, strings.TrimRight(HighlightCode(strings.Join(codeLines, "\n"), language), "\n"))
	}

	return strings.Join(result, "\n")
}
