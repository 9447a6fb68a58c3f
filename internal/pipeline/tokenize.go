package pipeline

import "strings"

// spanKind classifies a region of markdown source.
type spanKind int

const (
	spanPlain spanKind = iota
	spanFencedCode
	spanInlineCode
	spanIndentedCode
)

func (k spanKind) String() string {
	switch k {
	case spanFencedCode:
		return "fenced-code"
	case spanInlineCode:
		return "inline-code"
	case spanIndentedCode:
		return "indented-code"
	default:
		return "plain"
	}
}

// span is a half-open byte range [start, end) of the source.
type span struct {
	kind       spanKind
	start, end int
}

// tokenize splits src into contiguous plain, fenced-code and inline-code spans
// in a single forward pass. Fences open on a line of three or more backticks or
// tildes (indented at most three spaces) and close on a line of the same
// character at least as long; an unclosed fence runs to the end of src.
// Inline code is a backtick run closed by the next run of the same length
// within the same paragraph; an unmatched or backslash-escaped run is plain text.
func tokenize(src string) []span {
	var spans []span
	plainStart := 0

	var (
		inFence   bool
		fenceChar byte
		fenceLen  int
		fenceFrom int
	)

	for pos := 0; pos < len(src); {
		lineEnd := strings.IndexByte(src[pos:], '\n')
		if lineEnd == -1 {
			lineEnd = len(src)
		} else {
			lineEnd += pos + 1
		}
		line := src[pos:lineEnd]

		if inFence {
			if isFenceClose(line, fenceChar, fenceLen) {
				spans = append(spans, span{kind: spanFencedCode, start: fenceFrom, end: lineEnd})
				inFence = false
				plainStart = lineEnd
			}
			pos = lineEnd
			continue
		}

		if ch, n, ok := fenceOpen(line); ok {
			spans = appendPlain(spans, src, plainStart, pos)
			inFence = true
			fenceChar, fenceLen, fenceFrom = ch, n, pos
		}
		pos = lineEnd
	}

	if inFence {
		return append(spans, span{kind: spanFencedCode, start: fenceFrom, end: len(src)})
	}
	return appendPlain(spans, src, plainStart, len(src))
}

// fenceOpen reports whether line opens a fenced code block.
func fenceOpen(line string) (ch byte, n int, ok bool) {
	rest, ok := stripFenceIndent(line)
	if !ok || rest == "" {
		return 0, 0, false
	}
	ch = rest[0]
	if ch != '`' && ch != '~' {
		return 0, 0, false
	}
	n = countRun(rest, 0, ch)
	if n < 3 {
		return 0, 0, false
	}
	// A backtick fence's info string cannot contain backticks.
	if ch == '`' && strings.IndexByte(rest[n:], '`') != -1 {
		return 0, 0, false
	}
	return ch, n, true
}

// isFenceClose reports whether line closes a fence opened with n ch characters.
func isFenceClose(line string, ch byte, n int) bool {
	rest, ok := stripFenceIndent(line)
	if !ok {
		return false
	}
	run := countRun(rest, 0, ch)
	if run < n {
		return false
	}
	return strings.TrimSpace(rest[run:]) == ""
}

// stripFenceIndent removes up to three leading spaces.
// It fails when the line is indented further (an indented code line).
func stripFenceIndent(line string) (string, bool) {
	i := 0
	for i < len(line) && line[i] == ' ' {
		i++
	}
	if i > 3 {
		return "", false
	}
	return line[i:], true
}

func countRun(s string, from int, ch byte) int {
	n := 0
	for from+n < len(s) && s[from+n] == ch {
		n++
	}
	return n
}

// appendPlain scans src[start:end] for inline code and appends the resulting spans.
func appendPlain(spans []span, src string, start, end int) []span {
	if start >= end {
		return spans
	}

	plainFrom := start
	for i := start; i < end; {
		if src[i] != '`' {
			i++
			continue
		}
		if escaped(src, i) {
			i++
			continue
		}
		n := countRun(src[:end], i, '`')
		closeAt := findClosingRun(src, i+n, paragraphEnd(src, i+n, end), n)
		if closeAt == -1 {
			i += n
			continue
		}
		if plainFrom < i {
			spans = append(spans, span{kind: spanPlain, start: plainFrom, end: i})
		}
		spans = append(spans, span{kind: spanInlineCode, start: i, end: closeAt + n})
		i = closeAt + n
		plainFrom = i
	}

	if plainFrom < end {
		spans = append(spans, span{kind: spanPlain, start: plainFrom, end: end})
	}
	return spans
}

// escaped reports whether src[i] follows an odd number of backslashes.
func escaped(src string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && src[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

// findClosingRun returns the index of the next backtick run of exactly n in src[from:limit].
func findClosingRun(src string, from, limit, n int) int {
	for i := from; i < limit; {
		if src[i] != '`' {
			i++
			continue
		}
		run := countRun(src[:limit], i, '`')
		if run == n {
			return i
		}
		i += run
	}
	return -1
}

// paragraphEnd returns the offset of the first blank line at or after from, or limit.
func paragraphEnd(src string, from, limit int) int {
	for i := from; i < limit; i++ {
		if src[i] != '\n' {
			continue
		}
		j := i + 1
		for j < limit && (src[j] == ' ' || src[j] == '\t' || src[j] == '\r') {
			j++
		}
		if j >= limit || src[j] == '\n' {
			return i
		}
	}
	return limit
}
