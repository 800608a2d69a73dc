package lsp

import (
	"bytes"
	"unicode/utf8"

	"fortio.org/safecast"

	"vecl/internal/source"
)

// LSP positions count UTF-16 code units within a line.

func utf16Width(r rune) int {
	if r > 0xFFFF {
		return 2
	}
	return 1
}

// lineStart returns the byte offset where line (0-based) begins, clamped to
// len(content).
func lineStart(content []byte, line int) int {
	off := 0
	for ; line > 0; line-- {
		i := bytes.IndexByte(content[off:], '\n')
		if i < 0 {
			return len(content)
		}
		off += i + 1
	}
	return off
}

// offsetOf maps a position to a byte offset in content. Characters past the
// end of the line clamp to the line end.
func offsetOf(content []byte, pos position) int {
	if pos.Line < 0 || pos.Character < 0 {
		return 0
	}
	off := lineStart(content, pos.Line)
	for units := 0; off < len(content) && content[off] != '\n'; {
		r, size := utf8.DecodeRune(content[off:])
		if units+utf16Width(r) > pos.Character {
			break
		}
		units += utf16Width(r)
		off += size
	}
	return off
}

func positionOf(content []byte, offset int) position {
	offset = min(max(offset, 0), len(content))
	line := bytes.Count(content[:offset], []byte{'\n'})
	start := bytes.LastIndexByte(content[:offset], '\n') + 1
	units := 0
	for _, r := range string(content[start:offset]) {
		units += utf16Width(r)
	}
	return position{Line: line, Character: units}
}

func rangeOf(file *source.File, sp source.Span) lspRange {
	return lspRange{
		Start: positionOf(file.Content, int(sp.Start)),
		End:   positionOf(file.Content, int(sp.End)),
	}
}

// offsetInFile is offsetOf for an analyzed file, as a span offset.
func offsetInFile(file *source.File, pos position) uint32 {
	off, err := safecast.Conv[uint32](offsetOf(file.Content, pos))
	if err != nil {
		return 0
	}
	return off
}

// applyChanges applies incremental or full-text edits in order.
func applyChanges(text string, changes []textDocumentContentChangeEvent) string {
	for _, ch := range changes {
		if ch.Range == nil {
			text = ch.Text
			continue
		}
		content := []byte(text)
		start := offsetOf(content, ch.Range.Start)
		end := max(offsetOf(content, ch.Range.End), start)
		text = text[:start] + ch.Text + text[end:]
	}
	return text
}
