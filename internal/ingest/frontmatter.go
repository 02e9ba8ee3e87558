package ingest

import (
	"strings"
)

// Sentinel opens and closes a frontmatter block. It must sit on its own line.
const Sentinel = "---"

type Kind int

const (
	KindString Kind = iota
	KindBool
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "boolean"
	case KindList:
		return "list"
	default:
		return "string"
	}
}

// Value is one decoded frontmatter value.
type Value struct {
	Kind Kind
	Str  string
	Bool bool
	List []string
}

func String(s string) Value { return Value{Kind: KindString, Str: s} }
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }
func List(items ...string) Value { return Value{Kind: KindList, List: items} }

// Metadata maps frontmatter keys, in their original casing, to values.
type Metadata map[string]Value

// Extract splits raw into its frontmatter block and body. When raw does not
// open with the sentinel line, or the block is never closed, ok is false and
// the whole input is the body.
func Extract(raw string) (meta Metadata, body string, ok bool) {
	text := normalizeNewlines(raw)

	first, rest, found := strings.Cut(text, "\n")
	if strings.TrimRight(first, " \t") != Sentinel {
		return Metadata{}, raw, false
	}
	if !found {
		return Metadata{}, raw, false
	}

	var block []string
	for {
		line, tail, more := strings.Cut(rest, "\n")
		if strings.TrimRight(line, " \t") == Sentinel {
			if !more {
				tail = ""
			}
			return Decode(strings.Join(block, "\n")), tail, true
		}
		if !more {
			// 没有结束分隔符
			return Metadata{}, raw, false
		}
		block = append(block, line)
		rest = tail
	}
}

// StripFrontMatter returns the body of raw, dropping a frontmatter block if
// one is present.
func StripFrontMatter(raw string) string {
	_, body, _ := Extract(raw)
	return body
}

// Decode reads the restricted frontmatter syntax: scalars (optionally
// quoted), unquoted true/false, "key:" followed by indented "- item" lines,
// and "key: >-" or "key: >" followed by indented lines folded into one line
// without a trailing newline. Lines it
// does not understand are skipped, so Decode never fails; a missing or
// mistyped field is for the schema step to reject.
func Decode(block string) Metadata {
	meta := Metadata{}
	lines := strings.Split(normalizeNewlines(block), "\n")

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if isBlank(line) || indent(line) > 0 || strings.HasPrefix(line, "#") {
			continue
		}
		key, rest, ok := strings.Cut(line, ":")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			continue
		}
		value := strings.TrimSpace(rest)

		switch value {
		case "":
			var items []string
			for i+1 < len(lines) {
				item, ok := listItem(lines[i+1])
				if !ok {
					break
				}
				items = append(items, item)
				i++
			}
			if items == nil {
				meta[key] = String("")
			} else {
				meta[key] = List(items...)
			}
		case ">-", ">":
			var parts []string
			for i+1 < len(lines) {
				next := lines[i+1]
				if !isBlank(next) && indent(next) == 0 {
					break
				}
				if s := strings.TrimSpace(next); s != "" {
					parts = append(parts, s)
				}
				i++
			}
			meta[key] = String(strings.Join(parts, " "))
		case "true":
			meta[key] = Bool(true)
		case "false":
			meta[key] = Bool(false)
		default:
			meta[key] = String(unquote(value))
		}
	}
	return meta
}

// listItem accepts an indented "- item" line.
func listItem(line string) (string, bool) {
	if indent(line) == 0 {
		return "", false
	}
	s := strings.TrimLeft(line, " \t")
	if s == "-" {
		return "", true
	}
	if !strings.HasPrefix(s, "- ") {
		return "", false
	}
	return unquote(strings.TrimSpace(s[2:])), true
}

// unquote strips one pair of matching single or double quotes. Escapes are
// left as written.
func unquote(s string) string {
	if len(s) >= 2 {
		if q := s[0]; (q == '"' || q == '\'') && s[len(s)-1] == q {
			return s[1 : len(s)-1]
		}
	}
	return s
}

func indent(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
