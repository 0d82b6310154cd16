package oracle

import (
	"encoding/json"
	"strings"
)

// extractObject finds the one JSON object in a generator's output. The whole
// output may be the object; otherwise a single ```json fence wins, then a
// single balanced object embedded in prose.
func extractObject(output string) (string, error) {
	trimmed := strings.TrimSpace(output)
	if isJSONObject(trimmed) {
		return trimmed, nil
	}

	fenced := fencedBlocks(output, "json")
	switch len(fenced) {
	case 0:
	case 1:
		return strings.TrimSpace(fenced[0]), nil
	default:
		return "", ErrMultipleJSONFound
	}

	objects := embeddedObjects(output)
	switch len(objects) {
	case 0:
		return "", ErrNoJSONFound
	case 1:
		return objects[0], nil
	default:
		return "", ErrMultipleJSONFound
	}
}

// fencedBlocks returns the bodies of ``` fences whose info string is lang.
func fencedBlocks(output string, lang string) []string {
	var bodies []string
	rest := output
	for {
		open := strings.Index(rest, "```")
		if open == -1 {
			return bodies
		}
		rest = rest[open+3:]
		nl := strings.IndexByte(rest, '\n')
		if nl == -1 {
			return bodies
		}
		info := strings.TrimSpace(rest[:nl])
		rest = rest[nl+1:]
		end := strings.Index(rest, "```")
		if end == -1 {
			return bodies
		}
		if strings.EqualFold(info, lang) {
			bodies = append(bodies, rest[:end])
		}
		rest = rest[end+3:]
	}
}

// embeddedObjects scans for top-level balanced {...} spans that parse as
// JSON, skipping braces inside strings. Quotes in the surrounding prose are
// ignored.
func embeddedObjects(output string) []string {
	var out []string
	depth, start := 0, 0
	inString, escaped := false, false
	for i, r := range output {
		switch {
		case depth == 0 && r != '{':
		case escaped:
			escaped = false
		case inString && r == '\\':
			escaped = true
		case r == '"':
			inString = !inString
		case inString:
		case r == '{':
			if depth == 0 {
				start = i
			}
			depth++
		case r == '}' && depth > 0:
			depth--
			if depth == 0 && isJSONObject(output[start:i+1]) {
				out = append(out, output[start:i+1])
			}
		}
	}
	return out
}

func isJSONObject(s string) bool {
	return strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") && json.Valid([]byte(s))
}
