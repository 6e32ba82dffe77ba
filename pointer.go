package rowhook

import (
	"strconv"
	"strings"
)

// resolvePointer resolves an RFC 6901 JSON Pointer against a parsed JSON
// tree (as produced by decodeJSON: nested map[string]interface{},
// []interface{}, string, bool, json.Number, or nil). It reports whether
// the pointer resolved to a value, and if so, that value (which may itself
// be nil, representing a JSON null).
func resolvePointer(root interface{}, pointer string) (value interface{}, resolved bool) {
	if pointer == "" {
		return root, true
	}
	if pointer[0] != '/' {
		return nil, false
	}

	cur := root
	for _, tok := range strings.Split(pointer[1:], "/") {
		tok = unescapeToken(tok)

		switch node := cur.(type) {
		case map[string]interface{}:
			v, ok := node[tok]
			if !ok {
				return nil, false
			}
			cur = v

		case []interface{}:
			if tok == "-" {
				// "-" addresses the (nonexistent) element past the end of
				// the array; per RFC 6901 it never resolves on read.
				return nil, false
			}
			idx, err := strconv.Atoi(tok)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			cur = node[idx]

		default:
			// Scalar or nil reached before the pointer is exhausted: no
			// further path segment can resolve.
			return nil, false
		}
	}
	return cur, true
}

// unescapeToken decodes the "~1" -> "/" and "~0" -> "~" escapes defined by
// RFC 6901. The order ("~1" decoded first, then "~0") matters and matches
// the RFC, so that "~01" decodes to "~1" rather than "/".
func unescapeToken(tok string) string {
	if !strings.Contains(tok, "~") {
		return tok
	}
	tok = strings.ReplaceAll(tok, "~1", "/")
	tok = strings.ReplaceAll(tok, "~0", "~")
	return tok
}
