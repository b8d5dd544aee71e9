package pdf

import (
	"encoding/hex"
	"strings"
)

// tokenize splits a decoded content stream into operand and operator
// tokens. String and hex-string operands keep their delimiters so later
// stages can tell them apart from names and numbers. The binary payload
// of a BI..ID..EI inline image is skipped, leaving the EI operator in
// the stream.
func tokenize(content []byte) []string {
	var tokens []string
	i, n := 0, len(content)

	for i < n {
		c := content[i]
		switch {
		case isWhitespace(c):
			i++

		case c == '%':
			for i < n && content[i] != '\n' && content[i] != '\r' {
				i++
			}

		case c == '(':
			start := i
			depth := 1
			i++
			for i < n && depth > 0 {
				switch content[i] {
				case '\\':
					if i+1 < n {
						i++
					}
				case '(':
					depth++
				case ')':
					depth--
				}
				i++
			}
			tokens = append(tokens, string(content[start:i]))

		case c == ')':
			// unbalanced, tolerate
			i++

		case c == '<':
			if i+1 < n && content[i+1] == '<' {
				tokens = append(tokens, "<<")
				i += 2
				continue
			}
			start := i
			i++
			for i < n && content[i] != '>' {
				i++
			}
			if i < n {
				i++
			}
			tokens = append(tokens, string(content[start:i]))

		case c == '>':
			if i+1 < n && content[i+1] == '>' {
				tokens = append(tokens, ">>")
				i += 2
				continue
			}
			i++

		case c == '[' || c == ']' || c == '{' || c == '}':
			tokens = append(tokens, string(c))
			i++

		case c == '/':
			start := i
			i++
			for i < n && !isWhitespace(content[i]) && !isDelimiter(content[i]) {
				i++
			}
			tokens = append(tokens, string(content[start:i]))

		default:
			start := i
			for i < n && !isWhitespace(content[i]) && !isDelimiter(content[i]) {
				i++
			}
			word := string(content[start:i])
			tokens = append(tokens, word)
			if word == "ID" {
				i = skipInlineImage(content, i)
				tokens = append(tokens, "EI")
			}
		}
	}

	return tokens
}

// skipInlineImage advances past the binary payload following an ID
// operator and returns the index just after the closing EI.
func skipInlineImage(content []byte, i int) int {
	n := len(content)
	if i < n && isWhitespace(content[i]) {
		i++
	}
	for i+1 < n {
		if content[i] == 'E' && content[i+1] == 'I' &&
			(i == 0 || isWhitespace(content[i-1])) &&
			(i+2 >= n || isWhitespace(content[i+2]) || isDelimiter(content[i+2])) {
			return i + 2
		}
		i++
	}
	return n
}

func isWhitespace(c byte) bool {
	switch c {
	case 0, '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}

func isDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

// isStringToken reports whether a token is a literal or hex string
// operand (dictionaries tokenize as "<<", never as a string).
func isStringToken(tok string) bool {
	if tok == "" || tok == "<<" {
		return false
	}
	return tok[0] == '(' || tok[0] == '<'
}

// decodeString turns a string token back into its byte content. For a
// hex string each byte pair decodes to one byte; for a literal string
// the standard escape sequences are resolved.
func decodeString(tok string) string {
	if len(tok) < 2 {
		return ""
	}
	switch tok[0] {
	case '(':
		body := tok[1:]
		if strings.HasSuffix(body, ")") {
			body = body[:len(body)-1]
		}
		return decodeLiteral(body)
	case '<':
		return decodeHex(strings.Trim(tok, "<>"))
	}
	return ""
}

func decodeLiteral(s string) string {
	var out []byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			out = append(out, c)
			continue
		}
		i++
		if i >= len(s) {
			break
		}
		switch s[i] {
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case 't':
			out = append(out, '\t')
		case 'b':
			out = append(out, '\b')
		case 'f':
			out = append(out, '\f')
		case '\n':
			// line continuation
		case '\r':
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
		case '0', '1', '2', '3', '4', '5', '6', '7':
			v := int(s[i] - '0')
			for j := 0; j < 2 && i+1 < len(s) && s[i+1] >= '0' && s[i+1] <= '7'; j++ {
				i++
				v = v*8 + int(s[i]-'0')
			}
			out = append(out, byte(v))
		default:
			out = append(out, s[i])
		}
	}
	return string(out)
}

func decodeHex(s string) string {
	var clean []byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') {
			clean = append(clean, c)
		}
	}
	if len(clean)%2 == 1 {
		clean = append(clean, '0')
	}
	out := make([]byte, len(clean)/2)
	n, _ := hex.Decode(out, clean)
	return string(out[:n])
}
