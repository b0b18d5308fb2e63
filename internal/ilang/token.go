package ilang

import (
	"strings"
	"unicode"

	"github.com/synthkit/techmap/internal/lex"
)

// Token kinds for the ilang lexer, one Type per kind of lexeme.
const (
	tEOF lex.Type = lex.EOF
	tIdent lex.Type = iota
	tKeyword
	tInt
	tString
	tConst // sized constant, e.g. 8'b00001010
	tBraceOpen
	tBraceClose
	tBracketOpen
	tBracketClose
	tColon
	tComma
	tApostrophe
)

var keywords = map[string]bool{
	"module": true, "end": true, "wire": true, "width": true,
	"input": true, "output": true, "inout": true, "cell": true,
	"connect": true, "parameter": true, "attribute": true,
	"signed": true, "top": true,
}

func newLexer(s string) lex.Interface {
	return lex.New(strings.NewReader(s), lexInit)
}

func lexInit(l *lex.Lexer) lex.StateFn {
	r := l.Next()
	switch {
	case r == rune(lex.EOF):
		return lexEOF
	case unicode.IsSpace(r):
		l.AcceptWhile(unicode.IsSpace)
	case r == '#':
		l.AcceptWhile(func(r rune) bool { return r != '\n' })
	case r == '\\' || r == '$' || unicode.IsLetter(r) || r == '_':
		return lexIdent
	case r == '"':
		return lexString
	case '0' <= r && r <= '9':
		return lexNumber
	case r == '{':
		l.Emit(tBraceOpen, "{")
	case r == '}':
		l.Emit(tBraceClose, "}")
	case r == '[':
		l.Emit(tBracketOpen, "[")
	case r == ']':
		l.Emit(tBracketClose, "]")
	case r == ':':
		l.Emit(tColon, ":")
	case r == ',':
		l.Emit(tComma, ",")
	default:
		l.Emit(tEOF, string(r))
		return lexEOF
	}
	return nil
}

func isIdentRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '.' || r == '$' || r == '\\'
}

func lexIdent(l *lex.Lexer) lex.StateFn {
	var b strings.Builder
	b.WriteRune(l.Current())
	for {
		r := l.Next()
		if !isIdentRune(r) {
			if r != rune(lex.EOF) {
				l.Backup()
			}
			break
		}
		b.WriteRune(r)
	}
	s := b.String()
	if keywords[s] {
		l.Emit(tKeyword, s)
	} else {
		l.Emit(tIdent, s)
	}
	return nil
}

// lexString and lexNumber build their token text manually by walking
// characters with Next()/Backup(), since AcceptWhile only advances the
// cursor without retaining the consumed text.

func lexString(l *lex.Lexer) lex.StateFn {
	var b strings.Builder
	for {
		r := l.Next()
		if r == rune(lex.EOF) || r == '"' {
			break
		}
		b.WriteRune(r)
	}
	l.Emit(tString, b.String())
	return nil
}

func lexNumberCollect(l *lex.Lexer) string {
	var b strings.Builder
	b.WriteRune(l.Current())
	for {
		r := l.Next()
		if !(unicode.IsDigit(r) || r == '\'' || unicode.IsLetter(r)) {
			if r != rune(lex.EOF) {
				l.Backup()
			}
			return b.String()
		}
		b.WriteRune(r)
	}
}

func lexNumber(l *lex.Lexer) lex.StateFn {
	s := lexNumberCollect(l)
	if i := strings.IndexByte(s, '\''); i >= 0 {
		l.Emit(tConst, s)
	} else {
		l.Emit(tInt, s)
	}
	return nil
}

func lexEOF(l *lex.Lexer) lex.StateFn {
	l.Emit(tEOF, "")
	return lexEOF
}
