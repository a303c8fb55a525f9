// Package token defines the lexical token record shared by the lexer,
// parser, and diagnostic renderer.
package token

import "fmt"

// Kind identifies the lexical category of a Token.
type Kind int

const (
	EOF Kind = iota
	Unknown

	Identifier
	IntLiteral
	HexLiteral
	StringLiteral

	// Keywords.
	KwInt
	KwVoid
	KwChar
	KwStruct
	KwReturn
	KwWhile
	KwIf
	KwElse
	KwPublic
	KwPrivate
	KwNamespace
	KwUsing
	KwConst
	KwEnum
	KwVirtual
	KwOverride
	KwNew
	KwDelete
	KwOperator
	KwGet
	KwSet

	// Punctuation.
	Semicolon
	Comma
	Dot
	DoubleColon
	Colon
	Tilde
	Hash
	LParen
	RParen
	LBrace
	RBrace
	LAngle
	RAngle

	// Operators.
	Assign
	Eq
	Ne
	Plus
	Minus
	Star
	Slash
	Amp
	Arrow
)

var kindNames = map[Kind]string{
	EOF:           "EOF",
	Unknown:       "UNKNOWN",
	Identifier:    "IDENTIFIER",
	IntLiteral:    "INT_LITERAL",
	HexLiteral:    "HEX_LITERAL",
	StringLiteral: "STRING_LITERAL",
	KwInt:         "int",
	KwVoid:        "void",
	KwChar:        "char",
	KwStruct:      "struct",
	KwReturn:      "return",
	KwWhile:       "while",
	KwIf:          "if",
	KwElse:        "else",
	KwPublic:      "public",
	KwPrivate:     "private",
	KwNamespace:   "namespace",
	KwUsing:       "using",
	KwConst:       "const",
	KwEnum:        "enum",
	KwVirtual:     "virtual",
	KwOverride:    "override",
	KwNew:         "new",
	KwDelete:      "delete",
	KwOperator:    "operator",
	KwGet:         "get",
	KwSet:         "set",
	Semicolon:     ";",
	Comma:         ",",
	Dot:           ".",
	DoubleColon:   "::",
	Colon:         ":",
	Tilde:         "~",
	Hash:          "#",
	LParen:        "(",
	RParen:        ")",
	LBrace:        "{",
	RBrace:        "}",
	LAngle:        "<",
	RAngle:        ">",
	Assign:        "=",
	Eq:            "==",
	Ne:            "!=",
	Plus:          "+",
	Minus:         "-",
	Star:          "*",
	Slash:         "/",
	Amp:           "&",
	Arrow:         "->",
}

// String renders the kind's canonical spelling, or a placeholder for
// values outside the known set.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Keywords maps reserved identifier spellings to their keyword Kind.
var Keywords = map[string]Kind{
	"int":       KwInt,
	"void":      KwVoid,
	"char":      KwChar,
	"struct":    KwStruct,
	"return":    KwReturn,
	"while":     KwWhile,
	"if":        KwIf,
	"else":      KwElse,
	"public":    KwPublic,
	"private":   KwPrivate,
	"namespace": KwNamespace,
	"using":     KwUsing,
	"const":     KwConst,
	"enum":      KwEnum,
	"virtual":   KwVirtual,
	"override":  KwOverride,
	"new":       KwNew,
	"delete":    KwDelete,
	"operator":  KwOperator,
	"get":       KwGet,
	"set":       KwSet,
}

// LookupIdent returns the keyword Kind for text, or Identifier if text is
// not reserved.
func LookupIdent(text string) Kind {
	if kind, ok := Keywords[text]; ok {
		return kind
	}
	return Identifier
}

// Token is the value-type record produced by the lexer and consumed by the
// parser: (kind, text, line, column). Line and column are 1-based.
type Token struct {
	Kind   Kind
	Text   string
	Line   int
	Column int
}

// String renders the token for debug/trace output.
func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d:%d", t.Kind, t.Text, t.Line, t.Column)
}

// Zero reports whether t is the zero Token value. The placeholder a failed
// eat returns is not zero: it carries the expected kind and a position.
func (t Token) Zero() bool {
	return t.Kind == EOF && t.Text == "" && t.Line == 0 && t.Column == 0
}
