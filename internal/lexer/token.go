package lexer

import "github.com/blb-lang/blbc/internal/source"

// TokenType identifies the lexical class of a Token.
type TokenType int

const (
	ILLEGAL TokenType = iota
	EOF

	// Identifiers and literals
	IDENT
	INTEGER
	FLOAT
	STRING

	// Punctuation
	LPAREN
	RPAREN
	LBRACKET
	RBRACKET
	LBRACE
	RBRACE
	COMMA
	SEMICOLON
	COLON
	ASSIGN

	// Operators
	PLUS
	MINUS
	STAR
	SLASH
	PERCENT
	EQ
	NEQ
	LT
	GT
	LE
	GE
	AND
	OR
	NOT

	// Keywords
	FUNCTION
	STRUCT
	IF
	ELSE
	FOR
	WHILE
	RETURN
	LET
	BREAK
	CONTINUE
	TRUE
	FALSE
	EXTERN

	// Type keywords
	U8
	U16
	U32
	U64
	I8
	I16
	I32
	I64
	BOOL_TYPE
	STRING_TYPE
	VOID
	FLOAT_TYPE

	// Pointer keywords
	PTR
	ADDROF
	DEREF
	NULL
)

var keywords = map[string]TokenType{
	"function": FUNCTION,
	"struct":   STRUCT,
	"if":       IF,
	"else":     ELSE,
	"for":      FOR,
	"while":    WHILE,
	"return":   RETURN,
	"let":      LET,
	"break":    BREAK,
	"continue": CONTINUE,
	"true":     TRUE,
	"false":    FALSE,
	"extern":   EXTERN,
	"and":      AND,
	"or":       OR,
	"not":      NOT,
	"u8":       U8,
	"u16":      U16,
	"u32":      U32,
	"u64":      U64,
	"i8":       I8,
	"i16":      I16,
	"i32":      I32,
	"i64":      I64,
	"bool":     BOOL_TYPE,
	"string":   STRING_TYPE,
	"void":     VOID,
	"float":    FLOAT_TYPE,
	"ptr":      PTR,
	"addrof":   ADDROF,
	"deref":    DEREF,
	"null":     NULL,
}

var names = map[TokenType]string{
	ILLEGAL: "ILLEGAL", EOF: "EOF", IDENT: "IDENT", INTEGER: "INTEGER",
	FLOAT: "FLOAT", STRING: "STRING",
	LPAREN: "(", RPAREN: ")", LBRACKET: "[", RBRACKET: "]", LBRACE: "{", RBRACE: "}",
	COMMA: ",", SEMICOLON: ";", COLON: ":", ASSIGN: "=",
	PLUS: "+", MINUS: "-", STAR: "*", SLASH: "/", PERCENT: "%",
	EQ: "==", NEQ: "!=", LT: "<", GT: ">", LE: "<=", GE: ">=",
	AND: "and", OR: "or", NOT: "not",
	FUNCTION: "function", STRUCT: "struct", IF: "if", ELSE: "else", FOR: "for",
	WHILE: "while", RETURN: "return", LET: "let", BREAK: "break", CONTINUE: "continue",
	TRUE: "true", FALSE: "false", EXTERN: "extern",
	U8: "u8", U16: "u16", U32: "u32", U64: "u64", I8: "i8", I16: "i16", I32: "i32", I64: "i64",
	BOOL_TYPE: "bool", STRING_TYPE: "string", VOID: "void", FLOAT_TYPE: "float",
	PTR: "ptr", ADDROF: "addrof", DEREF: "deref", NULL: "null",
}

// String returns the canonical spelling of a token type, used both for
// debug output and for rendering the expected-token set in parse errors.
func (t TokenType) String() string {
	if n, ok := names[t]; ok {
		return n
	}
	return "UNKNOWN"
}

// Token is one lexeme: its class, literal text, and byte span.
type Token struct {
	Type    TokenType
	Literal string
	Span    source.Span
}
