// Package token defines the token kinds produced by the lexer.
package token

import (
	"fmt"
	"pirate-speak/internal/span"
)

// Kind is the lexical category of a token.
type Kind int

const (
	EOF Kind = iota

	KEYWORD    // ship, treasure, adventure, ...
	TYPE       // coin, scroll, loot, beacon, mark
	IDENTIFIER // gold, buryTreasure
	NUMBER     // 42
	FLOAT      // 3.14
	STRING     // "doubloons"
	CHAR       // 'x'
	SYMBOL     // { } ( ) ; ,
	OPERATOR   // = == != < <= > >= + - * / ! && ||
)

var kindNames = map[Kind]string{
	EOF:        "EOF",
	KEYWORD:    "KEYWORD",
	TYPE:       "TYPE",
	IDENTIFIER: "IDENTIFIER",
	NUMBER:     "NUMBER",
	FLOAT:      "FLOAT",
	STRING:     "STRING",
	CHAR:       "CHAR",
	SYMBOL:     "SYMBOL",
	OPERATOR:   "OPERATOR",
}

// String returns the upper-case name of a token kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalText renders the kind by name in JSON and YAML dumps.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Reserved words.
const (
	Ship        = "ship"
	Treasure    = "treasure"
	Adventure   = "adventure"
	Explore     = "explore"
	Deviate     = "deviate"
	Sail        = "sail"
	While       = "while"
	AllHands    = "allHands"
	OfficerOnly = "officerOnly"
	Return      = "return"
	Aye         = "aye"
	Nay         = "nay"
)

// Declared type names.
const (
	Coin   = "coin"
	Scroll = "scroll"
	Loot   = "loot"
	Beacon = "beacon"
	Mark   = "mark"
)

// Keywords lists the reserved words in declaration order.
var Keywords = []string{
	Ship, Treasure, Adventure, Explore, Deviate, Sail,
	While, AllHands, OfficerOnly, Return, Aye, Nay,
}

// TypeNames lists the declared type names.
var TypeNames = []string{Coin, Scroll, Loot, Beacon, Mark}

// Lookup classifies an identifier-shaped lexeme as KEYWORD, TYPE or IDENTIFIER.
func Lookup(ident string) Kind {
	for _, kw := range Keywords {
		if kw == ident {
			return KEYWORD
		}
	}
	for _, tn := range TypeNames {
		if tn == ident {
			return TYPE
		}
	}
	return IDENTIFIER
}

// Token is a lexeme with its kind and source range. Lexeme is the exact
// source text, quotes included for STRING and CHAR.
type Token struct {
	Kind   Kind      `json:"kind"`
	Lexeme string    `json:"lexeme"`
	Span   span.Span `json:"span"`
}

// Is reports whether the token has the given kind and lexeme.
func (t Token) Is(kind Kind, lexeme string) bool {
	return t.Kind == kind && t.Lexeme == lexeme
}

// String returns a human-readable representation of the token.
func (t Token) String() string {
	return fmt.Sprintf("%s %q %s", t.Kind, t.Lexeme, t.Span.Start)
}
