// Package smiles implements the SMILES surface language: a one-pass tokenizer
// and a diagnostic-accumulating parser that builds molecular graphs.
package smiles

import (
	"fmt"

	"github.com/turtacn/SmilesKit/internal/domain/graph"
)

// TokenKind classifies a SMILES token.
type TokenKind int

const (
	// TokenAtom covers organic-subset atoms, bracket atoms, and the wildcard.
	TokenAtom TokenKind = iota

	// TokenBond covers - = # $ : / and \.
	TokenBond

	// TokenRing is a ring-closure digit (1–9) or %NN pair (10–99).
	TokenRing

	// TokenOpenBranch is '('.
	TokenOpenBranch

	// TokenCloseBranch is ')'.
	TokenCloseBranch

	// TokenDot is the component separator '.'.
	TokenDot

	// TokenEOF marks the end of the input.
	TokenEOF

	// TokenInvalid carries a lexical error; Err holds the message.
	TokenInvalid
)

// String names the token kind for diagnostics and tests.
func (k TokenKind) String() string {
	switch k {
	case TokenAtom:
		return "atom"
	case TokenBond:
		return "bond"
	case TokenRing:
		return "ring"
	case TokenOpenBranch:
		return "open-branch"
	case TokenCloseBranch:
		return "close-branch"
	case TokenDot:
		return "dot"
	case TokenEOF:
		return "eof"
	default:
		return "invalid"
	}
}

// Token is one lexical unit of a SMILES string.  Offset is the byte offset of
// the token's first character, carried on every token for error reporting.
type Token struct {
	Kind   TokenKind
	Offset int

	// Atom fields (TokenAtom).
	Symbol    string
	AtomicNum int
	Aromatic  bool
	Bracket   bool
	Isotope   int
	Charge    int
	HCount    int
	Chirality string
	AtomClass int

	// Bond fields (TokenBond).
	Order     graph.BondOrder
	Direction graph.BondDirection

	// Ring closure number (TokenRing).
	Ring int

	// Err is the lexical error message (TokenInvalid).
	Err string
}

// String renders the token for test failure messages.
func (t Token) String() string {
	switch t.Kind {
	case TokenAtom:
		return fmt.Sprintf("atom(%s)@%d", t.Symbol, t.Offset)
	case TokenBond:
		return fmt.Sprintf("bond(%s%s)@%d", t.Order.Symbol(), t.Direction.Symbol(), t.Offset)
	case TokenRing:
		return fmt.Sprintf("ring(%d)@%d", t.Ring, t.Offset)
	case TokenInvalid:
		return fmt.Sprintf("invalid(%s)@%d", t.Err, t.Offset)
	default:
		return fmt.Sprintf("%s@%d", t.Kind, t.Offset)
	}
}
