package smiles

import (
	"fmt"

	"github.com/turtacn/SmilesKit/internal/domain/graph"
	"github.com/turtacn/SmilesKit/pkg/types/chem"
)

// ParseResult is the outcome of parsing one SMILES input: one molecule per
// dot-separated component plus the accumulated diagnostics.  Parsing never
// panics or returns an error value; every recoverable condition is a
// Diagnostic with a byte offset.
type ParseResult struct {
	Molecules   []*graph.Molecule `json:"molecules"`
	Diagnostics []chem.Diagnostic `json:"diagnostics,omitempty"`
}

// HasErrors reports whether any diagnostic is fatal.
func (r *ParseResult) HasErrors() bool {
	return chem.HasErrors(r.Diagnostics)
}

// pendingBond carries an explicit bond token until its second atom arrives.
type pendingBond struct {
	set       bool
	order     graph.BondOrder
	direction graph.BondDirection
	offset    int
}

// ringBookmark records the first sighting of a ring-closure digit.
type ringBookmark struct {
	atom      int
	order     graph.BondOrder
	hasOrder  bool
	direction graph.BondDirection
	offset    int
}

// branchFrame remembers the attachment atom active before a '('.
type branchFrame struct {
	atom   int
	offset int
}

// parser is the per-input parse state.  A fresh parser is built per component;
// diagnostics and molecules accumulate on the shared result.
type parser struct {
	tz     *Tokenizer
	result *ParseResult

	mol       *graph.Molecule
	last      int
	pending   pendingBond
	branches  []branchFrame
	bookmarks map[int]*ringBookmark
	failed    bool
}

// Parse tokenizes and parses the input into molecules.  The empty string
// yields no molecules and no diagnostics; every other input yields one
// molecule per component, empty components included (with a warning).  A
// component that fails before any atom is built contributes no molecule.
func Parse(input string) *ParseResult {
	result := &ParseResult{}
	if len(input) == 0 {
		return result
	}

	p := &parser{tz: NewTokenizer(input), result: result}
	p.beginComponent()

	for {
		tok := p.tz.Next()
		if tok.Kind == TokenEOF {
			p.endComponent(tok.Offset)
			return result
		}
		if tok.Kind == TokenDot {
			if len(p.branches) > 0 {
				p.errorf(tok.Offset, "unexpected '.' inside branch")
			}
			p.endComponent(tok.Offset)
			p.beginComponent()
			continue
		}
		if p.failed {
			// A fatal diagnostic poisons the rest of this component; scanning
			// continues so later components still parse.
			continue
		}
		p.consume(tok)
	}
}

func (p *parser) beginComponent() {
	p.mol = graph.NewMolecule()
	p.last = -1
	p.pending = pendingBond{}
	p.branches = p.branches[:0]
	p.bookmarks = make(map[int]*ringBookmark)
	p.failed = false
}

// endComponent finalises the current component: checks dangling state and
// appends the molecule to the result.
func (p *parser) endComponent(offset int) {
	if !p.failed {
		if p.pending.set {
			p.errorf(p.pending.offset, "bond where an atom was required")
		}
		for digit, bm := range p.bookmarks {
			p.errorf(bm.offset, "unmatched ring closure %d", digit)
		}
		for _, fr := range p.branches {
			p.errorf(fr.offset, "unbalanced parenthesis")
		}
	}
	if p.failed && p.mol.AtomCount() == 0 {
		// Nothing usable was built; the diagnostics alone describe the failure.
		return
	}
	if p.mol.AtomCount() == 0 {
		p.warnf(offset, "empty component")
	}
	p.mol.Invalid = p.failed
	p.result.Molecules = append(p.result.Molecules, p.mol)
}

// consume advances the state machine by one token.
func (p *parser) consume(tok Token) {
	switch tok.Kind {
	case TokenAtom:
		p.onAtom(tok)

	case TokenBond:
		if p.pending.set {
			p.errorf(tok.Offset, "bond where an atom was required")
			return
		}
		p.pending = pendingBond{set: true, order: tok.Order, direction: tok.Direction, offset: tok.Offset}

	case TokenRing:
		p.onRing(tok)

	case TokenOpenBranch:
		if p.last < 0 {
			p.errorf(tok.Offset, "branch without a previous atom")
			return
		}
		p.branches = append(p.branches, branchFrame{atom: p.last, offset: tok.Offset})

	case TokenCloseBranch:
		if len(p.branches) == 0 {
			p.errorf(tok.Offset, "unbalanced parenthesis")
			return
		}
		if p.pending.set {
			p.errorf(p.pending.offset, "bond where an atom was required")
			return
		}
		p.last = p.branches[len(p.branches)-1].atom
		p.branches = p.branches[:len(p.branches)-1]

	case TokenInvalid:
		p.errorf(tok.Offset, "%s", tok.Err)
	}
}

// onAtom creates the atom and bonds it to the previous one.
func (p *parser) onAtom(tok Token) {
	atom := &graph.Atom{
		Symbol:    tok.Symbol,
		AtomicNum: tok.AtomicNum,
		Charge:    tok.Charge,
		Isotope:   tok.Isotope,
		IsBracket: tok.Bracket,
		ExplicitH: tok.HCount,
		Aromatic:  tok.Aromatic,
		Chirality: tok.Chirality,
		AtomClass: tok.AtomClass,
	}
	idx := p.mol.AddAtom(atom)

	if p.last >= 0 {
		order, dir := p.takePending(p.mol.Atoms[p.last], atom)
		bi := p.mol.AddBond(&graph.Bond{From: p.last, To: idx, Order: order, Direction: dir})
		if bi < 0 {
			p.errorf(tok.Offset, "duplicate bond between atoms %d and %d", p.last, idx)
			return
		}
		p.mol.Atoms[p.last].NeighborOrder = append(p.mol.Atoms[p.last].NeighborOrder, idx)
		atom.NeighborOrder = append(atom.NeighborOrder, p.last)
	} else if p.pending.set {
		p.errorf(p.pending.offset, "bond without a previous atom")
		return
	}

	// A bracket hydrogen occupies a neighbor slot for chirality purposes,
	// positioned right after the preceding atom.
	if tok.Bracket && tok.HCount > 0 && tok.Chirality != "" {
		atom.NeighborOrder = append(atom.NeighborOrder, graph.HPlaceholder)
	}

	p.last = idx
}

// takePending resolves the bond order and direction for the next bond, using
// the pending explicit token when present and the aromatic default otherwise.
func (p *parser) takePending(from, to *graph.Atom) (graph.BondOrder, graph.BondDirection) {
	if p.pending.set {
		order, dir := p.pending.order, p.pending.direction
		p.pending = pendingBond{}
		return order, dir
	}
	if from.Aromatic && to.Aromatic {
		return graph.BondAromatic, graph.DirNone
	}
	return graph.BondSingle, graph.DirNone
}

// onRing records or resolves a ring-closure digit.  The first sighting
// bookmarks the atom and any explicit bond; the second creates the bond.
func (p *parser) onRing(tok Token) {
	if p.last < 0 {
		p.errorf(tok.Offset, "ring closure %d without a previous atom", tok.Ring)
		return
	}

	bm, open := p.bookmarks[tok.Ring]
	if !open {
		b := &ringBookmark{atom: p.last, offset: tok.Offset}
		if p.pending.set {
			b.order = p.pending.order
			b.hasOrder = true
			b.direction = p.pending.direction
			p.pending = pendingBond{}
		}
		p.bookmarks[tok.Ring] = b
		// Reserve the neighbor slot now; the partner id is patched in when the
		// closure resolves.
		p.mol.Atoms[p.last].NeighborOrder = append(p.mol.Atoms[p.last].NeighborOrder, ringSlot(tok.Ring))
		return
	}

	delete(p.bookmarks, tok.Ring)
	if bm.atom == p.last {
		p.errorf(tok.Offset, "ring closure %d bonds an atom to itself", tok.Ring)
		return
	}
	if p.mol.BondBetween(bm.atom, p.last) != nil {
		p.errorf(tok.Offset, "duplicate ring bond %d between atoms %d and %d", tok.Ring, bm.atom, p.last)
		return
	}

	order, dir, ok := p.resolveClosureBond(bm, tok)
	if !ok {
		return
	}

	bi := p.mol.AddBond(&graph.Bond{
		From:        bm.atom,
		To:          p.last,
		Order:       order,
		Direction:   dir,
		RingClosure: true,
	})
	if bi < 0 {
		p.errorf(tok.Offset, "duplicate ring bond %d between atoms %d and %d", tok.Ring, bm.atom, p.last)
		return
	}

	// Patch the reserved slot on the opening atom and record the closing side.
	patchRingSlot(p.mol.Atoms[bm.atom], tok.Ring, p.last)
	p.mol.Atoms[p.last].NeighborOrder = append(p.mol.Atoms[p.last].NeighborOrder, bm.atom)
}

// resolveClosureBond merges the bond types of the two sightings of a ring
// digit.  Matching explicit types pass through; a default on one side yields
// to the non-default side; two conflicting non-default types are an error.
func (p *parser) resolveClosureBond(bm *ringBookmark, tok Token) (graph.BondOrder, graph.BondDirection, bool) {
	closeHas := p.pending.set
	closeOrder, closeDir := p.pending.order, p.pending.direction
	p.pending = pendingBond{}

	var order graph.BondOrder
	switch {
	case bm.hasOrder && closeHas:
		switch {
		case bm.order == closeOrder:
			order = bm.order
		case bm.order == graph.BondSingle:
			order = closeOrder
		case closeOrder == graph.BondSingle:
			order = bm.order
		default:
			p.errorf(tok.Offset, "conflicting bond orders on ring closure %d", tok.Ring)
			return 0, 0, false
		}
	case bm.hasOrder:
		order = bm.order
	case closeHas:
		order = closeOrder
	default:
		if p.mol.Atoms[bm.atom].Aromatic && p.mol.Atoms[p.last].Aromatic {
			order = graph.BondAromatic
		} else {
			order = graph.BondSingle
		}
	}

	// The bond runs opening → closing; a direction written at the closing
	// sighting points the other way.
	dir := bm.direction
	if dir == graph.DirNone && closeDir != graph.DirNone {
		dir = closeDir.Flip()
	}
	return order, dir, true
}

// ringSlot encodes a not-yet-resolved ring digit inside a neighbor order.
func ringSlot(digit int) int { return -(100 + digit) }

func patchRingSlot(a *graph.Atom, digit, partner int) {
	slot := ringSlot(digit)
	for i, v := range a.NeighborOrder {
		if v == slot {
			a.NeighborOrder[i] = partner
			return
		}
	}
}

func (p *parser) errorf(offset int, format string, args ...interface{}) {
	p.result.Diagnostics = append(p.result.Diagnostics, chem.Diagnostic{
		Severity: chem.SeverityError,
		Message:  fmt.Sprintf(format, args...),
		Offset:   offset,
	})
	p.failed = true
}

func (p *parser) warnf(offset int, format string, args ...interface{}) {
	p.result.Diagnostics = append(p.result.Diagnostics, chem.Diagnostic{
		Severity: chem.SeverityWarning,
		Message:  fmt.Sprintf(format, args...),
		Offset:   offset,
	})
}
