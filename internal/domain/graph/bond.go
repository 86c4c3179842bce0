package graph

// BondOrder is the bond multiplicity.  Aromatic is a first-class order: the
// perceiver rewrites qualifying ring bonds to it and the emitter omits the
// symbol between two aromatic atoms.
type BondOrder int

const (
	BondSingle    BondOrder = 1
	BondDouble    BondOrder = 2
	BondTriple    BondOrder = 3
	BondQuadruple BondOrder = 4
	BondAromatic  BondOrder = 5
)

// Symbol returns the SMILES symbol for an explicit bond of this order.
func (o BondOrder) Symbol() string {
	switch o {
	case BondDouble:
		return "="
	case BondTriple:
		return "#"
	case BondQuadruple:
		return "$"
	case BondAromatic:
		return ":"
	default:
		return "-"
	}
}

// Valence is the contribution of one bond of this order to an atom's
// effective valence.  Aromatic bonds contribute 1.5.  Hydrogen counting does
// not use this value for aromatic bonds: it counts each as one σ connection
// and adds the shared π bond separately.
func (o BondOrder) Valence() float64 {
	switch o {
	case BondAromatic:
		return 1.5
	default:
		return float64(o)
	}
}

// BondDirection is the directional mark on a single bond adjacent to a double
// bond ('/' or '\'), stored relative to the written atom order (From → To).
type BondDirection int

const (
	DirNone BondDirection = iota
	DirUp                 // '/'
	DirDown               // '\'
)

// Flip returns the direction seen when the bond is traversed To → From.
func (d BondDirection) Flip() BondDirection {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	default:
		return DirNone
	}
}

// Symbol returns "/" or "\\" for directional bonds and "" otherwise.
func (d BondDirection) Symbol() string {
	switch d {
	case DirUp:
		return "/"
	case DirDown:
		return "\\"
	default:
		return ""
	}
}

// Bond is an edge of the molecular graph.  From precedes To in the written
// input, which is the reference frame for Direction.
type Bond struct {
	From  int
	To    int
	Order BondOrder

	// Direction carries '/' or '\' stereo for single bonds.
	Direction BondDirection

	// RingClosure records that the bond was created by a ring-closure digit
	// rather than atom adjacency in the input string.
	RingClosure bool
}

// Has reports whether the bond touches the given atom id.
func (b *Bond) Has(id int) bool {
	return b.From == id || b.To == id
}

// Other returns the endpoint opposite to the given atom id.  The result is
// undefined when the bond does not touch id.
func (b *Bond) Other(id int) int {
	if b.From == id {
		return b.To
	}
	return b.From
}
