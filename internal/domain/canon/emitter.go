package canon

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/turtacn/SmilesKit/internal/domain/graph"
	"github.com/turtacn/SmilesKit/pkg/errors"
	"github.com/turtacn/SmilesKit/pkg/types/chem"
)

// Emit serialises molecules to SMILES, joining components with '.'.  With
// opts.Canonical the emission order comes from refined labels; otherwise the
// graph is written as-is from the smallest atom id.  Empty molecules
// contribute nothing to the output.
//
// The caller is responsible for enrichment; Emit never mutates the graph.
func Emit(mols []*graph.Molecule, opts chem.EmitOptions) (string, error) {
	parts := make([]string, 0, len(mols))
	for _, m := range mols {
		if m == nil || m.AtomCount() == 0 {
			continue
		}
		s, err := EmitMolecule(m, opts.Canonical)
		if err != nil {
			return "", err
		}
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "."), nil
}

// EmitMolecule serialises one molecule.  Disconnected fragments inside the
// molecule are emitted as dot-separated components.
func EmitMolecule(m *graph.Molecule, canonical bool) (string, error) {
	if m.AtomCount() == 0 {
		return "", nil
	}

	var labels *Labels
	if canonical {
		labels = Refine(m)
	}
	tour := BuildTour(m, labels)
	if tour.MaxDigit > 99 {
		return "", errors.New(errors.CodeEmitError,
			fmt.Sprintf("molecule needs %d ring closures; SMILES allows at most 99", tour.MaxDigit))
	}

	w := &writer{m: m, tour: tour}
	parts := make([]string, 0, len(tour.Roots))
	for _, root := range tour.Roots {
		var sb strings.Builder
		w.sb = &sb
		w.write(root)
		parts = append(parts, normalizeDirections(sb.String()))
	}
	return strings.Join(parts, "."), nil
}

type writer struct {
	m    *graph.Molecule
	tour *Tour
	sb   *strings.Builder
}

// write emits the atom, its ring-closure digits, and its children; all
// children but the last are parenthesised branches.
func (w *writer) write(u int) {
	w.sb.WriteString(w.atomString(u))

	for _, cl := range w.tour.Closures[u] {
		if cl.Opening {
			w.sb.WriteString(w.bondString(u, cl.Partner))
		}
		w.sb.WriteString(digitString(cl.Digit))
	}

	kids := w.tour.Children[u]
	for i, v := range kids {
		if i < len(kids)-1 {
			w.sb.WriteByte('(')
			w.sb.WriteString(w.bondString(u, v))
			w.write(v)
			w.sb.WriteByte(')')
		} else {
			w.sb.WriteString(w.bondString(u, v))
			w.write(v)
		}
	}
}

// bondString renders the bond between u and v as seen travelling u → v.
// Default orders are omitted: single bonds in an aliphatic context, aromatic
// bonds between two aromatic atoms.  A single bond connecting two aromatic
// atoms needs an explicit '-' to not read as aromatic.
func (w *writer) bondString(u, v int) string {
	b := w.m.BondBetween(u, v)
	if b == nil {
		return ""
	}
	switch b.Order {
	case graph.BondSingle:
		if b.Direction != graph.DirNone {
			if u == b.From {
				return b.Direction.Symbol()
			}
			return b.Direction.Flip().Symbol()
		}
		if w.m.Atoms[u].Aromatic && w.m.Atoms[v].Aromatic {
			return "-"
		}
		return ""
	case graph.BondAromatic:
		if w.m.Atoms[u].Aromatic && w.m.Atoms[v].Aromatic {
			return ""
		}
		return ":"
	default:
		return b.Order.Symbol()
	}
}

// atomString renders one atom, bracketed when any bracket-only feature is
// present or when the bare form would imply a different hydrogen count.
func (w *writer) atomString(u int) string {
	a := w.m.Atoms[u]

	symbol := a.Symbol
	if a.Aromatic {
		symbol = strings.ToLower(symbol)
	}

	chirality := w.chiralityString(u)

	needsBracket := a.Isotope > 0 ||
		a.Charge != 0 ||
		a.AtomClass > 0 ||
		chirality != "" ||
		(!a.IsWildcard() && !graph.IsOrganicSubset(a.Symbol)) ||
		a.HydrogenCount() != impliedBareHydrogens(w.m, a)

	if !needsBracket {
		return symbol
	}

	var sb strings.Builder
	sb.WriteByte('[')
	if a.Isotope > 0 {
		sb.WriteString(strconv.Itoa(a.Isotope))
	}
	sb.WriteString(symbol)
	sb.WriteString(chirality)
	if h := a.HydrogenCount(); h > 0 {
		sb.WriteByte('H')
		if h > 1 {
			sb.WriteString(strconv.Itoa(h))
		}
	}
	switch {
	case a.Charge > 0:
		sb.WriteByte('+')
		if a.Charge > 1 {
			sb.WriteString(strconv.Itoa(a.Charge))
		}
	case a.Charge < 0:
		sb.WriteByte('-')
		if a.Charge < -1 {
			sb.WriteString(strconv.Itoa(-a.Charge))
		}
	}
	if a.AtomClass > 0 {
		sb.WriteByte(':')
		sb.WriteString(strconv.Itoa(a.AtomClass))
	}
	sb.WriteByte(']')
	return sb.String()
}

// chiralityString re-projects a tetrahedral tag onto the emission's neighbor
// order: when the permutation from the written order to the emitted order is
// odd, the sense flips.  Extended tags pass through verbatim.
func (w *writer) chiralityString(u int) string {
	a := w.m.Atoms[u]
	if a.Chirality == "" {
		return ""
	}
	if !a.HasTetrahedralTag() {
		return a.Chirality
	}

	stored := a.NeighborOrder
	emitted := w.emissionNeighborOrder(u, stored)
	if !sameMembers(stored, emitted) {
		return a.Chirality
	}
	if permutationParityOdd(stored, emitted) {
		if a.Chirality == graph.ChiralityCCW {
			return graph.ChiralityCW
		}
		return graph.ChiralityCCW
	}
	return a.Chirality
}

// emissionNeighborOrder reconstructs the order in which the atom's neighbors
// appear in the output: parent, bracket hydrogen, ring closures, children.
func (w *writer) emissionNeighborOrder(u int, stored []int) []int {
	out := make([]int, 0, len(stored))
	if p := w.tour.Parent[u]; p >= 0 {
		out = append(out, p)
	}
	for _, v := range stored {
		if v == graph.HPlaceholder {
			out = append(out, graph.HPlaceholder)
			break
		}
	}
	for _, cl := range w.tour.Closures[u] {
		out = append(out, cl.Partner)
	}
	out = append(out, w.tour.Children[u]...)
	return out
}

// sameMembers reports whether the two sequences hold exactly the same ids.
func sameMembers(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[int]int, len(a))
	for _, v := range a {
		seen[v]++
	}
	for _, v := range b {
		seen[v]--
		if seen[v] < 0 {
			return false
		}
	}
	return true
}

// permutationParityOdd computes the parity of the permutation taking `from`
// to `to` by cycle decomposition.
func permutationParityOdd(from, to []int) bool {
	n := len(from)
	pos := make(map[int]int, n)
	for i, v := range from {
		pos[v] = i
	}
	perm := make([]int, n)
	for i, v := range to {
		perm[i] = pos[v]
	}

	visited := make([]bool, n)
	transpositions := 0
	for i := 0; i < n; i++ {
		if visited[i] {
			continue
		}
		length := 0
		for j := i; !visited[j]; j = perm[j] {
			visited[j] = true
			length++
		}
		transpositions += length - 1
	}
	return transpositions%2 == 1
}

// impliedBareHydrogens computes the hydrogen count the bare (bracketless)
// form of the atom would imply, mirroring the assigner's rule.  Lowercase
// nitrogen-family atoms read as pyridine-type when bare, so a pyrrole
// nitrogen keeps its bracket.
func impliedBareHydrogens(m *graph.Molecule, a *graph.Atom) int {
	valences := graph.NormalValences(a.AtomicNum)
	if valences == nil {
		return 0
	}

	sum := 0.0
	exoDouble := false
	for _, bi := range m.BondIndices(a.ID) {
		order := m.Bonds[bi].Order
		if order == graph.BondAromatic {
			sum++
			continue
		}
		if order == graph.BondDouble {
			exoDouble = true
		}
		sum += order.Valence()
	}
	if a.Aromatic {
		switch a.AtomicNum {
		case 6:
			if !exoDouble {
				sum++
			}
		case 7, 15:
			sum++
		}
	}

	effective := int(math.Ceil(sum))
	for _, v := range valences {
		if v >= effective {
			return v - effective
		}
	}
	return 0
}

// digitString renders a ring-closure number: bare digits up to 9, %NN beyond.
func digitString(d int) string {
	if d < 10 {
		return strconv.Itoa(d)
	}
	return "%" + strconv.Itoa(d)
}

// normalizeDirections applies the global '/'-first normalisation: of a string
// and its mirror (every direction marker flipped), the lexicographically
// smaller one is emitted.  '/' sorts below '\', so the first marker decides.
func normalizeDirections(s string) string {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '/':
			return s
		case '\\':
			return flipDirections(s)
		}
	}
	return s
}

func flipDirections(s string) string {
	out := []byte(s)
	for i, c := range out {
		switch c {
		case '/':
			out[i] = '\\'
		case '\\':
			out[i] = '/'
		}
	}
	return string(out)
}
