package perception

import (
	"sort"

	"github.com/turtacn/SmilesKit/internal/domain/graph"
	"github.com/turtacn/SmilesKit/pkg/types/chem"
)

// demoteUnverified handles every atom that came in lowercase but was not
// confirmed by any perceived aromatic ring.  Those atoms are re-kekulized:
// a matching assigns alternating double bonds among the atoms that need one;
// leftover aromatic bond orders drop to single.  When no valid Kekulé
// structure exists the atoms are left non-aromatic with single bonds and a
// warning is emitted.
func demoteUnverified(m *graph.Molecule, perceived map[int]bool) []chem.Diagnostic {
	var unverified []int
	for _, a := range m.Atoms {
		if a.Aromatic && !perceived[a.ID] {
			unverified = append(unverified, a.ID)
		}
	}
	if len(unverified) == 0 {
		cleanupStrayAromaticBonds(m)
		return nil
	}
	sort.Ints(unverified)

	inSet := make(map[int]bool, len(unverified))
	for _, id := range unverified {
		inSet[id] = true
	}

	// Atoms that must end up with one double bond for their valence to close.
	needs := make(map[int]bool)
	for _, id := range unverified {
		if needsPiBond(m, id) {
			needs[id] = true
		}
	}

	match, ok := matchAlternating(m, inSet, needs)

	var diags []chem.Diagnostic
	for _, id := range unverified {
		m.Atoms[id].Aromatic = false
	}
	for _, b := range m.Bonds {
		if b.Order != graph.BondAromatic {
			continue
		}
		if !inSet[b.From] && !inSet[b.To] {
			continue
		}
		if ok && match[b.From] == b.To && match[b.To] == b.From {
			b.Order = graph.BondDouble
		} else {
			b.Order = graph.BondSingle
		}
	}
	if !ok {
		diags = append(diags, chem.Diagnostic{
			Severity: chem.SeverityWarning,
			Message:  "aromatic atoms failed Hückel perception and no Kekulé structure exists; bonds left single",
			Offset:   -1,
		})
	}

	cleanupStrayAromaticBonds(m)
	return diags
}

// cleanupStrayAromaticBonds demotes aromatic bond orders that survived outside
// any perceived aromatic ring: the implicit bond between two aromatic atoms of
// different ring systems (biphenyl-style), and explicit ':' bonds written in a
// non-aromatic context.
func cleanupStrayAromaticBonds(m *graph.Molecule) {
	ri := m.RingCache()
	for _, b := range m.Bonds {
		if b.Order != graph.BondAromatic {
			continue
		}
		if !m.Atoms[b.From].Aromatic || !m.Atoms[b.To].Aromatic {
			b.Order = graph.BondSingle
			continue
		}
		if ri != nil && !ri.IsRingBond(bondIndex(m, b)) {
			b.Order = graph.BondSingle
		}
	}
}

func bondIndex(m *graph.Molecule, b *graph.Bond) int {
	for _, bi := range m.BondIndices(b.From) {
		if m.Bonds[bi] == b {
			return bi
		}
	}
	return -1
}

// needsPiBond reports whether a demoted lowercase atom requires one double
// bond to satisfy its valence: carbons (unless charged or already carrying an
// exocyclic double bond) and two-connected nitrogen-family atoms without an
// H field.
func needsPiBond(m *graph.Molecule, id int) bool {
	a := m.Atoms[id]
	switch a.AtomicNum {
	case 6:
		if a.Charge != 0 {
			return false
		}
		for _, bi := range m.BondIndices(id) {
			if m.Bonds[bi].Order == graph.BondDouble {
				return false
			}
		}
		return true
	case 7, 15:
		return m.Degree(id)+a.ExplicitH+a.ImplicitH < 3
	default:
		return false
	}
}

// matchAlternating finds a perfect matching over the atoms in `needs`, using
// only aromatic-order bonds inside the demoted set.  The augmenting-path
// search is seeded in ascending atom-id order, which keeps double-bond
// placement deterministic.
func matchAlternating(m *graph.Molecule, inSet, needs map[int]bool) (map[int]int, bool) {
	match := make(map[int]int, len(needs))
	for id := range needs {
		match[id] = -1
	}

	ids := make([]int, 0, len(needs))
	for id := range needs {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var augment func(u int, visited map[int]bool) bool
	augment = func(u int, visited map[int]bool) bool {
		for _, bi := range m.BondIndices(u) {
			b := m.Bonds[bi]
			if b.Order != graph.BondAromatic {
				continue
			}
			v := b.Other(u)
			if !inSet[v] || !needs[v] || visited[v] {
				continue
			}
			visited[v] = true
			if match[v] == -1 || augment(match[v], visited) {
				match[u] = v
				match[v] = u
				return true
			}
		}
		return false
	}

	for _, u := range ids {
		if match[u] != -1 {
			continue
		}
		if !augment(u, map[int]bool{u: true}) {
			return match, false
		}
	}
	return match, true
}
