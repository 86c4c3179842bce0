// Package molecule provides the Compound aggregate: a registered chemical
// structure with its canonical form, descriptors, and fingerprints, all
// computed from the parsed molecular graph rather than from string
// heuristics.
package molecule

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/turtacn/SmilesKit/internal/domain/canon"
	"github.com/turtacn/SmilesKit/internal/domain/graph"
	"github.com/turtacn/SmilesKit/internal/domain/perception"
	"github.com/turtacn/SmilesKit/internal/domain/rings"
	"github.com/turtacn/SmilesKit/internal/domain/smiles"
	"github.com/turtacn/SmilesKit/pkg/errors"
	"github.com/turtacn/SmilesKit/pkg/types/chem"
	"github.com/turtacn/SmilesKit/pkg/types/common"
)

// DomainEvent is a marker interface for all compound-related domain events.
type DomainEvent interface {
	EventType() string
}

// CompoundCreatedEvent is published when a new compound is successfully created.
type CompoundCreatedEvent struct {
	CompoundID      common.ID
	SMILES          string
	CanonicalSMILES string
}

func (e CompoundCreatedEvent) EventType() string { return "compound.created" }

// FingerprintCalculatedEvent is published when a fingerprint is computed.
type FingerprintCalculatedEvent struct {
	CompoundID      common.ID
	FingerprintType chem.FingerprintType
}

func (e FingerprintCalculatedEvent) EventType() string { return "compound.fingerprint_calculated" }

// Compound is the aggregate root for a registered chemical structure.
type Compound struct {
	common.BaseEntity

	// SMILES is the input string as supplied by the caller.
	SMILES string `json:"smiles"`

	// CanonicalSMILES is the pipeline's canonical form.
	CanonicalSMILES string `json:"canonical_smiles"`

	// Formula is the gross formula in Hill order (C, H, then alphabetical).
	Formula string `json:"formula"`

	// MolecularWeight sums standard atomic weights, hydrogens included.
	MolecularWeight float64 `json:"molecular_weight"`

	// HeavyAtoms counts non-hydrogen atoms across all components.
	HeavyAtoms int `json:"heavy_atoms"`

	// AromaticRings counts SSSR rings whose atoms are all aromatic.
	AromaticRings int `json:"aromatic_rings"`

	// Fingerprints holds computed fingerprints keyed by type.
	Fingerprints map[chem.FingerprintType]*Fingerprint `json:"fingerprints,omitempty"`

	// Warnings carries the enrichment diagnostics recorded at creation.
	Warnings []chem.Diagnostic `json:"warnings,omitempty"`

	// Domain events (not persisted, cleared after publishing).
	events []DomainEvent
}

// NewCompound parses, enriches, and canonicalises the input and builds the
// aggregate.  Inputs that produce no valid molecule are rejected.
func NewCompound(input string) (*Compound, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, errors.New(errors.CodeCompoundInvalidSMILES, "SMILES string cannot be empty")
	}

	result := smiles.Parse(input)
	mols := validMolecules(result.Molecules)
	if result.HasErrors() || len(mols) == 0 {
		return nil, errors.New(errors.CodeCompoundInvalidSMILES, "SMILES did not produce a valid molecule").
			WithDetail(diagnosticSummary(result.Diagnostics))
	}

	warnings := append([]chem.Diagnostic(nil), result.Diagnostics...)
	warnings = append(warnings, perception.EnrichAll(mols, rings.DefaultMaxCycleLen)...)

	canonical, err := canon.Emit(mols, chem.EmitOptions{Canonical: true})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeCompoundInvalidSMILES, "canonicalisation failed")
	}

	now := time.Now().UTC()
	c := &Compound{
		BaseEntity: common.BaseEntity{
			ID:        common.NewID(),
			CreatedAt: now,
			UpdatedAt: now,
			Version:   1,
		},
		SMILES:          input,
		CanonicalSMILES: canonical,
		Formula:         GrossFormula(mols),
		MolecularWeight: MolecularWeight(mols),
		HeavyAtoms:      heavyAtomCount(mols),
		AromaticRings:   aromaticRingCount(mols),
		Fingerprints:    make(map[chem.FingerprintType]*Fingerprint),
		Warnings:        warnings,
	}
	c.recordEvent(CompoundCreatedEvent{CompoundID: c.ID, SMILES: input, CanonicalSMILES: canonical})
	return c, nil
}

// EnsureMorganFingerprint computes and attaches the Morgan fingerprint if it
// is not present yet, and returns it.
func (c *Compound) EnsureMorganFingerprint(radius, nBits int) (*Fingerprint, error) {
	if fp, ok := c.Fingerprints[chem.FingerprintMorgan]; ok {
		return fp, nil
	}
	fp, err := CalculateMorganFingerprint(c.CanonicalSMILES, radius, nBits)
	if err != nil {
		return nil, err
	}
	c.Fingerprints[chem.FingerprintMorgan] = fp
	c.recordEvent(FingerprintCalculatedEvent{CompoundID: c.ID, FingerprintType: chem.FingerprintMorgan})
	c.Touch()
	return fp, nil
}

// Events returns the accumulated domain events and clears the buffer.
func (c *Compound) Events() []DomainEvent {
	out := c.events
	c.events = nil
	return out
}

func (c *Compound) recordEvent(e DomainEvent) {
	c.events = append(c.events, e)
}

// GrossFormula renders the combined gross formula of the molecules in Hill
// order: carbon first, hydrogen second, all other elements alphabetically.
func GrossFormula(mols []*graph.Molecule) string {
	counts := make(map[string]int)
	hydrogens := 0
	for _, m := range mols {
		for _, a := range m.Atoms {
			if a.IsWildcard() {
				continue
			}
			if a.AtomicNum == 1 {
				hydrogens++
			} else {
				counts[a.Symbol]++
			}
			hydrogens += a.HydrogenCount()
		}
	}

	var sb strings.Builder
	writeElem := func(sym string, n int) {
		if n == 0 {
			return
		}
		sb.WriteString(sym)
		if n > 1 {
			fmt.Fprintf(&sb, "%d", n)
		}
	}

	writeElem("C", counts["C"])
	writeElem("H", hydrogens)

	rest := make([]string, 0, len(counts))
	for sym := range counts {
		if sym != "C" {
			rest = append(rest, sym)
		}
	}
	sort.Strings(rest)
	for _, sym := range rest {
		writeElem(sym, counts[sym])
	}
	return sb.String()
}

// MolecularWeight sums standard atomic weights across the molecules,
// hydrogens included.
func MolecularWeight(mols []*graph.Molecule) float64 {
	total := 0.0
	hWeight := graph.AtomicWeight(1)
	for _, m := range mols {
		for _, a := range m.Atoms {
			total += graph.AtomicWeight(a.AtomicNum)
			total += hWeight * float64(a.HydrogenCount())
		}
	}
	return total
}

func heavyAtomCount(mols []*graph.Molecule) int {
	n := 0
	for _, m := range mols {
		for _, a := range m.Atoms {
			if a.AtomicNum > 1 {
				n++
			}
		}
	}
	return n
}

func aromaticRingCount(mols []*graph.Molecule) int {
	n := 0
	for _, m := range mols {
		ri := rings.Analyze(m, rings.DefaultMaxCycleLen)
		for _, r := range ri.SSSR {
			aromatic := true
			for _, id := range r {
				if !m.Atoms[id].Aromatic {
					aromatic = false
					break
				}
			}
			if aromatic {
				n++
			}
		}
	}
	return n
}

func validMolecules(mols []*graph.Molecule) []*graph.Molecule {
	out := make([]*graph.Molecule, 0, len(mols))
	for _, m := range mols {
		if !m.Invalid && m.AtomCount() > 0 {
			out = append(out, m)
		}
	}
	return out
}

func diagnosticSummary(ds []chem.Diagnostic) string {
	if len(ds) == 0 {
		return "no diagnostics"
	}
	parts := make([]string, 0, len(ds))
	for _, d := range ds {
		parts = append(parts, d.String())
	}
	return strings.Join(parts, "; ")
}
