package molecule

import (
	"hash/fnv"
	"math/bits"
	"sort"

	"github.com/turtacn/SmilesKit/internal/domain/graph"
	"github.com/turtacn/SmilesKit/internal/domain/perception"
	"github.com/turtacn/SmilesKit/internal/domain/rings"
	"github.com/turtacn/SmilesKit/internal/domain/smiles"
	"github.com/turtacn/SmilesKit/pkg/errors"
	"github.com/turtacn/SmilesKit/pkg/types/chem"
)

// Fingerprint represents a molecular fingerprint as a bit vector.  Bit i is
// stored in byte i/8 at bit position i%8.
type Fingerprint struct {
	// Type identifies which fingerprint algorithm was used.
	Type chem.FingerprintType `json:"type"`

	// Bits is the packed bit vector representation.
	Bits []byte `json:"bits"`

	// Length is the total number of bits in the fingerprint.
	Length int `json:"length"`

	// NumOnBits is the count of set bits (popcount).
	NumOnBits int `json:"num_on_bits"`
}

// NewFingerprint constructs a Fingerprint from raw bit data.
func NewFingerprint(fpType chem.FingerprintType, data []byte, length int) *Fingerprint {
	onBits := 0
	for _, b := range data {
		onBits += bits.OnesCount8(b)
	}
	return &Fingerprint{Type: fpType, Bits: data, Length: length, NumOnBits: onBits}
}

// GetBit returns true if the bit at the given index is set.
func (fp *Fingerprint) GetBit(index int) bool {
	if index < 0 || index >= fp.Length {
		return false
	}
	return (fp.Bits[index/8] & (1 << uint(index%8))) != 0
}

// SetBit sets the bit at the given index to 1.
func (fp *Fingerprint) SetBit(index int) {
	if index < 0 || index >= fp.Length {
		return
	}
	old := fp.Bits[index/8]
	fp.Bits[index/8] |= 1 << uint(index%8)
	if old != fp.Bits[index/8] {
		fp.NumOnBits++
	}
}

// CalculateMorganFingerprint computes a circular fingerprint over the parsed
// molecular graph: every atom environment of radius 0..radius hashes to one
// bit.  The per-atom seed invariant is (atomic number, degree, charge,
// hydrogen count, aromatic flag); each round folds in the sorted
// (bond order, neighbor hash) pairs, which is the same neighborhood shape the
// canonicalizer refines over.
func CalculateMorganFingerprint(input string, radius, nBits int) (*Fingerprint, error) {
	if input == "" {
		return nil, errors.New(errors.CodeFingerprintError, "SMILES string cannot be empty")
	}
	if radius < 0 {
		radius = chem.MorganDefaultRadius
	}
	if nBits <= 0 {
		nBits = chem.MorganDefaultBits
	}

	result := smiles.Parse(input)
	mols := validMolecules(result.Molecules)
	if result.HasErrors() || len(mols) == 0 {
		return nil, errors.New(errors.CodeFingerprintError, "SMILES did not produce a valid molecule").
			WithDetail(diagnosticSummary(result.Diagnostics))
	}
	perception.EnrichAll(mols, rings.DefaultMaxCycleLen)

	fp := NewFingerprint(chem.FingerprintMorgan, make([]byte, (nBits+7)/8), nBits)
	for _, m := range mols {
		hashes := seedHashes(m)
		for r := 0; r <= radius; r++ {
			for _, h := range hashes {
				fp.SetBit(int(h % uint64(nBits)))
			}
			if r < radius {
				hashes = expandHashes(m, hashes)
			}
		}
	}
	return fp, nil
}

// seedHashes computes the radius-0 environment hash per atom.
func seedHashes(m *graph.Molecule) []uint64 {
	out := make([]uint64, m.AtomCount())
	for i, a := range m.Atoms {
		arom := 0
		if a.Aromatic {
			arom = 1
		}
		out[i] = hashInts(0x9e3779b9, a.AtomicNum, m.Degree(i), a.Charge, a.HydrogenCount(), arom)
	}
	return out
}

// expandHashes folds each atom's sorted neighbor hashes into the next radius.
func expandHashes(m *graph.Molecule, prev []uint64) []uint64 {
	next := make([]uint64, len(prev))
	for i := range prev {
		pairs := make([][2]uint64, 0, m.Degree(i))
		for _, bi := range m.BondIndices(i) {
			b := m.Bonds[bi]
			pairs = append(pairs, [2]uint64{uint64(b.Order), prev[b.Other(i)]})
		}
		sort.Slice(pairs, func(a, b int) bool {
			if pairs[a][0] != pairs[b][0] {
				return pairs[a][0] < pairs[b][0]
			}
			return pairs[a][1] < pairs[b][1]
		})

		h := fnv.New64a()
		writeUint64(h, prev[i])
		for _, p := range pairs {
			writeUint64(h, p[0])
			writeUint64(h, p[1])
		}
		next[i] = h.Sum64()
	}
	return next
}

func hashInts(seed uint64, vals ...int) uint64 {
	h := fnv.New64a()
	writeUint64(h, seed)
	for _, v := range vals {
		writeUint64(h, uint64(int64(v)))
	}
	return h.Sum64()
}

type byteWriter interface{ Write(p []byte) (int, error) }

func writeUint64(w byteWriter, v uint64) {
	var buf [8]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(v >> (8 * i))
	}
	_, _ = w.Write(buf[:])
}
