// Package graph provides the in-memory molecular graph: atoms, bonds,
// adjacency, and the cached ring information slot.  The periodic-table data in
// this file is immutable process-wide data initialised at startup; nothing in
// the package mutates it.
package graph

// atomicNumbers maps every element symbol to its atomic number.
var atomicNumbers = map[string]int{
	"H": 1, "He": 2, "Li": 3, "Be": 4, "B": 5, "C": 6,
	"N": 7, "O": 8, "F": 9, "Ne": 10, "Na": 11, "Mg": 12,
	"Al": 13, "Si": 14, "P": 15, "S": 16, "Cl": 17, "Ar": 18,
	"K": 19, "Ca": 20, "Sc": 21, "Ti": 22, "V": 23, "Cr": 24,
	"Mn": 25, "Fe": 26, "Co": 27, "Ni": 28, "Cu": 29, "Zn": 30,
	"Ga": 31, "Ge": 32, "As": 33, "Se": 34, "Br": 35, "Kr": 36,
	"Rb": 37, "Sr": 38, "Y": 39, "Zr": 40, "Nb": 41, "Mo": 42,
	"Tc": 43, "Ru": 44, "Rh": 45, "Pd": 46, "Ag": 47, "Cd": 48,
	"In": 49, "Sn": 50, "Sb": 51, "Te": 52, "I": 53, "Xe": 54,
	"Cs": 55, "Ba": 56, "La": 57, "Ce": 58, "Pr": 59, "Nd": 60,
	"Pm": 61, "Sm": 62, "Eu": 63, "Gd": 64, "Tb": 65, "Dy": 66,
	"Ho": 67, "Er": 68, "Tm": 69, "Yb": 70, "Lu": 71, "Hf": 72,
	"Ta": 73, "W": 74, "Re": 75, "Os": 76, "Ir": 77, "Pt": 78,
	"Au": 79, "Hg": 80, "Tl": 81, "Pb": 82, "Bi": 83, "Po": 84,
	"At": 85, "Rn": 86, "Fr": 87, "Ra": 88, "Ac": 89, "Th": 90,
	"Pa": 91, "U": 92, "Np": 93, "Pu": 94, "Am": 95, "Cm": 96,
	"Bk": 97, "Cf": 98, "Es": 99, "Fm": 100, "Md": 101, "No": 102,
	"Lr": 103, "Rf": 104, "Db": 105, "Sg": 106, "Bh": 107, "Hs": 108,
	"Mt": 109, "Ds": 110, "Rg": 111, "Cn": 112, "Nh": 113, "Fl": 114,
	"Mc": 115, "Lv": 116, "Ts": 117, "Og": 118,
}

// atomicWeights holds standard atomic weights for the elements the toolkit
// commonly meets.  Elements absent from the table weigh zero in gross-formula
// mass computation, which keeps the value usable as a lower bound.
var atomicWeights = map[int]float64{
	1: 1.008, 2: 4.003, 3: 6.941, 4: 9.012, 5: 10.811, 6: 12.011,
	7: 14.007, 8: 15.999, 9: 18.998, 10: 20.180, 11: 22.990, 12: 24.305,
	13: 26.982, 14: 28.086, 15: 30.974, 16: 32.065, 17: 35.453, 18: 39.948,
	19: 39.098, 20: 40.078, 22: 47.867, 24: 51.996, 25: 54.938, 26: 55.845,
	27: 58.933, 28: 58.693, 29: 63.546, 30: 65.380, 31: 69.723, 32: 72.640,
	33: 74.922, 34: 78.960, 35: 79.904, 37: 85.468, 38: 87.620, 40: 91.224,
	42: 95.960, 44: 101.07, 45: 102.906, 46: 106.42, 47: 107.868, 48: 112.411,
	49: 114.818, 50: 118.710, 51: 121.760, 52: 127.600, 53: 126.904, 54: 131.293,
	55: 132.905, 56: 137.327, 74: 183.840, 75: 186.207, 76: 190.230, 77: 192.217,
	78: 195.084, 79: 196.967, 80: 200.590, 81: 204.383, 82: 207.200, 83: 208.980,
	92: 238.029,
}

// aromaticSymbols are the lowercase symbols SMILES allows for aromatic atoms.
// 'b' appears in the organic subset; 'se' and 'as' require brackets.
var aromaticSymbols = map[string]string{
	"b": "B", "c": "C", "n": "N", "o": "O", "p": "P", "s": "S",
	"se": "Se", "as": "As", "te": "Te",
}

// organicSubset is the set of elements writable without brackets.
var organicSubset = map[string]bool{
	"B": true, "C": true, "N": true, "O": true, "P": true, "S": true,
	"F": true, "Cl": true, "Br": true, "I": true,
}

// normalValences lists the normal valences of the organic-subset elements in
// ascending order; implicit hydrogen counting picks the smallest valence that
// accommodates the atom's explicit bonds.
var normalValences = map[int][]int{
	1:  {1},       // H
	5:  {3},       // B
	6:  {4},       // C
	7:  {3, 5},    // N
	8:  {2},       // O
	9:  {1},       // F
	15: {3, 5},    // P
	16: {2, 4, 6}, // S
	17: {1},       // Cl
	35: {1},       // Br
	53: {1},       // I
}

// AtomicNumber resolves an element symbol (case-sensitive, capitalised form)
// to its atomic number.  The wildcard "*" resolves to 0.
func AtomicNumber(symbol string) (int, bool) {
	if symbol == "*" {
		return 0, true
	}
	n, ok := atomicNumbers[symbol]
	return n, ok
}

// AtomicWeight returns the standard atomic weight of the element, or 0 when
// the element is not in the weight table.
func AtomicWeight(atomicNum int) float64 {
	return atomicWeights[atomicNum]
}

// AromaticSymbol resolves a lowercase aromatic SMILES symbol to its
// capitalised element symbol.  The second return is false when the symbol
// cannot denote an aromatic atom.
func AromaticSymbol(symbol string) (string, bool) {
	s, ok := aromaticSymbols[symbol]
	return s, ok
}

// IsOrganicSubset reports whether the element can be written without brackets.
func IsOrganicSubset(symbol string) bool {
	return organicSubset[symbol]
}

// NormalValences returns the normal valence list for the element in ascending
// order, or nil when the element has no entry (such atoms get no implicit
// hydrogens).
func NormalValences(atomicNum int) []int {
	return normalValences[atomicNum]
}

// MaxNormalValence returns the largest normal valence for the element, or 0.
func MaxNormalValence(atomicNum int) int {
	vs := normalValences[atomicNum]
	if len(vs) == 0 {
		return 0
	}
	return vs[len(vs)-1]
}
