package molecule

import (
	"math"
	"math/bits"

	"github.com/turtacn/SmilesKit/pkg/errors"
)

// TanimotoSimilarity computes the Tanimoto coefficient (Jaccard index) between
// two molecular fingerprints, the standard similarity metric in
// cheminformatics.
//
// Formula: |A ∩ B| / (|A| + |B| - |A ∩ B|).  Returns a value in [0.0, 1.0];
// two all-zero fingerprints count as identical.
func TanimotoSimilarity(fp1, fp2 *Fingerprint) (float64, error) {
	if err := validateFingerprints(fp1, fp2); err != nil {
		return 0, err
	}
	if fp1.NumOnBits == 0 && fp2.NumOnBits == 0 {
		return 1.0, nil
	}

	intersection := andCount(fp1.Bits, fp2.Bits)
	union := fp1.NumOnBits + fp2.NumOnBits - intersection
	if union == 0 {
		return 0.0, nil
	}
	return float64(intersection) / float64(union), nil
}

// DiceSimilarity computes the Sørensen–Dice coefficient, which weights the
// intersection more heavily than Tanimoto.
//
// Formula: 2 × |A ∩ B| / (|A| + |B|).
func DiceSimilarity(fp1, fp2 *Fingerprint) (float64, error) {
	if err := validateFingerprints(fp1, fp2); err != nil {
		return 0, err
	}
	total := fp1.NumOnBits + fp2.NumOnBits
	if total == 0 {
		return 1.0, nil
	}
	return 2 * float64(andCount(fp1.Bits, fp2.Bits)) / float64(total), nil
}

// CosineSimilarity computes the cosine of the angle between the fingerprints
// viewed as binary vectors.
//
// Formula: |A ∩ B| / (√|A| × √|B|).
func CosineSimilarity(fp1, fp2 *Fingerprint) (float64, error) {
	if err := validateFingerprints(fp1, fp2); err != nil {
		return 0, err
	}
	if fp1.NumOnBits == 0 || fp2.NumOnBits == 0 {
		return 0.0, nil
	}
	intersection := andCount(fp1.Bits, fp2.Bits)
	return float64(intersection) / (math.Sqrt(float64(fp1.NumOnBits)) * math.Sqrt(float64(fp2.NumOnBits))), nil
}

// validateFingerprints checks the pair is comparable.
func validateFingerprints(fp1, fp2 *Fingerprint) error {
	if fp1 == nil || fp2 == nil {
		return errors.New(errors.CodeSimilarityCalcError, "fingerprints must not be nil")
	}
	if fp1.Type != fp2.Type {
		return errors.New(errors.CodeSimilarityCalcError, "fingerprint types differ")
	}
	if fp1.Length != fp2.Length {
		return errors.New(errors.CodeSimilarityCalcError, "fingerprint lengths differ")
	}
	return nil
}

// andCount counts the set bits of the bitwise AND of two equal-length vectors.
func andCount(a, b []byte) int {
	n := 0
	for i := range a {
		n += bits.OnesCount8(a[i] & b[i])
	}
	return n
}
