package predicate

import "bytes"

// NewText compiles a literal-substring predicate over the whole line
// (not field-aware). Case-insensitive matching folds ASCII letters only,
// per the design's explicit non-goal of full Unicode case folding.
func NewText(pattern string, caseSensitive bool) func(line []byte) bool {
	if caseSensitive {
		pat := []byte(pattern)
		return func(line []byte) bool { return bytes.Contains(line, pat) }
	}
	folded := foldASCII([]byte(pattern))
	return func(line []byte) bool { return containsFoldASCII(line, folded) }
}

func foldByte(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

func foldASCII(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		out[i] = foldByte(c)
	}
	return out
}

// containsFoldASCII reports whether line contains foldedPat, comparing
// byte-by-byte under ASCII case folding without allocating a folded copy
// of line.
func containsFoldASCII(line, foldedPat []byte) bool {
	n, m := len(line), len(foldedPat)
	if m == 0 {
		return true
	}
	for i := 0; i+m <= n; i++ {
		match := true
		for j := 0; j < m; j++ {
			if foldByte(line[i+j]) != foldedPat[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
