package text

// Levenshtein returns the minimum number of single-rune insertions,
// deletions and substitutions that turn s into t.
//
// It keeps two rows of the dynamic-programming table, sized by the shorter
// input.
func Levenshtein(s, t string) int {
	rs := []rune(s)
	rt := []rune(t)
	if len(rs) == 0 {
		return len(rt)
	}
	if len(rt) == 0 {
		return len(rs)
	}
	if len(rs) < len(rt) {
		rs, rt = rt, rs
	}
	prev := make([]int, len(rt)+1)
	curr := make([]int, len(rt)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(rs); i++ {
		curr[0] = i
		for j := 1; j <= len(rt); j++ {
			cost := 1
			if rs[i-1] == rt[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rt)]
}

// RuneLen returns the number of runes in s; it is the length used to
// normalize Levenshtein distances.
func RuneLen(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}
