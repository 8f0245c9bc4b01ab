package dedup

import (
	id "pessoas/pkg/domain"
)

// jaroWinkler prefix scaling factor and maximum common-prefix length.
const (
	winklerScale     = 0.1
	winklerMaxPrefix = 4
)

// nameSimilarity scores two already-normalized names in [0, 1] using
// Jaro-Winkler, which favors strings sharing a common prefix. Names are
// expected to come out of strings.NormalizeName so the comparison is
// case- and accent-insensitive.
func nameSimilarity(a, b string) float64 {
	if a == b {
		if a == "" {
			return 0
		}
		return 1
	}
	jaro := jaroSimilarity(a, b)
	if jaro == 0 {
		return 0
	}

	prefix := 0
	for prefix < len(a) && prefix < len(b) && prefix < winklerMaxPrefix && a[prefix] == b[prefix] {
		prefix++
	}
	return jaro + float64(prefix)*winklerScale*(1-jaro)
}

// jaroSimilarity computes the plain Jaro similarity of two strings.
func jaroSimilarity(a, b string) float64 {
	la, lb := len(a), len(b)
	if la == 0 || lb == 0 {
		return 0
	}

	window := max(la, lb)/2 - 1
	if window < 0 {
		window = 0
	}

	aMatched := make([]bool, la)
	bMatched := make([]bool, lb)
	matches := 0
	for i := 0; i < la; i++ {
		lo := max(0, i-window)
		hi := min(lb, i+window+1)
		for j := lo; j < hi; j++ {
			if bMatched[j] || a[i] != b[j] {
				continue
			}
			aMatched[i] = true
			bMatched[j] = true
			matches++
			break
		}
	}
	if matches == 0 {
		return 0
	}

	transpositions := 0
	j := 0
	for i := 0; i < la; i++ {
		if !aMatched[i] {
			continue
		}
		for !bMatched[j] {
			j++
		}
		if a[i] != b[j] {
			transpositions++
		}
		j++
	}

	m := float64(matches)
	return (m/float64(la) + m/float64(lb) + (m-float64(transpositions)/2)/m) / 3
}

// birthDateProximity scores how close two birth dates are, in [0, 1].
// Equal dates score 1.0, one day apart scores 0.9, and the score decays
// linearly to 0 at windowDays. Either date missing yields 0.
func birthDateProximity(a, b id.BirthDate, windowDays int) float64 {
	if a.IsZero() || b.IsZero() || windowDays <= 0 {
		return 0
	}
	days := a.DaysApart(b)
	switch {
	case days == 0:
		return 1.0
	case days > windowDays:
		return 0
	case windowDays == 1:
		return 0.9
	default:
		// Anchored at 0.9 for one day apart, reaching 0 at the window edge.
		return 0.9 * float64(windowDays-days) / float64(windowDays-1)
	}
}

// combinedScore blends name and birth-date signals. Without a date signal the
// name score stands alone.
func combinedScore(nameScore, dateScore float64, hasDate bool) float64 {
	if !hasDate {
		return nameScore
	}
	return 0.7*nameScore + 0.3*dateScore
}
