package trainer

import (
	"math"
	"strings"
	"unicode/utf8"
)

// dunningLogLikelihood is the log-likelihood ratio that a type of countA
// occurrences, countAB of them period-final, is followed by a period
// almost always (p = 0.99) rather than at the corpus rate countB/n.
func dunningLogLikelihood(countA, countB, countAB, n float64) float64 {
	p1 := countB / n
	const p2 = 0.99

	null := xlog(countAB, p1) + xlog(countA-countAB, 1-p1)
	alt := xlog(countAB, p2) + xlog(countA-countAB, 1-p2)
	return -2 * (null - alt)
}

// colLogLikelihood tests whether b follows a more often than chance,
// given countA occurrences of a, countB of b, countAB of the pair and n
// tokens in total. Terms whose logarithm is undefined contribute zero.
func colLogLikelihood(countA, countB, countAB, n float64) float64 {
	p := countB / n
	p1 := countAB / countA
	p2 := 1.0
	if n != countA {
		p2 = (countB - countAB) / (n - countA)
	}

	s1 := logSum(countAB, p, countA-countAB, 1-p)
	s2 := logSum(countB-countAB, p, n-countA-countB+countAB, 1-p)

	var s3, s4 float64
	if countA != countAB && p1 > 0 && p1 < 1 {
		s3 = countAB*math.Log(p1) + (countA-countAB)*math.Log(1-p1)
	}
	if countB != countAB && p2 > 0 && p2 < 1 {
		s4 = (countB-countAB)*math.Log(p2) + (n-countA-countB+countAB)*math.Log(1-p2)
	}
	return -2 * (s1 + s2 - s3 - s4)
}

// abbreviationScore rates base (a type without its final period) as an
// abbreviation. Short types with internal periods that are rarely seen
// without a final period score highest.
func abbreviationScore(base string, s TypeStats, periodTokens, tokens int) float64 {
	withPeriod := float64(s.PeriodFinal)
	without := float64(s.Count - s.PeriodFinal)

	periods := float64(strings.Count(base, ".") + 1)
	nonPeriods := float64(utf8.RuneCountInString(base)) - periods + 1

	ll := dunningLogLikelihood(withPeriod+without, float64(periodTokens), withPeriod, float64(tokens))
	return ll * math.Exp(-nonPeriods) * periods * math.Pow(nonPeriods, -without)
}

// xlog is x*log(p), taken as zero when x is zero.
func xlog(x, p float64) float64 {
	if x == 0 {
		return 0
	}
	return x * math.Log(p)
}

// logSum is a*log(p) + b*log(q), or zero when either logarithm is
// undefined.
func logSum(a, p, b, q float64) float64 {
	if p <= 0 || q <= 0 {
		return 0
	}
	return a*math.Log(p) + b*math.Log(q)
}
