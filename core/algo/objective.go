package algo

// CalculateObjective returns sum(distances) + lambda*(1 - harmonyTotal/100). Lower is better.
// With lambda = 0 the result is exactly the distance sum.
func CalculateObjective(distances []float64, harmonyTotal, lambda float64) float64 {
	var sum float64
	for _, d := range distances {
		sum += d
	}
	if lambda == 0 {
		return sum
	}
	return sum + lambda*(1-harmonyTotal/100)
}

// ComplianceRate is the percentage of zones counted as compliant (safe or warning).
func ComplianceRate(compliant, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(compliant) / float64(total)
}
