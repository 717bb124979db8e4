package domain

// PredictNext fits a least-squares line through prices indexed 0..n-1 and
// returns its value at n. It returns the last price when no slope can be fitted.
func PredictNext(prices []float64) float64 {
	n := float64(len(prices))
	switch len(prices) {
	case 0:
		return 0
	case 1:
		return prices[0]
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, y := range prices {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	slope := (n*sumXY - sumX*sumY) / (n*sumXX - sumX*sumX)
	intercept := (sumY - slope*sumX) / n

	return slope*n + intercept
}

// PercentChange returns the change from base to next in percent.
func PercentChange(base, next float64) float64 {
	if base == 0 {
		return 0
	}

	return (next - base) / base * 100
}

func Trend(base, next float64) string {
	if next > base {
		return "Upward 📈"
	}

	return "Downward 📉"
}
