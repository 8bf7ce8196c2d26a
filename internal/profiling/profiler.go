package profiling

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// ColumnProfile summarizes the observed numeric values of one column. It is
// attached to diagnostics output so an external renderer can scale and label
// its plots without re-deriving the basics.
type ColumnProfile struct {
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"std_dev"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Median   float64 `json:"median"`
	Q25      float64 `json:"q25"`
	Q75      float64 `json:"q75"`
	Skewness float64 `json:"skewness"`
	IsNormal bool    `json:"is_normal"`
}

// ProfileColumn computes a summary over the given values. Returns a zero
// profile for empty input rather than an error; profiling is advisory.
func ProfileColumn(data []float64) ColumnProfile {
	if len(data) == 0 {
		return ColumnProfile{}
	}

	profile := ColumnProfile{Count: len(data)}

	mean, err := stats.Mean(data)
	if err != nil {
		return profile
	}
	profile.Mean = mean

	if sd, err := stats.StandardDeviation(data); err == nil {
		profile.StdDev = sd
	}
	if v, err := stats.Min(data); err == nil {
		profile.Min = v
	}
	if v, err := stats.Max(data); err == nil {
		profile.Max = v
	}
	if v, err := stats.Median(data); err == nil {
		profile.Median = v
	}
	if v, err := stats.Percentile(data, 25); err == nil {
		profile.Q25 = v
	}
	if v, err := stats.Percentile(data, 75); err == nil {
		profile.Q75 = v
	}

	profile.Skewness = sampleSkewness(data, profile.Mean, profile.StdDev)
	profile.IsNormal = approximatelyNormal(data, profile.Mean, profile.StdDev, profile.Skewness)

	return profile
}

// sampleSkewness computes the adjusted Fisher-Pearson coefficient
func sampleSkewness(data []float64, mean, stdDev float64) float64 {
	if len(data) < 3 || stdDev == 0 {
		return 0
	}

	n := float64(len(data))
	sum := 0.0
	for _, x := range data {
		d := (x - mean) / stdDev
		sum += d * d * d
	}

	skew := sum / n
	return skew * math.Sqrt(n*(n-1)) / (n - 2)
}

// approximatelyNormal runs a rough skewness/kurtosis normality check with a
// chi-squared p-value approximation
func approximatelyNormal(data []float64, mean, stdDev, skewness float64) bool {
	if len(data) < 4 || stdDev == 0 {
		return false
	}

	n := float64(len(data))
	sum := 0.0
	for _, x := range data {
		d := (x - mean) / stdDev
		sum += d * d * d * d
	}
	kurtosis := sum / n

	testStat := math.Abs(skewness) + math.Abs(kurtosis-3)/2
	chi := distuv.ChiSquared{K: 2}
	pValue := 1 - chi.CDF(testStat*testStat)

	return pValue > 0.05
}
