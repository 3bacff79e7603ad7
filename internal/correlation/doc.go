// Package correlation filters examination outliers and computes the
// correlation matrix shown by the heatmap.
//
// The pipeline is:
//
//	res := correlation.Filter(ds, correlation.DefaultFilterOptions())
//	m, err := correlation.Compute(res.Dataset)
//	n, _ := m.Dims()
//	mask := correlation.UpperTriangleMask(n)
//
// Percentile bounds use linear interpolation at position (n-1)*q, so they
// match the usual dataframe quantile. Correlations are computed with gonum
// stat.CorrelationMatrix.
package correlation
