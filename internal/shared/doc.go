// Package shared holds helpers used across medviz packages.
//
// The testutil subpackage provides a slog handler that captures records
// for assertions and synthetic examination CSV fixtures:
//
//	logger, handler := testutil.NewTestLogger(t)
//	path := testutil.WriteFile(t, t.TempDir(), "medical_examination.csv", testutil.ExaminationCSV(40, 10, 20))
//
// testutil depends on the standard library and testify only, so any
// package can use it from its tests.
package shared
