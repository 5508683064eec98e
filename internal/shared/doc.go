// Package shared groups helpers used across packages that belong to no
// single domain.
//
// The testutil subpackage provides a slog handler that records log output
// for assertions, and fixture writers for quote files and premium
// workbooks so that tests can drive the file and workbook providers end to
// end.
package shared
