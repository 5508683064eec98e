// Package exporter renders PPE reports and sensitivity tables for the
// command line.
//
// Three formats are supported:
//
//	text  aligned columns, one block per instrument
//	csv   one header row, one record per curve month
//	json  the report as served by the HTTP API
//
// Missing values render as empty cells in text and csv, and as null in json.
//
// Example usage:
//
//	f, err := exporter.ParseFormat("csv")
//	if err != nil {
//		return err
//	}
//	err = exporter.WriteReport(os.Stdout, f, report)
package exporter
