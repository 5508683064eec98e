package exporter

import (
	"fmt"
	"strconv"
	"strings"

	"ppecli/pkg/contracts/domain"
)

// Format selects a renderer
type Format string

// Supported formats
const (
	FormatText Format = "text"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat resolves a format name, case-insensitively
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatCSV, FormatJSON:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unsupported format %q (want text, csv or json)", s)
	}
}

// formatAmount formats a value with exactly 2 decimal places, or an empty
// string when missing
func formatAmount(a domain.Amount) string {
	return a.String()
}

// formatLevel formats an NDF level without trailing zeros
func formatLevel(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
