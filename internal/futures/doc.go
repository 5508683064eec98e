// Package futures knows the CBOT listing calendar for the grain roots the
// PPE engine prices.
//
// Corn (ZC) lists March, May, July, September and December; soybeans (ZS)
// list January, March, May, July, August, September and November. From any
// calendar month the scheduler finds the anchor month (the first listed month
// at or after it, rolling into the next year when the year's listings are
// exhausted) and walks the listing cycle forward to produce explicit contract
// tickers such as ZCZ2025 or ZSF2026.
//
// Tickers are parsed back with ParseTicker, which never fails loudly: input
// that does not match <ROOT><MONTH-CODE><YYYY> is simply reported as no match.
// Continuous front-month symbols (ZC1!, ZS2!) are recognised separately by
// ParseGeneric and resolved against the listing calendar with ResolveGeneric.
package futures
