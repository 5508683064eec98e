// Package config loads the PPE configuration.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. YAML configuration file
//	3. Default values from struct tags (lowest priority)
//
// The file is taken from $PPE_CONFIG, or the first of config.yaml and
// configs/config.yaml found in the working directory.
//
// # Environment Variables
//
// Variables follow envconfig naming, PPE_<SECTION>_<FIELD>:
//
//	PPE_SERVER_PORT=8080
//	PPE_RUN_HANDLING_COST=40
//	PPE_RUN_DOMESTIC_FREIGHT=342
//	PPE_QUOTES_URL_TEMPLATE=https://quotes.example.com/v1/last/{ticker}
//	PPE_PREMIUMS_SPREADSHEET_ID=1AbC...
//
// # Validation
//
// Load validates the result with validator struct tags: ranges, enums and
// fields that become required once a provider is selected (a URL template
// for the http quote provider, a spreadsheet id for the sheets provider).
package config
