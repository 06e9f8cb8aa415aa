package ruleset

// Version constants for the pack schema and engine.
const (
	// PackFormatVersion is the language pack schema version.
	PackFormatVersion = "1"

	// EngineVersion is the ipaglot engine version.
	EngineVersion = "0.1.0"
)
