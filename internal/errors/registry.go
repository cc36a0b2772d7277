package errors

// Template defines a registered error type.
type Template struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]Template{
	// Catalog errors (P001-P019)
	"P001": {
		Category: CategoryCatalog,
		Message:  "Pattern not found",
		Detail:   "No pattern in the catalog has the requested id.",
	},
	"P002": {
		Category: CategoryCatalog,
		Message:  "Invalid catalog file",
		Detail:   "The catalog file could not be read or failed validation.",
	},
	"P003": {
		Category: CategoryCatalog,
		Message:  "Catalog unavailable",
		Detail:   "The catalog did not answer before the deadline.",
	},

	// Configuration errors (P020-P039)
	"P020": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "One or more configuration values are out of range.",
	},
	"P021": {
		Category: CategoryConfig,
		Message:  "Configuration file unreadable",
		Detail:   "The configuration file exists but is not valid JSON.",
	},
	"P022": {
		Category: CategoryConfig,
		Message:  "Invalid environment override",
		Detail:   "A PATTERNS_* environment variable could not be parsed.",
	},

	// Server errors (P040-P059)
	"P040": {
		Category: CategoryServer,
		Message:  "Render failed",
		Detail:   "A page could not be rendered to HTML.",
	},
	"P041": {
		Category: CategoryServer,
		Message:  "Server failed",
		Detail:   "The HTTP server stopped unexpectedly.",
	},
	"P042": {
		Category: CategoryServer,
		Message:  "Telemetry setup failed",
		Detail:   "The OpenTelemetry exporter could not be created.",
	},

	// CLI errors (P060-P079)
	"P060": {
		Category: CategoryCLI,
		Message:  "Invalid arguments",
	},
}

// Lookup returns the template for code.
func Lookup(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}

// Codes returns every registered code.
func Codes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}
