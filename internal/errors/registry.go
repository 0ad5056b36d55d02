package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Configuration Errors (E100-E199)
	// ============================================

	"E100": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "folio looks for folio.json in the directory given by --config.",
	},
	"E101": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "The configuration file could not be read or is not valid JSON.",
	},
	"E102": {
		Category: CategoryConfig,
		Message:  "Invalid port",
		Detail:   "The server port must be between 0 and 65535.",
	},
	"E103": {
		Category: CategoryConfig,
		Message:  "Invalid history mode",
		Detail:   "The history mode must be \"path\" or \"hash\".",
	},
	"E104": {
		Category: CategoryConfig,
		Message:  "Invalid log level",
		Detail:   "The log level must be one of debug, info, warn or error.",
	},
	"E105": {
		Category: CategoryConfig,
		Message:  "Invalid log format",
		Detail:   "The log format must be \"text\" or \"json\".",
	},
	"E106": {
		Category: CategoryConfig,
		Message:  "Invalid router base",
		Detail:   "The router base is the path prefix the site is mounted under and may not escape the root.",
	},
	"E107": {
		Category: CategoryConfig,
		Message:  "Profile could not be loaded",
		Detail:   "The CV profile file is missing or is not valid YAML.",
	},

	// ============================================
	// Routing Errors (E200-E299)
	// ============================================

	"E200": {
		Category: CategoryRouting,
		Message:  "Route not found",
		Detail:   "The requested path does not match any route in the table.",
	},
	"E201": {
		Category: CategoryRouting,
		Message:  "Duplicate route path",
		Detail:   "Two routes declare the same path. Each path may appear once in the table.",
	},
	"E202": {
		Category: CategoryRouting,
		Message:  "Duplicate route name",
		Detail:   "Two routes declare the same name. Each name may appear once in the table.",
	},
	"E203": {
		Category: CategoryRouting,
		Message:  "Invalid route definition",
		Detail:   "Route paths must be absolute literals without a trailing slash, and every route needs a name.",
	},
	"E204": {
		Category: CategoryRouting,
		Message:  "Unknown route name",
		Detail:   "No route in the table has this name.",
	},
	"E205": {
		Category: CategoryRouting,
		Message:  "Navigation failed",
	},

	// ============================================
	// Server Errors (E300-E399)
	// ============================================

	"E300": {
		Category: CategoryServer,
		Message:  "Server failed to start",
		Detail:   "The HTTP listener could not be opened. Another process may be using the port.",
	},
	"E301": {
		Category: CategoryServer,
		Message:  "Server shutdown failed",
	},
}

// GetAllCodes returns all registered error codes, sorted.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
