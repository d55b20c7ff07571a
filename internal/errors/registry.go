package errors

import (
	"maps"
	"slices"
)

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// Registered error codes.
const (
	CodeConfigNotFound    = "E100"
	CodeConfigSyntax      = "E101"
	CodeConfigInvalid     = "E102"
	CodeConfigDuplicate   = "E103"
	CodeConfigWrite       = "E104"
	CodeConfigFormat      = "E105"
	CodeSnapshotFailed    = "E120"
	CodeSnapshotBackend   = "E121"
	CodeServerListen      = "E130"
	CodeCLIArgs           = "E140"
	CodeCLIUnknownItem    = "E141"
	CodeCLIConfigExists   = "E142"
	CodeCLIInvalidLogFlag = "E143"
)

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Configuration Errors (E100-E119)
	// ============================================

	CodeConfigNotFound: {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "No draglist.json or draglist.toml was found. Run 'draglist init' to create one, or pass --config.",
	},
	CodeConfigSyntax: {
		Category: CategoryConfig,
		Message:  "Invalid configuration syntax",
		Detail:   "The configuration file could not be parsed.",
	},
	CodeConfigInvalid: {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		Detail:   "A configuration value is out of range or missing.",
	},
	CodeConfigDuplicate: {
		Category: CategoryConfig,
		Message:  "Duplicate list item",
		Detail:   "Every item in list.items must be unique; items are identified by value.",
	},
	CodeConfigWrite: {
		Category: CategoryConfig,
		Message:  "Configuration file could not be written",
		Detail:   "Check that the directory exists and is writable.",
	},
	CodeConfigFormat: {
		Category: CategoryConfig,
		Message:  "Unsupported configuration format",
		Detail:   "Configuration files must end in .json or .toml.",
	},

	// ============================================
	// Snapshot Errors (E120-E129)
	// ============================================

	CodeSnapshotFailed: {
		Category: CategorySnapshot,
		Message:  "Snapshot store unavailable",
		Detail:   "The stored order could not be loaded. Check the snapshot backend settings and credentials.",
	},
	CodeSnapshotBackend: {
		Category: CategorySnapshot,
		Message:  "Unknown snapshot backend",
		Detail:   "snapshot.backend must be one of none, memory, redis or s3.",
	},

	// ============================================
	// Server Errors (E130-E139)
	// ============================================

	CodeServerListen: {
		Category: CategoryServer,
		Message:  "Server failed to start",
		Detail:   "The HTTP listener could not be opened. Another process may be using the port.",
	},

	// ============================================
	// CLI Errors (E140-E159)
	// ============================================

	CodeCLIArgs: {
		Category: CategoryCLI,
		Message:  "Invalid arguments",
		Detail:   "The command was called with missing or conflicting arguments.",
	},
	CodeCLIUnknownItem: {
		Category: CategoryCLI,
		Message:  "Item not in list",
		Detail:   "The dragged and hovered items must both be members of the list.",
	},
	CodeCLIConfigExists: {
		Category: CategoryCLI,
		Message:  "Configuration already exists",
		Detail:   "Refusing to overwrite an existing configuration file. Use --force to replace it.",
	},
	CodeCLIInvalidLogFlag: {
		Category: CategoryCLI,
		Message:  "Invalid log setting",
		Detail:   "log.level must be debug, info, warn or error; log.format must be text or json.",
	},
}

// GetAllCodes returns all registered error codes in ascending order.
func GetAllCodes() []string {
	return slices.Sorted(maps.Keys(registry))
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

