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
	// Engine Errors (M001-M099)
	// ============================================

	"M001": {
		Category: CategoryInvariant,
		Message:  "Association missing for watched element",
		Detail:   "A mutation was observed on an authoring element that has no paired presentation element. The registry and the watcher set are out of sync.",
	},
	"M002": {
		Category: CategoryDispatch,
		Message:  "Unrecognized mutation kind",
		Detail:   "A watcher delivered a mutation record of a kind the dispatcher does not handle. The record was ignored.",
	},
	"M003": {
		Category: CategoryEngine,
		Message:  "Engine already attached",
		Detail:   "Attach may be called once per engine. Create a new engine for another host element.",
	},
	"M004": {
		Category: CategoryEngine,
		Message:  "Engine closed",
		Detail:   "The engine has been closed and no longer mirrors its host element.",
	},
	"M005": {
		Category: CategoryEngine,
		Message:  "Invalid host element",
		Detail:   "The host element must be a non-nil element in the HTML namespace, owned by the engine's document.",
	},

	// ============================================
	// Config Errors (C001-C099)
	// ============================================

	"C001": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "No svgmirror.json was found in the current directory or any parent.",
	},
	"C002": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "The configuration file could not be parsed as JSON.",
	},
	"C003": {
		Category: CategoryConfig,
		Message:  "Configuration value out of range",
		Detail:   "A configuration value failed validation.",
	},

	// ============================================
	// Load and Script Errors (L001-L099, S001-S099)
	// ============================================

	"L001": {
		Category: CategoryLoad,
		Message:  "Host element not found",
		Detail:   "The markup does not contain the configured host element.",
	},
	"S001": {
		Category: CategoryScript,
		Message:  "Invalid replay step",
		Detail:   "A step of the replay script references a missing element or has missing fields.",
	},
	"S002": {
		Category: CategoryScript,
		Message:  "Patch log does not reproduce the tree",
		Detail:   "Applying the recorded patches to the recorded snapshot does not rebuild the SVG tree.",
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

// Register adds a custom error template.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
