package errors

// Template defines a registered error.
type Template struct {
	Category Category
	Message  string
	Detail   string
}

var registry = map[string]Template{
	// Configuration (T001-T019)

	"T001": {
		Category: CategoryConfig,
		Message:  "Config file not found",
		Detail:   "Neither tooltip.json nor tooltip.yaml exists in the directory.",
	},
	"T002": {
		Category: CategoryConfig,
		Message:  "Invalid config file",
		Detail:   "The config file could not be read or parsed.",
	},
	"T003": {
		Category: CategoryConfig,
		Message:  "Unsupported placement",
		Detail:   "Placement must be a side (top, bottom, left, right) optionally followed by -start or -end.",
	},
	"T004": {
		Category: CategoryConfig,
		Message:  "Negative offset",
		Detail:   "The gap between trigger and floating element must be zero or more pixels.",
	},
	"T005": {
		Category: CategoryConfig,
		Message:  "Negative hover delay",
		Detail:   "The delay before hiding must be zero or more milliseconds.",
	},
	"T006": {
		Category: CategoryConfig,
		Message:  "Invalid server address",
	},

	// Replay scripts (T020-T039)

	"T020": {
		Category: CategoryReplay,
		Message:  "Invalid replay script",
	},
	"T021": {
		Category: CategoryReplay,
		Message:  "Unknown replay event",
		Detail:   "Events are trigger-enter, trigger-leave, floating-enter, floating-leave, show, hide, layout, disable, enable and unmount.",
	},
	"T022": {
		Category: CategoryReplay,
		Message:  "Replay steps out of order",
		Detail:   "Each step's 'at' must be greater than or equal to the previous step's.",
	},

	// Scaffolding (T040-T059)

	"T040": {
		Category: CategoryScaffold,
		Message:  "Invalid component name",
		Detail:   "Component names must start with a letter and contain only letters and digits.",
	},
	"T041": {
		Category: CategoryScaffold,
		Message:  "Component already exists",
	},
	"T042": {
		Category: CategoryScaffold,
		Message:  "Could not resolve module path",
		Detail:   "The generator reads go.mod to build import paths for the new component.",
	},
	"T043": {
		Category: CategoryScaffold,
		Message:  "Failed to write component files",
	},

	// Playground protocol (T060-T079)

	"T060": {
		Category: CategoryProtocol,
		Message:  "Malformed frame",
	},
	"T061": {
		Category: CategoryProtocol,
		Message:  "Unknown frame type",
	},

	// CLI (T080-T099)

	"T080": {
		Category: CategoryCLI,
		Message:  "Server failed",
	},
}

// Lookup returns the template registered for code.
func Lookup(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}
