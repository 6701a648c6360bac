package config

// Manifests written before the event-keyed layout used four top-level keys:
// init, pre_run, run, and commands. MigrateManifest rewrites such manifests
// into the on_events/scripts structure before any other component observes
// them. The transform is pure data mapping applied to the decoded YAML
// document; already-migrated manifests pass through unchanged.

var legacyEventKeys = map[string]EventName{
	"init":    EventModuleInstall,
	"pre_run": EventBeforeThemeApply,
	"run":     EventThemeApply,
}

// NeedsMigration reports whether the decoded manifest still uses the
// deprecated structure.
func NeedsMigration(data map[string]any) bool {
	if _, ok := data["on_events"]; ok {
		return false
	}
	for key := range legacyEventKeys {
		if _, ok := data[key]; ok {
			return true
		}
	}
	_, ok := data["commands"]
	return ok
}

// MigrateManifest returns the manifest in the current event-keyed structure.
// Action descriptors are carried over untouched and in order; only the
// surrounding structure changes. The input map is never mutated.
func MigrateManifest(data map[string]any) map[string]any {
	if !NeedsMigration(data) {
		return data
	}

	migrated := make(map[string]any, len(data))
	onEvents := make(map[string]any)

	for key, value := range data {
		if event, ok := legacyEventKeys[key]; ok {
			onEvents[string(event)] = value
			continue
		}

		if key == "commands" {
			commands, ok := value.(map[string]any)
			if !ok {
				migrated["scripts"] = value
				continue
			}
			scripts := make(map[string]any, len(commands))
			for name, descriptor := range commands {
				// Legacy commands map a name to a single action; the
				// current structure expects a pipeline.
				if _, isList := descriptor.([]any); isList {
					scripts[name] = descriptor
				} else {
					scripts[name] = []any{descriptor}
				}
			}
			migrated["scripts"] = scripts
			continue
		}

		migrated[key] = value
	}

	if len(onEvents) > 0 {
		migrated["on_events"] = onEvents
	}

	return migrated
}
