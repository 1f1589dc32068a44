// pkg/registry/registry.go
package registry

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed activities.json
var defaultActivities []byte

func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*ActivityRegistry, error) {
	var reg ActivityRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse activity registry: %w", err)
	}
	return &reg, nil
}

// Default returns the registry compiled into the binary.
func Default() (*ActivityRegistry, error) {
	return Parse(defaultActivities)
}

// Find returns the activity with the given id.
func (r *ActivityRegistry) Find(id string) (*Activity, bool) {
	for i := range r.Activities {
		if r.Activities[i].ID == id {
			return &r.Activities[i], true
		}
	}
	return nil, false
}

// InputSchemaFor looks up id in the default registry and returns its input schema.
func InputSchemaFor(id string) (map[string]interface{}, error) {
	reg, err := Default()
	if err != nil {
		return nil, err
	}
	activity, ok := reg.Find(id)
	if !ok {
		return nil, fmt.Errorf("activity %q is not registered", id)
	}
	if activity.InputSchema == nil {
		return nil, fmt.Errorf("activity %q has no input schema", id)
	}
	return activity.InputSchema, nil
}

// Validate checks required fields, duplicate ids, and that every input and
// output schema compiles.
func (r *ActivityRegistry) Validate() error {
	if len(r.Activities) == 0 {
		return fmt.Errorf("registry contains no activities")
	}

	ids := make(map[string]bool)
	for _, activity := range r.Activities {
		if activity.ID == "" {
			return fmt.Errorf("activity missing required field: id")
		}
		if ids[activity.ID] {
			return fmt.Errorf("duplicate activity id: %s", activity.ID)
		}
		ids[activity.ID] = true

		if activity.DisplayName == "" {
			return fmt.Errorf("activity %s missing required field: displayName", activity.ID)
		}
		if activity.TaskType == "" {
			return fmt.Errorf("activity %s missing required field: taskType", activity.ID)
		}
		if activity.Method == "" {
			return fmt.Errorf("activity %s missing required field: method", activity.ID)
		}
		if activity.Retries < 0 {
			return fmt.Errorf("activity %s has negative retries", activity.ID)
		}
		for name, schema := range map[string]map[string]interface{}{
			"inputSchema":  activity.InputSchema,
			"outputSchema": activity.OutputSchema,
		} {
			if schema == nil {
				continue
			}
			if _, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(schema)); err != nil {
				return fmt.Errorf("activity %s has an invalid %s: %w", activity.ID, name, err)
			}
		}
	}
	return nil
}

// Save writes the registry as indented JSON, creating parent directories.
func (r *ActivityRegistry) Save(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal registry: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create registry directory: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write registry file: %w", err)
	}
	return nil
}
