// cmd/tools/registry-updater/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"assessment-runner/pkg/registry"
)

// defaultRegistryPath is the file embedded into the runner binary.
const defaultRegistryPath = "pkg/registry/activities.json"

func main() {
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	updateCmd := flag.NewFlagSet("update", flag.ExitOnError)
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)

	validatePath := validateCmd.String("path", "", "Registry file to validate (empty checks the built-in registry)")

	updatePath := updateCmd.String("path", defaultRegistryPath, "Registry file to update (rebuild the runner to pick up changes)")
	id := updateCmd.String("id", "", "Activity ID to update")
	field := updateCmd.String("field", "", "Field to update (version, displayName, description, method, retries)")
	value := updateCmd.String("value", "", "New value for the field")

	exportPath := exportCmd.String("path", defaultRegistryPath, "Destination for the built-in registry")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "validate":
		validateCmd.Parse(os.Args[2:])
		reg, err := load(*validatePath)
		if err == nil {
			err = reg.Validate()
		}
		if err != nil {
			fmt.Printf("Registry validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Registry validation passed. Found %d activities.\n", len(reg.Activities))

	case "update":
		updateCmd.Parse(os.Args[2:])
		if *id == "" || *field == "" || *value == "" {
			fmt.Println("Error: id, field, and value are required for update.")
			updateCmd.Usage()
			os.Exit(1)
		}
		if err := updateActivity(*updatePath, *id, *field, *value); err != nil {
			fmt.Printf("Error updating activity: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Updated activity %s, field %s to %s\n", *id, *field, *value)

	case "export":
		exportCmd.Parse(os.Args[2:])
		reg, err := registry.Default()
		if err == nil {
			err = reg.Save(*exportPath)
		}
		if err != nil {
			fmt.Printf("Error exporting registry: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Exported built-in registry to %s\n", *exportPath)

	default:
		help()
	}
}

func load(path string) (*registry.ActivityRegistry, error) {
	if path == "" {
		return registry.Default()
	}
	return registry.LoadRegistry(path)
}

func updateActivity(path, id, field, value string) error {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	activity, ok := reg.Find(id)
	if !ok {
		return fmt.Errorf("activity with ID %s not found", id)
	}

	switch field {
	case "version":
		activity.Version = value
	case "displayName":
		activity.DisplayName = value
	case "description":
		activity.Description = value
	case "method":
		activity.Method = value
	case "retries":
		retries, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid retries value: %w", err)
		}
		activity.Retries = retries
	default:
		return fmt.Errorf("unknown field: %s", field)
	}

	if err := reg.Validate(); err != nil {
		return err
	}
	reg.LastUpdated = time.Now().Format(time.RFC3339)
	return reg.Save(path)
}

func help() {
	fmt.Println(`
Usage: registry-updater <command> [flags]

Commands:
  validate  Validate a registry file, or the built-in registry
  update    Update an existing activity's field
  export    Write the built-in registry to a file
  help      Show this help message

Examples:
  registry-updater validate
  registry-updater export -path /tmp/activities.json
  registry-updater update -id submit-solution -field version -value 1.1.0

Use 'registry-updater <command> -h' for more information about a command.
`)
}
