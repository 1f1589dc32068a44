package acquirewebhook

import (
	"assessment-runner/internal/common/errors"
	"assessment-runner/internal/common/validation"
	"assessment-runner/internal/models"
	"assessment-runner/pkg/registry"
)

// GetInputSchema returns the registered JSON schema for the identity body.
func GetInputSchema() (map[string]interface{}, error) {
	return registry.InputSchemaFor(TaskType)
}

func validateInput(schema map[string]interface{}, input *models.IdentityRequest) error {
	if input == nil {
		return errors.NewInvalidIdentityError("identity request is nil")
	}
	result, err := validation.ValidateDocument(schema, input)
	if err != nil {
		return errors.AsStandardError(err)
	}
	if !result.Valid {
		return errors.NewInvalidIdentityError(result.Summary())
	}
	return nil
}
