package http

import (
	"encoding/json"
	"errors"
	"fmt"

	"scheduler/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3"
)

const createExportJobSchema = "CreateExportJobRequest"

var ErrSchemaNotFound = errors.New("schema not found in OpenAPI document")

// BodyValidator checks raw JSON bodies against component schemas of the
// OpenAPI document.
type BodyValidator struct {
	schemas openapi3.Schemas
}

func NewBodyValidator(swagger *openapi3.T) (*BodyValidator, error) {
	if swagger == nil || swagger.Components == nil {
		return nil, fmt.Errorf("%w: document has no components", ErrSchemaNotFound)
	}
	if _, ok := swagger.Components.Schemas[createExportJobSchema]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrSchemaNotFound, createExportJobSchema)
	}
	return &BodyValidator{schemas: swagger.Components.Schemas}, nil
}

func (v *BodyValidator) Validate(schemaName string, body []byte) error {
	ref, ok := v.schemas[schemaName]
	if !ok || ref == nil || ref.Value == nil {
		return fmt.Errorf("%w: %s", ErrSchemaNotFound, schemaName)
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	if err := ref.Value.VisitJSON(decoded); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	return nil
}
