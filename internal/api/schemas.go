package api

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Fetch-all payloads are validated before they replace a collection;
// a payload that fails its schema is treated as a fetch failure and
// never reaches slice state.

const taskListSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["id", "title", "priority", "status"],
		"properties": {
			"id": {"type": "string", "minLength": 1},
			"title": {"type": "string"},
			"description": {"type": "string"},
			"priority": {"enum": ["high", "medium", "low"]},
			"status": {"enum": ["todo", "in_progress", "completed", "blocked"]},
			"dueDate": {"type": "string"},
			"assignedTo": {"type": "string"}
		}
	}
}`

const leadListSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["id", "name", "status"],
		"properties": {
			"id": {"type": "string", "minLength": 1},
			"name": {"type": "string"},
			"email": {"type": "string"},
			"status": {"enum": ["new", "contacted", "qualified", "proposal", "negotiation", "closed", "lost"]},
			"budget": {"type": "number", "minimum": 0},
			"probability": {"type": "number", "minimum": 0, "maximum": 100}
		}
	}
}`

const transactionListSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["id", "type", "amount", "category"],
		"properties": {
			"id": {"type": "string", "minLength": 1},
			"type": {"enum": ["income", "expense"]},
			"amount": {"type": "number", "minimum": 0},
			"category": {"type": "string"},
			"date": {"type": "string"},
			"status": {"enum": ["pending", "completed", "cancelled"]}
		}
	}
}`

var (
	taskListLoader        = gojsonschema.NewStringLoader(taskListSchema)
	leadListLoader        = gojsonschema.NewStringLoader(leadListSchema)
	transactionListLoader = gojsonschema.NewStringLoader(transactionListSchema)
)

func validatePayload(schema gojsonschema.JSONLoader, payload []byte) error {
	result, err := gojsonschema.Validate(schema, gojsonschema.NewBytesLoader(payload))
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, desc.String())
	}
	return fmt.Errorf("payload failed validation: %s", strings.Join(msgs, "; "))
}
