package drivecmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrPayloadInvalid marks raw batch payloads rejected by the schema.
var ErrPayloadInvalid = errors.New("drivecmd: payload validation failed")

// ingestPayloadSchema validates the raw JSON accepted from external callers
// before it is decoded into an IngestFilesCommand.
const ingestPayloadSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["files"],
	"additionalProperties": false,
	"properties": {
		"files": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"required": ["id"],
				"additionalProperties": false,
				"properties": {
					"id": {"type": "string", "minLength": 1},
					"slug": {"type": "string"},
					"title": {"type": "string"}
				}
			}
		}
	}
}`

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func payloadSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource("ingest_files.json", bytes.NewReader([]byte(ingestPayloadSchema))); err != nil {
			compileErr = err
			return
		}
		compiledSchema, compileErr = compiler.Compile("ingest_files.json")
	})
	return compiledSchema, compileErr
}

// PayloadIssue is one schema violation in a rejected payload.
type PayloadIssue struct {
	Location string
	Message  string
}

// PayloadError reports every schema violation found in a payload.
type PayloadError struct {
	Issues []PayloadIssue
}

func (e *PayloadError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := issue.Location
		if location == "" {
			location = "#"
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return "drivecmd: invalid payload: " + strings.Join(parts, "; ")
}

func (e *PayloadError) Unwrap() error {
	return ErrPayloadInvalid
}

// DecodeIngestPayload validates raw JSON against the batch schema and
// decodes it into a command. External surfaces (the CLI, any transport)
// call this instead of unmarshalling directly so malformed payloads are
// reported field by field.
func DecodeIngestPayload(raw []byte) (IngestFilesCommand, error) {
	var cmd IngestFilesCommand

	var instance any
	if err := json.Unmarshal(raw, &instance); err != nil {
		return cmd, fmt.Errorf("drivecmd: payload is not valid JSON: %w", err)
	}

	schema, err := payloadSchema()
	if err != nil {
		return cmd, err
	}

	if err := schema.Validate(instance); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return cmd, &PayloadError{Issues: collectIssues(verr)}
		}
		return cmd, err
	}

	if err := json.Unmarshal(raw, &cmd); err != nil {
		return cmd, fmt.Errorf("drivecmd: decode payload: %w", err)
	}
	return cmd, nil
}

func collectIssues(err *jsonschema.ValidationError) []PayloadIssue {
	issues := []PayloadIssue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, PayloadIssue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
