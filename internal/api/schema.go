package api

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed process_response.json
var processSchemaRaw []byte

var (
	processSchemaOnce sync.Once
	processSchema     *jsonschema.Schema
	processSchemaErr  error
)

// validateProcessResponse checks a /ocr/process response body against the
// embedded schema before it is decoded into typed structs. A payload that
// parses but has the wrong shape fails here with a usable message instead
// of surfacing as zero-valued fields downstream.
func validateProcessResponse(body []byte) error {
	processSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("process_response.json", bytes.NewReader(processSchemaRaw)); err != nil {
			processSchemaErr = fmt.Errorf("failed to load response schema: %w", err)
			return
		}
		processSchema, processSchemaErr = compiler.Compile("process_response.json")
	})
	if processSchemaErr != nil {
		return processSchemaErr
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if err := processSchema.Validate(doc); err != nil {
		return fmt.Errorf("response does not match expected shape: %w", err)
	}
	return nil
}
