package todo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/todolist/internal/utils"
)

const schemaURL = "https://todolist.local/todos.schema.json"

// Schema is the JSON Schema for the persisted task list.
const Schema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://todolist.local/todos.schema.json",
  "title": "todolist tasks",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "text", "completed", "createdAt"],
    "properties": {
      "id": {"type": "integer", "minimum": 0},
      "text": {"type": "string", "minLength": 1},
      "completed": {"type": "boolean"},
      "createdAt": {"type": "string", "format": "date-time"}
    }
  }
}
`

var (
	compiledOnce   sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func schema() (*jsonschema.Schema, error) {
	compiledOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		compiler.AssertFormat = true
		if err := compiler.AddResource(schemaURL, strings.NewReader(Schema)); err != nil {
			compileErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = compiler.Compile(schemaURL)
	})
	return compiledSchema, compileErr
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Valid  bool
	Errors []error
}

// Err joins the collected errors, or returns nil for a valid result.
func (r *ValidationResult) Err() error {
	if r == nil || r.Valid {
		return nil
	}
	return errors.Join(r.Errors...)
}

func (r *ValidationResult) add(err error) {
	r.Valid = false
	r.Errors = append(r.Errors, err)
}

// Validate checks raw slot data against the schema and the list invariants.
func Validate(data []byte) *ValidationResult {
	result := &ValidationResult{Valid: true}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		result.add(&ValidationError{Err: fmt.Errorf("invalid JSON: %w", err)})
		return result
	}

	sch, err := schema()
	if err != nil {
		result.add(fmt.Errorf("compile schema: %w", err))
		return result
	}
	if err := sch.Validate(doc); err != nil {
		appendSchemaErrors(result, err)
		return result
	}

	var l List
	if err := json.Unmarshal(data, &l); err != nil {
		result.add(&ValidationError{Err: fmt.Errorf("decode tasks: %w", err)})
		return result
	}
	l.validateInvariants(result)
	return result
}

// Validate checks the invariants of an in-memory list.
func (l List) Validate() *ValidationResult {
	result := &ValidationResult{Valid: true}
	l.validateInvariants(result)
	return result
}

func (l List) validateInvariants(result *ValidationResult) {
	seen := make(map[int64]int, len(l))
	for i, t := range l {
		path := fmt.Sprintf("[%d]", i)
		if prev, dup := seen[t.ID]; dup {
			result.add(&ValidationError{
				Path: path + ".id",
				Err:  fmt.Errorf("duplicate id %d (also at [%d])", t.ID, prev),
			})
		} else {
			seen[t.ID] = i
		}
		if strings.TrimSpace(t.Text) == "" {
			result.add(&ValidationError{
				Path: path + ".text",
				Err:  errors.New("must not be blank"),
			})
		}
	}
}

func appendSchemaErrors(result *ValidationResult, err error) {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		result.add(err)
		return
	}
	collectSchemaErrors(result, ve)
}

func collectSchemaErrors(result *ValidationResult, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}
	if len(err.Causes) == 0 {
		result.add(&ValidationError{
			Path: utils.JSONPointerToPath(err.InstanceLocation),
			Err:  errors.New(err.Message),
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}
