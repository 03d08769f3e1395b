package pipeline

import (
    "bytes"
    "encoding/json"
    "fmt"
    "strings"

    "github.com/santhosh-tekuri/jsonschema/v5"
)

const outputSchema = `{
    "$schema": "https://json-schema.org/draft/2020-12/schema",
    "type": "object",
    "required": ["title", "outline"],
    "additionalProperties": false,
    "properties": {
        "title": {"type": "string"},
        "outline": {
            "type": "array",
            "items": {
                "type": "object",
                "required": ["level", "text", "page"],
                "additionalProperties": false,
                "properties": {
                    "level": {"enum": ["H1", "H2", "H3"]},
                    "text": {"type": "string"},
                    "page": {"type": "integer", "minimum": 1}
                }
            }
        }
    }
}`

// CompileOutputSchema compiles the JSON schema every output file must satisfy.
func CompileOutputSchema() (*jsonschema.Schema, error) {
    compiler := jsonschema.NewCompiler()
    if err := compiler.AddResource("outline.json", strings.NewReader(outputSchema)); err != nil {
        return nil, fmt.Errorf("failed to load output schema: %w", err)
    }
    schema, err := compiler.Compile("outline.json")
    if err != nil {
        return nil, fmt.Errorf("failed to compile output schema: %w", err)
    }
    return schema, nil
}

func validateOutput(schema *jsonschema.Schema, data []byte) error {
    dec := json.NewDecoder(bytes.NewReader(data))
    dec.UseNumber()
    var doc any
    if err := dec.Decode(&doc); err != nil {
        return fmt.Errorf("failed to decode output for validation: %w", err)
    }
    if err := schema.Validate(doc); err != nil {
        return fmt.Errorf("output does not match schema: %w", err)
    }
    return nil
}
