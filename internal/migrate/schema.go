package migrate

import (
	"bytes"
	"encoding/json"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const topicSchema = `{
	"type": "object",
	"required": ["id", "text", "completed"],
	"properties": {
		"id": {"type": "string"},
		"text": {"type": "string"},
		"completed": {"type": "boolean"}
	}
}`

var (
	currentSchema = jsonschema.MustCompileString("current.json", `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"propertyNames": {"pattern": "^[0-9]{4}-[0-9]{2}-[0-9]{2}$"},
		"additionalProperties": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id", "name", "topics"],
				"properties": {
					"id": {"type": "string"},
					"name": {"type": "string"},
					"topics": {"type": "array", "items": `+topicSchema+`}
				}
			}
		}
	}`)

	legacySchema = jsonschema.MustCompileString("legacy.json", `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"propertyNames": {"pattern": "^[0-9]{4}-[0-9]{2}-[0-9]{2}$"},
		"additionalProperties": {"type": "array", "items": `+topicSchema+`}
	}`)
)

func validate(schema *jsonschema.Schema, data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("parse json: %w", err)
	}
	if dec.More() {
		return fmt.Errorf("parse json: trailing data")
	}
	return schema.Validate(doc)
}
