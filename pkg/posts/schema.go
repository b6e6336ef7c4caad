package posts

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const postSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["id", "title", "body", "userId"],
  "properties": {
    "id": {"type": "integer"},
    "title": {"type": "string"},
    "body": {"type": "string"},
    "userId": {"type": "integer"}
  }
}`

const postListSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "title", "body", "userId"],
    "properties": {
      "id": {"type": "integer"},
      "title": {"type": "string"},
      "body": {"type": "string"},
      "userId": {"type": "integer"}
    }
  }
}`

var (
	postSchema     = jsonschema.MustCompileString("post.schema.json", postSchemaJSON)
	postListSchema = jsonschema.MustCompileString("posts.schema.json", postListSchemaJSON)
)

// decodeValidated checks data against schema and then decodes it into out.
func decodeValidated(data []byte, schema *jsonschema.Schema, out any) error {
	var doc any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("unexpected response shape: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}
