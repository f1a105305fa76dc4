package snapshot

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/save_v1.schema.json
var saveSchemaJSON []byte

var (
	schemaOnce sync.Once
	saveSchema *jsonschema.Schema
	schemaErr  error
)

func compileSchema() {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	const name = "save_v1.schema.json"
	if err := c.AddResource(name, bytes.NewReader(saveSchemaJSON)); err != nil {
		schemaErr = fmt.Errorf("add schema %s: %w", name, err)
		return
	}
	saveSchema, schemaErr = c.Compile(name)
}

func validateBody(raw []byte) error {
	schemaOnce.Do(compileSchema)
	if schemaErr != nil {
		return schemaErr
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	return saveSchema.Validate(v)
}
