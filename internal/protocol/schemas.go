package protocol

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

var (
	schemaOnce sync.Once
	schemaSet  map[string]*jsonschema.Schema
	schemaErr  error
)

var schemaByType = map[string]string{
	TypeHello:   "hello.schema.json",
	TypeWelcome: "welcome.schema.json",
	TypeAct:     "act.schema.json",
	TypeObs:     "obs.schema.json",
}

func compileSchemas() {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	for _, name := range schemaByType {
		b, err := schemaFS.ReadFile("schemas/" + name)
		if err != nil {
			schemaErr = err
			return
		}
		if err := c.AddResource(name, bytes.NewReader(b)); err != nil {
			schemaErr = fmt.Errorf("add schema %s: %w", name, err)
			return
		}
	}
	set := make(map[string]*jsonschema.Schema, len(schemaByType))
	for typ, name := range schemaByType {
		s, err := c.Compile(name)
		if err != nil {
			schemaErr = fmt.Errorf("compile schema %s: %w", name, err)
			return
		}
		set[typ] = s
	}
	schemaSet = set
}

// Schema returns the compiled schema for a message type (HELLO, WELCOME, ACT, OBS).
func Schema(msgType string) (*jsonschema.Schema, error) {
	schemaOnce.Do(compileSchemas)
	if schemaErr != nil {
		return nil, schemaErr
	}
	s, ok := schemaSet[msgType]
	if !ok {
		return nil, fmt.Errorf("no schema for message type %q", msgType)
	}
	return s, nil
}

// Validate checks a raw JSON message against the schema for its declared type.
func Validate(raw []byte) error {
	base, err := DecodeBase(raw)
	if err != nil {
		return fmt.Errorf("decode message: %w", err)
	}
	s, err := Schema(base.Type)
	if err != nil {
		return err
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	return s.Validate(v)
}
