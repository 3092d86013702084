package questionbank

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed questions.json
var embeddedQuestions []byte

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "schema://question-bank.json"

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

type bankFile struct {
	Version   int        `json:"version"`
	Questions []Question `json:"questions"`
}

// Embedded returns the question bank compiled into the binary.
func Embedded() (*Bank, error) {
	return Parse(embeddedQuestions)
}

// LoadFile reads and parses a question bank from disk.
func LoadFile(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}
	return Parse(data)
}

// Load returns the bank at path, or the embedded bank when path is empty.
func Load(path string) (*Bank, error) {
	if path == "" {
		return Embedded()
	}
	return LoadFile(path)
}

// Parse validates raw JSON against the bank schema, decodes it and checks
// question integrity.
func Parse(data []byte) (*Bank, error) {
	if err := validate(data); err != nil {
		return nil, err
	}

	var f bankFile
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode question bank: %w", err)
	}
	return New(f.Questions)
}

func validate(data []byte) error {
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	sch, err := bankSchema()
	if err != nil {
		return fmt.Errorf("compile question bank schema: %w", err)
	}
	if err := sch.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func bankSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		var doc any
		if err := json.Unmarshal(schemaJSON, &doc); err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}
