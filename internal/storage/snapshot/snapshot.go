// Package snapshot defines the persisted layout of the todo collection:
//
//	{"version": 1, "savedAt": "<RFC3339>", "todos": [<todo>, ...]}
//
// A bare JSON array of todos is read as version 0 and upgraded on the next
// write. Documents with a newer version than Version are rejected.
package snapshot

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/xyz-asif/imagetodo/internal/features/todos"
)

// Version is the layout written by Encode.
const Version = 1

var ErrUnsupportedVersion = errors.New("unsupported snapshot version")

//go:embed schema.json
var schemaJSON string

// schema checks a versioned document, legacySchema a version-0 list.
var schema, legacySchema = compileSchemas()

func compileSchemas() (*jsonschema.Schema, *jsonschema.Schema) {
	c := jsonschema.NewCompiler()
	if err := c.AddResource("snapshot.json", strings.NewReader(schemaJSON)); err != nil {
		panic(err)
	}
	return c.MustCompile("snapshot.json"), c.MustCompile("snapshot.json#/definitions/todoList")
}

type Document struct {
	Version int          `json:"version"`
	SavedAt time.Time    `json:"savedAt"`
	Todos   []todos.Todo `json:"todos"`
}

// Encode writes the current layout.
func Encode(list []todos.Todo, now time.Time) ([]byte, error) {
	if list == nil {
		list = []todos.Todo{}
	}
	return json.MarshalIndent(Document{
		Version: Version,
		SavedAt: now.UTC(),
		Todos:   list,
	}, "", "  ")
}

// Decode reads any supported layout. Empty input is an empty collection.
func Decode(data []byte) ([]todos.Todo, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return []todos.Todo{}, nil
	}

	if data[0] == '[' {
		return decodeLegacy(data)
	}

	var probe struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if probe.Version > Version || probe.Version < 1 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, probe.Version)
	}

	if err := validate(schema, data); err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if doc.Todos == nil {
		doc.Todos = []todos.Todo{}
	}
	return doc.Todos, nil
}

// decodeLegacy reads the version-0 layout: a plain list of todos.
func decodeLegacy(data []byte) ([]todos.Todo, error) {
	if err := validate(legacySchema, data); err != nil {
		return nil, err
	}

	var list []todos.Todo
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("json unmarshal legacy list: %w", err)
	}
	if list == nil {
		list = []todos.Todo{}
	}
	return list, nil
}

func validate(sch *jsonschema.Schema, data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("json unmarshal: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return fmt.Errorf("invalid snapshot: %s", strings.Join(leafMessages(ve), "; "))
		}
		return fmt.Errorf("invalid snapshot: %w", err)
	}
	return nil
}

func leafMessages(ve *jsonschema.ValidationError) []string {
	if len(ve.Causes) == 0 {
		loc := ve.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		return []string{loc + ": " + ve.Message}
	}
	var out []string
	for _, c := range ve.Causes {
		out = append(out, leafMessages(c)...)
	}
	return out
}
