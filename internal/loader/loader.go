package loader

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cuejson "cuelang.org/go/encoding/json"
	"gopkg.in/yaml.v3"

	"github.com/weyl-labs/lattice/internal/timeline"
)

//go:embed schema.cue
var schemaCUE string

// LoadMode controls how validation errors are handled during loading.
type LoadMode int

const (
	// LoadModeFailFast stops on the first error encountered.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll collects all validation errors before returning.
	LoadModeCollectAll
)

// Error codes for LoadError.
const (
	ErrCodeNotFound = "NOT_FOUND"
	ErrCodeDecode   = "DECODE"
	ErrCodeSchema   = "SCHEMA"
	ErrCodeConvert  = "CONVERT"
)

// LoadError is a structured loading failure.
type LoadError struct {
	Code    string
	Message string
	Path    string // source file, when known
}

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Format identifies a document encoding.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatForPath picks a format from a file extension. Unknown extensions
// default to JSON, the project store's document format.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads, validates, and decodes a project document from a file.
func Load(path string, mode LoadMode) (*timeline.Project, []error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: "project file not found", Path: path}}
		}
		return nil, []error{&LoadError{Code: ErrCodeDecode, Message: err.Error(), Path: path}}
	}
	p, errs := LoadBytes(data, FormatForPath(path), mode)
	for _, e := range errs {
		if le, ok := e.(*LoadError); ok && le.Path == "" {
			le.Path = path
		}
	}
	return p, errs
}

// LoadBytes validates and decodes a project document.
//
// YAML documents are converted to JSON before validation so both formats
// flow through the same schema. In LoadModeCollectAll every schema
// violation is reported; in LoadModeFailFast only the first.
func LoadBytes(data []byte, format Format, mode LoadMode) (*timeline.Project, []error) {
	jsonData := data
	if format == FormatYAML {
		var tree any
		if err := yaml.Unmarshal(data, &tree); err != nil {
			return nil, []error{&LoadError{Code: ErrCodeDecode, Message: fmt.Sprintf("invalid YAML: %v", err)}}
		}
		converted, err := json.Marshal(tree)
		if err != nil {
			return nil, []error{&LoadError{Code: ErrCodeDecode, Message: fmt.Sprintf("YAML to JSON: %v", err)}}
		}
		jsonData = converted
	}

	if errs := validateSchema(jsonData, mode); len(errs) > 0 {
		return nil, errs
	}

	var doc projectDoc
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return nil, []error{&LoadError{Code: ErrCodeDecode, Message: fmt.Sprintf("invalid JSON: %v", err)}}
	}

	p, err := doc.toProject()
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeConvert, Message: err.Error()}}
	}
	return p, nil
}

// validateSchema checks the JSON document against the embedded CUE
// schema. Returns nil when the document conforms.
func validateSchema(jsonData []byte, mode LoadMode) []error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE)
	if err := schema.Err(); err != nil {
		return []error{&LoadError{Code: ErrCodeSchema, Message: fmt.Sprintf("internal schema error: %v", err)}}
	}
	projectDef := schema.LookupPath(cue.ParsePath("#Project"))
	if err := projectDef.Err(); err != nil {
		return []error{&LoadError{Code: ErrCodeSchema, Message: fmt.Sprintf("internal schema error: %v", err)}}
	}

	expr, err := cuejson.Extract("project", jsonData)
	if err != nil {
		return []error{&LoadError{Code: ErrCodeDecode, Message: fmt.Sprintf("invalid JSON: %v", err)}}
	}
	docVal := ctx.BuildExpr(expr)
	if err := docVal.Err(); err != nil {
		return []error{&LoadError{Code: ErrCodeDecode, Message: err.Error()}}
	}

	unified := projectDef.Unify(docVal)
	vErr := unified.Validate(cue.Concrete(true), cue.Final())
	if vErr == nil {
		return nil
	}

	var errs []error
	for _, e := range cueerrors.Errors(vErr) {
		errs = append(errs, &LoadError{Code: ErrCodeSchema, Message: e.Error()})
		if mode == LoadModeFailFast {
			break
		}
	}
	return errs
}
