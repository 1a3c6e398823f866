package portfolio

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed portfolio.schema.json
var schemaJSON []byte

// ErrMalformed is returned when the document is not valid JSON.
var ErrMalformed = errors.New("portfolio: malformed document")

// ShapeError reports a syntactically valid document whose structure does not
// match the portfolio schema (missing sections, wrong types).
type ShapeError struct {
	Problems []string
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("portfolio: document shape mismatch [%s]", strings.Join(e.Problems, "; "))
}

// ValidationError reports values outside their allowed range.
type ValidationError struct {
	Problems []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("portfolio: invalid values [%s]", strings.Join(e.Problems, "; "))
}

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error

	validate = validator.New()
)

func compiledSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
	})
	return schema, schemaErr
}

// Decode parses a portfolio document. The document must be valid JSON, match
// the schema and pass value validation; otherwise an error describing the
// first failing stage is returned.
func Decode(data []byte) (Record, error) {
	if !json.Valid(data) {
		var v any
		err := json.Unmarshal(data, &v)
		return Record{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	s, err := compiledSchema()
	if err != nil {
		return Record{}, fmt.Errorf("portfolio: compile schema: %w", err)
	}
	result, err := s.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, re := range result.Errors() {
			problems = append(problems, fmt.Sprintf("%s: %s", re.Field(), re.Description()))
		}
		return Record{}, &ShapeError{Problems: problems}
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		// The schema allows values Go cannot hold, e.g. 95.0 for an int.
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return Record{}, &ShapeError{Problems: []string{fmt.Sprintf("%s: cannot hold %s", typeErr.Field, typeErr.Value)}}
		}
		return Record{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	rec.normalize()

	if err := Validate(rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Validate checks value constraints on an already decoded record.
func Validate(rec Record) error {
	err := validate.Struct(rec)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("portfolio: validate: %w", err)
	}
	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		problems = append(problems, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
	}
	return &ValidationError{Problems: problems}
}

// Encode renders the record as indented JSON in the on-disk format.
func Encode(rec Record) ([]byte, error) {
	rec.normalize()
	b, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("portfolio: encode: %w", err)
	}
	return append(b, '\n'), nil
}

// normalize replaces absent collections with empty ones so templates and the
// JSON output never see null arrays.
func (r *Record) normalize() {
	if r.About.Expertise == nil {
		r.About.Expertise = []string{}
	}
	if r.Skills == nil {
		r.Skills = []Skill{}
	}
	if r.Projects == nil {
		r.Projects = []Project{}
	}
	for i := range r.Projects {
		if r.Projects[i].Tags == nil {
			r.Projects[i].Tags = []string{}
		}
	}
	if r.Contact.Social == nil {
		r.Contact.Social = []SocialLink{}
	}
}
