package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"progressring/internal/ring"
)

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "config.schema.json"

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	return compiler.Compile(schemaURL)
})

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (e ValidationErrors) Unwrap() []error {
	errs := make([]error, len(e))
	for i := range e {
		errs[i] = &e[i]
	}
	return errs
}

// ValidateConfig checks c against the JSON schema and then checks what the
// schema cannot express.
func ValidateConfig(c *Config) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := validateSchema(c); err != nil {
		return err
	}

	var errs ValidationErrors
	if c.Version > Version {
		errs = append(errs, ValidationError{
			Field:   "version",
			Message: fmt.Sprintf("unsupported version %d (current: %d)", c.Version, Version),
		})
	}
	errs = append(errs, validateRings(c.Rings)...)
	errs = append(errs, validateUpdates(c.Updates, len(c.Rings))...)
	errs = append(errs, validateLogging(&c.Logging)...)

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validateSchema(c *Config) error {
	schema, err := compileSchema()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return schemaErrors(ve)
		}
		return err
	}
	return nil
}

// schemaErrors flattens a jsonschema error tree into its leaf causes.
func schemaErrors(ve *jsonschema.ValidationError) ValidationErrors {
	var errs ValidationErrors
	var walk func(*jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			field := strings.ReplaceAll(strings.TrimPrefix(e.InstanceLocation, "/"), "/", ".")
			if field == "" {
				field = "(root)"
			}
			errs = append(errs, ValidationError{Field: field, Message: e.Message})
			return
		}
		for _, cause := range e.Causes {
			walk(cause)
		}
	}
	walk(ve)
	return errs
}

// Ring names double as snapshot file names.
var ringNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

func validateRings(rings []RingConfig) ValidationErrors {
	var errs ValidationErrors
	seen := make(map[string]int, len(rings))
	for i, r := range rings {
		prefix := fmt.Sprintf("rings.%d", i)
		if r.Name != "" && !ringNamePattern.MatchString(r.Name) {
			errs = append(errs, ValidationError{
				Field:   prefix + ".name",
				Message: fmt.Sprintf("invalid name %q: use letters, digits, '.', '_' or '-'", r.Name),
			})
		}
		name := r.DisplayName(i + 1)
		if first, dup := seen[name]; dup {
			errs = append(errs, ValidationError{
				Field:   prefix + ".name",
				Message: fmt.Sprintf("name %q already used by ring %d", name, first+1),
			})
		} else {
			seen[name] = i
		}
		if _, err := ring.ParseColor(r.BackgroundColor); err != nil {
			errs = append(errs, ValidationError{
				Field:   prefix + ".background_color",
				Message: err.Error(),
				Err:     err,
			})
		}
		if _, err := ring.ParseColor(r.PercentageColor); err != nil {
			errs = append(errs, ValidationError{
				Field:   prefix + ".percentage_color",
				Message: err.Error(),
				Err:     err,
			})
		}
	}
	return errs
}

func validateUpdates(updates []UpdateAction, rings int) ValidationErrors {
	var errs ValidationErrors
	for i, u := range updates {
		if u.Ring < 1 || u.Ring > rings {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("updates.%d.ring", i),
				Message: fmt.Sprintf("ring %d out of range (1-%d)", u.Ring, rings),
			})
		}
	}
	return errs
}

func validateLogging(l *LoggingConfig) ValidationErrors {
	var errs ValidationErrors
	if l.Output == "file" && l.FilePath == "" {
		errs = append(errs, ValidationError{
			Field:   "logging.file_path",
			Message: "file path is required when output is 'file'",
		})
	}
	return errs
}
