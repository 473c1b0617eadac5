package parser

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/valyala/fastjson"

	"github.com/mcncl/jsonmodel/internal/errors" // Custom errors package
	"github.com/mcncl/jsonmodel/internal/models"
)

// Option configures decoding.
type Option func(*options)

type options struct {
	normalizeKeys bool
}

// WithNormalizedKeys rewrites every object key to snake_case while decoding,
// so keys such as "first-name" or "firstName" become "first_name" and can be
// addressed by the path grammar. When two keys normalize to the same name the
// later value wins and keeps the earlier position.
func WithNormalizedKeys() Option {
	return func(o *options) { o.normalizeKeys = true }
}

// Parse reads a single JSON document from reader and converts it into a value
// tree. Object member order follows the input.
func Parse(reader io.Reader, opts ...Option) (models.Value, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return models.Value{}, errors.NewInputError("failed to read input", err)
	}
	return ParseString(string(data), opts...)
}

// ParseString parses JSON from a string
func ParseString(jsonString string, opts ...Option) (models.Value, error) {
	if strings.TrimSpace(jsonString) == "" {
		return models.Value{}, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var p fastjson.Parser
	raw, err := p.Parse(jsonString)
	if err != nil {
		// fastjson reports a second top-level value as an unexpected tail.
		if strings.HasPrefix(err.Error(), "unexpected tail") {
			return models.Value{}, errors.NewParsingError("multiple JSON values found at the root", errors.ErrMultipleJSON)
		}
		return models.Value{}, errors.NewParsingError(
			fmt.Sprintf("JSON syntax error: %v", err),
			errors.ErrInvalidJSON,
		)
	}

	// raw points into the parser's buffer, so everything is copied out here.
	return convertValue(raw, &o)
}

// ParseFile parses JSON from a file path
func ParseFile(filePath string, opts ...Option) (models.Value, error) {
	if strings.TrimSpace(filePath) == "" {
		return models.Value{}, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Value{}, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return models.Value{}, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	defer func() {
		if err := file.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing file: %v\n", err)
		}
	}()

	stat, err := file.Stat()
	if err != nil {
		return models.Value{}, errors.NewInputError(
			fmt.Sprintf("failed to get file stats for '%s'", filePath),
			err,
		)
	}
	if stat.Size() == 0 {
		return models.Value{}, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	return Parse(file, opts...)
}

// convertValue copies a fastjson value into our model types
func convertValue(v *fastjson.Value, o *options) (models.Value, error) {
	switch v.Type() {
	case fastjson.TypeNull:
		return models.NullValue(), nil
	case fastjson.TypeTrue:
		return models.BoolValue(true), nil
	case fastjson.TypeFalse:
		return models.BoolValue(false), nil
	case fastjson.TypeNumber:
		// fastjson also accepts literals like NaN and Inf; JSON does not.
		literal := v.String()
		if !json.Valid([]byte(literal)) {
			return models.Value{}, errors.NewParsingError(
				fmt.Sprintf("invalid number literal %q", literal),
				errors.ErrInvalidJSON,
			)
		}
		return models.NumberValue(json.Number(literal)), nil
	case fastjson.TypeString:
		b, err := v.StringBytes()
		if err != nil {
			return models.Value{}, errors.NewParsingError("failed to read string", err)
		}
		return models.StringValue(string(b)), nil
	case fastjson.TypeObject:
		raw, err := v.Object()
		if err != nil {
			return models.Value{}, errors.NewParsingError("failed to read object", err)
		}
		obj := models.NewObject()
		var convErr error
		raw.Visit(func(key []byte, member *fastjson.Value) {
			if convErr != nil {
				return
			}
			converted, err := convertValue(member, o)
			if err != nil {
				convErr = err
				return
			}
			name := string(key)
			if o.normalizeKeys {
				name = strcase.ToSnake(name)
			}
			obj.Set(name, converted)
		})
		if convErr != nil {
			return models.Value{}, convErr
		}
		return models.ObjectValue(obj), nil
	case fastjson.TypeArray:
		raw, err := v.Array()
		if err != nil {
			return models.Value{}, errors.NewParsingError("failed to read array", err)
		}
		arr := models.ArrayValue()
		for _, elem := range raw {
			converted, err := convertValue(elem, o)
			if err != nil {
				return models.Value{}, err
			}
			arr.Append(converted)
		}
		return arr, nil
	}
	return models.Value{}, errors.NewParsingError(fmt.Sprintf("unsupported JSON type %s", v.Type()), errors.ErrInvalidJSON)
}
