package validation

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// Request body schemas. Bodies are checked against these before anything is
// persisted; a violation produces field-level detail and no row.

// ratingSchema bounds the score to the 1-5 stars the UI can produce.
const ratingSchema = `{
	"type": "object",
	"properties": {
		"rating": {"type": "integer", "minimum": 1, "maximum": 5}
	},
	"required": ["rating"],
	"additionalProperties": false
}`

const reviewSchema = `{
	"type": "object",
	"properties": {
		"content": {"type": "string", "minLength": 1}
	},
	"required": ["content"],
	"additionalProperties": false
}`

const credentialsSchema = `{
	"type": "object",
	"properties": {
		"username": {"type": "string", "minLength": 1, "maxLength": 64},
		"password": {"type": "string", "minLength": 8, "maxLength": 128},
		"avatarUrl": {"type": "string"}
	},
	"required": ["username", "password"],
	"additionalProperties": false
}`

// FieldErrors maps a field name to what is wrong with it.
type FieldErrors map[string]string

// ValidateRating checks a rate-movie request body. A nil return means the
// body is valid.
func ValidateRating(body []byte) (FieldErrors, error) {
	return validate(ratingSchema, body)
}

// ValidateReview checks a review-movie request body.
func ValidateReview(body []byte) (FieldErrors, error) {
	return validate(reviewSchema, body)
}

// ValidateCredentials checks a register or login request body.
func ValidateCredentials(body []byte) (FieldErrors, error) {
	return validate(credentialsSchema, body)
}

func validate(schema string, body []byte) (FieldErrors, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewBytesLoader(body),
	)
	if err != nil {
		// The document did not parse as JSON at all.
		return FieldErrors{"body": "must be a valid JSON object"}, nil
	}

	if result.Valid() {
		return nil, nil
	}

	fields := make(FieldErrors, len(result.Errors()))
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "(root)" {
			field = "body"
		}
		// Keep the first problem reported per field.
		if _, seen := fields[field]; !seen {
			fields[field] = desc.Description()
		}
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("validation produced no field errors")
	}
	return fields, nil
}
