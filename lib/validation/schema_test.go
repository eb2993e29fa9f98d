package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRating(t *testing.T) {
	fields, err := ValidateRating([]byte(`{"rating": 4}`))
	require.NoError(t, err)
	assert.Nil(t, fields)

	for _, body := range []string{
		`{"rating": 0}`,
		`{"rating": 6}`,
		`{"rating": 3.5}`,
		`{"rating": "4"}`,
		`{}`,
		`{"rating": 4, "extra": true}`,
	} {
		fields, err := ValidateRating([]byte(body))
		require.NoError(t, err, body)
		assert.NotNil(t, fields, body)
	}
}

func TestValidateReview(t *testing.T) {
	fields, err := ValidateReview([]byte(`{"content": "loved it"}`))
	require.NoError(t, err)
	assert.Nil(t, fields)

	fields, err = ValidateReview([]byte(`{"content": ""}`))
	require.NoError(t, err)
	require.NotNil(t, fields)
	assert.Contains(t, fields, "content")

	fields, err = ValidateReview([]byte(`{}`))
	require.NoError(t, err)
	assert.NotNil(t, fields)
}

func TestValidateCredentials(t *testing.T) {
	fields, err := ValidateCredentials([]byte(`{"username": "casey", "password": "hunter2hunter2"}`))
	require.NoError(t, err)
	assert.Nil(t, fields)

	fields, err = ValidateCredentials([]byte(`{"username": "casey", "password": "short"}`))
	require.NoError(t, err)
	require.NotNil(t, fields)
	assert.Contains(t, fields, "password")
}

func TestValidateRejectsNonJSON(t *testing.T) {
	fields, err := ValidateRating([]byte(`not json at all`))
	require.NoError(t, err)
	assert.NotNil(t, fields)
}

func TestValidatePagination(t *testing.T) {
	assert.NoError(t, ValidatePagination(1))
	assert.NoError(t, ValidatePagination(500))
	assert.Error(t, ValidatePagination(0))
	assert.Error(t, ValidatePagination(-3))
}
