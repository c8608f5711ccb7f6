package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSchema = []byte(`{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"name": {"type": "string"},
		"count": {"type": "integer", "minimum": 0}
	},
	"required": ["name"]
}`)

func TestValidateBytes(t *testing.T) {
	err := ValidateBytes(testSchema, []byte(`{"name": "run", "count": 3}`))
	assert.NoError(t, err)
}

func TestValidateBytesReportsEveryField(t *testing.T) {
	err := ValidateBytes(testSchema, []byte(`{"count": -1, "extra": true}`))
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.GreaterOrEqual(t, len(ve.Errors), 2)
	assert.Contains(t, err.Error(), "name")
	assert.Contains(t, err.Error(), "extra")
}

func TestValidateBytesWrongType(t *testing.T) {
	err := ValidateBytes(testSchema, []byte(`{"name": 42}`))
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "name", ve.Errors[0].Field)
}

func TestValidateBytesBadSchema(t *testing.T) {
	err := ValidateBytes([]byte(`{`), []byte(`{}`))
	require.Error(t, err)

	var le *SchemaLoadError
	assert.ErrorAs(t, err, &le)
}

func TestValidateBytesBadDocument(t *testing.T) {
	err := ValidateBytes(testSchema, []byte(`not json`))
	require.Error(t, err)
}
