package iojson

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteWith(t *testing.T) {
	var out, errOut bytes.Buffer

	err := WriteWith(&out, &errOut, map[string]int{"commits": 3})
	require.NoError(t, err)

	assert.JSONEq(t, `{"commits":3}`, out.String())
	assert.Empty(t, errOut.String())
}

func TestWriteWith_MarshalFailure(t *testing.T) {
	var out, errOut bytes.Buffer

	err := WriteWith(&out, &errOut, map[string]any{"bad": make(chan int)})
	require.NoError(t, err)

	assert.Empty(t, out.String())

	var doc Error
	require.NoError(t, json.Unmarshal(errOut.Bytes(), &doc))
	assert.Equal(t, "error marshaling in iojson.Write", doc.Message)
	assert.Contains(t, doc.Data, "json_error")
}

func TestMarshalError(t *testing.T) {
	got := MarshalError(`clone "failed"`, map[string]any{"url": "https://example.com/r.git"})

	var doc Error
	require.NoError(t, json.Unmarshal([]byte(got), &doc))
	assert.Equal(t, `clone "failed"`, doc.Message)
	assert.Equal(t, "https://example.com/r.git", doc.Data["url"])
}
