package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentsift/scout-cli/internal/model"
)

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "candidates.json")
	batch := []model.Candidate{rankedCandidate(), minimalCandidate()}

	require.NoError(t, WriteJSON(path, batch))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded []model.Candidate
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 2)

	// The nested structure survives intact, ranked order preserved.
	assert.Equal(t, "Nguyễn Thị Linh", decoded[0].PersonalInfo.FullName)
	assert.Len(t, decoded[0].Education, 2)
	require.NotNil(t, decoded[0].AIJDMatchScore)
	assert.InDelta(t, 85.0, *decoded[0].AIJDMatchScore, 1e-9)
	assert.Equal(t, "An Nguyen", decoded[1].PersonalInfo.FullName)
	assert.Nil(t, decoded[1].AIJDMatchScore)
}

func TestWriteJSONKeepsTextLiteral(t *testing.T) {
	t.Parallel()

	c := rankedCandidate()
	c.AIReasoning = "Deep experience with C++ <templates> & Go generics"

	path := filepath.Join(t.TempDir(), "candidates.json")
	require.NoError(t, WriteJSON(path, []model.Candidate{c}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	// Vietnamese text and angle brackets stay literal in the file.
	assert.Contains(t, content, "Nguyễn Thị Linh")
	assert.Contains(t, content, "<templates> & Go generics")
	assert.NotContains(t, content, `\u003c`)
	assert.NotContains(t, content, `\u0026`)

	// Two-space indentation, one field per line.
	assert.True(t, strings.Contains(content, "\n    \"personal_info\""), "expected indented nested fields")
}

func TestWriteJSONCreateFailure(t *testing.T) {
	t.Parallel()

	err := WriteJSON(filepath.Join(t.TempDir(), "no", "such", "dir.json"), []model.Candidate{rankedCandidate()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create json")
}
