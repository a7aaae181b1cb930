package strategy_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentforge/clientkit/pkg/strategy"
)

func TestNormalize_BackendWrapper(t *testing.T) {
	t.Parallel()

	record := strategy.Normalize(map[string]any{
		"success": true,
		"strategy": map[string]any{
			"strategic_overview": map[string]any{"growth_objective": "grow"},
		},
	})

	require.NotNil(t, record)
	assert.Equal(t, map[string]any{"growth_objective": "grow"}, record["strategic_overview"])
	assert.True(t, record.Valid())
}

func TestNormalize_DataWrapper(t *testing.T) {
	t.Parallel()

	record := strategy.Normalize(map[string]any{
		"data": map[string]any{"content_pillars": []any{}},
	})

	require.NotNil(t, record)
	assert.Equal(t, []any{}, record["content_pillars"])
	// Presence gates validity even for an empty list
	assert.True(t, record.Valid())
}

func TestNormalize_StringifiedFinalOutput(t *testing.T) {
	t.Parallel()

	record := strategy.Normalize(map[string]any{
		"final_output": `{"keywords":{"primary":["seo"]}}`,
	})

	require.NotNil(t, record)
	assert.Equal(t, map[string]any{"primary": []any{"seo"}}, record["keywords"])
	assert.True(t, record.Valid())
}

func TestNormalize_FinalOutputObject(t *testing.T) {
	t.Parallel()

	record := strategy.Normalize(map[string]any{
		"final_output": map[string]any{"roi_prediction": map[string]any{"reach": "10k"}},
	})

	require.NotNil(t, record)
	assert.True(t, record.Valid())
}

func TestNormalize_MalformedString(t *testing.T) {
	t.Parallel()

	assert.Nil(t, strategy.Normalize(map[string]any{"final_output": "not json"}))
	assert.Nil(t, strategy.Normalize("not json either"))
}

func TestNormalize_EmptyObjectIsCanonicalButInvalid(t *testing.T) {
	t.Parallel()

	record := strategy.Normalize(map[string]any{})
	require.NotNil(t, record)
	assert.Empty(t, record)
	assert.False(t, record.Valid())
}

func TestNormalize_OpaqueValues(t *testing.T) {
	t.Parallel()

	assert.Nil(t, strategy.Normalize(nil))
	assert.Nil(t, strategy.Normalize(42))
	assert.Nil(t, strategy.Normalize([]any{"a", "b"}))
}

func TestNormalize_BoundedRecursion(t *testing.T) {
	t.Parallel()

	// Payload wrapping itself 10 levels deep must return nil, not loop
	payload := map[string]any{"keywords": map[string]any{}}
	for i := 0; i < 10; i++ {
		payload = map[string]any{"strategy": payload}
	}

	assert.Nil(t, strategy.Normalize(payload))
}

func TestNormalize_ShallowNestingWithinBound(t *testing.T) {
	t.Parallel()

	// Three wrapper levels is a shape real backends produced
	payload := map[string]any{
		"data": map[string]any{
			"strategy": map[string]any{
				"final_output": `{"content_calendar":[{"week":1}]}`,
			},
		},
	}

	record := strategy.Normalize(payload)
	require.NotNil(t, record)
	assert.True(t, record.Valid())
}

func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()

	payloads := []any{
		map[string]any{"strategy": map[string]any{"keywords": map[string]any{"primary": []any{"x"}}}},
		map[string]any{"data": map[string]any{"roi_prediction": map[string]any{}}},
		map[string]any{"strategic_overview": map[string]any{}},
		map[string]any{},
	}

	for _, payload := range payloads {
		once := strategy.Normalize(payload)
		twice := strategy.Normalize(once)
		assert.Equal(t, once, twice)
	}
}

func TestNormalize_ShapeEquivalence(t *testing.T) {
	t.Parallel()

	canonical := map[string]any{
		"id":       "s1",
		"industry": "F&B",
		"platform": "Instagram",
		"keywords": map[string]any{"primary": []any{"coffee"}},
	}
	encoded, err := json.Marshal(canonical)
	require.NoError(t, err)

	fromStrategy := strategy.Normalize(map[string]any{"strategy": canonical})
	fromData := strategy.Normalize(map[string]any{"data": canonical})
	fromFinalOutput := strategy.Normalize(map[string]any{"final_output": string(encoded)})
	direct := strategy.Normalize(canonical)

	assert.Equal(t, direct, fromStrategy)
	assert.Equal(t, direct, fromData)
	assert.Equal(t, direct, fromFinalOutput)
}

func TestNormalizeJSON(t *testing.T) {
	t.Parallel()

	record := strategy.NormalizeJSON([]byte(`{"strategy":{"keywords":{"primary":["seo"]}}}`))
	require.NotNil(t, record)
	assert.True(t, record.Valid())

	assert.Nil(t, strategy.NormalizeJSON([]byte(`{broken`)))
}

func TestNormalize_NonObjectWrapperValuesFallThrough(t *testing.T) {
	t.Parallel()

	// A "strategy" key holding a non-object does not trigger unwrapping;
	// the payload is taken as canonical (and fails validity).
	record := strategy.Normalize(map[string]any{"strategy": "just a name"})
	require.NotNil(t, record)
	assert.False(t, record.Valid())
}
