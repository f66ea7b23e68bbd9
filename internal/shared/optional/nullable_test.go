package optional_test

import (
	"encoding/json"
	"testing"

	"go-hrdash/internal/shared/optional"

	"github.com/stretchr/testify/assert"
)

type patch struct {
	Notes optional.Nullable[string] `json:"notes"`
}

func TestNullable_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantSet   bool
		wantValue *string
	}{
		{name: "absent", body: `{}`, wantSet: false},
		{name: "explicit null", body: `{"notes":null}`, wantSet: true},
		{name: "value", body: `{"notes":"ready for review"}`, wantSet: true, wantValue: strPtr("ready for review")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p patch
			assert.NoError(t, json.Unmarshal([]byte(tt.body), &p))
			assert.Equal(t, tt.wantSet, p.Notes.Set)
			assert.Equal(t, tt.wantValue, p.Notes.Value)
		})
	}
}

func TestNullable_ApplyTo(t *testing.T) {
	t.Run("absent leaves destination untouched", func(t *testing.T) {
		dst := strPtr("keep")
		optional.Nullable[string]{}.ApplyTo(&dst)
		assert.Equal(t, "keep", *dst)
	})

	t.Run("null clears destination", func(t *testing.T) {
		dst := strPtr("drop")
		optional.Null[string]().ApplyTo(&dst)
		assert.Nil(t, dst)
	})

	t.Run("value replaces destination", func(t *testing.T) {
		var dst *string
		optional.Of("new").ApplyTo(&dst)
		assert.Equal(t, "new", *dst)
	})
}

func strPtr(s string) *string { return &s }
