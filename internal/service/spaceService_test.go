package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyspot/studyspot/internal/entity"
)

func TestGetSpace(t *testing.T) {
	spaces := NewSpaceService(testCatalog())
	ctx := context.Background()

	space, err := spaces.GetSpace(ctx, "lib-1")
	require.NoError(t, err)
	assert.Equal(t, "Quiet Library Pod", space.Name)

	_, err = spaces.GetSpace(ctx, "nope")
	assert.ErrorIs(t, err, entity.ErrSpaceNotFound)
}

func TestSearchSpaces(t *testing.T) {
	catalog := testCatalog()
	catalog[0].Amenities = []string{"Wi-Fi", "Whiteboard"}
	spaces := NewSpaceService(catalog)
	ctx := context.Background()

	tests := []struct {
		name    string
		query   string
		wantIDs []string
	}{
		{"empty query returns all", "", []string{"lib-1", "loft-2"}},
		{"match by name", "loft", []string{"loft-2"}},
		{"match by location case-insensitive", "DOWNTOWN", []string{"lib-1"}},
		{"match by amenity", "whiteboard", []string{"lib-1"}},
		{"no matches", "garage", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found := spaces.SearchSpaces(ctx, tt.query)
			ids := make([]string, 0, len(found))
			for _, s := range found {
				ids = append(ids, s.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}
