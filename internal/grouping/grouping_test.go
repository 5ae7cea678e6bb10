package grouping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/course-marketplace/internal/models"
)

func load(id int64, name string, members int) models.GroupLoad {
	return models.GroupLoad{Group: models.Group{ID: id, Name: name}, Members: members}
}

func TestLeastLoaded(t *testing.T) {
	tests := []struct {
		name   string
		loads  []models.GroupLoad
		wantID int64
	}{
		{
			name:   "single group",
			loads:  []models.GroupLoad{load(7, "A", 10)},
			wantID: 7,
		},
		{
			name:   "tie between B and C resolved by lowest id",
			loads:  []models.GroupLoad{load(1, "A", 3), load(3, "C", 1), load(2, "B", 1)},
			wantID: 2,
		},
		{
			name:   "empty group wins",
			loads:  []models.GroupLoad{load(1, "A", 2), load(2, "B", 0)},
			wantID: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LeastLoaded(tt.loads)
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}

func TestLeastLoaded_NeverPicksFullest(t *testing.T) {
	got, err := LeastLoaded([]models.GroupLoad{load(1, "A", 3), load(2, "B", 1), load(3, "C", 1)})
	require.NoError(t, err)
	assert.NotEqual(t, "A", got.Name)
	assert.Contains(t, []string{"B", "C"}, got.Name)
}

func TestLeastLoaded_NoGroups(t *testing.T) {
	_, err := LeastLoaded(nil)
	assert.ErrorIs(t, err, models.ErrNoGroupsAvailable)
}
