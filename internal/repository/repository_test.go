package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imagemarket/api/internal/models"
)

func TestFindByEmailIsCaseSensitiveFirstMatch(t *testing.T) {
	users := NewUserRepository(t.TempDir())

	require.NoError(t, users.Save(models.User{ID: "u1", Email: "Ann@example.com"}))
	require.NoError(t, users.Save(models.User{ID: "u2", Email: "ann@example.com"}))

	found, err := users.FindByEmail("ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u2", found.ID)

	_, err = users.FindByEmail("ANN@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRoundTrip(t *testing.T) {
	users := NewUserRepository(t.TempDir())

	user := models.User{
		ID:           "u1",
		Username:     "ann",
		Email:        "ann@example.com",
		PasswordHash: "pw",
		CreatedAt:    models.Timestamp(),
	}
	require.NoError(t, users.Save(user))
	require.NoError(t, users.Save(models.User{ID: "u2", Email: "other@example.com"}))

	loaded, err := users.GetByID("u1")
	require.NoError(t, err)
	assert.Equal(t, user, loaded)
}

func TestImageQueries(t *testing.T) {
	images := NewImageRepository(t.TempDir())

	require.NoError(t, images.Save(models.Image{ID: "i1", Title: "Forest walk", Category: "nature", UserID: "u1", Filename: "forest.png"}))
	require.NoError(t, images.Save(models.Image{ID: "i2", Title: "City lights", Category: "Urban", UserID: "u2", Filename: "city.png"}))

	assert.Len(t, images.All(), 2)
	assert.Len(t, images.ByUser("u2"), 1)
	assert.Len(t, images.ByCategory("URBAN"), 1)

	matches := images.Search("forest")
	require.Len(t, matches, 1)
	assert.Equal(t, "i1", matches[0].ID)

	// Search also covers filenames.
	matches = images.Search("CITY.PNG")
	require.Len(t, matches, 1)
	assert.Equal(t, "i2", matches[0].ID)
}

func TestImageDeleteReportsRemoval(t *testing.T) {
	images := NewImageRepository(t.TempDir())
	require.NoError(t, images.Save(models.Image{ID: "i1"}))

	removed, err := images.Delete("i1")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = images.Delete("i1")
	require.NoError(t, err)
	assert.False(t, removed)
}
