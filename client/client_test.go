package client_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jcallahan/portfolio-site-backend/api"
	"github.com/jcallahan/portfolio-site-backend/client"
	"github.com/jcallahan/portfolio-site-backend/database"
	"github.com/jcallahan/portfolio-site-backend/models"
)

func newTestClient(t *testing.T) *client.Client {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Project{}))

	server := httptest.NewServer(api.NewRouter(database.New(db)))
	t.Cleanup(server.Close)

	c, err := client.New(server.URL)
	require.NoError(t, err)
	return c
}

func candidate() models.ProjectInput {
	return models.ProjectInput{
		Title:           "X",
		Description:     "d",
		LongDescription: "ld",
		Technologies:    models.TechList{"Go"},
		Category:        "Backend",
	}
}

func TestNew(t *testing.T) {
	t.Run("Empty base URL is rejected", func(t *testing.T) {
		_, err := client.New("")
		assert.Error(t, err)
	})

	t.Run("Base URL needs scheme and host", func(t *testing.T) {
		_, err := client.New("/just/a/path")
		assert.Error(t, err)
	})

	t.Run("Valid base URL", func(t *testing.T) {
		c, err := client.New("http://localhost:8080")
		require.NoError(t, err)
		assert.Equal(t, "localhost:8080", c.BaseURL.Host)
	})
}

func TestClientCRUDLifecycle(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	created, err := c.CreateProject(ctx, candidate())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, models.TechList{"Go"}, created.Technologies)
	assert.False(t, created.Featured)

	fetched, err := c.GetProject(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)

	input := candidate()
	input.Technologies = models.TechList{"Go", "Rust"}
	updated, err := c.UpdateProject(ctx, created.ID.String(), input)
	require.NoError(t, err)
	assert.Equal(t, models.TechList{"Go", "Rust"}, updated.Technologies)

	projects, err := c.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)

	require.NoError(t, c.DeleteProject(ctx, created.ID.String()))

	_, err = c.GetProject(ctx, created.ID.String())
	assert.ErrorIs(t, err, client.ErrNotFound)
}

func TestClientListFeaturedProjects(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	plain := candidate()
	_, err := c.CreateProject(ctx, plain)
	require.NoError(t, err)

	starred := candidate()
	starred.Featured = true
	_, err = c.CreateProject(ctx, starred)
	require.NoError(t, err)

	featured, err := c.ListFeaturedProjects(ctx)
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.True(t, featured[0].Featured)
}

func TestClientErrorDiscrimination(t *testing.T) {
	t.Run("Not found is a distinct sentinel", func(t *testing.T) {
		c := newTestClient(t)

		_, err := c.GetProject(context.Background(), uuid.NewString())
		assert.ErrorIs(t, err, client.ErrNotFound)

		_, err = c.UpdateProject(context.Background(), uuid.NewString(), candidate())
		assert.ErrorIs(t, err, client.ErrNotFound)

		err = c.DeleteProject(context.Background(), uuid.NewString())
		assert.ErrorIs(t, err, client.ErrNotFound)
	})

	t.Run("Validation failure carries the status code", func(t *testing.T) {
		c := newTestClient(t)

		input := candidate()
		input.Title = ""
		_, err := c.CreateProject(context.Background(), input)
		require.Error(t, err)

		var apiErr *client.APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	})

	t.Run("Transport failure is not not-found", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		serverURL := server.URL
		server.Close() // nothing listening anymore

		c, err := client.New(serverURL)
		require.NoError(t, err)

		_, err = c.ListProjects(context.Background())
		require.Error(t, err)
		assert.NotErrorIs(t, err, client.ErrNotFound)
	})
}

func TestFilterByCategory(t *testing.T) {
	projects := []models.Project{
		{Title: "a", Category: "Backend"},
		{Title: "b", Category: "Frontend"},
		{Title: "c", Category: "Backend"},
	}

	backend := client.FilterByCategory(projects, "Backend")
	require.Len(t, backend, 2)
	assert.Equal(t, "a", backend[0].Title)
	assert.Equal(t, "c", backend[1].Title)

	assert.Empty(t, client.FilterByCategory(projects, "Mobile"))
	assert.Empty(t, client.FilterByCategory(nil, "Backend"))
}
