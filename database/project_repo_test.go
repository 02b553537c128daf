package database

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jcallahan/portfolio-site-backend/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Project{}))

	return db
}

func testProject(title string, featured bool, createdAt time.Time) *models.Project {
	return &models.Project{
		Title:           title,
		Description:     "short",
		LongDescription: "long",
		Technologies:    models.TechList{"Go", "PostgreSQL"},
		Category:        "Backend",
		Featured:        featured,
		CreatedAt:       createdAt,
	}
}

func TestProjectRepoAdd(t *testing.T) {
	repo := NewProjectRepo(newTestDB(t))

	project := testProject("E-Commerce Platform", false, time.Time{})
	require.NoError(t, repo.Add(project))

	assert.NotEqual(t, uuid.Nil, project.ID)
	assert.False(t, project.CreatedAt.IsZero())

	found, err := repo.FindByID(project.ID)
	require.NoError(t, err)
	assert.Equal(t, "E-Commerce Platform", found.Title)
	assert.Equal(t, models.TechList{"Go", "PostgreSQL"}, found.Technologies)
	assert.False(t, found.Featured)
}

func TestProjectRepoFindAllOrdering(t *testing.T) {
	repo := NewProjectRepo(newTestDB(t))

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Add(testProject("oldest", false, base)))
	require.NoError(t, repo.Add(testProject("newest", false, base.Add(2*time.Hour))))
	require.NoError(t, repo.Add(testProject("middle", false, base.Add(time.Hour))))

	projects, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, projects, 3)

	assert.Equal(t, "newest", projects[0].Title)
	assert.Equal(t, "middle", projects[1].Title)
	assert.Equal(t, "oldest", projects[2].Title)
}

func TestProjectRepoFindFeatured(t *testing.T) {
	repo := NewProjectRepo(newTestDB(t))

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Add(testProject("plain", false, base)))
	require.NoError(t, repo.Add(testProject("starred", true, base.Add(time.Hour))))
	require.NoError(t, repo.Add(testProject("also starred", true, base.Add(2*time.Hour))))

	featured, err := repo.FindFeatured()
	require.NoError(t, err)
	require.Len(t, featured, 2)

	for _, p := range featured {
		assert.True(t, p.Featured)
	}
	assert.Equal(t, "also starred", featured[0].Title)
}

func TestProjectRepoFindByIDNotFound(t *testing.T) {
	repo := NewProjectRepo(newTestDB(t))

	_, err := repo.FindByID(uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestProjectRepoUpdate(t *testing.T) {
	t.Run("Overwrites every field", func(t *testing.T) {
		repo := NewProjectRepo(newTestDB(t))

		project := testProject("before", true, time.Time{})
		demo := "https://demo.example.com"
		project.DemoURL = &demo
		require.NoError(t, repo.Add(project))

		updated := &models.Project{
			ID:              project.ID,
			Title:           "after",
			Description:     "short v2",
			LongDescription: "long v2",
			Technologies:    models.TechList{"Go", "Rust"},
			Category:        "Full Stack",
			Featured:        false,
		}
		require.NoError(t, repo.Update(updated))

		found, err := repo.FindByID(project.ID)
		require.NoError(t, err)
		assert.Equal(t, "after", found.Title)
		assert.Equal(t, models.TechList{"Go", "Rust"}, found.Technologies)
		assert.Equal(t, "Full Stack", found.Category)
		// full overwrite: absent optional fields are nulled, featured reset
		assert.Nil(t, found.DemoURL)
		assert.False(t, found.Featured)
	})

	t.Run("Missing project is not found, no insert", func(t *testing.T) {
		repo := NewProjectRepo(newTestDB(t))

		ghost := testProject("ghost", false, time.Time{})
		ghost.ID = uuid.New()
		assert.ErrorIs(t, repo.Update(ghost), gorm.ErrRecordNotFound)

		projects, err := repo.FindAll()
		require.NoError(t, err)
		assert.Empty(t, projects)
	})
}

func TestProjectRepoDelete(t *testing.T) {
	t.Run("Removes the row", func(t *testing.T) {
		repo := NewProjectRepo(newTestDB(t))

		project := testProject("doomed", false, time.Time{})
		require.NoError(t, repo.Add(project))

		require.NoError(t, repo.Delete(project.ID))

		_, err := repo.FindByID(project.ID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("Missing project is not found", func(t *testing.T) {
		repo := NewProjectRepo(newTestDB(t))
		assert.ErrorIs(t, repo.Delete(uuid.New()), gorm.ErrRecordNotFound)
	})
}
