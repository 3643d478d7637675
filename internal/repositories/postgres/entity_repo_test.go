package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rakasatria/folio/internal/models"
	"github.com/rakasatria/folio/internal/utils"
)

const testOwner = "11111111-1111-1111-1111-111111111111"

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// every pooled connection would get its own in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Project{},
		&models.PersonalInfo{},
	))
	return db
}

func newProject(title string, createdAt time.Time) *models.Project {
	p := &models.Project{Title: title, Description: "d"}
	p.Stamp(testOwner)
	p.CreatedAt = createdAt
	return p
}

func TestEntityRepoCreateAndList(t *testing.T) {
	repo := NewEntityRepo[models.Project](testDB(t))
	ctx := context.Background()

	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	oldest := newProject("oldest", base)
	middle := newProject("middle", base.Add(time.Hour))
	newest := newProject("newest", base.Add(2*time.Hour))

	// insert out of creation order on purpose
	for _, p := range []*models.Project{middle, newest, oldest} {
		require.NoError(t, repo.Create(ctx, p))
	}

	rows, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "newest", rows[0].Title, "list must be newest first")
	assert.Equal(t, "middle", rows[1].Title)
	assert.Equal(t, "oldest", rows[2].Title)
}

func TestEntityRepoListWhere(t *testing.T) {
	repo := NewEntityRepo[models.Project](testDB(t))
	ctx := context.Background()

	featured := newProject("featured", time.Now().UTC())
	featured.IsFeatured = true
	plain := newProject("plain", time.Now().UTC().Add(-time.Hour))

	require.NoError(t, repo.Create(ctx, featured))
	require.NoError(t, repo.Create(ctx, plain))

	rows, err := repo.ListWhere(ctx, "is_featured = ?", true)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "featured", rows[0].Title)
}

func TestEntityRepoGet(t *testing.T) {
	repo := NewEntityRepo[models.Project](testDB(t))
	ctx := context.Background()

	p := newProject("one", time.Now().UTC())
	p.Tags = []string{"go", "gin"}
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "one", got.Title)
	assert.Equal(t, []string(got.Tags), []string{"go", "gin"})

	_, err = repo.Get(ctx, uuid.NewString())
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestEntityRepoSave(t *testing.T) {
	repo := NewEntityRepo[models.Project](testDB(t))
	ctx := context.Background()

	p := newProject("before", time.Now().UTC())
	require.NoError(t, repo.Create(ctx, p))

	p.Title = "after"
	require.NoError(t, repo.Save(ctx, p))

	got, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", got.Title)

	rows, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 1, "save must not insert a second row")
}

func TestEntityRepoDelete(t *testing.T) {
	repo := NewEntityRepo[models.Project](testDB(t))
	ctx := context.Background()

	p := newProject("gone", time.Now().UTC())
	require.NoError(t, repo.Create(ctx, p))

	require.NoError(t, repo.Delete(ctx, p.ID))

	rows, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)

	assert.ErrorIs(t, repo.Delete(ctx, p.ID), utils.ErrNotFound)
}
