package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rakasatria/folio/internal/models"
	pgrepo "github.com/rakasatria/folio/internal/repositories/postgres"
	"github.com/rakasatria/folio/internal/utils"
)

const testOwner = "22222222-2222-2222-2222-222222222222"

func testDB(t *testing.T, rows ...any) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// every pooled connection would get its own in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(rows...))
	return db
}

func skillService(t *testing.T) Resource[models.Skill] {
	t.Helper()
	db := testDB(t, &models.Skill{})
	return NewResourceService[models.Skill, *models.Skill]("skill", testOwner, pgrepo.NewEntityRepo[models.Skill](db))
}

func TestResourceServiceCreateStamps(t *testing.T) {
	svc := skillService(t)

	row, err := svc.Create(context.Background(), &models.Skill{Title: "Backend", Icon: "server"})
	require.NoError(t, err)

	assert.NotEmpty(t, row.ID, "id is assigned server-side")
	assert.Equal(t, testOwner, row.OwnerID)
	assert.False(t, row.CreatedAt.IsZero())
}

func TestResourceServiceUpdateChecks(t *testing.T) {
	svc := skillService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &models.Skill{Title: "Backend", Icon: "server"})
	require.NoError(t, err)

	created.Title = "Backend Engineering"
	updated, err := svc.Update(ctx, created.ID, created)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineering", updated.Title)

	// mismatched row id
	other := &models.Skill{}
	other.ID = "different"
	_, err = svc.Update(ctx, created.ID, other)
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	// updating a missing row must not insert
	ghost := &models.Skill{Title: "Ghost"}
	_, err = svc.Update(ctx, "missing-id", ghost)
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))

	rows, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestResourceServiceDeleteMissing(t *testing.T) {
	svc := skillService(t)

	err := svc.Delete(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestContactServiceSubmitValidates(t *testing.T) {
	db := testDB(t, &models.ContactMessage{})
	svc := NewContactService(testOwner, pgrepo.NewEntityRepo[models.ContactMessage](db), nil)
	ctx := context.Background()

	_, err := svc.Submit(ctx, &models.ContactMessage{Name: "x", Email: ""})
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	row, err := svc.Submit(ctx, &models.ContactMessage{
		Name: "Visitor", Email: "v@example.com", Message: "hello",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, row.ID)

	rows, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestProjectServiceFeatured(t *testing.T) {
	db := testDB(t, &models.Project{})
	svc := NewProjectService(testOwner, pgrepo.NewEntityRepo[models.Project](db))
	ctx := context.Background()

	_, err := svc.Create(ctx, &models.Project{Title: "plain", Description: "d"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &models.Project{Title: "starred", Description: "d", IsFeatured: true})
	require.NoError(t, err)

	rows, err := svc.Featured(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "starred", rows[0].Title)

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2, "featured is a view, not a separate list")
}
