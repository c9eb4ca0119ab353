package postgres_test

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sort"
	"testing"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnhub/learnhub/application/port/outbound"
	"github.com/learnhub/learnhub/domain/entity"
	"github.com/learnhub/learnhub/domain/valueobject"
	"github.com/learnhub/learnhub/infrastructure/adapter/postgres"
)

// openTestDB connects to TEST_DATABASE_URL and recreates the schema from migrations/.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Ping())

	_, err = db.Exec(`DROP TABLE IF EXISTS user_courses, courses, users`)
	require.NoError(t, err)

	ups, err := filepath.Glob(filepath.Join("..", "..", "..", "migrations", "*.up.sql"))
	require.NoError(t, err)
	sort.Strings(ups)
	for _, path := range ups {
		stmt, err := os.ReadFile(path)
		require.NoError(t, err)
		_, err = db.Exec(string(stmt))
		require.NoError(t, err, path)
	}
	return db
}

func TestUserRepository_Lifecycle(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	users := postgres.NewUserRepositoryAdapter(db)
	courses := postgres.NewCourseRepositoryAdapter(db)

	user := entity.NewUser("u-1", "Ann", "ann@example.com", "hashed", valueobject.RoleUser)
	require.NoError(t, users.Create(ctx, user))
	assert.ErrorIs(t, users.Create(ctx, entity.NewUser("u-2", "Ann", "ann@example.com", "x", valueobject.RoleUser)), outbound.ErrUserAlreadyExists)

	missing, err := users.FindByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)

	course, err := entity.NewCourse("c-1", "Go", "Intro", "", "https://v/1")
	require.NoError(t, err)
	require.NoError(t, courses.Create(ctx, course))

	require.NoError(t, users.AddAppliedCourse(ctx, "u-1", "c-1"))
	require.NoError(t, users.AddAppliedCourse(ctx, "u-1", "c-1"))
	require.NoError(t, users.CompleteAppliedCourse(ctx, "u-1", "c-1", 8))
	assert.ErrorIs(t, users.CompleteAppliedCourse(ctx, "u-1", "c-404", 1), outbound.ErrCourseNotFound)

	found, err := users.FindByID(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, found.AppliedCourses, 1)
	assert.True(t, found.AppliedCourses[0].Completed)
	require.NotNil(t, found.AppliedCourses[0].Marks)
	assert.Equal(t, 8, *found.AppliedCourses[0].Marks)

	require.NoError(t, users.UpdateProfilePic(ctx, "u-1", "https://img/p.png"))
	byEmail, err := users.FindByEmail(ctx, "ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, "https://img/p.png", byEmail.ProfilePic)

	_, err = users.FindByID(ctx, "u-404")
	assert.ErrorIs(t, err, outbound.ErrUserNotFound)
}

func TestUserRepository_FindAllFiltersRole(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	users := postgres.NewUserRepositoryAdapter(db)

	require.NoError(t, users.Create(ctx, entity.NewUser("u-1", "Ann", "ann@example.com", "h", valueobject.RoleUser)))
	require.NoError(t, users.Create(ctx, entity.NewUser("u-2", "Bob", "bob@example.com", "h", valueobject.RoleUser)))
	require.NoError(t, users.Create(ctx, entity.NewUser("a-1", "Root", "root@example.com", "h", valueobject.RoleAdmin)))

	page, total, err := users.FindAll(ctx, 0, 1, outbound.UserFilters{Role: valueobject.RoleUser})

	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, page, 1)
}

func TestCourseRepository_CRUD(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	courses := postgres.NewCourseRepositoryAdapter(db)

	course, err := entity.NewCourse("c-1", "Go", "Intro", "", "https://v/1")
	require.NoError(t, err)
	require.NoError(t, courses.Create(ctx, course))

	course.Name = "Go 2"
	require.NoError(t, courses.Update(ctx, course))

	got, err := courses.FindByID(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, "Go 2", got.Name)
	assert.Equal(t, entity.DefaultCoverImage, got.CoverImage)

	list, total, err := courses.FindAll(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, list, 1)

	require.NoError(t, courses.Delete(ctx, "c-1"))
	assert.ErrorIs(t, courses.Delete(ctx, "c-1"), outbound.ErrCourseNotFound)
	_, err = courses.FindByID(ctx, "c-1")
	assert.ErrorIs(t, err, outbound.ErrCourseNotFound)
}
