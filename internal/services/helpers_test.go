package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"task-manager-api.com/task-manager-api/internal/auth"
	"task-manager-api.com/task-manager-api/internal/clock"
	config "task-manager-api.com/task-manager-api/internal/configs"
	repository "task-manager-api.com/task-manager-api/internal/repositories"
	"task-manager-api.com/task-manager-api/internal/sessions"
)

var baseTime = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := config.Open(dsn)
	require.NoError(t, err, "failed to connect database")
	require.NoError(t, config.Migrate(db), "failed to migrate database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

type taskFixture struct {
	db      *gorm.DB
	repo    *repository.TaskRepository
	clock   *clock.Fixed
	service *TaskService
}

func newTaskFixture(t *testing.T) *taskFixture {
	t.Helper()

	db := setupTestDB(t)
	repo := repository.NewTaskRepository(db)
	clk := clock.NewFixed(baseTime)

	return &taskFixture{
		db:      db,
		repo:    repo,
		clock:   clk,
		service: NewTaskService(repo, clk),
	}
}

type authFixture struct {
	users    *repository.UserRepository
	tasks    *repository.TaskRepository
	clock    *clock.Fixed
	sessions *sessions.MemoryStore
	tokens   *auth.JWTManager
	auth     *AuthService
	profile  *UserService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	db := setupTestDB(t)
	clk := clock.NewFixed(time.Now().UTC())
	users := repository.NewUserRepository(db)
	tasks := repository.NewTaskRepository(db)
	store := sessions.NewMemoryStore(clk.Now)
	hasher := auth.NewPasswordHasher(bcrypt.MinCost)
	tokens := auth.NewJWTManager(auth.JWTConfig{
		SecretKey: "test-secret",
		TTL:       time.Hour,
		Issuer:    "task-manager-api",
	}, clk.Now)

	return &authFixture{
		users:    users,
		tasks:    tasks,
		clock:    clk,
		sessions: store,
		tokens:   tokens,
		auth:     NewAuthService(users, hasher, tokens, store, clk, "Africa/Nairobi"),
		profile:  NewUserService(users, tasks, hasher, store, clk),
	}
}

func utc(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, time.UTC)
}
