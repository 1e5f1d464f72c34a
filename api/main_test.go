package api

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/akdeniz-handel/catalog-backend/database"
	"github.com/akdeniz-handel/catalog-backend/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testJWTSecret = "test-secret"

// newTestServer spins up the full router against an in-memory sqlite
// database, with no redis and no media store.
func newTestServer(t *testing.T) (*httptest.Server, database.Database) {
	return newTestServerWithRedis(t, nil)
}

func newTestServerWithRedis(t *testing.T, rdb *redis.Client) (*httptest.Server, database.Database) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	testDB := database.New(db)
	require.NoError(t, testDB.Migrate())

	router := newRouter(testDB, rdb, nil,
		withConfig(map[string]string{"JWT_SECRET": testJWTSecret}),
		withStartupTime(time.Now()))

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, testDB
}

// createUser inserts an account and returns a valid access token for it.
func createUser(t *testing.T, db database.Database, email string, isStaff bool) (*models.User, string) {
	t.Helper()

	user := &models.User{
		Email:      email,
		FirstName:  "Test",
		LastName:   "User",
		IsStaff:    isStaff,
		IsActive:   true,
		DateJoined: time.Now(),
	}
	require.NoError(t, user.SetPassword("sicher-genug"))
	require.NoError(t, db.UserRepo().Add(user))

	issuer := newTokenIssuer(testJWTSecret, 15*time.Minute, time.Hour)
	access, _, err := issuer.IssuePair(user)
	require.NoError(t, err)
	return user, access
}
