package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"manabi/database"
	"manabi/middleware"
	"manabi/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// These tests exercise the authentication and input-validation boundary,
// which rejects bad requests before any storage access happens.

const testSecret = "handlers-test-secret-handlers-test-secret"

func testApp() *fiber.App {
	app := fiber.New()
	api := app.Group("/api")

	progressGroup := api.Group("/progress")
	progressGroup.Use(middleware.AuthMiddleware)
	progressGroup.Post("/xp", AwardXP)
	progressGroup.Patch("/goal", UpdateDailyGoal)

	categoryGroup := api.Group("/categories")
	categoryGroup.Use(middleware.AuthMiddleware)
	categoryGroup.Post("/progress", UpdateCategoryProgress)

	lessonGroup := api.Group("/lessons")
	lessonGroup.Use(middleware.AuthMiddleware)
	lessonGroup.Post("/progress", UpdateLessonProgress)

	return app
}

// dbApp wires the routes that need storage against an in-memory database,
// mirroring the registration in main.go.
func dbApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Lesson{},
		&models.LessonProgress{},
		&models.StudySession{},
		&models.Achievement{},
		&models.UserAchievement{},
	))
	database.SetDB(db)

	app := fiber.New()
	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", Register)

	api.Get("/lessons", GetLessons)
	lessonGroup := api.Group("/lessons")
	lessonGroup.Get("/progress", middleware.AuthMiddleware, GetLessonProgress)

	return app
}

func authToken(t *testing.T) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  uint(1),
		"username": "yuki",
		"is_guest": false,
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func doJSON(t *testing.T, app *fiber.App, method, target, body, token string) int {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestAwardXPRequiresAuth(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	app := testApp()

	status := doJSON(t, app, "POST", "/api/progress/xp", `{"xp_earned":10}`, "")
	assert.Equal(t, 401, status)
}

func TestAwardXPRejectsNegativeXP(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	app := testApp()

	status := doJSON(t, app, "POST", "/api/progress/xp", `{"xp_earned":-5}`, authToken(t))
	assert.Equal(t, 400, status)
}

func TestAwardXPRejectsNegativeDuration(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	app := testApp()

	status := doJSON(t, app, "POST", "/api/progress/xp", `{"xp_earned":10,"duration":-1}`, authToken(t))
	assert.Equal(t, 400, status)
}

func TestAwardXPRejectsMalformedBody(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	app := testApp()

	status := doJSON(t, app, "POST", "/api/progress/xp", `{"xp_earned":"lots"}`, authToken(t))
	assert.Equal(t, 400, status)
}

func TestUpdateDailyGoalBounds(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	app := testApp()

	assert.Equal(t, 400, doJSON(t, app, "PATCH", "/api/progress/goal", `{"daily_goal":0}`, authToken(t)))
	assert.Equal(t, 400, doJSON(t, app, "PATCH", "/api/progress/goal", `{"daily_goal":51}`, authToken(t)))
}

func TestUpdateCategoryProgressValidation(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	app := testApp()
	token := authToken(t)

	// Missing category id
	assert.Equal(t, 400, doJSON(t, app, "POST", "/api/categories/progress",
		`{"completed_lessons":3}`, token))

	// Negative completed count
	assert.Equal(t, 400, doJSON(t, app, "POST", "/api/categories/progress",
		`{"category_id":1,"completed_lessons":-2}`, token))

	// Unknown action value
	assert.Equal(t, 400, doJSON(t, app, "POST", "/api/categories/progress",
		`{"category_id":1,"completed_lessons":3,"action":"destroy"}`, token))
}

func TestRegisterDuplicateConflict(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	app := dbApp(t)

	status := doJSON(t, app, "POST", "/api/auth/register",
		`{"username":"yuki","email":"yuki@example.com","password":"secret1"}`, "")
	assert.Equal(t, 201, status)

	// Both unique columns surface as 409 from the insert itself, so a
	// registration racing past any earlier lookup still conflicts cleanly.
	status = doJSON(t, app, "POST", "/api/auth/register",
		`{"username":"haru","email":"yuki@example.com","password":"secret1"}`, "")
	assert.Equal(t, 409, status)

	status = doJSON(t, app, "POST", "/api/auth/register",
		`{"username":"yuki","email":"haru@example.com","password":"secret1"}`, "")
	assert.Equal(t, 409, status)
}

func TestLessonCatalogStaysPublic(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	app := dbApp(t)

	// The catalog needs no token; the progress routes under the same prefix do.
	assert.Equal(t, 200, doJSON(t, app, "GET", "/api/lessons", "", ""))
	assert.Equal(t, 401, doJSON(t, app, "GET", "/api/lessons/progress", "", ""))
	assert.Equal(t, 200, doJSON(t, app, "GET", "/api/lessons/progress", "", authToken(t)))
}

func TestUpdateLessonProgressValidation(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	app := testApp()
	token := authToken(t)

	// Missing lesson id
	assert.Equal(t, 400, doJSON(t, app, "POST", "/api/lessons/progress",
		`{"status":"COMPLETED"}`, token))

	// Unknown status
	assert.Equal(t, 400, doJSON(t, app, "POST", "/api/lessons/progress",
		`{"lesson_id":"lesson-hiragana-vowels","status":"DONE"}`, token))

	// Negative time spent
	assert.Equal(t, 400, doJSON(t, app, "POST", "/api/lessons/progress",
		`{"lesson_id":"lesson-hiragana-vowels","status":"IN_PROGRESS","time_spent":-30}`, token))
}
