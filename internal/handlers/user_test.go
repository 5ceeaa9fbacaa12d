package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/taskhub/task-tracker-api/internal/database"
	"github.com/taskhub/task-tracker-api/internal/models"
	"github.com/taskhub/task-tracker-api/internal/repository"
	"github.com/taskhub/task-tracker-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// UserHandlerTestSuite defines the test suite for UserHandler
type UserHandlerTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
}

// SetupTest runs before each test
func (suite *UserHandlerTestSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	// Run migrations
	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.TaskAssignment{},
	)
	suite.Require().NoError(err)

	// Set the test DB as the default database
	database.SetDB(suite.db)

	userRepo := repository.NewUserRepository(suite.db)
	userService := services.NewUserService(userRepo)
	handler := NewUserHandler(userService)

	// Set Gin to test mode
	gin.SetMode(gin.TestMode)

	suite.router = gin.New()
	suite.router.GET("/users", handler.ListUsers)
	suite.router.POST("/users", handler.CreateUser)
	suite.router.DELETE("/users/:id", handler.DeleteUser)
}

// TearDownTest runs after each test
func (suite *UserHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper to perform a request against the suite router
func (suite *UserHandlerTestSuite) performRequest(method, url string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// Helper to create a user row directly
func (suite *UserHandlerTestSuite) createTestUser(id, name, email string) *models.User {
	user := &models.User{
		ID:       id,
		Name:     name,
		Email:    email,
		Password: "hashedpassword",
	}
	suite.db.Create(user)
	return user
}

func validUserBody() map[string]any {
	return map[string]any{
		"id":       "u001",
		"name":     "Alice Anderson",
		"email":    "alice@example.com",
		"password": "Passw0rd!",
	}
}

// TestCreateUser_Success tests successful user creation
func (suite *UserHandlerTestSuite) TestCreateUser_Success() {
	w := suite.performRequest("POST", "/users", validUserBody())

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]any
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "User created successfully", response["message"])

	user := response["user"].(map[string]any)
	assert.Equal(suite.T(), "u001", user["id"])
	assert.Equal(suite.T(), "Alice Anderson", user["name"])

	// The plaintext password must never be stored
	var stored models.User
	suite.Require().NoError(suite.db.First(&stored, "id = ?", "u001").Error)
	assert.NotEqual(suite.T(), "Passw0rd!", stored.Password)
	assert.NotEmpty(suite.T(), stored.Password)
}

// TestCreateUser_ShortID tests rejection of an id below the minimum length
func (suite *UserHandlerTestSuite) TestCreateUser_ShortID() {
	body := validUserBody()
	body["id"] = "u1"

	w := suite.performRequest("POST", "/users", body)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "id must be at least 4 characters")
}

// TestCreateUser_ShortName tests rejection of a name below the minimum length
func (suite *UserHandlerTestSuite) TestCreateUser_ShortName() {
	body := validUserBody()
	body["name"] = "Alice"

	w := suite.performRequest("POST", "/users", body)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "name must be at least 10 characters")
}

// TestCreateUser_ShortEmail tests rejection of an email below the minimum length
func (suite *UserHandlerTestSuite) TestCreateUser_ShortEmail() {
	body := validUserBody()
	body["email"] = "a@b.co"

	w := suite.performRequest("POST", "/users", body)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "email must be at least 10 characters")
}

// TestCreateUser_WeakPassword tests the password policy character classes
func (suite *UserHandlerTestSuite) TestCreateUser_WeakPassword() {
	cases := map[string]string{
		"passw0rd!": "uppercase",
		"PASSW0RD!": "lowercase",
		"Password!": "digit",
		"Passw0rd1": "special",
	}

	for password, missing := range cases {
		body := validUserBody()
		body["password"] = password

		w := suite.performRequest("POST", "/users", body)

		assert.Equal(suite.T(), http.StatusBadRequest, w.Code, "password %q should be rejected", password)
		assert.Contains(suite.T(), w.Body.String(), missing)
	}
}

// TestCreateUser_PasswordLengthBounds tests the 8-12 character window
func (suite *UserHandlerTestSuite) TestCreateUser_PasswordLengthBounds() {
	for _, password := range []string{"Pw0rd!a", "Passw0rd!Long"} {
		body := validUserBody()
		body["password"] = password

		w := suite.performRequest("POST", "/users", body)

		assert.Equal(suite.T(), http.StatusBadRequest, w.Code, "password %q should be rejected", password)
		assert.Contains(suite.T(), w.Body.String(), "between 8 and 12 characters")
	}
}

// TestCreateUser_DuplicateID tests rejection of an already used id
func (suite *UserHandlerTestSuite) TestCreateUser_DuplicateID() {
	suite.createTestUser("u001", "Alice Anderson", "alice@example.com")

	body := validUserBody()
	body["email"] = "other@example.com"

	w := suite.performRequest("POST", "/users", body)

	assert.Equal(suite.T(), http.StatusConflict, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "User id already exists")
}

// TestCreateUser_DuplicateEmail tests rejection of an already used email
func (suite *UserHandlerTestSuite) TestCreateUser_DuplicateEmail() {
	suite.createTestUser("u999", "Carol Cardoso", "alice@example.com")

	w := suite.performRequest("POST", "/users", validUserBody())

	assert.Equal(suite.T(), http.StatusConflict, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "Email already exists")
}

// TestCreateUser_MissingFields tests the binding layer
func (suite *UserHandlerTestSuite) TestCreateUser_MissingFields() {
	w := suite.performRequest("POST", "/users", map[string]any{"id": "u001"})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestListUsers_All tests listing without a search term
func (suite *UserHandlerTestSuite) TestListUsers_All() {
	suite.createTestUser("u001", "Alice Anderson", "alice@example.com")
	suite.createTestUser("u002", "Bruno Barbosa", "bruno@example.com")

	w := suite.performRequest("GET", "/users", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]any
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)

	users := response["users"].([]any)
	assert.Len(suite.T(), users, 2)

	pagination := response["pagination"].(map[string]any)
	assert.Equal(suite.T(), float64(2), pagination["total"])
}

// TestListUsers_SearchCaseInsensitive tests the pinned search behavior
func (suite *UserHandlerTestSuite) TestListUsers_SearchCaseInsensitive() {
	suite.createTestUser("u001", "Alice Anderson", "alice@example.com")
	suite.createTestUser("u002", "Bruno Barbosa", "bruno@example.com")

	w := suite.performRequest("GET", "/users?q=ALICE", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]any
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)

	users := response["users"].([]any)
	assert.Len(suite.T(), users, 1)
	assert.Equal(suite.T(), "u001", users[0].(map[string]any)["id"])
}

// TestListUsers_Pagination tests page/limit handling
func (suite *UserHandlerTestSuite) TestListUsers_Pagination() {
	suite.createTestUser("u001", "Alice Anderson", "alice@example.com")
	suite.createTestUser("u002", "Bruno Barbosa", "bruno@example.com")
	suite.createTestUser("u003", "Carol Cardoso", "carol@example.com")

	w := suite.performRequest("GET", "/users?page=2&limit=2", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]any
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)

	users := response["users"].([]any)
	assert.Len(suite.T(), users, 1)
	assert.Equal(suite.T(), "u003", users[0].(map[string]any)["id"])

	pagination := response["pagination"].(map[string]any)
	assert.Equal(suite.T(), float64(3), pagination["total"])
}

// TestDeleteUser_Success tests user deletion
func (suite *UserHandlerTestSuite) TestDeleteUser_Success() {
	suite.createTestUser("u001", "Alice Anderson", "alice@example.com")

	w := suite.performRequest("DELETE", "/users/u001", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var count int64
	suite.db.Model(&models.User{}).Where("id = ?", "u001").Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

// TestDeleteUser_KeepsAssignments is the no-cascade regression test:
// deleting a user must not remove assignment rows referencing it.
func (suite *UserHandlerTestSuite) TestDeleteUser_KeepsAssignments() {
	user := suite.createTestUser("u001", "Alice Anderson", "alice@example.com")
	task := &models.Task{
		ID:          "t001",
		Title:       "Write report now",
		Description: "Quarterly report draft",
		CreatedAt:   "2024-01-01 10:00:00",
	}
	suite.db.Create(task)
	suite.db.Create(&models.TaskAssignment{TaskID: task.ID, UserID: user.ID})

	w := suite.performRequest("DELETE", "/users/u001", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var count int64
	suite.db.Model(&models.TaskAssignment{}).Where("user_id = ?", "u001").Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

// TestDeleteUser_NotFound tests deletion of a missing user
func (suite *UserHandlerTestSuite) TestDeleteUser_NotFound() {
	w := suite.performRequest("DELETE", "/users/unknown", nil)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestUserHandlerTestSuite runs the test suite
func TestUserHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(UserHandlerTestSuite))
}
