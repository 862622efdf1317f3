package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/it-Portal2/hotel-sultan-palace-sub006/controllers"
	"github.com/it-Portal2/hotel-sultan-palace-sub006/models"
	"github.com/it-Portal2/hotel-sultan-palace-sub006/utils"
)

func setupTestDBForUsers() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:users_test?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		panic(err)
	}
	db.Exec("DELETE FROM users")
	return db
}

// fakeAuth stands in for the JWT middleware so role checks can be
// exercised without a real token.
func fakeAuth(userID uint, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", role)
		c.Next()
	}
}

func setupUserRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	userCtrl := controllers.NewUserController(db)
	router.POST("/register", userCtrl.Register)
	router.POST("/login", userCtrl.Login)
	return router
}

func TestRegisterAndLogin(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForUsers()
	router := setupUserRouter(db)

	payload := map[string]interface{}{
		"name":     "Asha Front Desk",
		"email":    "asha@sultanpalace.test",
		"password": "longenoughpw",
		"role":     models.RoleFrontDesk,
	}
	payloadBytes, _ := json.Marshal(payload)

	req, _ := http.NewRequest("POST", "/register", bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	// Password is stored hashed, never verbatim.
	var stored models.User
	assert.NoError(t, db.Where("email = ?", "asha@sultanpalace.test").First(&stored).Error)
	assert.NotEqual(t, "longenoughpw", stored.Password)

	loginPayload := map[string]interface{}{
		"email":    "asha@sultanpalace.test",
		"password": "longenoughpw",
	}
	loginBytes, _ := json.Marshal(loginPayload)

	req, _ = http.NewRequest("POST", "/login", bytes.NewBuffer(loginBytes))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])
	assert.Equal(t, models.RoleFrontDesk, data["user_role"])
}

func TestLoginWrongPassword(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForUsers()
	router := setupUserRouter(db)

	payload := map[string]interface{}{
		"name":     "Kitchen Lead",
		"email":    "kitchen@sultanpalace.test",
		"password": "kitchenpass1",
		"role":     models.RoleKitchen,
	}
	payloadBytes, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", "/register", bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	loginPayload := map[string]interface{}{
		"email":    "kitchen@sultanpalace.test",
		"password": "not-the-password",
	}
	loginBytes, _ := json.Marshal(loginPayload)
	req, _ = http.NewRequest("POST", "/login", bytes.NewBuffer(loginBytes))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterUnknownRole(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForUsers()
	router := setupUserRouter(db)

	payload := map[string]interface{}{
		"name":     "Mystery",
		"email":    "mystery@sultanpalace.test",
		"password": "mysterypass1",
		"role":     "superuser",
	}
	payloadBytes, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", "/register", bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAllUsersRequiresAdmin(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForUsers()
	userCtrl := controllers.NewUserController(db)

	gin.SetMode(gin.TestMode)
	asStaff := gin.Default()
	asStaff.GET("/users", fakeAuth(1, models.RoleStaff), userCtrl.GetAllUsers)

	req, _ := http.NewRequest("GET", "/users", nil)
	w := httptest.NewRecorder()
	asStaff.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	asAdmin := gin.Default()
	asAdmin.GET("/users", fakeAuth(1, models.RoleAdmin), userCtrl.GetAllUsers)

	req, _ = http.NewRequest("GET", "/users", nil)
	w = httptest.NewRecorder()
	asAdmin.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
