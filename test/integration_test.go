package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"carsite-backend/handlers"
	"carsite-backend/middleware"
	"carsite-backend/models"
	"carsite-backend/repositories"
	"carsite-backend/services"
)

type IntegrationTestSuite struct {
	suite.Suite
	db          *gorm.DB
	router      *gin.Engine
	carService  services.CarService
	favoriteSvc services.FavoriteService
	token       string
	userID      uint
	modelID     uint
}

func TestIntegrationTestSuite(t *testing.T) {
	if os.Getenv("TEST_DATABASE_DSN") == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}
	suite.Run(t, new(IntegrationTestSuite))
}

func (suite *IntegrationTestSuite) SetupSuite() {
	db, err := gorm.Open(postgres.Open(os.Getenv("TEST_DATABASE_DSN")), &gorm.Config{TranslateError: true})
	if err != nil {
		suite.T().Fatal("Failed to connect to test database:", err)
	}
	suite.db = db

	if err := RunSQLFile(db, "../migration/init.sql"); err != nil {
		suite.T().Fatal("Failed to migrate:", err)
	}

	suite.setupRouter()
}

func (suite *IntegrationTestSuite) setupRouter() {
	gin.SetMode(gin.TestMode)

	userRepo := repositories.NewUserRepository(suite.db)
	catalogRepo := repositories.NewCatalogRepository(suite.db)
	carRepo := repositories.NewCarRepository(suite.db)
	newsRepo := repositories.NewNewsRepository(suite.db)
	commentRepo := repositories.NewCommentRepository(suite.db)
	favoriteRepo := repositories.NewFavoriteRepository(suite.db)

	authService := services.NewAuthService(userRepo)
	suite.carService = services.NewCarService(carRepo)
	newsService := services.NewNewsService(newsRepo, commentRepo)
	suite.favoriteSvc = services.NewFavoriteService(favoriteRepo, carRepo)

	authHandler := handlers.NewAuthHandler(authService)
	carHandler := handlers.NewCarHandler(suite.carService)
	newsHandler := handlers.NewNewsHandler(newsService)
	siteHandler := handlers.NewSiteHandler(authService, suite.carService, newsService, suite.favoriteSvc, catalogRepo, nil)

	router := gin.New()

	router.GET("/cars/", siteHandler.CarList)
	router.GET("/cars/:id/", siteHandler.CarDetail)

	session := router.Group("/")
	session.Use(middleware.SessionMiddleware())
	{
		session.GET("/cars/create/", siteHandler.CarCreateForm)
	}

	api := router.Group("/api")
	{
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		api.GET("/cars/", carHandler.GetCars)
		api.GET("/cars/expensive/", carHandler.GetExpensive)
		api.GET("/cars/:id/", carHandler.GetCar)
		api.GET("/news/", newsHandler.GetNewsList)

		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.POST("/cars/", carHandler.CreateCar)
			protected.PUT("/cars/:id/", carHandler.UpdateCar)
			protected.PATCH("/cars/:id/", carHandler.PatchCar)
			protected.DELETE("/cars/:id/", carHandler.DeleteCar)
			protected.POST("/cars/:id/mark_sold/", carHandler.MarkSold)
			protected.POST("/news/", middleware.RequireModerator(), newsHandler.CreateNews)
		}
	}

	suite.router = router
}

func (suite *IntegrationTestSuite) TearDownSuite() {
	tables := []string{"comments", "news", "favorites", "car_images", "cars", "models", "brands", "users"}
	for _, table := range tables {
		suite.db.Exec("DROP TABLE IF EXISTS " + table + " CASCADE")
	}
}

func (suite *IntegrationTestSuite) SetupTest() {
	tables := []string{"comments", "news", "favorites", "car_images", "cars", "models", "brands", "users"}
	for _, table := range tables {
		suite.db.Exec("TRUNCATE TABLE " + table + " RESTART IDENTITY CASCADE")
	}

	brand := models.Brand{Name: "Toyota"}
	suite.db.Create(&brand)
	model := models.Model{Name: "Corolla", BrandID: brand.ID}
	suite.db.Create(&model)
	suite.modelID = model.ID

	suite.registerAndLoginTestUser()
}

func (suite *IntegrationTestSuite) registerAndLoginTestUser() {
	registerPayload := models.RegisterRequest{
		Username: "testuser",
		Email:    "test@example.com",
		Password: "password123",
	}

	body, _ := json.Marshal(registerPayload)
	req := httptest.NewRequest("POST", "/api/auth/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)

	var registerResponse models.AuthResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &registerResponse))

	suite.token = registerResponse.Token
	suite.userID = registerResponse.User.ID
}

func (suite *IntegrationTestSuite) authedRequest(method, path string, payload interface{}) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		suite.NoError(json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.token)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *IntegrationTestSuite) createCar(price float64) models.CarResponse {
	w := suite.authedRequest("POST", "/api/cars/", models.CarRequest{
		ModelID: suite.modelID,
		Price:   price,
		Year:    2020,
		Mileage: 50000,
	})
	suite.Equal(http.StatusCreated, w.Code)

	var created models.CarResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &created))
	return created
}

func (suite *IntegrationTestSuite) TestCarRoundTrip() {
	created := suite.createCar(15000.50)

	suite.Equal(15000.50, created.Price)
	suite.Equal(2020, created.Year)
	suite.Equal(50000, created.Mileage)
	suite.Equal(models.StatusActive, created.Status)
	suite.Equal(suite.userID, created.UserID)
	suite.Equal("Toyota", created.BrandName)
	suite.Equal("Corolla", created.ModelName)
	suite.False(created.UpdatedAt.Before(created.CreatedAt))

	w := suite.authedRequest("GET", fmt.Sprintf("/api/cars/%d/", created.ID), nil)
	suite.Equal(http.StatusOK, w.Code)

	var fetched models.CarResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &fetched))
	suite.Equal(created.Price, fetched.Price)
	suite.Equal(created.Year, fetched.Year)
	suite.Equal(created.Mileage, fetched.Mileage)
}

func (suite *IntegrationTestSuite) TestNegativePriceRejected() {
	w := suite.authedRequest("POST", "/api/cars/", models.CarRequest{
		ModelID: suite.modelID,
		Price:   -5,
		Year:    2020,
	})
	suite.Equal(http.StatusBadRequest, w.Code)

	var resp struct {
		CodeMessage map[string][]string `json:"code_message"`
	}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Contains(resp.CodeMessage, "price")
}

func (suite *IntegrationTestSuite) TestAnonymousBrowsePublicCreateRedirects() {
	created := suite.createCar(9000)

	req := httptest.NewRequest("GET", "/cars/", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), fmt.Sprintf(`"id":%d`, created.ID))

	req = httptest.NewRequest("GET", "/cars/create/", nil)
	w = httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusFound, w.Code)
	suite.Equal("/accounts/login/", w.Header().Get("Location"))
}

func (suite *IntegrationTestSuite) TestUpdateByNonOwnerIsNotFound() {
	created := suite.createCar(9000)

	// second account
	body, _ := json.Marshal(models.RegisterRequest{
		Username: "other", Email: "other@example.com", Password: "password123",
	})
	req := httptest.NewRequest("POST", "/api/auth/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusCreated, w.Code)

	var other models.AuthResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &other))

	payload, _ := json.Marshal(models.CarRequest{ModelID: suite.modelID, Price: 1, Year: 2020})
	req = httptest.NewRequest("PUT", fmt.Sprintf("/api/cars/%d/", created.ID), bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+other.Token)
	w = httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *IntegrationTestSuite) TestPatchCarPartialBody() {
	created := suite.createCar(9000)

	w := suite.authedRequest("PATCH", fmt.Sprintf("/api/cars/%d/", created.ID), map[string]string{"status": "sold"})
	suite.Equal(http.StatusOK, w.Code)

	var patched models.CarResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &patched))
	suite.Equal(models.StatusSold, patched.Status)
	suite.Equal(created.Price, patched.Price)
	suite.Equal(created.Year, patched.Year)
	suite.Equal(created.Mileage, patched.Mileage)
}

func (suite *IntegrationTestSuite) TestMarkSoldByAnyAuthenticatedCaller() {
	created := suite.createCar(9000)

	body, _ := json.Marshal(models.RegisterRequest{
		Username: "buyer", Email: "buyer@example.com", Password: "password123",
	})
	req := httptest.NewRequest("POST", "/api/auth/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	var other models.AuthResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &other))

	req = httptest.NewRequest("POST", fmt.Sprintf("/api/cars/%d/mark_sold/", created.ID), nil)
	req.Header.Set("Authorization", "Bearer "+other.Token)
	w = httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var sold models.CarResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &sold))
	suite.Equal(models.StatusSold, sold.Status)
}

func (suite *IntegrationTestSuite) TestNewsCreateRequiresModerator() {
	w := suite.authedRequest("POST", "/api/news/", models.NewsRequest{Title: "t", Content: "c"})
	suite.Equal(http.StatusForbidden, w.Code)

	suite.db.Model(&models.User{}).Where("id = ?", suite.userID).Update("role", models.RoleModerator)
	suite.refreshTokenAsModerator()

	w = suite.authedRequest("POST", "/api/news/", models.NewsRequest{Title: "t", Content: "c"})
	suite.Equal(http.StatusCreated, w.Code)

	// published_at defaulted to now, so the post is publicly listed
	req := httptest.NewRequest("GET", "/api/news/", nil)
	rec := httptest.NewRecorder()
	suite.router.ServeHTTP(rec, req)
	suite.Equal(http.StatusOK, rec.Code)
	suite.Contains(rec.Body.String(), `"title":"t"`)
}

// refreshTokenAsModerator logs the user back in after the role change so
// the claims carry the moderator role.
func (suite *IntegrationTestSuite) refreshTokenAsModerator() {
	body, _ := json.Marshal(models.LoginRequest{Username: "testuser", Password: "password123"})
	req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusOK, w.Code)

	var resp models.AuthResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.token = resp.Token
}

func (suite *IntegrationTestSuite) TestFavoriteUniqueness() {
	created := suite.createCar(9000)

	_, err := suite.favoriteSvc.Add(suite.userID, created.ID)
	suite.NoError(err)

	_, err = suite.favoriteSvc.Add(suite.userID, created.ID)
	suite.ErrorIs(err, services.ErrAlreadyFavorite)
}

func (suite *IntegrationTestSuite) TestRetentionJobIdempotent() {
	fresh := suite.createCar(9000)
	stale := suite.createCar(9500)

	old := time.Now().AddDate(0, 0, -400)
	suite.db.Model(&models.Car{}).Where("id = ?", stale.ID).
		UpdateColumn("created_at", old)

	count, err := suite.carService.ClearOldCars()
	suite.NoError(err)
	suite.Equal(int64(1), count)

	count, err = suite.carService.ClearOldCars()
	suite.NoError(err)
	suite.Equal(int64(0), count)

	_, err = suite.carService.GetCar(fresh.ID)
	suite.NoError(err)
}

func (suite *IntegrationTestSuite) TestExpensiveCars() {
	suite.createCar(999999)
	expensive := suite.createCar(1500000)

	req := httptest.NewRequest("GET", "/api/cars/expensive/", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusOK, w.Code)

	var resp struct {
		Cars  []models.CarResponse `json:"cars"`
		Total int64                `json:"total"`
	}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(1), resp.Total)
	suite.Equal(expensive.ID, resp.Cars[0].ID)
}

func (suite *IntegrationTestSuite) TestYearFilterKeepsActiveListings() {
	suite.createCar(9000) // year 2020, active

	w := suite.authedRequest("POST", "/api/cars/", models.CarRequest{
		ModelID: suite.modelID,
		Price:   5000,
		Year:    2015,
		Status:  models.StatusSold,
	})
	suite.Equal(http.StatusCreated, w.Code)

	// year=2015 matches the 2015 car AND every active listing
	req := httptest.NewRequest("GET", "/api/cars/?year=2015", nil)
	rec := httptest.NewRecorder()
	suite.router.ServeHTTP(rec, req)
	suite.Equal(http.StatusOK, rec.Code)

	var resp struct {
		Cars  []models.CarResponse `json:"cars"`
		Total int64                `json:"total"`
	}
	suite.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	suite.Equal(int64(2), resp.Total)
}
