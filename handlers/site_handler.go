package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"carsite-backend/config"
	"carsite-backend/middleware"
	"carsite-backend/models"
	"carsite-backend/repositories"
	"carsite-backend/services"
	"carsite-backend/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// WebPageSize is the listing page size on the site surface.
const WebPageSize = 5

// SiteHandler is the session-authenticated web surface. Template
// rendering is delegated; handlers respond with the context a template
// would receive and keep the original redirect semantics.
type SiteHandler struct {
	authService     services.AuthService
	carService      services.CarService
	newsService     services.NewsService
	favoriteService services.FavoriteService
	catalogRepo     repositories.CatalogRepository
	media           *storage.MediaStorage
}

func NewSiteHandler(
	authService services.AuthService,
	carService services.CarService,
	newsService services.NewsService,
	favoriteService services.FavoriteService,
	catalogRepo repositories.CatalogRepository,
	media *storage.MediaStorage,
) *SiteHandler {
	return &SiteHandler{
		authService:     authService,
		carService:      carService,
		newsService:     newsService,
		favoriteService: favoriteService,
		catalogRepo:     catalogRepo,
		media:           media,
	}
}

func (h *SiteHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(config.SessionCookie, token, int(config.JWTExpiration.Seconds()), "/", "", false, true)
}

// ---------- accounts ----------

func (h *SiteHandler) RegisterForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"form": "register"})
}

func (h *SiteHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	resp, err := h.authService.Register(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	h.setSessionCookie(c, resp.Token)
	c.Redirect(http.StatusFound, "/cars/")
}

func (h *SiteHandler) LoginForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"form": "login"})
}

func (h *SiteHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	resp, err := h.authService.Login(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": "invalid credentials"})
		return
	}

	h.setSessionCookie(c, resp.Token)
	c.Redirect(http.StatusFound, "/cars/")
}

func (h *SiteHandler) Logout(c *gin.Context) {
	c.SetCookie(config.SessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/cars/")
}

// ---------- cars ----------

func (h *SiteHandler) CarList(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	params := models.CarListParams{Page: page, Limit: WebPageSize}
	cars, total, err := h.carService.GetCars(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"car_list": carResponses(cars),
		"total":    total,
		"page":     page,
	})
}

func (h *SiteHandler) CarDetail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	car, err := h.carService.GetCar(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"car": models.NewCarResponse(*car)})
}

// CarCreateForm returns the form context: the model catalog to pick from.
func (h *SiteHandler) CarCreateForm(c *gin.Context) {
	mods, err := h.catalogRepo.GetModels(0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"form": "car", "models": mods})
}

func (h *SiteHandler) CarCreate(c *gin.Context) {
	userID, _ := c.Get("user_id")

	var req models.CarRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}
	if req.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"price": "must be greater than 0"}})
		return
	}

	if _, err := h.carService.CreateCar(req, userID.(uint)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	c.Redirect(http.StatusFound, "/cars/")
}

// CarEditForm serves the edit page for a car inside the actor's candidate
// set; anything outside it is a plain 404.
func (h *SiteHandler) CarEditForm(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	car, err := h.carService.UpdateCandidate(uint(id), actor)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	mods, err := h.catalogRepo.GetModels(0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"form": "car", "car": models.NewCarResponse(*car), "models": mods})
}

func (h *SiteHandler) CarEdit(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	var req models.CarRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}
	if req.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"price": "must be greater than 0"}})
		return
	}

	if _, err := h.carService.UpdateCar(uint(id), req, actor); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	c.Redirect(http.StatusFound, "/cars/")
}

func (h *SiteHandler) CarDeleteConfirm(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	car, err := h.carService.UpdateCandidate(uint(id), actor)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"confirm_delete": models.NewCarResponse(*car)})
}

func (h *SiteHandler) CarDelete(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	if err := h.carService.DeleteCar(uint(id), actor); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	c.Redirect(http.StatusFound, "/cars/")
}

func (h *SiteHandler) CarUploadImage(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": "image file required"})
		return
	}
	isMain := c.PostForm("is_main") == "true"

	path, err := h.media.Save(file, "cars")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.carService.AttachImage(uint(id), actor, path, isMain); err != nil {
		// A car the actor may not touch reads the same as a missing one.
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	c.Redirect(http.StatusFound, "/cars/"+c.Param("id")+"/")
}

// ---------- favorites ----------

func (h *SiteHandler) FavoriteAdd(c *gin.Context) {
	userID, _ := c.Get("user_id")
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	if _, err := h.favoriteService.Add(userID.(uint), uint(id)); err != nil {
		if errors.Is(err, services.ErrAlreadyFavorite) {
			c.JSON(http.StatusConflict, gin.H{"error": "already in favorites"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	c.Redirect(http.StatusFound, "/cars/"+c.Param("id")+"/")
}

func (h *SiteHandler) FavoriteRemove(c *gin.Context) {
	userID, _ := c.Get("user_id")
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	if err := h.favoriteService.Remove(userID.(uint), uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Redirect(http.StatusFound, "/cars/"+c.Param("id")+"/")
}

func (h *SiteHandler) FavoriteList(c *gin.Context) {
	userID, _ := c.Get("user_id")

	favorites, err := h.favoriteService.List(userID.(uint))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"favorites": favorites})
}

// ---------- news ----------

func (h *SiteHandler) NewsList(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	params := models.NewsListParams{Page: page, Limit: 10}
	items, total, err := h.newsService.GetPublished(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"news_list": items,
		"total":     total,
		"page":      page,
	})
}

func (h *SiteHandler) NewsDetail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	news, err := h.newsService.GetNews(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"news": news})
}

func (h *SiteHandler) NewsCreateForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"form": "news"})
}

func (h *SiteHandler) NewsCreate(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	var req models.NewsRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	if _, err := h.newsService.CreateNews(req, actor); err != nil {
		// The guard already soft-denied non-moderators; anything left
		// is a storage failure.
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	c.Redirect(http.StatusFound, "/news/")
}

func (h *SiteHandler) NewsEditForm(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	news, err := h.newsService.UpdateCandidate(uint(id), actor)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"form": "news", "news": news})
}

func (h *SiteHandler) NewsEdit(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	var req models.NewsRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	if _, err := h.newsService.UpdateNews(uint(id), req, actor); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	c.Redirect(http.StatusFound, "/news/")
}

func (h *SiteHandler) NewsDelete(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	if err := h.newsService.DeleteNews(uint(id), actor); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	c.Redirect(http.StatusFound, "/news/")
}

// ---------- comments ----------

// CommentAdd trims and stores a comment, then redirects to the news
// detail whether or not a row was actually created.
func (h *SiteHandler) CommentAdd(c *gin.Context) {
	userID, _ := c.Get("user_id")
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	var req models.CommentRequest
	_ = c.ShouldBind(&req)

	if _, err := h.newsService.AddComment(uint(id), userID.(uint), req.Text); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	c.Redirect(http.StatusFound, "/news/"+c.Param("id")+"/")
}

func (h *SiteHandler) CommentDelete(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	commentID, err := strconv.ParseUint(c.Param("comment_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	newsID, err := h.newsService.DeleteComment(uint(commentID), actor)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	c.Redirect(http.StatusFound, "/news/"+strconv.FormatUint(uint64(newsID), 10)+"/")
}
