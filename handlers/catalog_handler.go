package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"carsite-backend/models"
	"carsite-backend/repositories"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CatalogHandler exposes the brand/model catalog. Reads are public;
// writes sit behind the moderator guard.
type CatalogHandler struct {
	catalogRepo repositories.CatalogRepository
}

func NewCatalogHandler(catalogRepo repositories.CatalogRepository) *CatalogHandler {
	return &CatalogHandler{catalogRepo: catalogRepo}
}

func (h *CatalogHandler) GetBrands(c *gin.Context) {
	brands, err := h.catalogRepo.GetBrands()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"brands": brands})
}

func (h *CatalogHandler) CreateBrand(c *gin.Context) {
	var req models.BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	brand := models.Brand{Name: req.Name}
	if err := h.catalogRepo.CreateBrand(&brand); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, brand)
}

func (h *CatalogHandler) DeleteBrand(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid brand ID"})
		return
	}

	if err := h.catalogRepo.DeleteBrand(uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *CatalogHandler) GetModels(c *gin.Context) {
	brandID, _ := strconv.ParseUint(c.DefaultQuery("brand_id", "0"), 10, 32)

	mods, err := h.catalogRepo.GetModels(uint(brandID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"models": mods})
}

func (h *CatalogHandler) GetModel(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid model ID"})
		return
	}

	mod, err := h.catalogRepo.GetModelByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	c.JSON(http.StatusOK, mod)
}

func (h *CatalogHandler) CreateModel(c *gin.Context) {
	var req models.ModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mod := models.Model{Name: req.Name, BrandID: req.BrandID}
	if err := h.catalogRepo.CreateModel(&mod); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, mod)
}

// DeleteModel fails while cars still reference the model; the RESTRICT
// constraint surfaces here as a conflict.
func (h *CatalogHandler) DeleteModel(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid model ID"})
		return
	}

	if err := h.catalogRepo.DeleteModel(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			c.JSON(http.StatusConflict, gin.H{"error": "model is still referenced by cars"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
