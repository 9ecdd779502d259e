package api

import (
	"alcyxob/gym-management/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves fitness categories and the read-only lookup lists
// behind form dropdowns.
type CatalogHandler struct {
	categoryService service.FitnessCategoryService
	lookupService   service.LookupService
}

func NewCatalogHandler(categoryService service.FitnessCategoryService, lookupService service.LookupService) *CatalogHandler {
	return &CatalogHandler{categoryService: categoryService, lookupService: lookupService}
}

type FitnessCategoryRequest struct {
	Category   string `json:"category"`
	RowVersion string `json:"rowVersion"`
}

// --- Fitness categories ---

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CatalogHandler) GetCategory(c *gin.Context) {
	id, ok := pathID(c, "categoryId")
	if !ok {
		return
	}
	category, err := h.categoryService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	var req FitnessCategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	category, err := h.categoryService.Create(c.Request.Context(), actor, service.FitnessCategoryInput{Category: req.Category})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "categoryId")
	if !ok {
		return
	}
	var req FitnessCategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	input := service.FitnessCategoryInput{Category: req.Category, RowVersion: req.RowVersion}
	category, err := h.categoryService.Update(c.Request.Context(), actor, id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "categoryId")
	if !ok {
		return
	}
	if err := h.categoryService.Delete(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Lookups ---

func (h *CatalogHandler) GetMembershipTypes(c *gin.Context) {
	options, err := h.lookupService.MembershipTypes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, options)
}

// GetStandardFee returns the fee a new membership of the type starts at.
func (h *CatalogHandler) GetStandardFee(c *gin.Context) {
	id, ok := pathID(c, "typeId")
	if !ok {
		return
	}
	fee, err := h.lookupService.StandardFee(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"standardFee": fee})
}

func (h *CatalogHandler) GetClassTimes(c *gin.Context) {
	options, err := h.lookupService.ClassTimes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, options)
}

func (h *CatalogHandler) GetExercises(c *gin.Context) {
	options, err := h.lookupService.Exercises(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, options)
}
