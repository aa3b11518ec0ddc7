package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"worksmis/models"
	"worksmis/repository"
	"worksmis/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UnitStore is the units master used for component units of measure.
type UnitStore interface {
	UnitChecker
	Create(ctx context.Context, u *models.Unit) error
	Update(ctx context.Context, u models.Unit) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]models.Unit, error)
	Get(ctx context.Context, id uint) (models.Unit, error)
}

func unitStoreError(c *gin.Context, err error, op string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Unit not found"})
	case errors.Is(err, repository.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": "Unit name already exists"})
	default:
		utils.Log.Error("Unit "+op+" failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// CreateUnit godoc
// @Summary      Create unit
// @Tags         units
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      models.Unit  true  "Unit"
// @Success      201   {object}  models.Unit
// @Failure      400   {object}  models.ErrorResponse
// @Failure      409   {object}  models.ErrorResponse
// @Router       /api/units [post]
func CreateUnit(store UnitStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var u models.Unit
		if err := c.ShouldBindJSON(&u); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		u.UnitName = strings.TrimSpace(u.UnitName)
		if u.UnitName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unit_name is required"})
			return
		}

		if err := store.Create(c.Request.Context(), &u); err != nil {
			unitStoreError(c, err, "create")
			return
		}
		c.JSON(http.StatusCreated, u)
	}
}

// GetUnits godoc
// @Summary      List units
// @Tags         units
// @Security     BearerAuth
// @Success      200  {array}  models.Unit
// @Router       /api/units [get]
func GetUnits(store UnitStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		units, err := store.List(c.Request.Context())
		if err != nil {
			unitStoreError(c, err, "list")
			return
		}
		c.JSON(http.StatusOK, units)
	}
}

// GetUnitByID godoc
// @Summary      Get unit by ID
// @Tags         units
// @Security     BearerAuth
// @Param        id   path      int  true  "Unit ID"
// @Success      200  {object}  models.Unit
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/units/{id} [get]
func GetUnitByID(store UnitStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		u, err := store.Get(c.Request.Context(), id)
		if err != nil {
			unitStoreError(c, err, "get")
			return
		}
		c.JSON(http.StatusOK, u)
	}
}

// UpdateUnit godoc
// @Summary      Update unit
// @Tags         units
// @Security     BearerAuth
// @Param        id    path      int          true  "Unit ID"
// @Param        body  body      models.Unit  true  "Unit"
// @Success      200   {object}  models.Unit
// @Router       /api/units/{id} [put]
func UpdateUnit(store UnitStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		var u models.Unit
		if err := c.ShouldBindJSON(&u); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		u.ID = id
		u.UnitName = strings.TrimSpace(u.UnitName)

		if err := store.Update(c.Request.Context(), u); err != nil {
			unitStoreError(c, err, "update")
			return
		}
		c.JSON(http.StatusOK, u)
	}
}

// DeleteUnit godoc
// @Summary      Delete unit
// @Tags         units
// @Security     BearerAuth
// @Param        id   path      int  true  "Unit ID"
// @Success      200  {object}  object
// @Router       /api/units/{id} [delete]
func DeleteUnit(store UnitStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		if err := store.Delete(c.Request.Context(), id); err != nil {
			unitStoreError(c, err, "delete")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Unit deleted successfully"})
	}
}
