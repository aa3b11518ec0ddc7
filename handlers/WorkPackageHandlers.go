package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"worksmis/milestone"
	"worksmis/models"
	"worksmis/repository"
	"worksmis/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WorkPackageStore is the persistence used by the work package handlers.
type WorkPackageStore interface {
	Create(ctx context.Context, wp *models.WorkPackageGorm, comps []milestone.Component) (uint, error)
	AddComponents(ctx context.Context, workPackageID uint, comps []milestone.Component) ([]uint, error)
	Get(ctx context.Context, id uint) (*models.WorkPackageGorm, error)
	List(ctx context.Context, page, pageSize int) ([]models.WorkPackageGorm, int64, error)
	Components(ctx context.Context, workPackageID uint) ([]models.WorkComponentGorm, error)
	Delete(ctx context.Context, id uint) error
}

// UnitChecker reports which unit names are not in the units master.
type UnitChecker interface {
	Missing(ctx context.Context, names []string) ([]string, error)
}

// WorkPackageNotifier is told about newly created work packages.
type WorkPackageNotifier interface {
	WorkPackageCreated(wp models.WorkPackageGorm, comps []milestone.Component) error
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid %s", name)})
		return 0, false
	}
	return uint(id), true
}

func parsePage(c *gin.Context) (page, pageSize int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if err != nil || pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

// validateComponents parses and submit-validates a batch of component payloads. Every component
// takes the work period periodMonths; a differing component period is a field error.
// Errors are keyed "components[i].<field>".
func validateComponents(ctx context.Context, payloads []models.ComponentPayload, periodMonths int,
	periods milestone.PeriodMilestoneMap, units UnitChecker) ([]milestone.Component, map[string]string, error) {

	errs := map[string]string{}
	comps := make([]milestone.Component, 0, len(payloads))
	unitRows := map[string][]int{}

	for i, p := range payloads {
		prefix := fmt.Sprintf("components[%d].", i)
		if p.PeriodMonths != 0 && p.PeriodMonths != periodMonths {
			errs[prefix+"periodMonths"] = fmt.Sprintf("Component period of %d months does not match the work period of %d months",
				p.PeriodMonths, periodMonths)
		}
		p.PeriodMonths = periodMonths

		comp, parseErrs := p.ToComponent(periods)
		for field, msg := range parseErrs {
			errs[prefix+field] = msg
		}

		if comp.Name == "" {
			errs[prefix+"componentname"] = "Component name is required"
		}
		if comp.Unit == "" {
			errs[prefix+"unit"] = "Unit is required"
		} else {
			unitRows[comp.Unit] = append(unitRows[comp.Unit], i)
		}
		if _, bad := parseErrs[milestone.TotalField]; !bad && !comp.Total.IsPositive() {
			errs[prefix+milestone.TotalField] = "Total quantity must be greater than 0"
		}

		if len(parseErrs) == 0 {
			for field, msg := range milestone.Validate(comp, milestone.FormSubmit).Errors {
				if _, exists := errs[prefix+field]; !exists {
					errs[prefix+field] = msg
				}
			}
		}
		comps = append(comps, comp)
	}

	if units != nil && len(unitRows) > 0 {
		names := make([]string, 0, len(unitRows))
		for name := range unitRows {
			names = append(names, name)
		}
		missing, err := units.Missing(ctx, names)
		if err != nil {
			return nil, nil, err
		}
		for _, name := range missing {
			for _, i := range unitRows[name] {
				errs[fmt.Sprintf("components[%d].unit", i)] = fmt.Sprintf("Unknown unit %q", name)
			}
		}
	}
	return comps, errs, nil
}

// CreateWorkPackage godoc
// @Summary      Create a work package with its components and milestones
// @Tags         works
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      models.WorkPackageRequest  true  "Work package"
// @Success      201   {object}  models.CreatedResponse
// @Failure      400   {object}  models.ErrorResponse
// @Failure      422   {object}  models.FieldErrorResponse
// @Router       /api/works [post]
func CreateWorkPackage(store WorkPackageStore, units UnitChecker, periods milestone.PeriodMilestoneMap, notifier WorkPackageNotifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.WorkPackageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		errs := map[string]string{}
		count := periods.Count(req.PeriodMonths)
		if count == 0 {
			errs["period_months"] = fmt.Sprintf("Period of %d months is not supported", req.PeriodMonths)
		}
		if req.EstimatedCost.IsNegative() {
			errs["estimated_cost"] = "Estimated cost cannot be negative"
		}

		var startDate *time.Time
		if s := strings.TrimSpace(req.StartDate); s != "" {
			t, err := time.Parse("2006-01-02", s)
			if err != nil {
				errs["start_date"] = "Start date must be in YYYY-MM-DD format"
			} else {
				startDate = &t
			}
		}

		if count == 0 {
			c.JSON(http.StatusUnprocessableEntity, models.FieldErrorResponse{Error: "Invalid work package", Errors: errs})
			return
		}

		comps, compErrs, err := validateComponents(c.Request.Context(), req.Components, req.PeriodMonths, periods, units)
		if err != nil {
			utils.Log.Error("Unit lookup failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate units"})
			return
		}
		for field, msg := range compErrs {
			errs[field] = msg
		}
		if len(errs) > 0 {
			c.JSON(http.StatusUnprocessableEntity, models.FieldErrorResponse{Error: "Invalid work package", Errors: errs})
			return
		}

		wp := &models.WorkPackageGorm{
			WorkName:       strings.TrimSpace(req.WorkName),
			SchemeName:     strings.TrimSpace(req.SchemeName),
			District:       strings.TrimSpace(req.District),
			Division:       strings.TrimSpace(req.Division),
			WUAName:        strings.TrimSpace(req.WUAName),
			EstimatedCost:  req.EstimatedCost.Round(2),
			PeriodMonths:   req.PeriodMonths,
			MilestoneCount: count,
			StartDate:      startDate,
			CreatedBy:      currentUser(c),
		}

		id, err := store.Create(c.Request.Context(), wp, comps)
		if err != nil {
			utils.Log.Error("Create work package failed", zap.String("work_name", wp.WorkName), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create work package"})
			return
		}

		if notifier != nil {
			created := *wp
			go func() {
				if err := notifier.WorkPackageCreated(created, comps); err != nil {
					utils.Log.Warn("Work package notification failed", zap.Uint("id", created.ID), zap.Error(err))
				}
			}()
		}

		c.JSON(http.StatusCreated, models.CreatedResponse{Message: "Work package created successfully", ID: id})
	}
}

// AddComponentsAndMilestones godoc
// @Summary      Add components and milestones to a work package
// @Tags         works
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                       true  "Work package ID"
// @Param        body  body      models.ComponentsRequest  true  "Components"
// @Success      201   {object}  models.CreatedResponse
// @Failure      404   {object}  models.ErrorResponse
// @Failure      422   {object}  models.FieldErrorResponse
// @Router       /api/works/{id}/components [post]
func AddComponentsAndMilestones(store WorkPackageStore, units UnitChecker, periods milestone.PeriodMilestoneMap) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		var req models.ComponentsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		wp, err := store.Get(c.Request.Context(), id)
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Work package not found"})
			return
		}
		if err != nil {
			utils.Log.Error("Load work package failed", zap.Uint("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load work package"})
			return
		}

		comps, errs, err := validateComponents(c.Request.Context(), req.Components, wp.PeriodMonths, periods, units)
		if err != nil {
			utils.Log.Error("Unit lookup failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate units"})
			return
		}
		if len(errs) > 0 {
			c.JSON(http.StatusUnprocessableEntity, models.FieldErrorResponse{Error: "Invalid components", Errors: errs})
			return
		}

		ids, err := store.AddComponents(c.Request.Context(), id, comps)
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Work package not found"})
			return
		}
		if err != nil {
			utils.Log.Error("Add components failed", zap.Uint("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add components"})
			return
		}

		c.JSON(http.StatusCreated, models.CreatedResponse{Message: "Components added successfully", ID: id, IDs: ids})
	}
}

// GetWorkPackage godoc
// @Summary      Get work package by ID
// @Tags         works
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Work package ID"
// @Success      200  {object}  models.WorkPackageGorm
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/works/{id} [get]
func GetWorkPackage(store WorkPackageStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		wp, err := store.Get(c.Request.Context(), id)
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Work package not found"})
			return
		}
		if err != nil {
			utils.Log.Error("Get work package failed", zap.Uint("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch work package"})
			return
		}
		c.JSON(http.StatusOK, wp)
	}
}

// GetAllWorkPackages godoc
// @Summary      List work packages
// @Tags         works
// @Produce      json
// @Security     BearerAuth
// @Param        page       query  int  false  "Page number"
// @Param        page_size  query  int  false  "Page size (max 100)"
// @Success      200  {object}  object
// @Router       /api/works [get]
func GetAllWorkPackages(store WorkPackageStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, pageSize := parsePage(c)

		list, total, err := store.List(c.Request.Context(), page, pageSize)
		if err != nil {
			utils.Log.Error("List work packages failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch work packages"})
			return
		}

		rows := make([]models.WorkPackageSummary, 0, len(list))
		for _, wp := range list {
			rows = append(rows, models.WorkPackageSummary{
				ID:             wp.ID,
				ReferenceCode:  wp.ReferenceCode,
				WorkName:       wp.WorkName,
				District:       wp.District,
				PeriodMonths:   wp.PeriodMonths,
				ComponentCount: len(wp.Components),
				Reconciled:     wp.Reconciled(),
				CreatedBy:      wp.CreatedBy,
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"data":       rows,
			"pagination": models.NewPaginationInfo(page, pageSize, int(total)),
		})
	}
}

// GetWorkComponents godoc
// @Summary      List the components of a work package
// @Tags         works
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Work package ID"
// @Success      200  {array}   models.WorkComponentGorm
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/works/{id}/components [get]
func GetWorkComponents(store WorkPackageStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		comps, err := store.Components(c.Request.Context(), id)
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Work package not found"})
			return
		}
		if err != nil {
			utils.Log.Error("List components failed", zap.Uint("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch components"})
			return
		}
		c.JSON(http.StatusOK, comps)
	}
}

// DeleteWorkPackage godoc
// @Summary      Delete a work package and its components
// @Tags         works
// @Security     BearerAuth
// @Param        id   path      int  true  "Work package ID"
// @Success      200  {object}  object
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/works/{id} [delete]
func DeleteWorkPackage(store WorkPackageStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		err := store.Delete(c.Request.Context(), id)
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Work package not found"})
			return
		}
		if err != nil {
			utils.Log.Error("Delete work package failed", zap.Uint("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete work package"})
			return
		}

		utils.Log.Info("Work package deleted", zap.Uint("id", id), zap.String("by", currentUser(c)))
		c.JSON(http.StatusOK, gin.H{"message": "Work package deleted successfully"})
	}
}
