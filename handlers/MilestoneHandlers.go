package handlers

import (
	"net/http"

	"worksmis/milestone"
	"worksmis/models"

	"github.com/gin-gonic/gin"
)

// GetPeriodOptions godoc
// @Summary      List work periods and their milestone counts
// @Tags         milestones
// @Produce      json
// @Success      200  {array}  models.PeriodOption
// @Router       /api/milestones/periods [get]
func GetPeriodOptions(periods milestone.PeriodMilestoneMap) gin.HandlerFunc {
	return func(c *gin.Context) {
		options := make([]models.PeriodOption, 0, len(periods))
		for _, months := range periods.Months() {
			options = append(options, models.PeriodOption{Months: months, Milestones: periods.Count(months)})
		}
		c.JSON(http.StatusOK, options)
	}
}

// AutoDistributeMilestones godoc
// @Summary      Split a component's total quantity evenly across its milestones
// @Description  Milestones 1..n-1 get total/n rounded to 2 places; the last one takes the remainder.
// @Description  A zero total or zero milestone count leaves the quantities unchanged.
// @Tags         milestones
// @Accept       json
// @Produce      json
// @Param        body  body      models.ComponentPayload  true  "Component"
// @Success      200   {object}  models.AutoDistributeResponse
// @Failure      400   {object}  models.ErrorResponse
// @Failure      422   {object}  models.FieldErrorResponse
// @Router       /api/milestones/auto-distribute [post]
func AutoDistributeMilestones(periods milestone.PeriodMilestoneMap) gin.HandlerFunc {
	return func(c *gin.Context) {
		var p models.ComponentPayload
		if err := c.ShouldBindJSON(&p); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		comp, errs := p.ToComponent(periods)
		if len(errs) > 0 {
			c.JSON(http.StatusUnprocessableEntity, models.FieldErrorResponse{Error: "Invalid quantity input", Errors: errs})
			return
		}

		block := milestone.Block{PeriodMonths: p.PeriodMonths, Component: comp}.AutoDistribute()
		validation := models.NewValidationResponse(block.Validate(), milestone.LiveEdit)
		validation.State = block.State().String()

		c.JSON(http.StatusOK, models.AutoDistributeResponse{
			Component:  models.NewComponentPayload(block.Component, p.PeriodMonths),
			Validation: validation,
		})
	}
}

// ValidateMilestones godoc
// @Summary      Check that milestone quantities reconcile with the total
// @Description  mode=live uses a 0.0001 tolerance; mode=submit allows 1% of the total (at least 0.01)
// @Description  and requires every applicable milestone.
// @Tags         milestones
// @Accept       json
// @Produce      json
// @Param        mode  query     string                   false  "live or submit"  Enums(live, submit)
// @Param        body  body      models.ComponentPayload  true   "Component"
// @Success      200   {object}  models.ValidationResponse
// @Failure      400   {object}  models.ErrorResponse
// @Router       /api/milestones/validate [post]
func ValidateMilestones(periods milestone.PeriodMilestoneMap) gin.HandlerFunc {
	return func(c *gin.Context) {
		policy, ok := milestone.ParsePolicy(c.Query("mode"))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "mode must be live or submit"})
			return
		}

		var p models.ComponentPayload
		if err := c.ShouldBindJSON(&p); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		comp, parseErrs := p.ToComponent(periods)
		block := milestone.Block{PeriodMonths: p.PeriodMonths, Component: comp}
		res := milestone.Validate(comp, policy)
		for field, msg := range parseErrs {
			res.Errors[field] = msg
		}
		res.Valid = len(res.Errors) == 0

		resp := models.NewValidationResponse(res, policy)
		resp.State = block.State().String()
		c.JSON(http.StatusOK, resp)
	}
}
