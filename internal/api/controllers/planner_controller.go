package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tripmate/internal/models/request_models"
	"tripmate/internal/services"
	"tripmate/pkg/utils"
)

type PlannerController struct {
	plannerService services.PlannerServiceInterface
}

func NewPlannerController(plannerService services.PlannerServiceInterface) *PlannerController {
	return &PlannerController{
		plannerService: plannerService,
	}
}

// POST /plans
func (pc *PlannerController) CreatePlanHandler(c *gin.Context) {
	var req request_models.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	plan, err := pc.plannerService.PlanTravel(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plan, "Travel plan created successfully")
}

// POST /plans/demo
func (pc *PlannerController) DemoPlanHandler(c *gin.Context) {
	var req request_models.TravelRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondError(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
			return
		}
	}

	utils.RespondSuccess(c, pc.plannerService.GenerateDemo(req), "Demo plan created successfully")
}

// POST /itineraries/normalize
func (pc *PlannerController) NormalizeHandler(c *gin.Context) {
	var req request_models.NormalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "response_text is required")
		return
	}

	resp := pc.plannerService.Normalize(req.ResponseText, req.Request)
	if resp.Error != nil {
		c.JSON(http.StatusUnprocessableEntity, utils.APIResponse{
			Status:  "error",
			Code:    http.StatusUnprocessableEntity,
			Message: resp.Error.Message,
			TraceID: c.GetString("trace_id"),
			Data:    resp,
		})
		return
	}

	utils.RespondSuccess(c, resp, "Response normalized successfully")
}

// GET /plans/:id
func (pc *PlannerController) GetPlanHandler(c *gin.Context) {
	plan, err := pc.plannerService.GetPlan(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plan, "Fetched plan successfully")
}

// GET /plans?limit=
func (pc *PlannerController) ListPlansHandler(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid limit (must be 1-100)")
		return
	}

	plans, err := pc.plannerService.ListPlans(c.Request.Context(), limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plans, "Fetched plans successfully")
}

// GET /destinations/:destination/tips?kind=weather|local&duration=
func (pc *PlannerController) DestinationTipsHandler(c *gin.Context) {
	duration, err := strconv.Atoi(c.DefaultQuery("duration", "0"))
	if err != nil || duration < 0 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid duration")
		return
	}

	tips, err := pc.plannerService.DestinationTips(c.Request.Context(),
		c.Param("destination"), duration, c.DefaultQuery("kind", services.TipsLocal))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"tips": tips}, "Fetched tips successfully")
}

// GET /health
func (pc *PlannerController) HealthHandler(c *gin.Context) {
	utils.RespondSuccess(c, pc.plannerService.Status(), "ok")
}
