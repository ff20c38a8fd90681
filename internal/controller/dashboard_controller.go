package controller

import (
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
}

func NewDashboardController(dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{DashboardService: dashboardService}
}

// GetOverview godoc
// @Summary Platform totals for the admin dashboard
// @Tags dashboard
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.Overview}
// @Router /api/admin/dashboard [get]
func (c *DashboardController) GetOverview(ctx *gin.Context) {
	overview, err := c.DashboardService.GetOverview(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, overview)
}

// GetCourseStats godoc
// @Summary Content totals and purchase count for one course
// @Tags dashboard
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "course id"
// @Success 200 {object} util.Response{data=service.CourseStats}
// @Failure 404 {object} util.Response
// @Router /api/admin/dashboard/courses/{id} [get]
func (c *DashboardController) GetCourseStats(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	stats, err := c.DashboardService.GetCourseStats(ctx.Request.Context(), id)
	if err != nil {
		respondCourseError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// GetAllCourseStats godoc
// @Summary Content totals for every course
// @Tags dashboard
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/admin/dashboard/courses [get]
func (c *DashboardController) GetAllCourseStats(ctx *gin.Context) {
	stats, err := c.DashboardService.GetAllCourseStats(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}
