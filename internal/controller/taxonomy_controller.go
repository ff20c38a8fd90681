package controller

import (
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TaxonomyController struct {
	TaxonomyService *service.TaxonomyService
}

func NewTaxonomyController(taxonomyService *service.TaxonomyService) *TaxonomyController {
	return &TaxonomyController{TaxonomyService: taxonomyService}
}

type NameRequest struct {
	Name string `json:"name" binding:"required"`
}

// ListSubjects godoc
// @Summary List subjects
// @Tags taxonomy
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/subjects [get]
func (c *TaxonomyController) ListSubjects(ctx *gin.Context) {
	subjects, err := c.TaxonomyService.ListSubjects()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, subjects)
}

// CreateSubject godoc
// @Summary Create a subject (admin)
// @Tags taxonomy
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body NameRequest true "subject name"
// @Success 201 {object} util.Response{data=model.Subject}
// @Router /api/admin/subjects [post]
func (c *TaxonomyController) CreateSubject(ctx *gin.Context) {
	var req NameRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	subject, err := c.TaxonomyService.CreateSubject(req.Name)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, subject)
}

// DeleteSubject godoc
// @Summary Delete a subject (admin)
// @Tags taxonomy
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "subject id"
// @Success 200 {object} util.Response
// @Router /api/admin/subjects/{id} [delete]
func (c *TaxonomyController) DeleteSubject(ctx *gin.Context) {
	if err := c.TaxonomyService.DeleteSubject(util.MustParseUint(ctx.Param("id"))); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListStages godoc
// @Summary List stages
// @Tags taxonomy
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/stages [get]
func (c *TaxonomyController) ListStages(ctx *gin.Context) {
	stages, err := c.TaxonomyService.ListStages()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stages)
}

// CreateStage godoc
// @Summary Create a stage (admin)
// @Tags taxonomy
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body NameRequest true "stage name"
// @Success 201 {object} util.Response{data=model.Stage}
// @Router /api/admin/stages [post]
func (c *TaxonomyController) CreateStage(ctx *gin.Context) {
	var req NameRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	stage, err := c.TaxonomyService.CreateStage(req.Name)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, stage)
}

// DeleteStage godoc
// @Summary Delete a stage (admin)
// @Tags taxonomy
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "stage id"
// @Success 200 {object} util.Response
// @Router /api/admin/stages/{id} [delete]
func (c *TaxonomyController) DeleteStage(ctx *gin.Context) {
	if err := c.TaxonomyService.DeleteStage(util.MustParseUint(ctx.Param("id"))); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
