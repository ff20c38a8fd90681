package controller

import (
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/service"
	"lms_backend/internal/structure"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService  *service.CourseService
	LessonService  *service.LessonService
	StorageService *service.StorageService
}

func NewCourseController(courseService *service.CourseService, lessonService *service.LessonService, storageService *service.StorageService) *CourseController {
	return &CourseController{
		CourseService:  courseService,
		LessonService:  lessonService,
		StorageService: storageService,
	}
}

// respondCourseError maps the domain errors onto HTTP statuses. Structure
// validation failures are the caller's fault; missing ids are 404s.
func respondCourseError(ctx *gin.Context, err error) {
	var notFound *structure.NotFoundError
	var invalid *structure.StructureValidationError

	switch {
	case errors.As(err, &notFound):
		util.Error(ctx, 404, notFound.Error())
	case errors.As(err, &invalid):
		util.BadRequest(ctx, invalid.Error())
	case errors.Is(err, util.ErrCourseNotFound), errors.Is(err, util.ErrLessonNotFound):
		util.NotFound(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}

// canManageCourse checks that the caller owns the course or is an admin.
func (c *CourseController) canManageCourse(ctx *gin.Context, courseID uint) bool {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		ctx.Abort()
		return false
	}
	if claims.Role == model.Admin {
		return true
	}

	view, err := c.CourseService.GetCourse(ctx.Request.Context(), courseID)
	if err != nil {
		respondCourseError(ctx, err)
		ctx.Abort()
		return false
	}
	if view.Course.InstructorID != claims.UserID {
		util.Forbidden(ctx)
		ctx.Abort()
		return false
	}
	return true
}

type CreateCourseRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	SubjectID   uint   `json:"subjectId"`
	StageID     uint   `json:"stageId"`
}

// CreateCourse godoc
// @Summary Create a course
// @Tags courses
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body CreateCourseRequest true "course payload"
// @Success 201 {object} util.Response{data=model.Course}
// @Failure 400 {object} util.Response
// @Router /api/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course := &model.Course{
		Title:        req.Title,
		Description:  req.Description,
		SubjectID:    req.SubjectID,
		StageID:      req.StageID,
		InstructorID: claims.UserID,
	}
	if err := c.CourseService.CreateCourse(ctx.Request.Context(), course); err != nil {
		respondCourseError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// ListCourses godoc
// @Summary Browse the course catalog
// @Tags courses
// @Produce json
// @Param subjectId query int false "filter by subject"
// @Param stageId query int false "filter by stage"
// @Param instructorId query int false "filter by instructor"
// @Param page query int false "page number"
// @Param limit query int false "page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	filter := repository.CourseFilter{
		SubjectID:    util.MustParseUint(ctx.Query("subjectId")),
		StageID:      util.MustParseUint(ctx.Query("stageId")),
		InstructorID: util.MustParseUint(ctx.Query("instructorId")),
		Page:         int(util.MustParseUint(ctx.DefaultQuery("page", "1"))),
		Limit:        int(util.MustParseUint(ctx.DefaultQuery("limit", "20"))),
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	courses, total, err := c.CourseService.ListCourses(filter)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  courses,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	})
}

// GetCourse godoc
// @Summary Course detail with structure, totals and per-lesson access
// @Tags courses
// @Produce json
// @Param id path int true "course id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	view, err := c.CourseService.GetCourse(ctx.Request.Context(), id)
	if err != nil {
		respondCourseError(ctx, err)
		return
	}

	actor := c.LessonService.ActorFromClaims(util.GetUserFromContext(ctx))
	access := c.LessonService.AnnotateAccess(view.Structure, actor)

	util.Success(ctx, gin.H{
		"course":       view.Course,
		"structure":    view.Structure,
		"totalLessons": view.TotalLessons,
		"totalVideos":  view.TotalVideos,
		"totalPdfs":    view.TotalPDFs,
		"totalPrice":   view.TotalPrice,
		"access":       access,
	})
}

type UpdateCourseRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	SubjectID   *uint   `json:"subjectId"`
	StageID     *uint   `json:"stageId"`
}

// UpdateCourse godoc
// @Summary Edit course metadata
// @Tags courses
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "course id"
// @Param body body UpdateCourseRequest true "fields to change"
// @Success 200 {object} util.Response{data=model.Course}
// @Router /api/courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if !c.canManageCourse(ctx, id) {
		return
	}

	var req UpdateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.UpdateCourseMeta(ctx.Request.Context(), id, func(course *model.Course) {
		if req.Title != nil {
			course.Title = *req.Title
		}
		if req.Description != nil {
			course.Description = *req.Description
		}
		if req.SubjectID != nil {
			course.SubjectID = *req.SubjectID
		}
		if req.StageID != nil {
			course.StageID = *req.StageID
		}
	})
	if err != nil {
		respondCourseError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// DeleteCourse godoc
// @Summary Delete a course
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "course id"
// @Success 200 {object} util.Response
// @Router /api/courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if !c.canManageCourse(ctx, id) {
		return
	}

	if err := c.CourseService.DeleteCourse(ctx.Request.Context(), id); err != nil {
		respondCourseError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// UploadThumbnail godoc
// @Summary Upload a course thumbnail image
// @Tags courses
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "course id"
// @Param file formData file true "image file"
// @Success 200 {object} util.Response{data=model.Course}
// @Router /api/courses/{id}/thumbnail [post]
func (c *CourseController) UploadThumbnail(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if !c.canManageCourse(ctx, id) {
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	mimeType, err := util.ValidateMimeType(file, []string{util.MimeImage})
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if _, err := file.Seek(0, 0); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	publicID := "thumbnails/" + model.NewItemID() + "-" + fileHeader.Filename
	url, err := c.StorageService.Upload(ctx.Request.Context(), publicID, file, fileHeader.Size, mimeType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	course, err := c.CourseService.UpdateCourseMeta(ctx.Request.Context(), id, func(course *model.Course) {
		course.Thumbnail = model.FileRef{PublicID: publicID, SecureURL: url}
	})
	if err != nil {
		respondCourseError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

type AddItemRequest struct {
	Type        model.ItemType `json:"type" binding:"required,oneof=unit lesson"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Price       float64        `json:"price"`
	InsertAfter *int           `json:"insertAfter"`
}

// AddStructureItem godoc
// @Summary Append or insert a unit or top-level lesson
// @Tags structure
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "course id"
// @Param body body AddItemRequest true "item payload"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/courses/{id}/structure/items [post]
func (c *CourseController) AddStructureItem(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if !c.canManageCourse(ctx, id) {
		return
	}

	var req AddItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	insertAfter := -1
	if req.InsertAfter != nil {
		insertAfter = *req.InsertAfter
	}

	items, err := c.CourseService.AddStructureItem(ctx.Request.Context(), id, req.Type, structure.NewItem{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
	}, insertAfter)
	if err != nil {
		respondCourseError(ctx, err)
		return
	}
	util.Success(ctx, items)
}

type AddLessonToUnitRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// AddLessonToUnit godoc
// @Summary Append a lesson inside a unit
// @Tags structure
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "course id"
// @Param unitId path string true "unit id"
// @Param body body AddLessonToUnitRequest true "lesson payload"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/courses/{id}/structure/units/{unitId}/lessons [post]
func (c *CourseController) AddLessonToUnit(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if !c.canManageCourse(ctx, id) {
		return
	}

	var req AddLessonToUnitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	items, err := c.CourseService.AddLessonToUnit(ctx.Request.Context(), id, ctx.Param("unitId"), structure.NewItem{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		respondCourseError(ctx, err)
		return
	}
	util.Success(ctx, items)
}

// DeleteStructureItem godoc
// @Summary Remove a unit (with its lessons) or a top-level lesson
// @Tags structure
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "course id"
// @Param itemId path string true "item id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/courses/{id}/structure/items/{itemId} [delete]
func (c *CourseController) DeleteStructureItem(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if !c.canManageCourse(ctx, id) {
		return
	}

	items, err := c.CourseService.DeleteStructureItem(ctx.Request.Context(), id, ctx.Param("itemId"))
	if err != nil {
		respondCourseError(ctx, err)
		return
	}
	util.Success(ctx, items)
}

// DeleteLessonFromUnit godoc
// @Summary Remove one lesson from a unit by position
// @Tags structure
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "course id"
// @Param unitId path string true "unit id"
// @Param index path int true "lesson position inside the unit"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/courses/{id}/structure/units/{unitId}/lessons/{index} [delete]
func (c *CourseController) DeleteLessonFromUnit(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if !c.canManageCourse(ctx, id) {
		return
	}

	index := int(util.MustParseUint(ctx.Param("index")))
	items, err := c.CourseService.DeleteLessonFromUnit(ctx.Request.Context(), id, ctx.Param("unitId"), index)
	if err != nil {
		respondCourseError(ctx, err)
		return
	}
	util.Success(ctx, items)
}

type ReorderRequest struct {
	From *int `json:"from" binding:"required"`
	To   *int `json:"to" binding:"required"`
}

// ReorderStructure godoc
// @Summary Move one top-level item to a new position
// @Tags structure
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "course id"
// @Param body body ReorderRequest true "from/to indexes"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/courses/{id}/structure/reorder [post]
func (c *CourseController) ReorderStructure(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if !c.canManageCourse(ctx, id) {
		return
	}

	var req ReorderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	items, err := c.CourseService.ReorderStructure(ctx.Request.Context(), id, *req.From, *req.To)
	if err != nil {
		respondCourseError(ctx, err)
		return
	}
	util.Success(ctx, items)
}

type ReplaceStructureRequest struct {
	Structure []model.StructureItem `json:"structure" binding:"required"`
}

// ReplaceStructure godoc
// @Summary Replace the whole course structure
// @Tags structure
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "course id"
// @Param body body ReplaceStructureRequest true "new structure"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/courses/{id}/structure [put]
func (c *CourseController) ReplaceStructure(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if !c.canManageCourse(ctx, id) {
		return
	}

	var req ReplaceStructureRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	items, err := c.CourseService.ReplaceStructure(ctx.Request.Context(), id, req.Structure)
	if err != nil {
		respondCourseError(ctx, err)
		return
	}
	util.Success(ctx, items)
}

type UpdateUnitRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
}

// UpdateUnit godoc
// @Summary Edit a unit's title, description or bundle price
// @Tags structure
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "course id"
// @Param unitId path string true "unit id"
// @Param body body UpdateUnitRequest true "fields to change"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/courses/{id}/structure/units/{unitId} [put]
func (c *CourseController) UpdateUnit(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if !c.canManageCourse(ctx, id) {
		return
	}

	var req UpdateUnitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	items, err := c.CourseService.UpdateUnit(ctx.Request.Context(), id, ctx.Param("unitId"), req.Title, req.Description, req.Price)
	if err != nil {
		respondCourseError(ctx, err)
		return
	}
	util.Success(ctx, items)
}

type UpdateLessonRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Duration    *float64 `json:"duration"`
	Lecture     *string  `json:"lecture"`
}

// UpdateLesson godoc
// @Summary Edit a lesson's metadata
// @Tags structure
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "course id"
// @Param lessonId path string true "lesson id"
// @Param body body UpdateLessonRequest true "fields to change"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/courses/{id}/structure/lessons/{lessonId} [put]
func (c *CourseController) UpdateLesson(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if !c.canManageCourse(ctx, id) {
		return
	}

	var req UpdateLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	items, err := c.CourseService.UpdateLesson(ctx.Request.Context(), id, ctx.Param("lessonId"), service.LessonPatch{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Duration:    req.Duration,
		Lecture:     req.Lecture,
	})
	if err != nil {
		respondCourseError(ctx, err)
		return
	}
	util.Success(ctx, items)
}
