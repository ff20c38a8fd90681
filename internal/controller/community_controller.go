package controller

import (
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CommunityController struct {
	CommunityService *service.CommunityService
	StorageService   *service.StorageService
}

func NewCommunityController(communityService *service.CommunityService, storageService *service.StorageService) *CommunityController {
	return &CommunityController{
		CommunityService: communityService,
		StorageService:   storageService,
	}
}

func respondCommunityError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}

type PostRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// CreatePost godoc
// @Summary Publish a blog post
// @Tags community
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body PostRequest true "post payload"
// @Success 201 {object} util.Response{data=model.Post}
// @Router /api/posts [post]
func (c *CommunityController) CreatePost(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req PostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	post := &model.Post{
		AuthorID: claims.UserID,
		Title:    req.Title,
		Content:  req.Content,
	}
	if err := c.CommunityService.CreatePost(post); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, post)
}

// ListPosts godoc
// @Summary Browse blog posts
// @Tags community
// @Produce json
// @Param page query int false "page number"
// @Param limit query int false "page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/posts [get]
func (c *CommunityController) ListPosts(ctx *gin.Context) {
	page := int(util.MustParseUint(ctx.DefaultQuery("page", "1")))
	limit := int(util.MustParseUint(ctx.DefaultQuery("limit", "10")))

	posts, total, err := c.CommunityService.ListPosts(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: posts, Total: total, Page: page, Limit: limit})
}

// GetPost godoc
// @Summary Read one blog post
// @Tags community
// @Produce json
// @Param id path int true "post id"
// @Success 200 {object} util.Response{data=model.Post}
// @Failure 404 {object} util.Response
// @Router /api/posts/{id} [get]
func (c *CommunityController) GetPost(ctx *gin.Context) {
	post, err := c.CommunityService.GetPost(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		respondCommunityError(ctx, err)
		return
	}
	util.Success(ctx, post)
}

type UpdatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// UpdatePost godoc
// @Summary Edit a blog post (author or admin)
// @Tags community
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "post id"
// @Param body body UpdatePostRequest true "fields to change"
// @Success 200 {object} util.Response{data=model.Post}
// @Failure 403 {object} util.Response
// @Router /api/posts/{id} [put]
func (c *CommunityController) UpdatePost(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req UpdatePostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	post, err := c.CommunityService.UpdatePost(util.MustParseUint(ctx.Param("id")), claims, req.Title, req.Content)
	if err != nil {
		respondCommunityError(ctx, err)
		return
	}
	util.Success(ctx, post)
}

// DeletePost godoc
// @Summary Delete a blog post (author or admin)
// @Tags community
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "post id"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/posts/{id} [delete]
func (c *CommunityController) DeletePost(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.CommunityService.DeletePost(util.MustParseUint(ctx.Param("id")), claims); err != nil {
		respondCommunityError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// UploadPostImage godoc
// @Summary Attach a cover image to a blog post (author or admin)
// @Tags community
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "post id"
// @Param file formData file true "image file"
// @Success 200 {object} util.Response{data=model.Post}
// @Failure 403 {object} util.Response
// @Router /api/posts/{id}/image [post]
func (c *CommunityController) UploadPostImage(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
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

	publicID := "posts/" + model.NewItemID() + "-" + fileHeader.Filename
	url, err := c.StorageService.Upload(ctx.Request.Context(), publicID, file, fileHeader.Size, mimeType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	post, err := c.CommunityService.SetPostImage(util.MustParseUint(ctx.Param("id")), claims, model.FileRef{
		PublicID:  publicID,
		SecureURL: url,
	})
	if err != nil {
		respondCommunityError(ctx, err)
		return
	}
	util.Success(ctx, post)
}

type QuestionRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// CreateQuestion godoc
// @Summary Ask a question
// @Tags community
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body QuestionRequest true "question payload"
// @Success 201 {object} util.Response{data=model.Question}
// @Router /api/questions [post]
func (c *CommunityController) CreateQuestion(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question := &model.Question{
		AuthorID: claims.UserID,
		Title:    req.Title,
		Content:  req.Content,
	}
	if err := c.CommunityService.CreateQuestion(question); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, question)
}

// ListQuestions godoc
// @Summary Browse questions
// @Tags community
// @Produce json
// @Param page query int false "page number"
// @Param limit query int false "page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/questions [get]
func (c *CommunityController) ListQuestions(ctx *gin.Context) {
	page := int(util.MustParseUint(ctx.DefaultQuery("page", "1")))
	limit := int(util.MustParseUint(ctx.DefaultQuery("limit", "10")))

	questions, total, err := c.CommunityService.ListQuestions(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: questions, Total: total, Page: page, Limit: limit})
}

// GetQuestion godoc
// @Summary Read one question with its answers
// @Tags community
// @Produce json
// @Param id path int true "question id"
// @Success 200 {object} util.Response{data=model.Question}
// @Failure 404 {object} util.Response
// @Router /api/questions/{id} [get]
func (c *CommunityController) GetQuestion(ctx *gin.Context) {
	question, err := c.CommunityService.GetQuestion(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		respondCommunityError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

type AnswerRequest struct {
	Content string `json:"content" binding:"required"`
}

// AnswerQuestion godoc
// @Summary Answer a question
// @Tags community
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "question id"
// @Param body body AnswerRequest true "answer payload"
// @Success 201 {object} util.Response{data=model.Answer}
// @Failure 404 {object} util.Response
// @Router /api/questions/{id}/answers [post]
func (c *CommunityController) AnswerQuestion(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	answer := &model.Answer{
		QuestionID: util.MustParseUint(ctx.Param("id")),
		AuthorID:   claims.UserID,
		Content:    req.Content,
	}
	if err := c.CommunityService.AnswerQuestion(answer); err != nil {
		respondCommunityError(ctx, err)
		return
	}
	util.Created(ctx, answer)
}

// DeleteQuestion godoc
// @Summary Delete a question and its answers (author or admin)
// @Tags community
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "question id"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/questions/{id} [delete]
func (c *CommunityController) DeleteQuestion(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.CommunityService.DeleteQuestion(util.MustParseUint(ctx.Param("id")), claims); err != nil {
		respondCommunityError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
