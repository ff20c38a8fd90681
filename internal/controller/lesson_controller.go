package controller

import (
	"os"
	"path/filepath"
	"strings"

	"lms_backend/internal/model"
	"lms_backend/internal/service"
	"lms_backend/internal/util"
	"lms_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type LessonController struct {
	LessonService  *service.LessonService
	CourseService  *service.CourseService
	StorageService *service.StorageService
	UploadTmpDir   string
}

func NewLessonController(lessonService *service.LessonService, courseService *service.CourseService, storageService *service.StorageService, uploadTmpDir string) *LessonController {
	return &LessonController{
		LessonService:  lessonService,
		CourseService:  courseService,
		StorageService: storageService,
		UploadTmpDir:   uploadTmpDir,
	}
}

// GetLessonContent godoc
// @Summary Lesson content for the player
// @Description Gated fields (lecture, videos, PDFs) are omitted when the
// @Description caller may not access the lesson; the access block says why.
// @Tags lessons
// @Produce json
// @Param id path int true "course id"
// @Param lessonId path string true "lesson id"
// @Success 200 {object} util.Response{data=service.LessonContent}
// @Failure 404 {object} util.Response
// @Router /api/courses/{id}/lessons/{lessonId} [get]
func (c *LessonController) GetLessonContent(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("id"))
	actor := c.LessonService.ActorFromClaims(util.GetUserFromContext(ctx))

	content, err := c.LessonService.GetLessonContent(ctx.Request.Context(), courseID, ctx.Param("lessonId"), actor)
	if err != nil {
		respondCourseError(ctx, err)
		return
	}
	util.Success(ctx, content)
}

// UploadVideo godoc
// @Summary Upload a lecture video for a lesson
// @Description Probes the file with ffprobe and stores the duration on the
// @Description lesson alongside the uploaded video reference.
// @Tags lessons
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "course id"
// @Param lessonId path string true "lesson id"
// @Param file formData file true "video file"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/courses/{id}/lessons/{lessonId}/video [post]
func (c *LessonController) UploadVideo(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("id"))
	lessonID := ctx.Param("lessonId")

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	allowed := false
	for _, e := range util.AllowedVideoExtensions {
		if ext == e {
			allowed = true
			break
		}
	}
	if !allowed {
		util.BadRequest(ctx, "unsupported video extension: "+ext)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	mimeType, err := util.ValidateMimeType(file, []string{util.MimeVideo, "application/octet-stream"})
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	// ffprobe needs a file on disk, so the upload goes through a temp path.
	if err := os.MkdirAll(c.UploadTmpDir, 0755); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	tmpPath := filepath.Join(c.UploadTmpDir, model.NewItemID()+ext)
	if err := ctx.SaveUploadedFile(fileHeader, tmpPath); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer os.Remove(tmpPath)

	info, err := util.GetVideoInfo(tmpPath)
	if err != nil {
		util.BadRequest(ctx, "could not read video metadata")
		return
	}

	publicID := "videos/" + model.NewItemID() + ext
	url, err := c.StorageService.UploadFile(ctx.Request.Context(), publicID, tmpPath, mimeType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	view, err := c.CourseService.GetCourse(ctx.Request.Context(), courseID)
	if err != nil {
		respondCourseError(ctx, err)
		return
	}
	lesson := findLessonInView(view, lessonID)
	if lesson == nil {
		util.NotFound(ctx)
		return
	}

	videos := append(append([]model.FileRef(nil), lesson.Videos...), model.FileRef{
		PublicID:  publicID,
		SecureURL: url,
	})
	items, err := c.CourseService.UpdateLesson(ctx.Request.Context(), courseID, lessonID, service.LessonPatch{
		Videos:   &videos,
		Duration: &info.Duration,
		Lecture:  &url,
	})
	if err != nil {
		respondCourseError(ctx, err)
		return
	}

	logger.Log.Info("lesson video uploaded",
		zap.Uint("course", courseID),
		zap.String("lesson", lessonID),
		zap.Float64("duration", info.Duration))

	util.Success(ctx, gin.H{
		"structure": items,
		"video":     model.FileRef{PublicID: publicID, SecureURL: url},
		"duration":  info.Duration,
	})
}

// UploadPDF godoc
// @Summary Attach a PDF to a lesson
// @Tags lessons
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "course id"
// @Param lessonId path string true "lesson id"
// @Param file formData file true "pdf file"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/courses/{id}/lessons/{lessonId}/pdf [post]
func (c *LessonController) UploadPDF(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("id"))
	lessonID := ctx.Param("lessonId")

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

	mimeType, err := util.ValidateMimeType(file, []string{util.MimePDF})
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if _, err := file.Seek(0, 0); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	publicID := "pdfs/" + model.NewItemID() + "-" + fileHeader.Filename
	url, err := c.StorageService.Upload(ctx.Request.Context(), publicID, file, fileHeader.Size, mimeType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	view, err := c.CourseService.GetCourse(ctx.Request.Context(), courseID)
	if err != nil {
		respondCourseError(ctx, err)
		return
	}
	lesson := findLessonInView(view, lessonID)
	if lesson == nil {
		util.NotFound(ctx)
		return
	}

	pdfs := append(append([]model.FileRef(nil), lesson.PDFs...), model.FileRef{
		PublicID:  publicID,
		SecureURL: url,
	})
	items, err := c.CourseService.UpdateLesson(ctx.Request.Context(), courseID, lessonID, service.LessonPatch{
		PDFs: &pdfs,
	})
	if err != nil {
		respondCourseError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"structure": items,
		"pdf":       model.FileRef{PublicID: publicID, SecureURL: url},
	})
}

func findLessonInView(view *service.CourseView, lessonID string) *model.Lesson {
	for i := range view.Structure {
		item := &view.Structure[i]
		switch item.Type {
		case model.ItemUnit:
			if item.Unit == nil {
				continue
			}
			for j := range item.Unit.Lessons {
				if item.Unit.Lessons[j].ID == lessonID {
					return &item.Unit.Lessons[j]
				}
			}
		case model.ItemLesson:
			if item.Lesson != nil && item.Lesson.ID == lessonID {
				return item.Lesson
			}
		}
	}
	return nil
}
