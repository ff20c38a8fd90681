package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

// File upload MIME prefixes.
const (
	MimeVideo = "video/"
	MimeImage = "image/"
	MimePDF   = "application/pdf"
)

var (
	AllowedVideoExtensions = []string{".mp4", ".mov", ".avi", ".mkv", ".wmv", ".flv", ".webm"}
)

// Placeholder thumbnail served when a course has no uploaded image or an
// upload fails. Single source of truth for the defaulting policy.
const (
	DefaultThumbnailPublicID = "defaults/course-thumbnail"
	DefaultThumbnailURL      = "/static/defaults/course-thumbnail.png"
)
