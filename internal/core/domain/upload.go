package domain

import "strings"

// UploadKind selects the storage area and policy for an uploaded file.
type UploadKind string

const (
	UploadLogo  UploadKind = "logos"
	UploadVideo UploadKind = "videos"
)

// StoredFile describes a file that has been fully written to storage.
type StoredFile struct {
	Kind         UploadKind
	Filename     string
	OriginalName string
	Path         string
	Size         int64
	MIMEType     string
}

// UploadPolicy constrains size and content type for one UploadKind.
type UploadPolicy struct {
	Kind      UploadKind
	MaxBytes  int64
	allowed   func(mime string) bool
	typeError string
}

var allowedVideoTypes = map[string]struct{}{
	"video/mp4":        {},
	"video/webm":       {},
	"video/ogg":        {},
	"video/quicktime":  {},
	"video/x-msvideo":  {},
	"video/x-matroska": {},
}

var (
	LogoPolicy = UploadPolicy{
		Kind:      UploadLogo,
		MaxBytes:  2 << 20,
		allowed:   func(mime string) bool { return strings.HasPrefix(mime, "image/") },
		typeError: "Only image files are allowed",
	}
	VideoPolicy = UploadPolicy{
		Kind:     UploadVideo,
		MaxBytes: 100 << 20,
		allowed: func(mime string) bool {
			_, ok := allowedVideoTypes[mime]
			return ok
		},
		typeError: "Invalid file type. Only video files are allowed.",
	}
)

// Check returns an ErrUploadRejected error when size or MIME type fall
// outside the policy. Parameters such as "; codecs=..." are ignored.
func (p UploadPolicy) Check(size int64, mime string) error {
	if size > p.MaxBytes {
		return RejectUpload("File too large")
	}
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	if !p.allowed(strings.ToLower(strings.TrimSpace(mime))) {
		return RejectUpload(p.typeError)
	}
	return nil
}
