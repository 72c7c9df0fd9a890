package domain

import (
	"errors"
	"testing"
)

func TestUploadPolicy_Check(t *testing.T) {
	cases := []struct {
		name   string
		policy UploadPolicy
		size   int64
		mime   string
		msg    string
	}{
		{name: "logo png", policy: LogoPolicy, size: 1024, mime: "image/png"},
		{name: "logo at limit", policy: LogoPolicy, size: 2 << 20, mime: "image/jpeg"},
		{name: "logo too large", policy: LogoPolicy, size: 2<<20 + 1, mime: "image/png", msg: "File too large"},
		{name: "logo not image", policy: LogoPolicy, size: 10, mime: "application/pdf", msg: "Only image files are allowed"},
		{name: "video mp4", policy: VideoPolicy, size: 50 << 20, mime: "video/mp4"},
		{name: "video with params", policy: VideoPolicy, size: 10, mime: "Video/WebM; codecs=vp9"},
		{name: "video matroska", policy: VideoPolicy, size: 10, mime: "video/x-matroska"},
		{name: "video too large", policy: VideoPolicy, size: 100<<20 + 1, mime: "video/mp4", msg: "File too large"},
		{name: "video wrong type", policy: VideoPolicy, size: 10, mime: "video/x-flv", msg: "Invalid file type. Only video files are allowed."},
		{name: "video image", policy: VideoPolicy, size: 10, mime: "image/gif", msg: "Invalid file type. Only video files are allowed."},
	}
	for _, tc := range cases {
		err := tc.policy.Check(tc.size, tc.mime)
		if tc.msg == "" {
			if err != nil {
				t.Fatalf("%s: unexpected error %v", tc.name, err)
			}
			continue
		}
		if !errors.Is(err, ErrUploadRejected) {
			t.Fatalf("%s: expected ErrUploadRejected, got %v", tc.name, err)
		}
		if err.Error() != tc.msg {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.msg, err.Error())
		}
	}
}
