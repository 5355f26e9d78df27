package domain

import "mime/multipart"

const (
	// OwnerTypePost expresses that an Image belongs to a Post.
	OwnerTypePost = "posts"
	// OwnerTypeProfile expresses that an Image belongs to a Profile.
	OwnerTypeProfile = "profiles"
	// UploadsBaseDir determines the general storage location of uploaded images.
	UploadsBaseDir = "uploads"
	// MaxUploadSize determines the maximum filesize of an image to be uploaded.
	MaxUploadSize int64 = 5 << 20 // 5 Megabyte
)

// Image represents an image to be uploaded. Images are stored as files in the
// filesystem and have no table of their own; the owning record (Post or
// Profile) keeps the relative path in its image column. Files land in
// uploads/<OwnerType>/<slug(SlugBase)>-<uuid><ext>, so two uploads with the
// same title can never collide.
type Image struct {
	OwnerType string
	// SlugBase is slugified into the filename prefix, e.g. the post title
	// or the profile nickname.
	SlugBase string
	File     multipart.File
	Filename string
	// Extension and ContentType are filled in during validation.
	Extension   string
	ContentType string
}

// ImageService stores and removes image files.
type ImageService interface {
	Create(img *Image) error
	Delete(relativePath string) error
}

// RelativePath returns the path of the stored file, relative to the
// application working directory. Valid after a successful Create.
func (i *Image) RelativePath() string {
	return UploadsBaseDir + "/" + i.OwnerType + "/" + i.Filename
}
