package storage

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"wtfSocial/domain"
	"wtfSocial/errs"
)

// NewImageService returns an instance of ImageService.
func NewImageService() *ImageService {
	return &ImageService{
		imageValidator{
			imageDisk{},
		},
	}
}

// ImageService stores uploaded images in the local filesystem.
// It implements the domain.ImageService interface.
type ImageService struct {
	imageValidator
}

// imageValidator runs validations and normalizations on an incoming image.
// On success, it passes the image on to imageDisk.
// Otherwise, it returns the error of the validation that has failed.
type imageValidator struct {
	imageDisk
}

// imageDisk writes and removes image files. It assumes the image has been
// validated and its final filename has been chosen.
type imageDisk struct{}

// Ensure the ImageService struct properly implements the domain.ImageService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.ImageService = &ImageService{}

// Create validates the image and stores it under
// uploads/<owner type>/<slug>-<uuid><ext>.
func (iv *imageValidator) Create(img *domain.Image) error {
	err := runImageValFns(img,
		iv.extensionValid,
		iv.contentTypeValid,
		iv.contentTypeExtensionMatch,
		iv.belowMaxSize,
		iv.fileNameUnique,
	)
	if err != nil {
		return err
	}
	return iv.imageDisk.Create(img)
}

// runImageValFns runs any number of functions of type imageValFn on the passed in Image object.
// If none of them returns an error, it returns nil. Otherwise, it returns the respective error.
func runImageValFns(img *domain.Image, fns ...imageValFn) error {
	for _, fn := range fns {
		if err := fn(img); err != nil {
			return err
		}
	}
	return nil
}

// An imageValFn is any function that takes in a pointer to a domain.Image object and returns an error.
type imageValFn func(img *domain.Image) error

// extensionValid makes sure that the image's file extension is jpeg or png.
func (iv *imageValidator) extensionValid(img *domain.Image) error {
	ext := strings.ToLower(filepath.Ext(img.Filename))
	if ext != ".png" && ext != ".jpg" && ext != ".jpeg" {
		return errs.Errorf(errs.EINVALID,
			"Image %s invalid extension, must be .jpeg or .png.", img.Filename)
	}
	if ext == ".jpg" {
		ext = ".jpeg"
	}
	img.Extension = ext
	return nil
}

// contentTypeValid sniffs the image's actual content type and makes sure
// it's jpeg or png.
func (iv *imageValidator) contentTypeValid(img *domain.Image) error {
	buffer := make([]byte, 512)
	if _, err := img.File.Read(buffer); err != nil && err != io.EOF {
		return err
	}
	if err := resetReaderPosition(img); err != nil {
		return err
	}
	contentType := http.DetectContentType(buffer)
	if contentType != "image/jpeg" && contentType != "image/png" {
		return errs.Errorf(errs.EINVALID,
			"Image %s invalid content-type, must be image/jpeg or image/png.", img.Filename)
	}
	img.ContentType = contentType
	return nil
}

// contentTypeExtensionMatch makes sure that the sniffed content type matches
// the file extension.
func (iv *imageValidator) contentTypeExtensionMatch(img *domain.Image) error {
	contentType := strings.TrimPrefix(img.ContentType, "image/")
	ext := strings.TrimPrefix(img.Extension, ".")
	if contentType != ext {
		return errs.Errorf(errs.EINVALID,
			"Image %s content-type %s does not match extension %s.",
			img.Filename, img.ContentType, img.Extension)
	}
	return nil
}

// belowMaxSize makes sure that the image does not exceed the upload size limit.
func (iv *imageValidator) belowMaxSize(img *domain.Image) error {
	size, err := img.File.Seek(0, io.SeekEnd)
	if err != nil {
		return err
	}
	if err = resetReaderPosition(img); err != nil {
		return err
	}
	if size > domain.MaxUploadSize {
		return errs.Errorf(errs.EINVALID,
			"Image %s exceeds upload size limit of %sMB.",
			img.Filename, strconv.FormatInt(domain.MaxUploadSize/1000000, 10))
	}
	return nil
}

// fileNameUnique builds the final filename: the slugified base (post title or
// profile nickname) plus a random UUID, so identical titles never collide.
func (iv *imageValidator) fileNameUnique(img *domain.Image) error {
	img.Filename = Slugify(img.SlugBase) + "-" + uuid.NewString() + img.Extension
	return nil
}

// resetReaderPosition seeks back to the beginning of the file,
// so that subsequent reads will work.
func resetReaderPosition(img *domain.Image) error {
	_, err := img.File.Seek(0, io.SeekStart)
	return err
}

// Slugify lowercases s and collapses every run of non-alphanumeric characters
// into a single hyphen, e.g. "SpaceX Launch!" -> "spacex-launch".
func Slugify(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// Create writes the image file to disk, creating the target directory
// if needed.
func (id *imageDisk) Create(img *domain.Image) error {
	dir := filepath.Join(domain.UploadsBaseDir, img.OwnerType)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	dst, err := os.Create(filepath.Join(dir, img.Filename))
	if err != nil {
		return err
	}
	defer dst.Close()
	if _, err = io.Copy(dst, img.File); err != nil {
		return err
	}
	return nil
}

// Delete removes a stored image file. Deleting a file that is already gone
// is a no-op.
func (id *imageDisk) Delete(relativePath string) error {
	err := os.Remove(filepath.FromSlash(relativePath))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
