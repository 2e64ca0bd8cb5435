package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/CPU-commits/Intranet_BAcademix/res"
	"github.com/google/uuid"
)

const MAX_IMAGE_SIZE = 5 << 20

var ErrImagesDisabled = errors.New("image storage is not configured")

type FileUploader interface {
	UploadFile(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

type ImagesService struct {
	uploader FileUploader
}

func imageKey(filename string) string {
	return fmt.Sprintf("courses/%s%s", uuid.NewString(), strings.ToLower(filepath.Ext(filename)))
}

func (i *ImagesService) Enabled() bool {
	return i != nil && i.uploader != nil
}

func (i *ImagesService) UploadCourseImage(ctx context.Context, file *multipart.FileHeader) (string, *res.ErrorRes) {
	if !i.Enabled() {
		return "", res.Unavailable(ErrImagesDisabled, "Image upload unavailable")
	}
	if file.Size > MAX_IMAGE_SIZE {
		return "", res.BadRequest(nil, "Image must be 5MB or less")
	}
	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", res.BadRequest(nil, "File must be an image")
	}

	body, err := file.Open()
	if err != nil {
		return "", res.BadRequest(err, "Invalid image")
	}
	defer body.Close()

	location, err := i.uploader.UploadFile(ctx, imageKey(file.Filename), contentType, body)
	if err != nil {
		return "", res.Unavailable(err, "Image upload unavailable")
	}
	return location, nil
}

func NewImagesService(uploader FileUploader) *ImagesService {
	return &ImagesService{
		uploader: uploader,
	}
}
