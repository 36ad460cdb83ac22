package utils

import (
	"fmt"
	"io"
	"log"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"peakform/config"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

var allowedVideoExtensions = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".webm": true,
	".m4v":  true,
}

// UploadVideoFile stores a video binary under a path keyed by the video id
// and the file's extension, returning a publicly resolvable URL. When a
// media store endpoint is configured the file is pushed there over HTTP;
// otherwise it lands in the local uploads directory.
func UploadVideoFile(file *multipart.FileHeader, videoID uuid.UUID) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedVideoExtensions[ext] {
		return "", fmt.Errorf("unsupported video file type: %q", ext)
	}

	objectKey := "videos/" + videoID.String() + ext

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if config.AppConfig.MediaStoreURL != "" {
		return pushToMediaStore(src, objectKey, ext)
	}
	return saveToLocalUploads(src, objectKey)
}

// pushToMediaStore uploads the object over HTTP with content-type and cache
// hints, then derives the public URL for the stored path
func pushToMediaStore(src io.Reader, objectKey, ext string) (string, error) {
	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	client := resty.New()
	resp, err := client.R().
		SetHeader("Content-Type", contentType).
		SetHeader("Cache-Control", "max-age=3600").
		SetAuthToken(config.AppConfig.MediaStoreToken).
		SetBody(src).
		Put(config.AppConfig.MediaStoreURL + "/" + objectKey)
	if err != nil {
		log.Printf("Error uploading video to media store: %v", err)
		return "", err
	}
	if resp.IsError() {
		log.Printf("Media store rejected upload: %s %s", resp.Status(), resp.String())
		return "", fmt.Errorf("media store rejected upload: %s", resp.Status())
	}

	return PublicMediaURL(objectKey), nil
}

// saveToLocalUploads writes the object under the upload directory so fiber's
// static handler can serve it
func saveToLocalUploads(src io.Reader, objectKey string) (string, error) {
	filePath := filepath.Join(config.AppConfig.UploadDir, filepath.FromSlash(objectKey))

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return "", err
	}

	dst, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return PublicMediaURL(objectKey), nil
}

// PublicMediaURL derives the publicly resolvable URL for a stored object key
func PublicMediaURL(objectKey string) string {
	if objectKey == "" {
		return ""
	}
	if config.AppConfig.MediaCDNBase != "" {
		return strings.TrimSuffix(config.AppConfig.MediaCDNBase, "/") + "/" + objectKey
	}
	return "/uploads/" + objectKey
}
