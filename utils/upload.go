package utils

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const MaxPhotoSize = 5 * 1024 * 1024 // 5 MB

var allowedPhotoExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// SavePhoto validates an uploaded image and writes it into dir with a
// timestamped filename. Returns the stored filename.
func SavePhoto(c *gin.Context, file *multipart.FileHeader, dir string) (string, error) {
	if file.Size > MaxPhotoSize {
		return "", errors.New("image exceeds the 5MB size limit")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedPhotoExts[ext] {
		return "", errors.New("only jpg, png, and jpeg formats are allowed")
	}

	filename := fmt.Sprintf("image-%d-%s", time.Now().UnixNano(), filepath.Base(file.Filename))
	if err := c.SaveUploadedFile(file, filepath.Join(dir, filename)); err != nil {
		return "", err
	}
	return filename, nil
}
