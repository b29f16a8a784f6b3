package handlers

import (
	"errors"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	maxImages    = 3
	maxImageSize = 5 << 20 // 5 MiB per file
)

var errBadUpload = errors.New("only image files up to 5MB are allowed")

// saveImages stores the multipart "images" files under dir with generated
// names and returns the stored filenames in upload order. The references are
// opaque to the rest of the system.
func saveImages(c *fiber.Ctx, dir string) ([]string, error) {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil, nil // no multipart body, caller decides the fallback
	}

	files := form.File["images"]
	if len(files) > maxImages {
		files = files[:maxImages]
	}

	var names []string
	for _, fh := range files {
		if err := checkImage(fh); err != nil {
			return nil, err
		}
		name := uuid.NewString() + strings.ToLower(filepath.Ext(fh.Filename))
		if err := c.SaveFile(fh, filepath.Join(dir, name)); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

func checkImage(fh *multipart.FileHeader) error {
	if fh.Size > maxImageSize {
		return errBadUpload
	}
	if !strings.HasPrefix(fh.Header.Get("Content-Type"), "image/") {
		return errBadUpload
	}
	return nil
}
