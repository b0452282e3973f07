package api

import (
	"fmt"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/devtales-app/backend/pkg/internal/media"
)

// uploadFormFile pushes one multipart file to the media host and returns
// its public URL. Callers abort the whole request on failure so no story is
// ever persisted with missing media.
func uploadFormFile(c *fiber.Ctx, header *multipart.FileHeader) (string, error) {
	if media.H == nil {
		return "", fmt.Errorf("media host is not configured")
	}

	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("unable to read uploaded file: %v", err)
	}
	defer file.Close()

	url, err := media.H.Upload(c.Context(), header.Filename, header.Header.Get(fiber.HeaderContentType), file)
	if err != nil {
		return "", fmt.Errorf("unable to upload %s to media host: %v", header.Filename, err)
	}

	return url, nil
}
