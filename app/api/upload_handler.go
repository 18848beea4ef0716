package api

import (
	"log/slog"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
)

type UploadHandler struct {
	sourceDir string
}

func NewUploadHandler(sourceDir string) *UploadHandler {
	return &UploadHandler{
		sourceDir: sourceDir,
	}
}

// HandlePDF drops an uploaded PDF into the watched source directory; the
// ingest service picks it up from there.
func (h *UploadHandler) HandlePDF(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return ErrBadRequest()
	}

	path := filepath.Join(h.sourceDir, filepath.Base(file.Filename))
	if err := c.SaveFile(file, path); err != nil {
		return err
	}
	slog.Default().Info("[UPLOAD] file saved", "path", path)

	return c.JSON(fiber.Map{"message": "file queued for ingestion"})
}
