package api

import (
	"context"

	"ragbot/types"

	"github.com/gofiber/fiber/v2"
)

// Ingester is the write side of the index lifecycle.
type Ingester interface {
	IngestFile(ctx context.Context, filePath string) error
}

type UpdateHandler struct {
	ingester Ingester
	docPath  string
}

func NewUpdateHandler(ingester Ingester, docPath string) *UpdateHandler {
	return &UpdateHandler{
		ingester: ingester,
		docPath:  docPath,
	}
}

// HandleUpdate re-ingests the configured document. Unlike chat, a failure
// here is a hard error for the caller; the previous index stays intact.
func (h *UpdateHandler) HandleUpdate(c *fiber.Ctx) error {
	if h.docPath == "" {
		return ErrInternal("no document path configured")
	}

	if err := h.ingester.IngestFile(c.UserContext(), h.docPath); err != nil {
		return ErrInternal(err.Error())
	}

	return c.JSON(types.UpdateResponse{Message: "vectorstore updated successfully"})
}
