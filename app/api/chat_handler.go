package api

import (
	"ragbot/app/agent"
	"ragbot/types"

	"github.com/gofiber/fiber/v2"
)

type ChatHandler struct {
	bot *agent.Agent
}

func NewChatHandler(bot *agent.Agent) *ChatHandler {
	return &ChatHandler{
		bot: bot,
	}
}

// HandleChat answers one user turn. Pipeline failures never surface as
// HTTP errors: the agent folds them into the response text, so the
// endpoint only fails on malformed requests.
func (h *ChatHandler) HandleChat(c *fiber.Ctx) error {
	var params types.ChatParams
	if c.BodyParser(&params) != nil {
		return ErrBadRequest()
	}

	if errors := types.Validate(&params); len(errors) > 0 {
		return NewValidationError(errors)
	}

	answer, history := h.bot.Ask(c.UserContext(), params.Prompt)

	return c.JSON(types.ChatResponse{
		Response:    answer,
		ChatHistory: history,
	})
}
