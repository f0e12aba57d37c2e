package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"cocobloom/internal/config"
	applog "cocobloom/internal/log"

	"github.com/gofiber/fiber/v2"
)

// AssistantHandler proxies the storefront chat widget to a third-party
// completion API. It never touches the commerce state.
type AssistantHandler struct {
	cfg    config.Config
	client *http.Client
}

func NewAssistantHandler(cfg config.Config) *AssistantHandler {
	return &AssistantHandler{cfg: cfg, client: &http.Client{Timeout: 20 * time.Second}}
}

const assistantPrompt = "You are the cocobloom shopping assistant for a small-batch chocolate " +
	"store. Answer questions about bars, gift boxes, combos and festival offers. Be brief " +
	"and friendly; suggest the tasting trio when someone cannot decide."

const assistantBusy = "So sorry, our chocolatier is swamped right now. Please try me again in a moment!"

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type assistantRequest struct {
	Messages []chatMessage `json:"messages"`
	Query    string        `json:"query"`
}

type assistantResponse struct {
	Response string `json:"response"`
}

// POST /api/v1/assistant
func (h *AssistantHandler) Chat(c *fiber.Ctx) error {
	var req assistantRequest
	if err := c.BodyParser(&req); err != nil || req.Query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if h.cfg.AssistantAPIURL == "" || h.cfg.AssistantAPIKey == "" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(assistantResponse{Response: assistantBusy})
	}

	msgs := make([]chatMessage, 0, len(req.Messages)+2)
	msgs = append(msgs, chatMessage{Role: "system", Content: assistantPrompt})
	msgs = append(msgs, req.Messages...)
	msgs = append(msgs, chatMessage{Role: "user", Content: req.Query})

	payload, _ := json.Marshal(fiber.Map{"messages": msgs})
	upReq, err := http.NewRequestWithContext(c.Context(), http.MethodPost, h.cfg.AssistantAPIURL, bytes.NewReader(payload))
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(assistantResponse{Response: assistantBusy})
	}
	upReq.Header.Set("Content-Type", "application/json")
	upReq.Header.Set("Authorization", "Bearer "+h.cfg.AssistantAPIKey)

	resp, err := h.client.Do(upReq)
	if err != nil {
		applog.Error(c, "assistant.upstream.fail", err, nil)
		return c.Status(fiber.StatusBadGateway).JSON(assistantResponse{Response: assistantBusy})
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusTooManyRequests, http.StatusPaymentRequired:
		// Pass the upstream status through with a canned apology.
		applog.Security(c, "assistant.upstream.limited", map[string]any{"status": resp.StatusCode})
		return c.Status(resp.StatusCode).JSON(assistantResponse{Response: assistantBusy})
	case http.StatusOK:
		// fallthrough to decode
	default:
		applog.Error(c, "assistant.upstream.status", nil, map[string]any{"status": resp.StatusCode})
		return c.Status(fiber.StatusBadGateway).JSON(assistantResponse{Response: assistantBusy})
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(assistantResponse{Response: assistantBusy})
	}
	var up struct {
		Choices []struct {
			Message chatMessage `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &up); err != nil || len(up.Choices) == 0 {
		applog.Error(c, "assistant.upstream.decode", err, nil)
		return c.Status(fiber.StatusBadGateway).JSON(assistantResponse{Response: assistantBusy})
	}
	return c.JSON(assistantResponse{Response: up.Choices[0].Message.Content})
}
