package distribute

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"reelcast/internal/services"
)

const telegramAPIBase = "https://api.telegram.org"

// TelegramHandler delivers videos to a chat through the Bot API sendVideo
// method.
type TelegramHandler struct {
	baseURL string
	token   string
	chatID  string
	http    *http.Client
}

// NewTelegramHandler creates a handler for the given bot token and chat.
func NewTelegramHandler(token, chatID string) *TelegramHandler {
	return &TelegramHandler{
		baseURL: telegramAPIBase,
		token:   token,
		chatID:  chatID,
		http:    &http.Client{Timeout: 10 * time.Minute},
	}
}

// WithBaseURL overrides the API base URL (for testing).
func (h *TelegramHandler) WithBaseURL(base string) *TelegramHandler {
	h.baseURL = strings.TrimRight(base, "/")
	return h
}

func (h *TelegramHandler) Name() string { return "telegram" }

// Upload posts the video as a multipart sendVideo request.
func (h *TelegramHandler) Upload(ctx context.Context, req Request) error {
	if h.token == "" || h.chatID == "" {
		return services.Wrap(services.ErrConfiguration, "upload", h.Name(),
			"TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID must be set", nil)
	}

	file, err := os.Open(req.VideoPath)
	if err != nil {
		return services.Wrap(services.ErrNotFound, "upload", h.Name(), "open video", err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("chat_id", h.chatID); err != nil {
		return services.Wrap(services.ErrTransient, "upload", h.Name(), "encode request", err)
	}
	if req.Caption != "" {
		if err := writer.WriteField("caption", req.Caption); err != nil {
			return services.Wrap(services.ErrTransient, "upload", h.Name(), "encode request", err)
		}
	}
	part, err := writer.CreateFormFile("video", filepath.Base(req.VideoPath))
	if err != nil {
		return services.Wrap(services.ErrTransient, "upload", h.Name(), "encode request", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return services.Wrap(services.ErrTransient, "upload", h.Name(), "read video", err)
	}
	if err := writer.Close(); err != nil {
		return services.Wrap(services.ErrTransient, "upload", h.Name(), "encode request", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendVideo", h.baseURL, h.token)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return services.Wrap(services.ErrTransient, "upload", h.Name(), "build request", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := h.http.Do(httpReq)
	if err != nil {
		return services.Wrap(services.ErrTransient, "upload", h.Name(), "send video", err)
	}
	defer resp.Body.Close()

	var apiResp struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return services.Wrap(services.ErrTransient, "upload", h.Name(), "decode response", err)
	}
	if !apiResp.OK {
		return services.Wrap(services.ErrExternalTool, "upload", h.Name(),
			fmt.Sprintf("api returned %d: %s", resp.StatusCode, apiResp.Description), nil)
	}
	return nil
}
