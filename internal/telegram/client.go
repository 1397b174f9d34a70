// Package telegram uploads rendered documents to a chat through the
// Telegram bot API. One synchronous attempt per call, no retries.
package telegram

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

const defaultBaseURL = "https://api.telegram.org"

// Client posts documents to a configured chat via a bot token.
type Client struct {
	BaseURL    string
	Token      string
	ChatID     string
	HTTPClient *http.Client
}

// NewClient creates a Client with a bounded request timeout.
func NewClient(token, chatID string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: defaultBaseURL,
		Token:   token,
		ChatID:  chatID,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SendDocument uploads the file at filePath as a document attachment to the
// configured chat. It reports success only for an HTTP 200 response; a
// non-200 status is returned as (false, nil) so callers can distinguish a
// rejected upload from a transport failure.
func (c *Client) SendDocument(ctx context.Context, filePath string) (bool, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return false, fmt.Errorf("failed to open document: %w", err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("chat_id", c.ChatID); err != nil {
		return false, fmt.Errorf("failed to write chat_id field: %w", err)
	}
	part, err := writer.CreateFormFile("document", filepath.Base(filePath))
	if err != nil {
		return false, fmt.Errorf("failed to create document part: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return false, fmt.Errorf("failed to read document: %w", err)
	}
	if err := writer.Close(); err != nil {
		return false, fmt.Errorf("failed to finish multipart body: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendDocument", c.BaseURL, c.Token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode == http.StatusOK, nil
}
