package openai

import (
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// NewClient builds a client for the given key. An empty baseURL keeps the
// public endpoint; timeout bounds each request including the upload.
func NewClient(apiKey, baseURL string, timeout time.Duration) *openai.Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = strings.TrimRight(baseURL, "/")
	}
	if timeout > 0 {
		config.HTTPClient = &http.Client{Timeout: timeout}
	}
	return openai.NewClientWithConfig(config)
}
