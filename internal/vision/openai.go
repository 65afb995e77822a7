// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// visionPrompt instructs the model to return the same field set the
// heuristic enhancer resolves, with the same placeholder conventions.
const visionPrompt = `Analyze this academic paper's first page and extract the following metadata:

1. Title: The main title of the paper (Chinese or English)
2. Authors: All author names (comma-separated, Chinese or English)
3. Year: Publication year (look for formats like 2009, 2009年, or 二○○九年)
4. Journal: Journal or periodical name
   - For Chinese journals, look for 《journal name》 format (e.g., 《二十一世紀》)
   - Extract ONLY the text between 《 and 》, do NOT include 網絡版, 網路版, or other suffixes
   - Also check headers/footers for consistent journal names
5. Volume: Journal volume number (look for 卷, Vol, Volume)
6. Issue: Journal issue number (look for 期, 總第X期, 第X期, No., Issue)
7. Pages: Page range (e.g., "123-145" or "71-79")

IMPORTANT for Chinese journals:
- If you see 《二十一世紀》網絡版, extract journal as "二十一世紀" (NOT "二十一世紀網絡版")
- If you see 總第84期, extract issue as "84"
- If you see 第12期, extract issue as "12"

Return ONLY a JSON object with these exact keys: title, authors, year, journal, volume, issue, pages
If any field is not found, use "Unknown" for text fields or "N/A" for numeric fields.`

const defaultBaseURL = "https://api.openai.com/v1"

// OpenAIBackend calls an OpenAI-compatible chat-completions endpoint with
// one page image. A single attempt, no retry: a failed call falls back to
// heuristic-only extraction, which is cheaper than a second round trip.
type OpenAIBackend struct {
	APIKey  string
	Model   string
	BaseURL string
	Client  *http.Client
}

// chatRequest is the request body for the chat completions API.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

// chatMessage carries mixed text and image content parts.
type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

// imageURL holds a data-URI image. Detail "low" keeps the call fast and
// cheap; first-page metadata does not need full resolution.
type imageURL struct {
	URL    string `json:"url"`
	Detail string `json:"detail,omitempty"`
}

// chatResponse is the subset of the response body we read.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ExtractPage submits the page image with the extraction prompt and
// parses the model's JSON answer.
func (b *OpenAIBackend) ExtractPage(ctx context.Context, jpeg []byte) (Fields, error) {
	dataURI := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(jpeg)

	reqBody := chatRequest{
		Model: b.Model,
		Messages: []chatMessage{
			{
				Role: "user",
				Content: []contentPart{
					{Type: "text", Text: visionPrompt},
					{Type: "image_url", ImageURL: &imageURL{URL: dataURI, Detail: "low"}},
				},
			},
		},
		MaxTokens:   300,
		Temperature: 0,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return Fields{}, fmt.Errorf("marshaling request: %w", err)
	}

	url := strings.TrimRight(b.BaseURL, "/")
	if url == "" {
		url = defaultBaseURL
	}
	url += "/chat/completions"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return Fields{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+b.APIKey)

	client := b.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return Fields{}, fmt.Errorf("calling vision API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return Fields{}, fmt.Errorf("vision API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var cResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cResp); err != nil {
		return Fields{}, fmt.Errorf("decoding vision response: %w", err)
	}
	if len(cResp.Choices) == 0 {
		return Fields{}, fmt.Errorf("vision API returned no choices")
	}

	var fields Fields
	raw := stripCodeFence(cResp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return Fields{}, fmt.Errorf("parsing vision response JSON: %w", err)
	}
	return fields, nil
}
