package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"

	"github.com/dohr-michael/fathom/internal/config"
)

// WebFetchTool fetches a URL and returns its text content, so the agent can
// read full pages found via web_search.
type WebFetchTool struct {
	client    *http.Client
	maxBodyKB int
	userAgent string
}

// NewWebFetchTool creates the get_webpage_content tool with the given config.
func NewWebFetchTool(cfg config.WebFetchConfig) *WebFetchTool {
	timeout := 30 * time.Second
	if cfg.Timeout != "" {
		if d, err := time.ParseDuration(cfg.Timeout); err == nil {
			timeout = d
		}
	}

	maxBody := cfg.MaxBodyKB
	if maxBody <= 0 {
		maxBody = 512
	}

	ua := cfg.UserAgent
	if ua == "" {
		ua = "Fathom/1.0 (get_webpage_content)"
	}

	return &WebFetchTool{
		client:    &http.Client{Timeout: timeout},
		maxBodyKB: maxBody,
		userAgent: ua,
	}
}

type webFetchInput struct {
	URL    string `json:"url"`
	Prompt string `json:"prompt,omitempty"`
}

type webFetchOutput struct {
	URL     string `json:"url"`
	Status  int    `json:"status"`
	Content string `json:"content"`
}

// Info returns the tool info for Eino registration.
func (t *WebFetchTool) Info(_ context.Context) (*schema.ToolInfo, error) {
	return &schema.ToolInfo{
		Name: "get_webpage_content",
		Desc: "Fetch a URL and return its text content. HTTP URLs are auto-upgraded to HTTPS. " +
			"Content is truncated to the configured max size.",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"url": {
				Type:     schema.String,
				Desc:     "The URL to fetch",
				Required: true,
			},
			"prompt": {
				Type: schema.String,
				Desc: "Optional description of what information to look for on the page",
			},
		}),
	}, nil
}

// InvokableRun fetches a URL and extracts text content.
func (t *WebFetchTool) InvokableRun(ctx context.Context, argumentsInJSON string, _ ...tool.Option) (string, error) {
	var input webFetchInput
	if err := json.Unmarshal([]byte(argumentsInJSON), &input); err != nil {
		return "", fmt.Errorf("get_webpage_content: parse input: %w", err)
	}
	if input.URL == "" {
		return "", fmt.Errorf("get_webpage_content: url is required")
	}

	// Upgrade http to https
	url := input.URL
	if strings.HasPrefix(url, "http://") {
		url = "https://" + strings.TrimPrefix(url, "http://")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("get_webpage_content: create request: %w", err)
	}
	req.Header.Set("User-Agent", t.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,text/plain,*/*")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("get_webpage_content: %w", err)
	}
	defer resp.Body.Close()

	maxBytes := int64(t.maxBodyKB) * 1024
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes))
	if err != nil {
		return "", fmt.Errorf("get_webpage_content: read body: %w", err)
	}

	content := extractText(string(body))
	if len(content) > int(maxBytes) {
		content = content[:maxBytes]
	}

	result := webFetchOutput{
		URL:     url,
		Status:  resp.StatusCode,
		Content: content,
	}

	out, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("get_webpage_content: marshal result: %w", err)
	}
	return string(out), nil
}

// extractText strips HTML tags and returns plain text.
// Simple state-machine approach — no external dependency needed.
func extractText(html string) string {
	var sb strings.Builder
	sb.Grow(len(html) / 2)

	inTag := false
	inScript := false
	inStyle := false
	lastSpace := true

	lower := strings.ToLower(html)

	for i := 0; i < len(html); {
		r, size := utf8.DecodeRuneInString(html[i:])

		if inScript {
			if i+9 <= len(lower) && lower[i:i+9] == "</script>" {
				inScript = false
				i += 9
				continue
			}
			i += size
			continue
		}
		if inStyle {
			if i+8 <= len(lower) && lower[i:i+8] == "</style>" {
				inStyle = false
				i += 8
				continue
			}
			i += size
			continue
		}

		if r == '<' {
			rest := lower[i:]
			if strings.HasPrefix(rest, "<script") {
				inScript = true
			} else if strings.HasPrefix(rest, "<style") {
				inStyle = true
			}
			inTag = true

			// Block-level tags → newline
			if len(rest) > 1 {
				tag := rest[1:]
				for _, bt := range []string{"p>", "p ", "div>", "div ", "br>", "br/>", "br />",
					"h1>", "h1 ", "h2>", "h2 ", "h3>", "h3 ", "h4>", "h4 ",
					"li>", "li ", "tr>", "tr ", "td>", "td "} {
					if strings.HasPrefix(tag, bt) || strings.HasPrefix(tag, "/"+bt[:len(bt)-1]) {
						if !lastSpace {
							sb.WriteByte('\n')
							lastSpace = true
						}
						break
					}
				}
			}

			i += size
			continue
		}

		if r == '>' {
			inTag = false
			i += size
			continue
		}

		if inTag {
			i += size
			continue
		}

		// HTML entities
		if r == '&' {
			end := strings.IndexByte(html[i:], ';')
			if end > 0 && end < 10 {
				entity := html[i : i+end+1]
				switch entity {
				case "&nbsp;", "&#160;":
					sb.WriteByte(' ')
				case "&amp;":
					sb.WriteByte('&')
				case "&lt;":
					sb.WriteByte('<')
				case "&gt;":
					sb.WriteByte('>')
				case "&quot;":
					sb.WriteByte('"')
				default:
					sb.WriteString(entity)
				}
				lastSpace = false
				i += end + 1
				continue
			}
		}

		// Collapse whitespace
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			if !lastSpace {
				sb.WriteByte(' ')
				lastSpace = true
			}
			i += size
			continue
		}

		sb.WriteRune(r)
		lastSpace = false
		i += size
	}

	return strings.TrimSpace(sb.String())
}
