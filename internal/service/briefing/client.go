// Package briefing turns a finished analysis summary into executive prose via
// a local Ollama server. The model is a black-box collaborator: it receives a
// pre-rendered summary string plus the state table and returns text; any
// failure here is independent of the analysis core and never fatal.
package briefing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"WorldSim/internal/domain/models"
	"WorldSim/internal/service/ratelimit"
	xhttp "WorldSim/pkg/http"
)

const maxSummaryLines = 10

// Client calls the Ollama chat API and post-processes the output.
type Client struct {
	client    *xhttp.Client
	baseURL   string
	limiter   *ratelimit.Limiter
	maxPerMin float64
}

// New builds a briefing client against baseURL (e.g. http://127.0.0.1:11434).
func New(baseURL string, timeout time.Duration, maxPerMin int) *Client {
	if maxPerMin <= 0 {
		maxPerMin = 20
	}
	return &Client{
		client:    xhttp.NewClient(xhttp.WithTimeout(timeout)),
		baseURL:   strings.TrimRight(baseURL, "/"),
		limiter:   ratelimit.New(),
		maxPerMin: float64(maxPerMin),
	}
}

// Status reports whether the model server is reachable and which models it has.
type Status struct {
	OK      bool     `json:"ok"`
	BaseURL string   `json:"base_url"`
	Models  []string `json:"models"`
	Error   string   `json:"error,omitempty"`
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// Status probes the model server's tag list.
func (c *Client) Status(ctx context.Context) Status {
	status := Status{BaseURL: c.baseURL, Models: []string{}}
	var tags tagsResponse
	err := c.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/api/tags",
	}, &tags)
	if err != nil {
		status.Error = err.Error()
		return status
	}
	status.OK = true
	for _, m := range tags.Models {
		if m.Name != "" {
			status.Models = append(status.Models, m.Name)
		}
	}
	return status
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type chatResponse struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
}

// Analyze asks the model for an executive briefing over the summary text and
// state table, then compacts and sanitizes the output.
func (c *Client) Analyze(ctx context.Context, req models.BriefingRequest) (string, error) {
	if !c.limiter.Allow(req.Model, c.maxPerMin, c.maxPerMin/60.0) {
		return "", fmt.Errorf("briefing rate limit exceeded for model %s", req.Model)
	}

	allowed := make([]string, 0, len(req.StateTable))
	for _, row := range req.StateTable {
		if s := strings.TrimSpace(row.State); s != "" {
			allowed = append(allowed, s)
		}
	}

	var resp chatResponse
	err := c.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    c.baseURL + "/api/chat",
		Body: chatRequest{
			Model: req.Model,
			Messages: []chatMessage{
				{
					Role: "system",
					Content: "Output must be summary-style and max 10 lines. " +
						"Prefer one insight per line. Reference states and numbers.",
				},
				{Role: "user", Content: buildPrompt(req, allowed)},
			},
			Stream: false,
		},
	}, &resp)
	if err != nil {
		return "", fmt.Errorf("ollama chat: %w", err)
	}

	text := SanitizeStateMentions(resp.Message.Content, allowed)
	return CompactSummary(text, maxSummaryLines), nil
}

func buildPrompt(req models.BriefingRequest, allowed []string) string {
	allowedText := "No state list provided"
	if len(allowed) > 0 {
		allowedText = strings.Join(allowed, ", ")
	}

	var table strings.Builder
	limit := len(req.StateTable)
	if limit > 10 {
		limit = 10
	}
	for _, row := range req.StateTable[:limit] {
		fmt.Fprintf(&table, "- %s: pop=%.1f, welfare=%.4f, GDP_growth=%.2f, strategy=%s\n",
			row.State, row.Population, row.WelfareIndex, row.GDPGrowthRate, row.DominantStrategy)
	}

	return fmt.Sprintf(
		"You are an Indian resource and economic strategy analyst.\n"+
			"Return ONLY a concise executive summary in at most 10 lines.\n"+
			"Use short, insight-dense lines with state-specific evidence when possible.\n"+
			"ONLY mention states from the allowed list below. If uncertain, use 'other states'.\n"+
			"Do not include long paragraphs.\n\n"+
			"Allowed states:\n%s\n\n"+
			"Summary:\n%s\n\n"+
			"State data:\n%s",
		allowedText, req.Summary, table.String(),
	)
}
