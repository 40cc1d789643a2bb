package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/GarageLog/garage-log-backend/logger"
	"github.com/GarageLog/garage-log-backend/types"
)

const openAIBaseURL = "https://api.openai.com/v1"

// ClientInterface defines the interface for vision extraction operations
type ClientInterface interface {
	ExtractVehicleEvent(ctx context.Context, req types.ExtractionRequest) (*types.ExtractionResponse, error)
}

type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiKey, model string, timeout time.Duration) *Client {
	return &Client{
		apiKey:     apiKey,
		model:      model,
		baseURL:    openAIBaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// NewClientWithBaseURL is used by tests to point the client at a stub server.
func NewClientWithBaseURL(apiKey, model, baseURL string, timeout time.Duration) *Client {
	c := NewClient(apiKey, model, timeout)
	c.baseURL = baseURL
	return c
}

const extractionSystemPrompt = `You are a vehicle maintenance record extractor. ` +
	`Given a photo of a receipt, dashboard, odometer, tire gauge, or other vehicle document, ` +
	`extract the relevant fields and respond with ONLY a JSON object of the shape: ` +
	`{"event_type": "<odometer|fuel|service|tire_tread|tire_pressure|trip|modification|dashboard_warning|document|parking|inspection|recall|car_wash|expense>", ` +
	`"confidence": <0-1>, "mileage": <integer or null>, "extracted_data": {<flat field map>}}. ` +
	`Use snake_case field names. Costs are plain numbers without currency symbols. ` +
	`Omit fields you cannot read rather than guessing.`

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	MaxTokens      int             `json:"max_tokens"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// modelPayload mirrors the JSON shape the system prompt asks the model for.
type modelPayload struct {
	EventType     string              `json:"event_type"`
	Confidence    float64             `json:"confidence"`
	Mileage       *int                `json:"mileage"`
	ExtractedData types.ExtractedData `json:"extracted_data"`
}

func (c *Client) ExtractVehicleEvent(ctx context.Context, req types.ExtractionRequest) (*types.ExtractionResponse, error) {
	log := logger.GetLogger()
	log.Debugw("Starting vision extraction", "hasPhoto", req.PhotoBase64 != "", "hasOCRText", req.OCRText != "", "typeHint", req.TypeHint)

	userParts := c.buildUserContent(req)

	body := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: []contentPart{{Type: "text", Text: extractionSystemPrompt}}},
			{Role: "user", Content: userParts},
		},
		MaxTokens:      1024,
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/chat/completions", c.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(payload))
	if err != nil {
		log.Errorw("Failed to create OpenAI request", "error", err)
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		log.Errorw("Failed to execute OpenAI request", "error", err)
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	log.Debugw("OpenAI response received", "statusCode", resp.StatusCode)

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := "unknown error"
		if chatResp.Error != nil {
			msg = chatResp.Error.Message
		}
		log.Warnw("OpenAI API returned non-OK status", "statusCode", resp.StatusCode, "message", msg)
		return nil, fmt.Errorf("openai API returned status %d: %s", resp.StatusCode, msg)
	}

	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("openai response contained no choices")
	}

	return parseModelContent(chatResp.Choices[0].Message.Content)
}

func (c *Client) buildUserContent(req types.ExtractionRequest) []contentPart {
	var parts []contentPart

	instruction := "Extract the vehicle event from this capture."
	if req.TypeHint != "" {
		instruction = fmt.Sprintf("Extract the vehicle event from this capture. The user believes it is a %q event.", req.TypeHint)
	}
	parts = append(parts, contentPart{Type: "text", Text: instruction})

	if req.OCRText != "" {
		parts = append(parts, contentPart{Type: "text", Text: "OCR text from the capture:\n" + req.OCRText})
	}
	if req.PhotoBase64 != "" {
		parts = append(parts, contentPart{
			Type:     "image_url",
			ImageURL: &imageURL{URL: "data:image/jpeg;base64," + req.PhotoBase64},
		})
	}
	return parts
}

// parseModelContent decodes the model's JSON answer. Models occasionally wrap
// JSON in markdown fences despite the response_format setting, so strip them
// before decoding.
func parseModelContent(content string) (*types.ExtractionResponse, error) {
	trimmed := strings.TrimSpace(content)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	var payload modelPayload
	if err := json.Unmarshal([]byte(trimmed), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse extraction payload: %w", err)
	}

	if payload.ExtractedData == nil {
		payload.ExtractedData = types.ExtractedData{}
	}
	if payload.Confidence < 0 {
		payload.Confidence = 0
	}
	if payload.Confidence > 1 {
		payload.Confidence = 1
	}

	return &types.ExtractionResponse{
		ExtractedData: payload.ExtractedData,
		SuggestedType: types.EventType(payload.EventType),
		Confidence:    payload.Confidence,
		Mileage:       payload.Mileage,
	}, nil
}
