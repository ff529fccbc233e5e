// internal/chatbot/genai.go
package chatbot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/xeipuuv/gojsonschema"

	httpclient "storebot/internal/common/http"
	"storebot/internal/common/logger"
	"storebot/internal/common/metrics"
)

var (
	ErrExtractionFailed  = errors.New("EXTRACTION_FAILED")
	ErrExtractionTimeout = errors.New("EXTRACTION_TIMEOUT")
)

// systemInstruction asks the hosted model for strict intent JSON and
// nothing else. The schema below rejects anything that drifts.
const systemInstruction = `You classify a shopper's message for a product catalog.
Reply with a single JSON object and no other text, shaped as:
{"intent": "product_info" | "category_list" | "section_list" | "fallback_search",
 "product_name": "<product name when intent is product_info>",
 "category": "<category when intent is category_list>",
 "section": "spotlight" | "trending" | "indemand" | "everybody",
 "fields": ["price", "description"]}
Omit fields that do not apply.`

const intentSchemaJSON = `{
  "type": "object",
  "properties": {
    "intent": {
      "type": "string",
      "enum": ["product_info", "category_list", "section_list", "fallback_search"]
    },
    "product_name": {"type": "string"},
    "category": {"type": "string"},
    "section": {
      "type": "string",
      "enum": ["spotlight", "trending", "indemand", "everybody"]
    },
    "fields": {
      "type": "array",
      "items": {"type": "string", "enum": ["price", "description"]}
    }
  },
  "required": ["intent"],
  "additionalProperties": true
}`

// intentPayload is the JSON shape the model is instructed to produce.
type intentPayload struct {
	Intent      string   `json:"intent"`
	ProductName string   `json:"product_name"`
	Category    string   `json:"category"`
	Section     string   `json:"section"`
	Fields      []string `json:"fields"`
}

// ModelExtractor delegates intent classification to a hosted
// text-generation endpoint. Every failure mode, whether a transport error,
// a timeout, a non-200 response, or unparsable or off-schema JSON, silently
// downgrades to the heuristic strategy; extraction never fails a chat
// request.
type ModelExtractor struct {
	config   *Config
	client   *httpclient.Client
	fallback *HeuristicExtractor
	schema   *gojsonschema.Schema
	logger   logger.Logger
}

func NewModelExtractor(cfg *Config, fallback *HeuristicExtractor, log logger.Logger) *ModelExtractor {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(intentSchemaJSON))
	if err != nil {
		// The schema is a compile-time constant; failing to parse it is a
		// programming error, not a runtime condition.
		panic(fmt.Sprintf("intent schema invalid: %v", err))
	}

	return &ModelExtractor{
		config: cfg,
		// No client-level timeout, the per-call context bounds the request.
		client:   httpclient.NewClient(0),
		fallback: fallback,
		schema:   schema,
		logger:   log.WithFields(map[string]interface{}{"component": "model-extractor"}),
	}
}

func (e *ModelExtractor) Extract(ctx context.Context, message string) Intent {
	intent, err := e.extract(ctx, message)
	if err != nil {
		metrics.ChatExtractionFallbacks.Inc()
		e.logger.Warn("model extraction failed, using heuristic strategy", map[string]interface{}{
			"error": err.Error(),
		})
		return e.fallback.Extract(ctx, message)
	}
	return intent
}

func (e *ModelExtractor) extract(ctx context.Context, message string) (Intent, error) {
	ctx, cancel := context.WithTimeout(ctx, e.config.GenAITimeout)
	defer cancel()

	requestBody := map[string]interface{}{
		"system":      systemInstruction,
		"prompt":      message,
		"temperature": 0,
	}

	body, _ := json.Marshal(requestBody)
	req, err := http.NewRequest("POST", e.config.GenAIBaseURL+"/api/ai/generate", bytes.NewBuffer(body))
	if err != nil {
		return Intent{}, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.config.GenAIAPIKey)

	// No retries: a single timeout-and-fallback is sufficient here.
	resp, err := e.client.DoWithContext(ctx, req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) ||
			errors.Is(err, context.Canceled) ||
			ctx.Err() != nil {
			return Intent{}, ErrExtractionTimeout
		}
		return Intent{}, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Intent{}, fmt.Errorf("%w: status %d", ErrExtractionFailed, resp.StatusCode)
	}

	var apiResponse struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return Intent{}, fmt.Errorf("%w: decode error: %v", ErrExtractionFailed, err)
	}

	payload, err := parseIntentJSON(e.schema, apiResponse.Text)
	if err != nil {
		return Intent{}, err
	}

	intent, err := payloadToIntent(payload, message)
	if err != nil {
		return Intent{}, err
	}

	e.logger.Info("intent extracted", map[string]interface{}{
		"intent": string(intent.Kind),
	})
	return intent, nil
}

// parseIntentJSON validates the model's raw text against the intent schema
// before trusting any of it.
func parseIntentJSON(schema *gojsonschema.Schema, raw string) (*intentPayload, error) {
	result, err := schema.Validate(gojsonschema.NewStringLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: malformed JSON: %v", ErrExtractionFailed, err)
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return nil, fmt.Errorf("%w: schema violations: %v", ErrExtractionFailed, details)
	}

	var payload intentPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("%w: unmarshal: %v", ErrExtractionFailed, err)
	}
	return &payload, nil
}

// payloadToIntent maps the validated payload onto an Intent, rejecting
// combinations that would leave the active variant without its parameter.
func payloadToIntent(payload *intentPayload, message string) (Intent, error) {
	fields := make([]Field, 0, len(payload.Fields))
	for _, f := range payload.Fields {
		switch Field(f) {
		case FieldPrice, FieldDescription:
			fields = append(fields, Field(f))
		}
	}

	switch IntentKind(payload.Intent) {
	case IntentProductInfo:
		if payload.ProductName == "" {
			return Intent{}, fmt.Errorf("%w: product_info without product_name", ErrExtractionFailed)
		}
		return Intent{
			Kind:             IntentProductInfo,
			ProductNameQuery: payload.ProductName,
			RequestedFields:  fields,
		}, nil
	case IntentCategoryList:
		if payload.Category == "" {
			return Intent{}, fmt.Errorf("%w: category_list without category", ErrExtractionFailed)
		}
		return Intent{Kind: IntentCategoryList, Category: payload.Category}, nil
	case IntentSectionList:
		if payload.Section == "" {
			return Intent{}, fmt.Errorf("%w: section_list without section", ErrExtractionFailed)
		}
		return Intent{Kind: IntentSectionList, Section: payload.Section}, nil
	case IntentFallbackSearch:
		return Intent{Kind: IntentFallbackSearch, RawText: message}, nil
	default:
		return Intent{}, fmt.Errorf("%w: unknown intent %q", ErrExtractionFailed, payload.Intent)
	}
}
