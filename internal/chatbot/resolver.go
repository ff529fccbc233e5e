// internal/chatbot/resolver.go
package chatbot

import (
	"context"
	"errors"
	"strings"
	"time"

	"storebot/internal/catalog"
	apperrors "storebot/internal/common/errors"
	"storebot/internal/common/logger"
	"storebot/internal/common/metrics"
	"storebot/internal/common/observability"
	"storebot/internal/models"
)

// HistoryWriter persists conversation turns. Appends are best-effort from
// the resolver's perspective.
type HistoryWriter interface {
	Append(ctx context.Context, userID string, role models.TurnRole, message string) error
}

// Resolver is the chatbot core: it classifies a message, executes the
// matching catalog query, and composes the reply. It holds no mutable
// state between calls; every call reads fresh from the catalog.
type Resolver struct {
	config    *Config
	store     catalog.Store
	extractor IntentExtractor
	history   HistoryWriter
	logger    logger.Logger
	obs       *observability.Observability
}

func NewResolver(cfg *Config, store catalog.Store, extractor IntentExtractor, history HistoryWriter, log logger.Logger) *Resolver {
	if log == nil {
		log = logger.NewStructured("info", "json")
	}
	return &Resolver{
		config:    cfg,
		store:     store,
		extractor: extractor,
		history:   history,
		logger:    log.WithFields(map[string]interface{}{"component": "resolver"}),
	}
}

// WithObservability attaches OpenTelemetry instrumentation to the resolver.
func (r *Resolver) WithObservability(obs *observability.Observability) *Resolver {
	r.obs = obs
	return r
}

// Resolve is the public entry point invoked by the chat endpoint. userID
// may be empty, in which case no conversation history is written.
func (r *Resolver) Resolve(ctx context.Context, userID, message string) (*ResolutionResult, error) {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return nil, apperrors.NewEmptyMessageError()
	}

	start := time.Now()
	intent := r.extractor.Extract(ctx, trimmed)

	result, err := r.execute(ctx, intent)
	if err != nil {
		metrics.ChatRequestsTotal.WithLabelValues("error").Inc()
		if r.obs != nil {
			r.obs.RecordResolution(ctx, string(intent.Kind), "error")
		}
		r.logger.Error("resolution failed", map[string]interface{}{
			"intent": string(intent.Kind),
			"error":  err.Error(),
		})
		return nil, err
	}

	metrics.ChatRequestsTotal.WithLabelValues("ok").Inc()
	metrics.ChatResolutionsTotal.WithLabelValues(string(intent.Kind)).Inc()
	metrics.ChatRequestDuration.WithLabelValues(string(intent.Kind)).Observe(time.Since(start).Seconds())
	if r.obs != nil {
		r.obs.RecordResolution(ctx, string(intent.Kind), "ok")
		r.obs.RecordResolutionDuration(ctx, time.Since(start), string(intent.Kind))
	}

	r.appendHistory(userID, trimmed, result.ReplyText)

	return result, nil
}

func (r *Resolver) execute(ctx context.Context, intent Intent) (*ResolutionResult, error) {
	switch intent.Kind {
	case IntentProductInfo:
		return r.resolveProductInfo(ctx, intent)
	case IntentCategoryList:
		return r.resolveCategoryList(ctx, intent)
	case IntentSectionList:
		return r.resolveSectionList(ctx, intent)
	default:
		return r.resolveFallbackSearch(ctx, intent)
	}
}

func (r *Resolver) resolveProductInfo(ctx context.Context, intent Intent) (*ResolutionResult, error) {
	tokens := filterTokens(intent.ProductNameQuery)

	qctx, cancel := r.queryContext(ctx)
	defer cancel()

	product, err := r.store.FindByTitleTokensAll(qctx, tokens)
	if err != nil {
		return nil, r.mapStoreError(qctx, intent.Kind, err)
	}

	result := &ResolutionResult{
		ReplyText: composeProductInfo(intent, product),
		Products:  []models.ProductSummary{},
	}
	if product != nil {
		result.Products = []models.ProductSummary{*product}
	}
	return result, nil
}

func (r *Resolver) resolveCategoryList(ctx context.Context, intent Intent) (*ResolutionResult, error) {
	qctx, cancel := r.queryContext(ctx)
	defer cancel()

	products, err := r.store.FindByCategorySubstring(qctx, intent.Category, r.config.ListLimit)
	if err != nil {
		return nil, r.mapStoreError(qctx, intent.Kind, err)
	}
	products = capList(products, r.config.ListLimit)

	return &ResolutionResult{
		ReplyText: composeCategoryList(intent.Category, products),
		Products:  products,
	}, nil
}

func (r *Resolver) resolveSectionList(ctx context.Context, intent Intent) (*ResolutionResult, error) {
	qctx, cancel := r.queryContext(ctx)
	defer cancel()

	products, err := r.store.FindBySectionSubstring(qctx, intent.Section, r.config.ListLimit)
	if err != nil {
		return nil, r.mapStoreError(qctx, intent.Kind, err)
	}
	products = capList(products, r.config.ListLimit)

	return &ResolutionResult{
		ReplyText: composeSectionList(intent.Section, products),
		Products:  products,
	}, nil
}

func (r *Resolver) resolveFallbackSearch(ctx context.Context, intent Intent) (*ResolutionResult, error) {
	qctx, cancel := r.queryContext(ctx)
	defer cancel()

	products, err := r.store.SearchAnyField(qctx, intent.RawText, r.config.ListLimit)
	if err != nil {
		return nil, r.mapStoreError(qctx, intent.Kind, err)
	}
	products = capList(products, r.config.ListLimit)

	return &ResolutionResult{
		ReplyText: composeFallback(intent.RawText, products),
		Products:  products,
	}, nil
}

// queryContext bounds a single catalog read so a slow store cannot hold
// the request until the server-level deadline.
func (r *Resolver) queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.config.QueryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.config.QueryTimeout)
}

// mapStoreError classifies a failed catalog read. A read that ran out of
// time becomes a timeout error, a malformed query or result keeps its
// detail, and anything else means the store is unreachable.
func (r *Resolver) mapStoreError(ctx context.Context, kind IntentKind, err error) error {
	if ctx.Err() == context.DeadlineExceeded {
		return apperrors.NewCatalogTimeoutError(string(kind))
	}
	if errors.Is(err, catalog.ErrQueryFailed) {
		return apperrors.NewCatalogQueryFailedError(string(kind), err)
	}
	return apperrors.NewCatalogUnavailableError(err)
}

// appendHistory writes the user turn then the bot turn, fire-and-forget.
// Ordering holds within one call; concurrent calls for the same user may
// interleave, which is documented best effort. A failed append never
// affects the already-computed reply.
func (r *Resolver) appendHistory(userID, userMessage, botReply string) {
	if userID == "" || r.history == nil || !r.config.HistoryEnabled {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.config.HistoryTimeout)
		defer cancel()

		if err := r.history.Append(ctx, userID, models.RoleUser, userMessage); err != nil {
			metrics.ChatHistoryWriteFailures.Inc()
			r.logger.Warn("history append failed", map[string]interface{}{
				"role":  string(models.RoleUser),
				"error": apperrors.NewHistoryWriteFailedError(userID, err).Error(),
			})
		}
		if err := r.history.Append(ctx, userID, models.RoleBot, botReply); err != nil {
			metrics.ChatHistoryWriteFailures.Inc()
			r.logger.Warn("history append failed", map[string]interface{}{
				"role":  string(models.RoleBot),
				"error": apperrors.NewHistoryWriteFailedError(userID, err).Error(),
			})
		}
	}()
}

// filterTokens splits the product-name query on whitespace and drops
// single-character tokens to avoid single-letter false positives.
func filterTokens(query string) []string {
	tokens := []string{}
	for _, tok := range strings.Fields(query) {
		if len([]rune(tok)) > 1 {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

func capList(products []models.ProductSummary, limit int) []models.ProductSummary {
	if limit > 0 && len(products) > limit {
		return products[:limit]
	}
	if products == nil {
		return []models.ProductSummary{}
	}
	return products
}
