package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"webbuilder/internal/config"
	"webbuilder/internal/domain"
	applog "webbuilder/internal/log"
)

// ─────────────────────────────────────────────────────────────
// Preview Service: button clicks in preview mode
// ─────────────────────────────────────────────────────────────

var (
	ErrElementNotFound = errors.New("element not found on current page")
	ErrCallInFlight    = errors.New("a call for this button is already running")
)

const (
	apiResponsePrefix = "API Response:\n"
	apiErrorPrefix    = "API Error:\n"
	truncatedSuffix   = "\n[response truncated]"
)

// PreviewStore is the slice of the editor store a preview click needs.
type PreviewStore interface {
	FindElement(id string) *domain.Element
	SwitchPage(pageID string) bool
	State() *domain.State
}

// PreviewResult is what the preview view shows after a click. Fetch
// failures are reported here with IsError set, never as a Go error.
type PreviewResult struct {
	ElementID  string `json:"elementId"`
	SwitchedTo string `json:"switchedTo,omitempty"`
	Fetched    bool   `json:"fetched"`
	StatusCode int    `json:"statusCode,omitempty"`
	Body       string `json:"body,omitempty"`
	Truncated  bool   `json:"truncated,omitempty"` // body cut at preview.max_body_bytes
	IsError    bool   `json:"isError"`
	Message    string `json:"message,omitempty"`
}

type PreviewService struct {
	store   PreviewStore
	calls   domain.APICallStore
	mu      sync.RWMutex
	client  *http.Client
	limiter *rate.Limiter
	maxBody int64
	guard   inflightGuard
	log     *slog.Logger
}

// NewPreviewService builds the service. calls may be nil to skip the call
// log.
func NewPreviewService(store PreviewStore, calls domain.APICallStore, cfg config.PreviewConfig) *PreviewService {
	s := &PreviewService{
		store:   store,
		calls:   calls,
		client:  &http.Client{},
		limiter: rate.NewLimiter(rate.Inf, 1),
		log:     applog.WithComponent("preview"),
	}
	s.SetConfig(cfg)
	return s
}

// SetConfig applies new limits to subsequent clicks.
func (s *PreviewService) SetConfig(cfg config.PreviewConfig) {
	def := config.Defaults().Preview
	if cfg.RatePerSecond <= 0 {
		cfg.RatePerSecond = def.RatePerSecond
	}
	if cfg.Burst <= 0 {
		cfg.Burst = def.Burst
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = def.MaxBodyBytes
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.client = &http.Client{Timeout: cfg.Timeout()}
	s.limiter.SetLimit(rate.Limit(cfg.RatePerSecond))
	s.limiter.SetBurst(cfg.Burst)
	s.maxBody = cfg.MaxBodyBytes
}

// Click handles a button click: it follows linkToPageId first, then issues
// the GET to apiEndpoint. Non-button elements do nothing.
func (s *PreviewService) Click(ctx context.Context, elementID string) (PreviewResult, error) {
	el := s.store.FindElement(elementID)
	if el == nil {
		return PreviewResult{}, fmt.Errorf("preview click %s: %w", elementID, ErrElementNotFound)
	}
	res := PreviewResult{ElementID: elementID}
	if el.Type != domain.ElementTypeButton {
		return res, nil
	}

	pageID := s.store.State().CurrentPageID
	if el.LinkToPageID != "" && s.store.SwitchPage(el.LinkToPageID) {
		res.SwitchedTo = el.LinkToPageID
	}
	if el.APIEndpoint == "" {
		return res, nil
	}

	if !s.guard.TryLock(elementID) {
		return res, fmt.Errorf("preview click %s: %w", elementID, ErrCallInFlight)
	}
	defer s.guard.Unlock(elementID)

	res.Fetched = true
	start := time.Now()
	status, body, truncated, err := s.fetch(ctx, el.APIEndpoint)
	res.StatusCode = status
	res.Truncated = truncated
	call := &domain.APICall{
		ID:         uuid.NewString(),
		ElementID:  elementID,
		PageID:     pageID,
		Endpoint:   el.APIEndpoint,
		StatusCode: status,
		DurationMs: time.Since(start).Milliseconds(),
		CreatedAt:  start,
	}
	if err != nil {
		res.IsError = true
		res.Message = apiErrorPrefix + err.Error()
		call.IsError = true
		call.Error = err.Error()
		s.log.Warn("preview fetch failed", "element", elementID, "endpoint", el.APIEndpoint, "err", err)
	} else {
		res.Body = body
		res.Message = apiResponsePrefix + body
		if truncated {
			res.Message += truncatedSuffix
		}
		s.log.Info("preview fetch", "element", elementID, "endpoint", el.APIEndpoint, "status", status, "truncated", truncated)
	}
	s.record(call)
	return res, nil
}

// fetch GETs endpoint and returns at most maxBody bytes of the body. A
// truncated body is returned as is, without JSON formatting.
func (s *PreviewService) fetch(ctx context.Context, endpoint string) (int, string, bool, error) {
	s.mu.RLock()
	client, limiter, maxBody := s.client, s.limiter, s.maxBody
	s.mu.RUnlock()

	if err := limiter.Wait(ctx); err != nil {
		return 0, "", false, fmt.Errorf("rate limit: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, "", false, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, "", false, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody+1))
	if err != nil {
		return resp.StatusCode, "", false, fmt.Errorf("read response: %w", err)
	}
	if int64(len(raw)) > maxBody {
		return resp.StatusCode, string(raw[:maxBody]), true, nil
	}
	return resp.StatusCode, prettyJSON(raw), false, nil
}

// prettyJSON indents valid JSON by two spaces and returns anything else
// unchanged.
func prettyJSON(raw []byte) string {
	trimmed := bytes.TrimSpace(raw)
	if !json.Valid(trimmed) {
		return string(raw)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, trimmed, "", "  "); err != nil {
		return string(raw)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func (s *PreviewService) record(call *domain.APICall) {
	if s.calls == nil {
		return
	}
	if err := s.calls.CreateAPICall(call); err != nil {
		s.log.Error("record api call", "err", err)
	}
}

// RecentCalls returns the newest entries of the call log.
func (s *PreviewService) RecentCalls(limit int) ([]domain.APICall, error) {
	if s.calls == nil {
		return nil, nil
	}
	return s.calls.ListAPICalls(limit)
}

// Wait blocks until in-flight calls finish or ctx is done.
func (s *PreviewService) Wait(ctx context.Context) {
	s.guard.WaitAll(ctx)
}
