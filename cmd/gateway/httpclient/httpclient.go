package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"blog-canvas/cmd/gateway/trace"
	"blog-canvas/cmd/internal/logger"
)

// Config 는 HTTP 클라이언트 공통 설정을 캡슐화한다.
type Config struct {
	Timeout time.Duration
}

// TokenProvider 는 요청 시점에 베어러 토큰을 공급한다.
// 빈 문자열을 반환하면 Authorization 헤더를 붙이지 않는다.
// 세션 저장소가 이 인터페이스를 구현하며, 클라이언트 자신은 토큰을 보관하지 않는다.
type TokenProvider interface {
	Token() string
}

// loggingRoundTripper 는 모든 아웃바운드 HTTP 호출에 대해 공통 로깅과
// X-Request-Id 헤더 트레이싱을 수행한다.
type loggingRoundTripper struct {
	inner http.RoundTripper
}

func (l *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	ctx := req.Context()
	requestID, spanID := trace.NextSpanID(ctx)
	if requestID == "" {
		// 미들웨어 바깥에서 사용된 경우를 대비한 안전장치
		requestID = req.Header.Get("X-Request-Id")
		if requestID == "" {
			requestID = trace.GenerateID()
		}
		if spanID == "" {
			spanID = "1"
		}
	}
	req.Header.Set("X-Request-Id", requestID)
	req.Header.Set("X-Span-Id", spanID)

	query := ""
	if req.URL != nil {
		query = req.URL.RawQuery
	}

	resp, err := l.inner.RoundTrip(req)
	duration := time.Since(start)
	if err != nil {
		logger.ErrorWithFields("httpclient request failed", logger.Fields{
			"method":     req.Method,
			"url":        req.URL.String(),
			"query":      query,
			"duration":   duration.String(),
			"request_id": requestID,
			"span_id":    spanID,
			"error":      err.Error(),
		})
		return nil, err
	}

	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	logger.DebugWithFields("httpclient request success", logger.Fields{
		"method":     req.Method,
		"url":        req.URL.String(),
		"query":      query,
		"status":     status,
		"duration":   duration.String(),
		"request_id": requestID,
		"span_id":    spanID,
	})
	return resp, nil
}

// BaseClient 는 공통 http.Client 와 baseURL, 토큰 주입을 묶어서
// 업스트림별 얇은 클라이언트들이 요청을 만들 때 사용한다.
type BaseClient struct {
	HTTPClient *http.Client
	BaseURL    string
	Tokens     TokenProvider
}

// NewBaseClient 는 주어진 baseURL과 기본 설정의 http.Client(logging 포함)를 사용해 BaseClient 를 생성한다.
func NewBaseClient(baseURL string) *BaseClient {
	return &BaseClient{
		HTTPClient: NewDefault(),
		BaseURL:    baseURL,
	}
}

// NewBaseClientWithClient 는 이미 생성된 http.Client 를 사용하는 BaseClient 를 생성한다.
// httpClient 가 nil 이면 기본 클라이언트를 사용한다.
func NewBaseClientWithClient(httpClient *http.Client, baseURL string) *BaseClient {
	if httpClient == nil {
		httpClient = NewDefault()
	}
	return &BaseClient{
		HTTPClient: httpClient,
		BaseURL:    baseURL,
	}
}

// WithTokens 는 요청마다 베어러 토큰을 주입할 TokenProvider 를 지정한다.
func (c *BaseClient) WithTokens(tp TokenProvider) *BaseClient {
	c.Tokens = tp
	return c
}

// NewRequest 는 baseURL과 상대 경로, 쿼리, 바디로 새로운 HTTP 요청을 생성한다.
// relPath 는 "/blogs/..." 형태의 경로를 기대하며, 쿼리는 반드시 query 인자로 전달해야 한다.
// relPath 에 쿼리(?)가 포함되면 path.Join 이 손상시키므로 에러를 반환한다.
func (c *BaseClient) NewRequest(ctx context.Context, method, relPath string, query url.Values, body io.Reader) (*http.Request, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if strings.Contains(relPath, "?") {
		return nil, fmt.Errorf("httpclient: relPath must not contain query string (use query parameter instead): %s", relPath)
	}
	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, err
	}
	if relPath != "" {
		base.Path = path.Join(base.Path, relPath)
		// Django 스타일 엔드포인트는 trailing slash 를 요구한다. path.Join 이 지워버리므로 복원한다.
		if strings.HasSuffix(relPath, "/") && !strings.HasSuffix(base.Path, "/") {
			base.Path += "/"
		}
	}
	if query != nil {
		base.RawQuery = query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, base.String(), body)
	if err != nil {
		return nil, err
	}
	if c.Tokens != nil {
		if token := c.Tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return req, nil
}

// Do 는 내부 HTTP 클라이언트를 사용해 요청을 실행한다.
func (c *BaseClient) Do(req *http.Request) (*http.Response, error) {
	return c.HTTPClient.Do(req)
}

// New 는 주어진 설정으로 http.Client 를 생성한다. Timeout 이 0이면 기본값 10초를 사용한다.
func New(cfg Config) *http.Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	transport := http.DefaultTransport
	return &http.Client{
		Timeout:   timeout,
		Transport: &loggingRoundTripper{inner: transport},
	}
}

// NewDefault 는 공통 기본 설정(Timeout 10초)을 사용하는 http.Client 를 생성한다.
func NewDefault() *http.Client {
	return New(Config{})
}
