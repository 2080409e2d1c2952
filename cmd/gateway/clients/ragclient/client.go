package ragclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"blog-canvas/cmd/gateway/apierr"
	"blog-canvas/cmd/gateway/httpclient"
)

// Client 는 RAG 블로그 생성 서비스(FastAPI)를 호출하는 얇은 클라이언트다.
//
// 검색/임베딩/생성 로직은 전부 서비스 쪽에 있고, 여기서는 토픽을 보내고
// JSON 응답을 초안 형태로 다듬기만 한다.
type Client struct {
	base *httpclient.BaseClient
}

func New(baseURL string) *Client {
	return &Client{
		base: httpclient.NewBaseClient(baseURL),
	}
}

func NewWithHTTPClient(httpClient *http.Client, baseURL string) *Client {
	return &Client{
		base: httpclient.NewBaseClientWithClient(httpClient, baseURL),
	}
}

// GenerateParams 는 POST /generate-blog-post 요청 바디다.
// 기본값은 서비스 쪽 기본값과 맞춘다(style=informative, length=medium 등).
type GenerateParams struct {
	Topic          string `json:"topic"`
	Style          string `json:"style,omitempty"`
	Length         string `json:"length,omitempty"`
	TargetAudience string `json:"target_audience,omitempty"`
	NumContextDocs int    `json:"num_context_docs,omitempty"`
}

// RetrievedDoc 은 생성에 사용된 컨텍스트 문서 메타데이터다.
type RetrievedDoc struct {
	Title   string  `json:"title,omitempty"`
	Source  string  `json:"source,omitempty"`
	Content string  `json:"content,omitempty"`
	Score   float64 `json:"score,omitempty"`
}

type generateData struct {
	Topic          string         `json:"topic"`
	Content        string         `json:"content"`
	Style          string         `json:"style"`
	Length         string         `json:"length"`
	TargetAudience string         `json:"target_audience"`
	RetrievedDocs  []RetrievedDoc `json:"retrieved_docs"`
	UsingMock      bool           `json:"using_mock"`
	ContextSummary string         `json:"context_summary"`
}

type generateEnvelope struct {
	Success   bool         `json:"success"`
	Data      generateData `json:"data"`
	Timestamp string       `json:"timestamp"`
}

// Draft 는 RAG 응답을 에디터에 바로 넣을 수 있는 초안으로 재구성한 것이다.
type Draft struct {
	Title          string         `json:"title"`
	Content        string         `json:"content"`
	Tags           []string       `json:"tags"`
	Style          string         `json:"style"`
	TargetAudience string         `json:"target_audience"`
	Sources        []RetrievedDoc `json:"sources"`
	ContextSummary string         `json:"context_summary"`
	UsingMock      bool           `json:"using_mock"`
	GeneratedAt    time.Time      `json:"generated_at"`
}

// GenerateDraft 는 토픽으로 블로그 초안을 생성한다.
func (c *Client) GenerateDraft(ctx context.Context, params GenerateParams) (Draft, error) {
	buf, err := json.Marshal(params)
	if err != nil {
		return Draft{}, err
	}

	req, err := c.base.NewRequest(ctx, http.MethodPost, "/generate-blog-post", nil, bytes.NewReader(buf))
	if err != nil {
		return Draft{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.base.Do(req)
	if err != nil {
		return Draft{}, &apierr.NetworkError{Op: "POST /generate-blog-post", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Draft{}, apierr.FromResponse("rag GenerateDraft", resp)
	}

	var env generateEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return Draft{}, err
	}
	if !env.Success {
		return Draft{}, fmt.Errorf("rag GenerateDraft: service reported failure")
	}
	return reshapeDraft(env), nil
}

// reshapeDraft 는 서비스 응답을 초안으로 다듬는다.
// 제목은 토픽에서, 태그는 토픽 단어에서 만든다. 본문은 그대로 쓴다.
func reshapeDraft(env generateEnvelope) Draft {
	d := env.Data

	generatedAt := time.Now().UTC()
	if ts, err := time.Parse(time.RFC3339Nano, env.Timestamp); err == nil {
		generatedAt = ts
	}

	return Draft{
		Title:          titleFromTopic(d.Topic),
		Content:        d.Content,
		Tags:           tagsFromTopic(d.Topic),
		Style:          d.Style,
		TargetAudience: d.TargetAudience,
		Sources:        d.RetrievedDocs,
		ContextSummary: d.ContextSummary,
		UsingMock:      d.UsingMock,
		GeneratedAt:    generatedAt,
	}
}

func titleFromTopic(topic string) string {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return "Untitled draft"
	}
	words := strings.Fields(topic)
	for i, w := range words {
		r := []rune(w)
		if len(r) > 0 {
			words[i] = strings.ToUpper(string(r[0])) + string(r[1:])
		}
	}
	return strings.Join(words, " ")
}

func tagsFromTopic(topic string) []string {
	seen := map[string]struct{}{}
	var tags []string
	for _, w := range strings.Fields(strings.ToLower(topic)) {
		w = strings.Trim(w, ".,!?:;\"'()")
		if len(w) < 3 {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		tags = append(tags, w)
		if len(tags) == 5 {
			break
		}
	}
	return tags
}

// Status 는 GET /system-status 로 RAG 서비스 상태를 확인한다.
func (c *Client) Status(ctx context.Context) (map[string]any, error) {
	req, err := c.base.NewRequest(ctx, http.MethodGet, "/system-status", nil, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.base.Do(req)
	if err != nil {
		return nil, &apierr.NetworkError{Op: "GET /system-status", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apierr.FromResponse("rag Status", resp)
	}

	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}
