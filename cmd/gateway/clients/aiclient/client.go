package aiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"blog-canvas/cmd/gateway/apierr"
	"blog-canvas/cmd/gateway/httpclient"
	"blog-canvas/models"
)

// Client 는 백엔드의 AI 헬퍼 엔드포인트(/ai/*)를 호출하는 얇은 클라이언트다.
//
// 생성 파이프라인(모델, 프롬프트 구성, 과금)은 전부 백엔드 소유라서 이 클라이언트는
// 프롬프트를 넣고 결과를 받는 것 이상을 알지 않는다. 모든 호출은 인증이 필요하다.
type Client struct {
	base *httpclient.BaseClient
}

func New(baseURL string, tokens httpclient.TokenProvider) *Client {
	return &Client{
		base: httpclient.NewBaseClient(baseURL).WithTokens(tokens),
	}
}

func NewWithHTTPClient(httpClient *http.Client, baseURL string, tokens httpclient.TokenProvider) *Client {
	return &Client{
		base: httpclient.NewBaseClientWithClient(httpClient, baseURL).WithTokens(tokens),
	}
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.base.Do(req)
	if err != nil {
		return nil, &apierr.NetworkError{Op: req.Method + " " + req.URL.Path, Err: err}
	}
	return resp, nil
}

func (c *Client) postJSON(ctx context.Context, relPath string, body any, out any, op string) error {
	buf, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := c.base.NewRequest(ctx, http.MethodPost, relPath, nil, bytes.NewReader(buf))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apierr.FromResponse("ai "+op, resp)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// -------------------- Text --------------------

type TextResult struct {
	ID             int64   `json:"id"`
	Content        string  `json:"content"`
	ProcessingTime float64 `json:"processing_time"`
}

// GenerateText 는 POST /ai/text/ 로 본문 텍스트를 생성한다.
func (c *Client) GenerateText(ctx context.Context, prompt string) (TextResult, error) {
	var out TextResult
	err := c.postJSON(ctx, "/ai/text/", map[string]string{"prompt": prompt}, &out, "GenerateText")
	return out, err
}

// -------------------- Image --------------------

type ImageResult struct {
	ID             int64   `json:"id"`
	GeneratedText  string  `json:"generated_text"`
	AnalysisType   string  `json:"analysis_type"`
	ImageURL       string  `json:"image_url"`
	ProcessingTime float64 `json:"processing_time"`
}

// ImageInput 은 이미지를 파일로 올리거나 URL 로 넘길 수 있다. 둘 중 하나는 필수다.
type ImageInput struct {
	FileName     string
	Reader       io.Reader
	ImageURL     string
	AnalysisType string // description | blog_content | alt_text
}

// AnalyzeImage 는 POST /ai/image/ 로 이미지에서 텍스트를 생성한다(image-to-text).
func (c *Client) AnalyzeImage(ctx context.Context, in ImageInput) (ImageResult, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	if in.Reader != nil {
		fw, err := w.CreateFormFile("image", in.FileName)
		if err != nil {
			return ImageResult{}, err
		}
		if _, err := io.Copy(fw, in.Reader); err != nil {
			return ImageResult{}, err
		}
	}
	if in.ImageURL != "" {
		if err := w.WriteField("image_url", in.ImageURL); err != nil {
			return ImageResult{}, err
		}
	}
	if in.AnalysisType != "" {
		if err := w.WriteField("analysis_type", in.AnalysisType); err != nil {
			return ImageResult{}, err
		}
	}
	if err := w.Close(); err != nil {
		return ImageResult{}, err
	}

	req, err := c.base.NewRequest(ctx, http.MethodPost, "/ai/image/", nil, buf)
	if err != nil {
		return ImageResult{}, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.do(req)
	if err != nil {
		return ImageResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ImageResult{}, apierr.FromResponse("ai AnalyzeImage", resp)
	}

	var out ImageResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return ImageResult{}, err
	}
	return out, nil
}

// -------------------- YouTube / Video --------------------

type YouTubeResult struct {
	ID             int64   `json:"id"`
	BlogContent    string  `json:"blog_content"`
	Transcript     string  `json:"transcript"`
	ProcessingTime float64 `json:"processing_time"`
	Note           string  `json:"note,omitempty"`
}

// ProcessYouTube 는 POST /ai/youtube/ 로 영상 URL 을 블로그 본문으로 변환한다.
func (c *Client) ProcessYouTube(ctx context.Context, youtubeURL string) (YouTubeResult, error) {
	var out YouTubeResult
	err := c.postJSON(ctx, "/ai/youtube/", map[string]string{"youtube_url": youtubeURL}, &out, "ProcessYouTube")
	return out, err
}

type VideoResult struct {
	ID             int64   `json:"id"`
	Content        string  `json:"content"`
	ProcessingTime float64 `json:"processing_time"`
}

// GenerateVideoPlan 은 POST /ai/video/ 로 영상 스크립트/프로덕션 노트를 생성한다.
func (c *Client) GenerateVideoPlan(ctx context.Context, title, description string) (VideoResult, error) {
	var out VideoResult
	err := c.postJSON(ctx, "/ai/video/", map[string]string{
		"title":       title,
		"description": description,
	}, &out, "GenerateVideoPlan")
	return out, err
}

// -------------------- History / Stats --------------------

type HistoryItem struct {
	ID             int64          `json:"id"`
	User           models.User    `json:"user"`
	ContentType    string         `json:"content_type"`
	Prompt         string         `json:"prompt"`
	Result         string         `json:"result"`
	FilePath       string         `json:"file_path,omitempty"`
	Metadata       map[string]any `json:"metadata,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	ProcessingTime float64        `json:"processing_time"`
	Success        bool           `json:"success"`
	ErrorMessage   string         `json:"error_message,omitempty"`
}

// History 는 GET /ai/history/ 로 최근 생성 이력을 가져온다. contentType 이 비어
// 있지 않으면 type 쿼리로 필터링한다.
func (c *Client) History(ctx context.Context, contentType string) ([]HistoryItem, error) {
	var q url.Values
	if contentType != "" {
		q = url.Values{}
		q.Set("type", contentType)
	}
	req, err := c.base.NewRequest(ctx, http.MethodGet, "/ai/history/", q, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apierr.FromResponse("ai History", resp)
	}

	var out []HistoryItem
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

type Stats struct {
	TotalGenerations      int            `json:"total_generations"`
	SuccessfulGenerations int            `json:"successful_generations"`
	StatsByType           map[string]int `json:"stats_by_type"`
}

// Stats 는 GET /ai/stats/ 로 생성 통계를 가져온다.
func (c *Client) Stats(ctx context.Context) (Stats, error) {
	req, err := c.base.NewRequest(ctx, http.MethodGet, "/ai/stats/", nil, nil)
	if err != nil {
		return Stats{}, err
	}

	resp, err := c.do(req)
	if err != nil {
		return Stats{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Stats{}, apierr.FromResponse("ai Stats", resp)
	}

	var out Stats
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Stats{}, err
	}
	return out, nil
}
