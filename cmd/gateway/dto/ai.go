package dto

import (
	"time"

	"blog-canvas/cmd/gateway/clients/ragclient"
)

// GeneratedTextDTO 는 텍스트 생성 결과다.
type GeneratedTextDTO struct {
	ID             int64   `json:"id"`
	Content        string  `json:"content"`
	ProcessingTime float64 `json:"processing_time"`
}

// ImageAnalysisDTO 는 이미지 → 텍스트 변환 결과다.
type ImageAnalysisDTO struct {
	ID             int64   `json:"id"`
	GeneratedText  string  `json:"generated_text"`
	AnalysisType   string  `json:"analysis_type"`
	ImageURL       string  `json:"image_url,omitempty"`
	ProcessingTime float64 `json:"processing_time"`
}

// YouTubeDTO 는 영상 URL → 블로그 본문 변환 결과다.
type YouTubeDTO struct {
	ID             int64   `json:"id"`
	BlogContent    string  `json:"blog_content"`
	Transcript     string  `json:"transcript,omitempty"`
	ProcessingTime float64 `json:"processing_time"`
	Note           string  `json:"note,omitempty"`
}

// VideoPlanDTO 는 영상 스크립트/프로덕션 노트 생성 결과다.
type VideoPlanDTO struct {
	ID             int64   `json:"id"`
	Content        string  `json:"content"`
	ProcessingTime float64 `json:"processing_time"`
}

// GenerationHistoryDTO 는 생성 이력 한 건이다.
type GenerationHistoryDTO struct {
	ID             int64     `json:"id"`
	ContentType    string    `json:"content_type"`
	Prompt         string    `json:"prompt"`
	Result         string    `json:"result"`
	Success        bool      `json:"success"`
	ErrorMessage   string    `json:"error_message,omitempty"`
	ProcessingTime float64   `json:"processing_time"`
	CreatedAt      time.Time `json:"created_at"`
}

// GenerationStatsDTO 는 생성 통계 요약이다.
type GenerationStatsDTO struct {
	TotalGenerations      int            `json:"total_generations"`
	SuccessfulGenerations int            `json:"successful_generations"`
	StatsByType           map[string]int `json:"stats_by_type"`
}

// DraftSourceDTO 는 초안 생성에 쓰인 컨텍스트 문서다.
type DraftSourceDTO struct {
	Title  string  `json:"title,omitempty"`
	Source string  `json:"source,omitempty"`
	Score  float64 `json:"score,omitempty"`
}

// DraftDTO 는 에디터에 바로 채울 수 있는 블로그 초안이다.
type DraftDTO struct {
	Title          string           `json:"title"`
	Content        string           `json:"content"`
	Tags           []string         `json:"tags"`
	Style          string           `json:"style,omitempty"`
	TargetAudience string           `json:"target_audience,omitempty"`
	Sources        []DraftSourceDTO `json:"sources,omitempty"`
	ContextSummary string           `json:"context_summary,omitempty"`
	UsingMock      bool             `json:"using_mock"`
	GeneratedAt    time.Time        `json:"generated_at"`
}

func NewDraftDTO(d ragclient.Draft) DraftDTO {
	sources := make([]DraftSourceDTO, 0, len(d.Sources))
	for _, s := range d.Sources {
		sources = append(sources, DraftSourceDTO{Title: s.Title, Source: s.Source, Score: s.Score})
	}
	return DraftDTO{
		Title:          d.Title,
		Content:        d.Content,
		Tags:           d.Tags,
		Style:          d.Style,
		TargetAudience: d.TargetAudience,
		Sources:        sources,
		ContextSummary: d.ContextSummary,
		UsingMock:      d.UsingMock,
		GeneratedAt:    d.GeneratedAt,
	}
}
