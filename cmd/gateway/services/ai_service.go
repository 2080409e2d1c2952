package services

import (
	"context"
	"io"

	"blog-canvas/cmd/gateway/clients/aiclient"
	"blog-canvas/cmd/gateway/clients/ragclient"
	"blog-canvas/cmd/gateway/dto"
)

// AIService 는 AI 헬퍼(블로그 백엔드의 /ai)와 RAG 초안 생성 서비스를 묶는다.
type AIService struct {
	ai  *aiclient.Client
	rag *ragclient.Client
}

func NewAIService(ai *aiclient.Client, rag *ragclient.Client) *AIService {
	return &AIService{ai: ai, rag: rag}
}

func (s *AIService) GenerateText(ctx context.Context, prompt string) (dto.GeneratedTextDTO, error) {
	result, err := s.ai.GenerateText(ctx, prompt)
	if err != nil {
		return dto.GeneratedTextDTO{}, err
	}
	return dto.GeneratedTextDTO{
		ID:             result.ID,
		Content:        result.Content,
		ProcessingTime: result.ProcessingTime,
	}, nil
}

// AnalyzeImageInput 은 파일 업로드 또는 URL 둘 중 하나로 이미지를 지정한다.
type AnalyzeImageInput struct {
	FileName     string
	Reader       io.Reader
	ImageURL     string
	AnalysisType string
}

func (s *AIService) AnalyzeImage(ctx context.Context, in AnalyzeImageInput) (dto.ImageAnalysisDTO, error) {
	result, err := s.ai.AnalyzeImage(ctx, aiclient.ImageInput{
		FileName:     in.FileName,
		Reader:       in.Reader,
		ImageURL:     in.ImageURL,
		AnalysisType: in.AnalysisType,
	})
	if err != nil {
		return dto.ImageAnalysisDTO{}, err
	}
	return dto.ImageAnalysisDTO{
		ID:             result.ID,
		GeneratedText:  result.GeneratedText,
		AnalysisType:   result.AnalysisType,
		ImageURL:       result.ImageURL,
		ProcessingTime: result.ProcessingTime,
	}, nil
}

func (s *AIService) ProcessYouTube(ctx context.Context, youtubeURL string) (dto.YouTubeDTO, error) {
	result, err := s.ai.ProcessYouTube(ctx, youtubeURL)
	if err != nil {
		return dto.YouTubeDTO{}, err
	}
	return dto.YouTubeDTO{
		ID:             result.ID,
		BlogContent:    result.BlogContent,
		Transcript:     result.Transcript,
		ProcessingTime: result.ProcessingTime,
		Note:           result.Note,
	}, nil
}

func (s *AIService) GenerateVideoPlan(ctx context.Context, title, description string) (dto.VideoPlanDTO, error) {
	result, err := s.ai.GenerateVideoPlan(ctx, title, description)
	if err != nil {
		return dto.VideoPlanDTO{}, err
	}
	return dto.VideoPlanDTO{
		ID:             result.ID,
		Content:        result.Content,
		ProcessingTime: result.ProcessingTime,
	}, nil
}

func (s *AIService) History(ctx context.Context, contentType string) ([]dto.GenerationHistoryDTO, error) {
	items, err := s.ai.History(ctx, contentType)
	if err != nil {
		return nil, err
	}
	out := make([]dto.GenerationHistoryDTO, 0, len(items))
	for _, item := range items {
		out = append(out, dto.GenerationHistoryDTO{
			ID:             item.ID,
			ContentType:    item.ContentType,
			Prompt:         item.Prompt,
			Result:         item.Result,
			Success:        item.Success,
			ErrorMessage:   item.ErrorMessage,
			ProcessingTime: item.ProcessingTime,
			CreatedAt:      item.CreatedAt,
		})
	}
	return out, nil
}

func (s *AIService) Stats(ctx context.Context) (dto.GenerationStatsDTO, error) {
	stats, err := s.ai.Stats(ctx)
	if err != nil {
		return dto.GenerationStatsDTO{}, err
	}
	return dto.GenerationStatsDTO{
		TotalGenerations:      stats.TotalGenerations,
		SuccessfulGenerations: stats.SuccessfulGenerations,
		StatsByType:           stats.StatsByType,
	}, nil
}

// DraftInput 은 RAG 초안 생성 입력이다. Topic 만 필수다.
type DraftInput struct {
	Topic          string `json:"topic"`
	Style          string `json:"style"`
	Length         string `json:"length"`
	TargetAudience string `json:"target_audience"`
	NumContextDocs int    `json:"num_context_docs"`
}

func (s *AIService) GenerateDraft(ctx context.Context, in DraftInput) (dto.DraftDTO, error) {
	draft, err := s.rag.GenerateDraft(ctx, ragclient.GenerateParams{
		Topic:          in.Topic,
		Style:          in.Style,
		Length:         in.Length,
		TargetAudience: in.TargetAudience,
		NumContextDocs: in.NumContextDocs,
	})
	if err != nil {
		return dto.DraftDTO{}, err
	}
	return dto.NewDraftDTO(draft), nil
}
