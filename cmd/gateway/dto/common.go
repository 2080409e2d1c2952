package dto

// ErrorResponseDTO 는 에러 응답의 공통 형태다.
// 검증 실패일 때만 fields 에 필드별 메시지가 담긴다.
// swagger:model ErrorResponseDTO
type ErrorResponseDTO struct {
	Error  string              `json:"error"`
	Fields map[string][]string `json:"fields,omitempty"`
}

// MessageResponseDTO 는 본문이 필요 없는 성공 응답이다.
// swagger:model MessageResponseDTO
type MessageResponseDTO struct {
	Message string `json:"message"`
}

// ThemeDTO 는 UI 테마 설정이다. dark | light.
// swagger:model ThemeDTO
type ThemeDTO struct {
	Theme string `json:"theme"`
}

// SessionDTO 는 현재 세션 상태다. 토큰 자체는 절대 내려주지 않는다.
// swagger:model SessionDTO
type SessionDTO struct {
	SessionID     string `json:"session_id"`
	Authenticated bool   `json:"authenticated"`
}
