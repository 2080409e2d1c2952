// Package apierr 는 업스트림 호출 에러의 공통 분류를 정의한다.
// 모든 업스트림 클라이언트(blogclient, aiclient, ragclient)가 같은 분류를
// 반환하므로 호출자는 출처와 무관하게 errors.Is / errors.As 로 처리한다.
package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
)

var (
	// ErrUnauthorized 는 토큰이 없거나 만료된 경우다. "로그인이 필요합니다"로
	// 안내해야 하며 자동 재시도 대상이 아니다.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden 은 인증은 됐지만 권한이 없는 경우다(남의 글 수정 등).
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound 는 slug/id 가 더 이상 유효하지 않은 경우다.
	ErrNotFound = errors.New("resource not found")
)

// ValidationError 는 생성/수정 요청의 400 응답에서 내려오는 필드별 메시지를 담는다.
// 폼이 필드별 표시를 지원하면 Fields 를 그대로 쓰고, 아니면 Error() 문자열을 쓴다.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e.Fields[k], "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// NetworkError 는 요청이 서버에 도달하지 못한 경우다. NotFound/ValidationError 와
// 구분해서 "연결을 확인하세요"로 안내할 수 있게 한다.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// FromResponse 는 2xx 가 아닌 응답의 상태 코드를 에러 분류로 매핑한다.
// 매핑되지 않는 코드는 op/상태/바디 일부를 담은 일반 에러가 된다.
func FromResponse(op string, resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest:
		return ParseValidationBody(resp.Body)
	default:
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("%s: status=%d body=%s", op, resp.StatusCode, strings.TrimSpace(string(b)))
	}
}

// ParseValidationBody 는 DRF 스타일 400 바디를 필드별 메시지 맵으로 푼다.
// 값이 문자열 하나인 경우와 문자열 배열인 경우를 모두 허용한다.
func ParseValidationBody(r io.Reader) *ValidationError {
	out := &ValidationError{Fields: map[string][]string{}}

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(io.LimitReader(r, 8192)).Decode(&raw); err != nil {
		return out
	}
	for field, msg := range raw {
		var many []string
		if err := json.Unmarshal(msg, &many); err == nil {
			out.Fields[field] = many
			continue
		}
		var one string
		if err := json.Unmarshal(msg, &one); err == nil {
			out.Fields[field] = []string{one}
			continue
		}
		out.Fields[field] = []string{string(msg)}
	}
	return out
}
