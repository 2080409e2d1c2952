package auth

import (
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"blog-canvas/cmd/internal/logger"
)

// Session 은 현재 뷰어의 베어러 토큰을 보관하는 세션 저장소다.
//
// 토큰 발급/갱신은 이 코어의 범위 밖이다(외부 로그인 플로우가 넣어준다).
// 여기서는 두 가지만 책임진다.
// - 업스트림 호출마다 토큰을 주입한다(httpclient.TokenProvider 구현).
// - 토큰이 JWT 면 exp 를 미리 확인해서, 만료된 자격으로 왕복하지 않게 한다.
type Session struct {
	mu    sync.RWMutex
	id    string
	token string
}

func NewSession() *Session {
	return &Session{id: uuid.NewString()}
}

// NewSessionFromEnv 는 BLOG_API_TOKEN 환경변수에서 초기 토큰을 읽는다.
// 비어 있으면 비로그인 상태로 시작한다(목록/상세 조회는 가능).
func NewSessionFromEnv() *Session {
	s := NewSession()
	if token := os.Getenv("BLOG_API_TOKEN"); token != "" {
		s.SetToken(token)
	}
	return s
}

// ID 는 로그 상관관계용 세션 식별자를 반환한다.
func (s *Session) ID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id
}

// SetToken 은 세션 토큰을 교체한다.
func (s *Session) SetToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	logger.InfoWithFields("session token updated", logger.Fields{"session_id": s.ID()})
}

// Clear 는 토큰을 비워 비로그인 상태로 만든다.
func (s *Session) Clear() {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
}

// Token 은 httpclient.TokenProvider 구현이다. 만료가 확실한 토큰은 비어 있는
// 것으로 취급해서 서버 왕복 없이 401 경로를 타게 한다.
func (s *Session) Token() string {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()

	if token == "" || s.expired(token) {
		return ""
	}
	return token
}

// Authenticated 는 뮤테이션 사전 조건이다. 토큰이 없거나 만료됐으면 false.
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// expired 는 JWT 의 exp 클레임만 확인한다. 서명 검증은 백엔드 소관이므로 하지
// 않고, JWT 형식이 아닌 불투명 토큰은 만료를 판단할 수 없으므로 유효로 본다.
func (s *Session) expired(token string) bool {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
