package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Backend BackendConfig `yaml:"backend"`
	UI      UIConfig      `yaml:"ui"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// BackendConfig 는 게이트웨이가 호출하는 업스트림 서비스 주소를 정의한다.
// BlogAPIBaseURL 은 블로그/댓글/AI REST 백엔드, RAGBaseURL 은 RAG 초안 생성 서비스다.
type BackendConfig struct {
	BlogAPIBaseURL string `yaml:"blog_api_base_url"`
	RAGBaseURL     string `yaml:"rag_base_url"`

	// TimeoutSeconds 는 업스트림 HTTP 호출 타임아웃이다. 0 이면 클라이언트 기본값(10초)을 사용한다.
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// UIConfig 는 프레젠테이션 계층의 동작 파라미터를 정의한다.
type UIConfig struct {
	// DefaultPageSize 는 목록 프로젝션의 기본 페이지 크기다.
	DefaultPageSize int `yaml:"default_page_size"`

	// SearchDebounceMillis 는 캐노니컬 목록 재동기화를 묶어서 처리하는 디바운스 간격이다.
	// 0 이하면 300ms 를 사용한다.
	SearchDebounceMillis int `yaml:"search_debounce_millis"`

	// ThemeFile 은 테마 설정을 저장하는 로컬 파일 이름이다. 베이스 경로 기준 상대 경로.
	ThemeFile string `yaml:"theme_file"`
}

var config *AppConfig

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	// load configuration file
	data, err := os.ReadFile(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err != nil {
		panic(err)
	}

	var c AppConfig
	err = yaml.Unmarshal(data, &c)
	if err != nil {
		panic(err)
	}
	config = &c
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
