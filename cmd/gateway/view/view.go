package view

import (
	"sort"
	"strings"
	"time"

	"blog-canvas/models"
)

// 이 패키지는 캐노니컬 컬렉션 위의 읽기 전용 프로젝션을 만든다.
// 입력 슬라이스를 절대 변경하지 않고, 필터/정렬/페이지네이션이 적용된
// 새 슬라이스를 돌려준다. 상태를 가진 쓰기는 전부 store 쪽 책임이다.

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// 정렬 가능한 필드. 비어 있으면 캐노니컬 순서를 유지한다.
const (
	SortByCreatedAt = "created_at"
	SortByUpdatedAt = "updated_at"
	SortByTitle     = "title"
	SortByLikes     = "likes_count"
	SortByViews     = "views_count"
	SortByComments  = "comments_count"
)

// Filter 는 목록 프로젝션 구성이다. 모든 절은 AND 로 결합된다.
type Filter struct {
	// Search 는 제목/본문/작성자 표시 이름/카테고리 이름에 대해
	// 대소문자 무시 부분 일치로 검사한다.
	Search string

	// Category 는 카테고리 이름의 대소문자 무시 일치다.
	Category string

	// Tags 는 나열된 모든 태그를 가진 포스트만 통과시킨다.
	Tags []string

	// Author 는 username 또는 표시 이름과 대소문자 무시로 일치해야 한다.
	Author string

	// DateFrom/DateTo 는 created_at 범위다(zero value 는 무시).
	DateFrom time.Time
	DateTo   time.Time

	SortBy    string
	SortOrder SortOrder
}

// Apply 는 필터와 정렬을 적용한 파생 시퀀스를 반환한다.
//
// 정렬은 안정적이어야 한다. 키가 같은 포스트들의 상대 순서는 캐노니컬
// 순서와 같아야 하고, 그래야 입력 중 재정렬이 깜빡임으로 보이지 않는다.
func Apply(posts []models.Post, f Filter) []models.Post {
	out := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if matches(p, f) {
			out = append(out, p)
		}
	}

	if cmp := comparator(f.SortBy); cmp != nil {
		desc := f.SortOrder == SortDesc
		sort.SliceStable(out, func(i, j int) bool {
			if desc {
				return cmp(out[j], out[i])
			}
			return cmp(out[i], out[j])
		})
	}

	return out
}

func matches(p models.Post, f Filter) bool {
	if f.Search != "" && !matchesSearch(p, f.Search) {
		return false
	}
	if f.Category != "" && !strings.EqualFold(p.Category.Name, f.Category) {
		return false
	}
	for _, tag := range f.Tags {
		if !hasTagFold(p, tag) {
			return false
		}
	}
	if f.Author != "" &&
		!strings.EqualFold(p.Author.Username, f.Author) &&
		!strings.EqualFold(p.Author.DisplayName(), f.Author) {
		return false
	}
	if !f.DateFrom.IsZero() && p.CreatedAt.Before(f.DateFrom) {
		return false
	}
	if !f.DateTo.IsZero() && p.CreatedAt.After(f.DateTo) {
		return false
	}
	return true
}

func matchesSearch(p models.Post, needle string) bool {
	needle = strings.ToLower(needle)
	for _, hay := range []string{p.Title, p.Content, p.Author.DisplayName(), p.Author.Username, p.Category.Name} {
		if strings.Contains(strings.ToLower(hay), needle) {
			return true
		}
	}
	return false
}

func hasTagFold(p models.Post, name string) bool {
	for _, t := range p.Tags {
		if strings.EqualFold(t.Name, name) {
			return true
		}
	}
	return false
}

// comparator 는 오름차순 기준의 less 함수를 돌려준다. 모르는 필드는 nil.
func comparator(sortBy string) func(a, b models.Post) bool {
	switch sortBy {
	case SortByCreatedAt:
		return func(a, b models.Post) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case SortByUpdatedAt:
		return func(a, b models.Post) bool { return a.UpdatedAt.Before(b.UpdatedAt) }
	case SortByTitle:
		return func(a, b models.Post) bool {
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		}
	case SortByLikes:
		return func(a, b models.Post) bool { return a.LikesCount < b.LikesCount }
	case SortByViews:
		return func(a, b models.Post) bool { return a.ViewsCount < b.ViewsCount }
	case SortByComments:
		return func(a, b models.Post) bool { return a.CommentsCount < b.CommentsCount }
	default:
		return nil
	}
}

// Page 는 파생 시퀀스의 한 페이지다.
type Page struct {
	Posts    []models.Post
	Page     int
	PageSize int
	Total    int
}

// Paginate 는 1-based page 로 잘라낸다. 범위를 벗어나면 빈 페이지를 돌려준다.
func Paginate(posts []models.Post, page, pageSize int) Page {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	total := len(posts)

	if start >= total {
		return Page{Posts: []models.Post{}, Page: page, PageSize: pageSize, Total: total}
	}
	if end > total {
		end = total
	}
	return Page{Posts: posts[start:end], Page: page, PageSize: pageSize, Total: total}
}
