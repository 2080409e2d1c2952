package models

import "strings"

// Profile 은 작성자 프로필의 부가 정보다. 백엔드가 비워서 내려줄 수 있다.
type Profile struct {
	Bio      string `json:"bio,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	Website  string `json:"website,omitempty"`
	Location string `json:"location,omitempty"`
}

type User struct {
	ID        int64    `json:"id"`
	Username  string   `json:"username"`
	Email     string   `json:"email,omitempty"`
	FirstName string   `json:"first_name,omitempty"`
	LastName  string   `json:"last_name,omitempty"`
	Profile   *Profile `json:"profile,omitempty"`
}

// DisplayName 은 화면 표시용 이름을 만든다. 이름이 비어 있으면 username 을 쓴다.
func (u User) DisplayName() string {
	full := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	if full != "" {
		return full
	}
	return u.Username
}
