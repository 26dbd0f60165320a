package model

type User struct {
	ID       string `json:"_id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     string `json:"role"` // "teacher", "student", "admin"
	Avatar   string `json:"avatar,omitempty"`
}
