package entity

// Session — процессная заглушка аутентификации: имя доверяется как
// есть, никакой криптографии по контракту нет.
type Session struct {
	IsLoggedIn bool   `json:"is_logged_in"`
	UserName   string `json:"user_name"`
}
