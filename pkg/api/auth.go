package api

// SignupRequest представляет запрос на регистрацию нового аккаунта
type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SignupResponse представляет ответ на успешную регистрацию
type SignupResponse struct {
	UserID  string `json:"user_id"` // UUID аккаунта
	Message string `json:"message"`
}

// SigninRequest представляет запрос на аутентификацию
type SigninRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SessionResponse описывает состояние сессии
// AccessToken заполняется только при успешном signin
type SessionResponse struct {
	Expiration  *int64 `json:"expiration"` // unix time истечения токена
	Message     string `json:"message"`
	AccessToken string `json:"access_token,omitempty"`
	SignedIn    bool   `json:"signed_in"`
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // описание ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
}
