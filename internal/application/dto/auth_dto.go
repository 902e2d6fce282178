package dto

// LoginRequest credenciales de un usuario administrativo.
type LoginRequest struct {
	Usuario  string `json:"usuario"`
	Password string `json:"password"`
}

// RegisterRequest alta de usuario administrativo.
type RegisterRequest struct {
	Usuario  string `json:"usuario"`
	Password string `json:"password"`
	Rol      string `json:"rol"`
}

// UserResponse usuario sin campos sensibles.
type UserResponse struct {
	ID      string `json:"id"`
	Usuario string `json:"usuario"`
	Rol     string `json:"rol"`
	Activo  bool   `json:"activo"`
}

// LoginResponse token emitido y usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
