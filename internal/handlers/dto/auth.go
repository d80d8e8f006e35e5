package dto

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=30"`
	Fullname string `json:"fullname" binding:"required,min=2,max=100"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=30"`
	Fullname string `json:"fullname" binding:"required,min=2,max=100"`
	Password string `json:"password" binding:"required,min=6"`
	Avatar   string `json:"avatar" binding:"omitempty,url"`
}

type UpdateUserRequest struct {
	Username string `json:"username" binding:"omitempty,min=3,max=30"`
	Fullname string `json:"fullname" binding:"omitempty,min=2,max=100"`
	Password string `json:"password" binding:"omitempty,min=6"`
	Avatar   string `json:"avatar" binding:"omitempty,url"`
}
