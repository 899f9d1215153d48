package request

type SignUpRequest struct {
	Username string `form:"username" json:"username,omitempty" validate:"notblank,max=80"`
	Password string `form:"password" json:"password,omitempty" validate:"required,maxbytes=72"`
}

type LoginRequest struct {
	Username string `form:"username" json:"username,omitempty" validate:"notblank,max=80"`
	Password string `form:"password" json:"password,omitempty" validate:"required,maxbytes=72"`
}

type TodoRequest struct {
	Title       string `form:"title" json:"title,omitempty" validate:"notblank,max=80"`
	Description string `form:"desc" json:"desc,omitempty" validate:"notblank"`
}
