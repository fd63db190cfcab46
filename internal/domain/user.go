package domain

type User struct {
	Id       UserId `json:"id"`
	Email    Email  `json:"email"`
	FullName string `json:"fullname"`
	// bcrypt digest, never serialized
	PassHash string `json:"-"`
}

type Credentials struct {
	Email    Email
	Password Password
}
