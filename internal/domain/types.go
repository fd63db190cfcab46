package domain

// Aliases to add more context
type (
	Email    = string
	Password = string
	UserId   = int64

	BoardId   = int64
	BoardName = string

	PostId    = int64
	PostTitle = string
	PostText  = string
)
