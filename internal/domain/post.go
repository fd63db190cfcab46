package domain

import "time"

// to iterate thru layers: handler -> service -> storage
type PostCreationData struct {
	Board   BoardId
	Title   PostTitle
	Content PostText
	Owner   UserId
}

type PostUpdateData struct {
	Id      PostId
	Title   PostTitle
	Content PostText
}

type Post struct {
	Id      PostId    `json:"id"`
	BoardId BoardId   `json:"board_id"` // immutable after creation
	Title   PostTitle `json:"title"`
	Content PostText  `json:"content"`
	OwnerId UserId    `json:"owner_id"`
	Created time.Time `json:"created"`
}

type PostPage struct {
	Total int    `json:"total"`
	Posts []Post `json:"posts"`
}
