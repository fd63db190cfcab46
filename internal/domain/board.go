package domain

// to iterate thru layers: handler -> service -> storage
type BoardCreationData struct {
	Name   BoardName
	Public bool
	Owner  UserId
}

type BoardUpdateData struct {
	Id     BoardId
	Name   BoardName
	Public bool
}

type Board struct {
	Id      BoardId   `json:"id"`
	Name    BoardName `json:"name"`
	Public  bool      `json:"public"`
	OwnerId UserId    `json:"owner_id"`
	// Live post count, maintained incrementally alongside every post
	// insert/delete. Never recomputed by scanning.
	PostCount int `json:"post_count"`
}

// BoardPage is one page of a permission-filtered board listing.
// Total is the full matching count regardless of the requested page.
type BoardPage struct {
	Total  int     `json:"total"`
	Boards []Board `json:"boards"`
}
