package service

import (
	"github.com/jjiisub/bboard/internal/domain"
)

// to mock service in tests
type PostService interface {
	Create(data domain.PostCreationData) (domain.Post, error)
	Get(id domain.PostId, uid domain.UserId) (domain.Post, error)
	Update(data domain.PostUpdateData, uid domain.UserId) error
	Delete(id domain.PostId, uid domain.UserId) error
	List(boardId domain.BoardId, uid domain.UserId, page, pageSize int) (domain.PostPage, error)
}

type PostStorage interface {
	// CreatePost inserts the post and bumps the board's post_count in
	// one transaction.
	CreatePost(data domain.PostCreationData) (domain.Post, error)
	Post(id domain.PostId) (domain.Post, error)
	UpdatePost(data domain.PostUpdateData) error
	// DeletePost removes the post and decrements the board's
	// post_count in one transaction.
	DeletePost(post domain.Post) error
	Posts(boardId domain.BoardId, limit, offset int) (total int, posts []domain.Post, err error)
}

type Post struct {
	storage         PostStorage
	boards          BoardStorage
	defaultPageSize int
}

var _ PostService = (*Post)(nil)

func NewPost(storage PostStorage, boards BoardStorage, defaultPageSize int) *Post {
	return &Post{storage: storage, boards: boards, defaultPageSize: defaultPageSize}
}

// Create requires read access to the target board. Board existence is
// checked first; a missing board is NotFound, not Forbidden.
func (p *Post) Create(data domain.PostCreationData) (domain.Post, error) {
	board, err := p.boards.Board(data.Board)
	if err != nil {
		return domain.Post{}, err
	}
	if err := CanReadBoard(&board, data.Owner); err != nil {
		return domain.Post{}, err
	}
	return p.storage.CreatePost(data)
}

func (p *Post) Get(id domain.PostId, uid domain.UserId) (domain.Post, error) {
	post, err := p.storage.Post(id)
	if err != nil {
		return domain.Post{}, err
	}
	board, err := p.boards.Board(post.BoardId)
	if err != nil {
		return domain.Post{}, err
	}
	if err := CanReadPost(&board, uid); err != nil {
		return domain.Post{}, err
	}
	return post, nil
}

func (p *Post) Update(data domain.PostUpdateData, uid domain.UserId) error {
	post, err := p.storage.Post(data.Id)
	if err != nil {
		return err
	}
	if err := CanEditPost(&post, uid); err != nil {
		return err
	}
	return p.storage.UpdatePost(data)
}

func (p *Post) Delete(id domain.PostId, uid domain.UserId) error {
	post, err := p.storage.Post(id)
	if err != nil {
		return err
	}
	if err := CanEditPost(&post, uid); err != nil {
		return err
	}
	return p.storage.DeletePost(post)
}

// List resolves and read-authorizes the board before touching posts,
// so NotFound/Forbidden propagate ahead of any listing work.
func (p *Post) List(boardId domain.BoardId, uid domain.UserId, page, pageSize int) (domain.PostPage, error) {
	board, err := p.boards.Board(boardId)
	if err != nil {
		return domain.PostPage{}, err
	}
	if err := CanReadBoard(&board, uid); err != nil {
		return domain.PostPage{}, err
	}
	limit, offset, err := paginate(page, pageSize, p.defaultPageSize)
	if err != nil {
		return domain.PostPage{}, err
	}
	total, posts, err := p.storage.Posts(boardId, limit, offset)
	if err != nil {
		return domain.PostPage{}, err
	}
	return domain.PostPage{Total: total, Posts: posts}, nil
}
