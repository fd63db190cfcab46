package service

import (
	"github.com/jjiisub/bboard/internal/domain"
	"github.com/jjiisub/bboard/internal/errors"
)

// to mock service in tests
type BoardService interface {
	Create(data domain.BoardCreationData) (domain.Board, error)
	Get(id domain.BoardId, uid domain.UserId) (domain.Board, error)
	Update(data domain.BoardUpdateData, uid domain.UserId) error
	Delete(id domain.BoardId, uid domain.UserId) error
	List(uid domain.UserId, page, pageSize int) (domain.BoardPage, error)
}

type BoardStorage interface {
	CreateBoard(data domain.BoardCreationData) (domain.Board, error)
	Board(id domain.BoardId) (domain.Board, error)
	BoardByName(name domain.BoardName) (domain.Board, error)
	UpdateBoard(data domain.BoardUpdateData) error
	DeleteBoard(id domain.BoardId) error
	Boards(uid domain.UserId, limit, offset int) (total int, boards []domain.Board, err error)
}

type Board struct {
	storage         BoardStorage
	defaultPageSize int
}

var _ BoardService = (*Board)(nil)

func NewBoard(storage BoardStorage, defaultPageSize int) *Board {
	return &Board{storage: storage, defaultPageSize: defaultPageSize}
}

// nameTaken is the friendly-error fast path; the unique constraint in
// storage is what actually prevents duplicate names under races.
func (b *Board) nameTaken(name domain.BoardName, exclude domain.BoardId) error {
	existing, err := b.storage.BoardByName(name)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.Id != exclude {
		return errors.ValueConflict("A board with this name already exists")
	}
	return nil
}

func (b *Board) Create(data domain.BoardCreationData) (domain.Board, error) {
	if err := b.nameTaken(data.Name, 0); err != nil {
		return domain.Board{}, err
	}
	return b.storage.CreateBoard(data)
}

func (b *Board) Get(id domain.BoardId, uid domain.UserId) (domain.Board, error) {
	board, err := b.storage.Board(id)
	if err != nil {
		return domain.Board{}, err
	}
	if err := CanReadBoard(&board, uid); err != nil {
		return domain.Board{}, err
	}
	return board, nil
}

func (b *Board) Update(data domain.BoardUpdateData, uid domain.UserId) error {
	board, err := b.storage.Board(data.Id)
	if err != nil {
		return err
	}
	if err := CanEditBoard(&board, uid); err != nil {
		return err
	}
	if err := b.nameTaken(data.Name, data.Id); err != nil {
		return err
	}
	return b.storage.UpdateBoard(data)
}

// Delete removes the board and all of its posts in one transaction.
func (b *Board) Delete(id domain.BoardId, uid domain.UserId) error {
	board, err := b.storage.Board(id)
	if err != nil {
		return err
	}
	if err := CanEditBoard(&board, uid); err != nil {
		return err
	}
	return b.storage.DeleteBoard(id)
}

// List returns the page of boards visible to uid, ordered by activity.
// Page and pageSize are zero-based and non-negative; a page past the
// end yields an empty slice, never an error.
func (b *Board) List(uid domain.UserId, page, pageSize int) (domain.BoardPage, error) {
	limit, offset, err := paginate(page, pageSize, b.defaultPageSize)
	if err != nil {
		return domain.BoardPage{}, err
	}
	total, boards, err := b.storage.Boards(uid, limit, offset)
	if err != nil {
		return domain.BoardPage{}, err
	}
	return domain.BoardPage{Total: total, Boards: boards}, nil
}

func paginate(page, pageSize, defaultPageSize int) (limit, offset int, err error) {
	if page < 0 || pageSize < 0 {
		return 0, 0, errors.InvalidInput("page and page_size must be non-negative")
	}
	if pageSize == 0 {
		pageSize = defaultPageSize
	}
	return pageSize, page * pageSize, nil
}
