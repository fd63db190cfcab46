package pg

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jjiisub/bboard/internal/domain"
	internal_errors "github.com/jjiisub/bboard/internal/errors"
)

// CreateBoard inserts a new board with a zero post count.
func (s *Storage) CreateBoard(data domain.BoardCreationData) (domain.Board, error) {
	board := domain.Board{Name: data.Name, Public: data.Public, OwnerId: data.Owner}
	err := s.db.QueryRow("INSERT INTO boards(name, public, owner_id) VALUES($1, $2, $3) RETURNING id",
		data.Name, data.Public, data.Owner).Scan(&board.Id)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Board{}, internal_errors.ValueConflict("A board with this name already exists")
		}
		return domain.Board{}, fmt.Errorf("failed to insert board: %w", err)
	}
	return board, nil
}

func (s *Storage) Board(id domain.BoardId) (domain.Board, error) {
	return s.board(s.db, "id = $1", id)
}

func (s *Storage) BoardByName(name domain.BoardName) (domain.Board, error) {
	return s.board(s.db, "name = $1", name)
}

func (s *Storage) board(q Querier, where string, arg any) (domain.Board, error) {
	var board domain.Board
	err := q.QueryRow("SELECT id, name, public, owner_id, post_count FROM boards WHERE "+where, arg).
		Scan(&board.Id, &board.Name, &board.Public, &board.OwnerId, &board.PostCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Board{}, internal_errors.NotFound("Board not found")
		}
		return domain.Board{}, fmt.Errorf("failed to query board: %w", err)
	}
	return board, nil
}

func (s *Storage) UpdateBoard(data domain.BoardUpdateData) error {
	result, err := s.db.Exec("UPDATE boards SET name = $1, public = $2 WHERE id = $3",
		data.Name, data.Public, data.Id)
	if err != nil {
		if isUniqueViolation(err) {
			return internal_errors.ValueConflict("A board with this name already exists")
		}
		return fmt.Errorf("failed to update board: %w", err)
	}
	updated, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows for board update: %w", err)
	}
	if updated == 0 {
		return internal_errors.NotFound("Board not found")
	}
	return nil
}

// DeleteBoard removes the board and all of its posts atomically.
func (s *Storage) DeleteBoard(id domain.BoardId) error {
	ctx, cancel := s.txContext()
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM posts WHERE board_id = $1", id); err != nil {
			return fmt.Errorf("failed to delete board posts: %w", err)
		}
		result, err := tx.Exec("DELETE FROM boards WHERE id = $1", id)
		if err != nil {
			return fmt.Errorf("failed to delete board: %w", err)
		}
		deleted, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check affected rows for board deletion: %w", err)
		}
		if deleted == 0 {
			return internal_errors.NotFound("Board not found")
		}
		return nil
	})
}

// Boards returns the page of boards visible to uid: public ones plus
// the user's own, most active first, id ascending as the tiebreak for
// determinism. Total counts the full visible set regardless of page.
func (s *Storage) Boards(uid domain.UserId, limit, offset int) (int, []domain.Board, error) {
	var total int
	err := s.db.QueryRow("SELECT COUNT(*) FROM boards WHERE public OR owner_id = $1", uid).Scan(&total)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to count boards: %w", err)
	}

	rows, err := s.db.Query(`
	SELECT id, name, public, owner_id, post_count
	FROM boards
	WHERE public OR owner_id = $1
	ORDER BY post_count DESC, id ASC
	LIMIT $2 OFFSET $3`, uid, limit, offset)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to query boards: %w", err)
	}
	defer rows.Close()

	boards := []domain.Board{}
	for rows.Next() {
		var board domain.Board
		if err := rows.Scan(&board.Id, &board.Name, &board.Public, &board.OwnerId, &board.PostCount); err != nil {
			return 0, nil, fmt.Errorf("failed to scan board row: %w", err)
		}
		boards = append(boards, board)
	}
	if err := rows.Err(); err != nil {
		return 0, nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return total, boards, nil
}
