package pg

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jjiisub/bboard/internal/domain"
	internal_errors "github.com/jjiisub/bboard/internal/errors"
)

// CreatePost inserts the post and increments the owning board's
// post_count as a single atomic unit. The counter update runs first:
// it takes the row lock that serializes concurrent creates on the same
// board, and doubles as the board-existence check.
func (s *Storage) CreatePost(data domain.PostCreationData) (domain.Post, error) {
	ctx, cancel := s.txContext()
	defer cancel()

	var post domain.Post
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var count int
		err := tx.QueryRow("UPDATE boards SET post_count = post_count + 1 WHERE id = $1 RETURNING post_count",
			data.Board).Scan(&count)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return internal_errors.NotFound("Board not found")
			}
			return fmt.Errorf("failed to bump post count: %w", err)
		}

		created := time.Now().UTC().Round(time.Microsecond) // database anyway rounds to microsecond
		post = domain.Post{BoardId: data.Board, Title: data.Title, Content: data.Content, OwnerId: data.Owner, Created: created}
		err = tx.QueryRow(`
		INSERT INTO posts(board_id, title, content, owner_id, created)
		VALUES($1, $2, $3, $4, $5)
		RETURNING id`,
			data.Board, data.Title, data.Content, data.Owner, created).Scan(&post.Id)
		if err != nil {
			return fmt.Errorf("failed to insert post: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Post{}, err
	}
	return post, nil
}

func (s *Storage) Post(id domain.PostId) (domain.Post, error) {
	var post domain.Post
	err := s.db.QueryRow(`
	SELECT id, board_id, title, content, owner_id, created
	FROM posts
	WHERE id = $1`, id).
		Scan(&post.Id, &post.BoardId, &post.Title, &post.Content, &post.OwnerId, &post.Created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Post{}, internal_errors.NotFound("Post not found")
		}
		return domain.Post{}, fmt.Errorf("failed to query post: %w", err)
	}
	return post, nil
}

func (s *Storage) UpdatePost(data domain.PostUpdateData) error {
	result, err := s.db.Exec("UPDATE posts SET title = $1, content = $2 WHERE id = $3",
		data.Title, data.Content, data.Id)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	updated, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows for post update: %w", err)
	}
	if updated == 0 {
		return internal_errors.NotFound("Post not found")
	}
	return nil
}

// DeletePost removes the post and decrements its board's post_count
// atomically. A counter that would go negative is a data-integrity
// fault and aborts the transaction instead of being clamped.
func (s *Storage) DeletePost(post domain.Post) error {
	ctx, cancel := s.txContext()
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.Exec("DELETE FROM posts WHERE id = $1", post.Id)
		if err != nil {
			return fmt.Errorf("failed to delete post: %w", err)
		}
		deleted, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check affected rows for post deletion: %w", err)
		}
		if deleted == 0 {
			return internal_errors.NotFound("Post not found")
		}

		var count int
		err = tx.QueryRow("UPDATE boards SET post_count = post_count - 1 WHERE id = $1 AND post_count > 0 RETURNING post_count",
			post.BoardId).Scan(&count)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				// board gone or counter already at zero with a live post: either way the invariant is broken
				return internal_errors.IntegrityFault(fmt.Sprintf("post_count underflow for board %d", post.BoardId))
			}
			return fmt.Errorf("failed to decrement post count: %w", err)
		}
		return nil
	})
}

// Posts returns one page of a board's posts in creation order.
func (s *Storage) Posts(boardId domain.BoardId, limit, offset int) (int, []domain.Post, error) {
	var total int
	err := s.db.QueryRow("SELECT COUNT(*) FROM posts WHERE board_id = $1", boardId).Scan(&total)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to count posts: %w", err)
	}

	rows, err := s.db.Query(`
	SELECT id, board_id, title, content, owner_id, created
	FROM posts
	WHERE board_id = $1
	ORDER BY id ASC
	LIMIT $2 OFFSET $3`, boardId, limit, offset)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	posts := []domain.Post{}
	for rows.Next() {
		var post domain.Post
		if err := rows.Scan(&post.Id, &post.BoardId, &post.Title, &post.Content, &post.OwnerId, &post.Created); err != nil {
			return 0, nil, fmt.Errorf("failed to scan post row: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return 0, nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return total, posts, nil
}
