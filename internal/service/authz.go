package service

import (
	"github.com/jjiisub/bboard/internal/domain"
	"github.com/jjiisub/bboard/internal/errors"
)

// Ownership predicates. Each takes an already-fetched entity, so a
// caller cannot consult permissions before existence is established:
// every service method fetches, then authorizes, then acts.

// CanReadBoard allows the owner always and everyone else only on
// public boards.
func CanReadBoard(board *domain.Board, uid domain.UserId) error {
	if board.Public || board.OwnerId == uid {
		return nil
	}
	return errors.Forbidden("You don't have access to this board")
}

// CanEditBoard governs board mutation and deletion: owner only.
func CanEditBoard(board *domain.Board, uid domain.UserId) error {
	if board.OwnerId == uid {
		return nil
	}
	return errors.Forbidden("You don't have permission to edit this board")
}

// CanEditPost governs post mutation and deletion: the author only.
// The owner of the containing board deliberately gets no say here.
func CanEditPost(post *domain.Post, uid domain.UserId) error {
	if post.OwnerId == uid {
		return nil
	}
	return errors.Forbidden("You don't have permission to edit this post")
}

// CanReadPost is transitive: a post is readable exactly when its board
// is, regardless of who authored it.
func CanReadPost(board *domain.Board, uid domain.UserId) error {
	return CanReadBoard(board, uid)
}
