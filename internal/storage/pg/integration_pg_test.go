package pg

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jjiisub/bboard/internal/config"
	"github.com/jjiisub/bboard/internal/domain"
	internal_errors "github.com/jjiisub/bboard/internal/errors"
)

var storage *Storage

func TestMain(m *testing.M) {
	ctx := context.Background()
	var container *postgres.PostgresContainer
	storage, container = mustSetup(ctx)
	defer teardown(ctx, storage, container)

	exitCode := m.Run()
	os.Exit(exitCode)
}

func mustSetup(ctx context.Context) (*Storage, *postgres.PostgresContainer) {
	dbName := "bboard"
	dbUser := "user"
	dbPassword := "password"
	container, err := postgres.Run(ctx,
		"postgres:15.3-alpine",
		postgres.WithInitScripts(filepath.Join("migrations", "init.sql")),
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		testcontainers.WithWaitStrategy(
			// First, we wait for the container to log readiness twice.
			// This is because it will restart itself after the first startup.
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	if err != nil {
		log.Fatalf("failed to start container: %s", err)
	}
	containerPort, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		log.Fatalf("failed to obtain container port: %s", err)
	}
	port, err := strconv.Atoi(containerPort.Port())
	if err != nil {
		log.Fatalf("failed to obtain int container port: %s", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		log.Fatalf("failed to obtain container host: %s", err)
	}

	storage, err := New(&config.Config{Public: config.Public{Pg: config.Pg{Host: host, Port: port, User: dbUser, Password: dbPassword, Dbname: dbName}, PageSize: 20}})
	if err != nil {
		log.Fatalf("failed to connect to postgres container: %s", err)
	}
	return storage, container
}

func teardown(ctx context.Context, storage *Storage, container *postgres.PostgresContainer) {
	if err := storage.Cleanup(); err != nil {
		log.Printf("failed to close storage connection: %s", err)
	}
	if err := container.Terminate(ctx); err != nil {
		log.Printf("failed to terminate container: %s", err)
	}
}

func cleanupTables(t *testing.T) {
	t.Helper()
	_, err := storage.db.Exec("DELETE FROM posts; DELETE FROM boards; DELETE FROM users;")
	require.NoError(t, err)
}

func mustUser(t *testing.T, email string) domain.UserId {
	t.Helper()
	id, err := storage.SaveUser(domain.User{Email: email, FullName: "Test User", PassHash: "hash"})
	require.NoError(t, err)
	return id
}

func mustBoard(t *testing.T, name string, public bool, owner domain.UserId) domain.Board {
	t.Helper()
	board, err := storage.CreateBoard(domain.BoardCreationData{Name: name, Public: public, Owner: owner})
	require.NoError(t, err)
	return board
}

func TestSaveUser(t *testing.T) {
	cleanupTables(t)

	id := mustUser(t, "a@example.com")
	assert.Greater(t, id, int64(0))

	user, err := storage.User("a@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, user.Id)
	assert.Equal(t, "Test User", user.FullName)
	assert.Equal(t, "hash", user.PassHash)

	t.Run("duplicate email", func(t *testing.T) {
		_, err := storage.SaveUser(domain.User{Email: "a@example.com", FullName: "Other", PassHash: "hash2"})
		assert.True(t, internal_errors.IsConflict(err))
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := storage.User("nobody@example.com")
		assert.True(t, internal_errors.IsNotFound(err))
	})
}

func TestCreateBoard(t *testing.T) {
	cleanupTables(t)
	owner := mustUser(t, "a@example.com")

	board := mustBoard(t, "general", true, owner)
	assert.Greater(t, board.Id, int64(0))
	assert.Equal(t, 0, board.PostCount)

	t.Run("fetch by id and name", func(t *testing.T) {
		byId, err := storage.Board(board.Id)
		require.NoError(t, err)
		byName, err := storage.BoardByName("general")
		require.NoError(t, err)
		assert.Equal(t, byId, byName)
	})

	t.Run("duplicate name", func(t *testing.T) {
		_, err := storage.CreateBoard(domain.BoardCreationData{Name: "general", Public: false, Owner: owner})
		assert.True(t, internal_errors.IsConflict(err))
	})

	t.Run("missing board", func(t *testing.T) {
		_, err := storage.Board(99999)
		assert.True(t, internal_errors.IsNotFound(err))
	})
}

func TestUpdateBoard(t *testing.T) {
	cleanupTables(t)
	owner := mustUser(t, "a@example.com")
	board := mustBoard(t, "general", true, owner)

	err := storage.UpdateBoard(domain.BoardUpdateData{Id: board.Id, Name: "renamed", Public: false})
	require.NoError(t, err)

	updated, err := storage.Board(board.Id)
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)
	assert.False(t, updated.Public)

	t.Run("missing board", func(t *testing.T) {
		err := storage.UpdateBoard(domain.BoardUpdateData{Id: 99999, Name: "x", Public: true})
		assert.True(t, internal_errors.IsNotFound(err))
	})

	t.Run("rename onto existing name", func(t *testing.T) {
		mustBoard(t, "taken", true, owner)
		err := storage.UpdateBoard(domain.BoardUpdateData{Id: board.Id, Name: "taken", Public: true})
		assert.True(t, internal_errors.IsConflict(err))
	})
}

func TestPostCountInvariant(t *testing.T) {
	cleanupTables(t)
	owner := mustUser(t, "a@example.com")
	board := mustBoard(t, "general", true, owner)

	postCount := func() int {
		b, err := storage.Board(board.Id)
		require.NoError(t, err)
		return b.PostCount
	}

	var posts []domain.Post
	for i := 0; i < 3; i++ {
		post, err := storage.CreatePost(domain.PostCreationData{
			Board: board.Id, Title: fmt.Sprintf("post %d", i), Content: "text", Owner: owner,
		})
		require.NoError(t, err)
		posts = append(posts, post)
	}
	assert.Equal(t, 3, postCount())

	require.NoError(t, storage.DeletePost(posts[0]))
	assert.Equal(t, 2, postCount())

	t.Run("create on missing board", func(t *testing.T) {
		_, err := storage.CreatePost(domain.PostCreationData{Board: 99999, Title: "t", Content: "c", Owner: owner})
		assert.True(t, internal_errors.IsNotFound(err))
	})

	t.Run("delete missing post leaves counter alone", func(t *testing.T) {
		err := storage.DeletePost(domain.Post{Id: 99999, BoardId: board.Id})
		assert.True(t, internal_errors.IsNotFound(err))
		assert.Equal(t, 2, postCount())
	})

	t.Run("counter underflow aborts the delete", func(t *testing.T) {
		// corrupt the counter directly to simulate a broken invariant
		_, err := storage.db.Exec("UPDATE boards SET post_count = 0 WHERE id = $1", board.Id)
		require.NoError(t, err)

		err = storage.DeletePost(posts[1])
		assert.True(t, internal_errors.IsStatus(err, 500))

		// the whole transaction rolled back: the post is still there
		_, err = storage.Post(posts[1].Id)
		assert.NoError(t, err)
	})
}

func TestConcurrentPostCreation(t *testing.T) {
	cleanupTables(t)
	owner := mustUser(t, "a@example.com")
	board := mustBoard(t, "general", true, owner)

	const n = 10
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := storage.CreatePost(domain.PostCreationData{
				Board: board.Id, Title: fmt.Sprintf("post %d", i), Content: "text", Owner: owner,
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	after, err := storage.Board(board.Id)
	require.NoError(t, err)
	assert.Equal(t, n, after.PostCount, "post_count must equal the number of live posts")

	total, _, err := storage.Posts(board.Id, n, 0)
	require.NoError(t, err)
	assert.Equal(t, n, total)
}

func TestDeleteBoardCascades(t *testing.T) {
	cleanupTables(t)
	owner := mustUser(t, "a@example.com")
	board := mustBoard(t, "general", true, owner)

	post, err := storage.CreatePost(domain.PostCreationData{Board: board.Id, Title: "t", Content: "c", Owner: owner})
	require.NoError(t, err)

	require.NoError(t, storage.DeleteBoard(board.Id))

	_, err = storage.Board(board.Id)
	assert.True(t, internal_errors.IsNotFound(err))
	_, err = storage.Post(post.Id)
	assert.True(t, internal_errors.IsNotFound(err), "posts must not outlive their board")

	t.Run("missing board", func(t *testing.T) {
		err := storage.DeleteBoard(99999)
		assert.True(t, internal_errors.IsNotFound(err))
	})
}

func TestUpdatePostStorage(t *testing.T) {
	cleanupTables(t)
	owner := mustUser(t, "a@example.com")
	board := mustBoard(t, "general", true, owner)

	post, err := storage.CreatePost(domain.PostCreationData{Board: board.Id, Title: "old", Content: "old text", Owner: owner})
	require.NoError(t, err)

	require.NoError(t, storage.UpdatePost(domain.PostUpdateData{Id: post.Id, Title: "new", Content: "new text"}))

	updated, err := storage.Post(post.Id)
	require.NoError(t, err)
	assert.Equal(t, "new", updated.Title)
	assert.Equal(t, "new text", updated.Content)
	assert.Equal(t, post.BoardId, updated.BoardId)
	assert.True(t, post.Created.Equal(updated.Created), "created timestamp is immutable")

	t.Run("missing post", func(t *testing.T) {
		err := storage.UpdatePost(domain.PostUpdateData{Id: 99999, Title: "x", Content: "y"})
		assert.True(t, internal_errors.IsNotFound(err))
	})
}

func TestBoardsVisibilityAndPaging(t *testing.T) {
	cleanupTables(t)
	alice := mustUser(t, "alice@example.com")
	bob := mustUser(t, "bob@example.com")

	// three public boards, one private per user
	for i := 0; i < 3; i++ {
		mustBoard(t, fmt.Sprintf("public-%d", i), true, alice)
	}
	alicePrivate := mustBoard(t, "alice-private", false, alice)
	mustBoard(t, "bob-private", false, bob)

	t.Run("private boards hidden from strangers", func(t *testing.T) {
		total, boards, err := storage.Boards(alice, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, 4, total)
		names := make([]string, 0, len(boards))
		for _, b := range boards {
			names = append(names, b.Name)
		}
		assert.Contains(t, names, "alice-private")
		assert.NotContains(t, names, "bob-private")
	})

	t.Run("page walk covers the visible set exactly once", func(t *testing.T) {
		seen := map[int64]bool{}
		sizes := []int{}
		for offset := 0; ; offset += 2 {
			total, boards, err := storage.Boards(alice, 2, offset)
			require.NoError(t, err)
			assert.Equal(t, 4, total, "total is page-independent")
			sizes = append(sizes, len(boards))
			for _, b := range boards {
				assert.False(t, seen[b.Id], "board %d appeared twice", b.Id)
				seen[b.Id] = true
			}
			if len(boards) == 0 {
				break
			}
		}
		assert.Equal(t, []int{2, 2, 0}, sizes)
		assert.Len(t, seen, 4)
	})

	t.Run("ordered by activity", func(t *testing.T) {
		_, err := storage.CreatePost(domain.PostCreationData{Board: alicePrivate.Id, Title: "t", Content: "c", Owner: alice})
		require.NoError(t, err)

		_, boards, err := storage.Boards(alice, 1, 0)
		require.NoError(t, err)
		require.Len(t, boards, 1)
		assert.Equal(t, alicePrivate.Id, boards[0].Id, "most active board sorts first")
	})
}

func TestPostsPaging(t *testing.T) {
	cleanupTables(t)
	owner := mustUser(t, "a@example.com")
	board := mustBoard(t, "general", true, owner)

	var ids []int64
	for i := 0; i < 5; i++ {
		post, err := storage.CreatePost(domain.PostCreationData{
			Board: board.Id, Title: fmt.Sprintf("post %d", i), Content: "text", Owner: owner,
		})
		require.NoError(t, err)
		ids = append(ids, post.Id)
	}

	total, first, err := storage.Posts(board.Id, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, first, 2)
	assert.Equal(t, ids[0], first[0].Id, "creation order")
	assert.Equal(t, ids[1], first[1].Id)

	total, last, err := storage.Posts(board.Id, 2, 4)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, last, 1)
	assert.Equal(t, ids[4], last[0].Id)

	total, past, err := storage.Posts(board.Id, 2, 10)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Empty(t, past, "page past the end is empty, not an error")
}
