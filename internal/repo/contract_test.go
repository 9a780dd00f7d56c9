package repo_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/domain"
	"taskboard/internal/repo"
)

// runStoreContract 所有后端共享的行为用例；要求传入空库
func runStoreContract(t *testing.T, users domain.UserStore, tasks domain.TaskStore) {
	ctx := context.Background()

	ana := &domain.User{Username: strp("ana"), Email: strp("ana@example.com")}
	require.NoError(t, users.Create(ctx, ana))
	require.NotZero(t, ana.ID)
	assert.False(t, ana.CreatedAt.IsZero())

	mail := &domain.User{Email: strp("only-mail@example.com")}
	require.NoError(t, users.Create(ctx, mail))
	assert.Nil(t, mail.Username)
	assert.Greater(t, mail.ID, ana.ID)

	var dup *domain.DuplicateError
	err := users.Create(ctx, &domain.User{Username: strp("ana")})
	require.True(t, errors.As(err, &dup), "got %v", err)
	assert.Equal(t, "username", dup.Field)

	err = users.Create(ctx, &domain.User{Email: strp("ana@example.com")})
	require.True(t, errors.As(err, &dup), "got %v", err)
	assert.Equal(t, "email", dup.Field)

	got, err := users.FindByID(ctx, ana.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "ana", *got.Username)

	got, err = users.FindByID(ctx, 999999)
	require.NoError(t, err)
	assert.Nil(t, got)

	err = tasks.Create(ctx, &domain.Task{Title: "orphan", Status: domain.StatusPending, UserID: 999999})
	assert.ErrorIs(t, err, domain.ErrOwnerMissing)

	first := &domain.Task{Title: "first", Description: strp("desc"), Status: domain.StatusPending, UserID: ana.ID}
	require.NoError(t, tasks.Create(ctx, first))
	second := &domain.Task{Title: "second", Status: domain.StatusInProgress, UserID: ana.ID}
	require.NoError(t, tasks.Create(ctx, second))
	other := &domain.Task{Title: "other", Status: domain.StatusPending, UserID: mail.ID}
	require.NoError(t, tasks.Create(ctx, other))

	list, total, err := tasks.List(ctx, domain.TaskFilter{UserID: &ana.ID}, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, list, 1)
	assert.Equal(t, first.ID, list[0].ID)

	list, total, err = tasks.List(ctx, domain.TaskFilter{}, 10, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Empty(t, list)

	done := domain.StatusCompleted
	updated, err := tasks.Update(ctx, first.ID, domain.TaskPatch{Status: &done})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "first", updated.Title)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "desc", *updated.Description)
	assert.Equal(t, domain.StatusCompleted, updated.Status)

	updated, err = tasks.Update(ctx, 999999, domain.TaskPatch{Status: &done})
	require.NoError(t, err)
	assert.Nil(t, updated)

	ok, err := tasks.Delete(ctx, second.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	gone, err := tasks.FindByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	// 删除用户连带删除其任务
	ok, err = users.Delete(ctx, ana.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	gone, err = tasks.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	found, total, err := users.List(ctx, domain.UserFilter{Query: "mail"}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, mail.ID, found[0].ID)

	// 检索不区分大小写
	found, total, err = users.List(ctx, domain.UserFilter{Query: "Only-MAIL"}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, found, 1)
	assert.Equal(t, mail.ID, found[0].ID)

	// 超出末页的最大偏移返回空页
	found, total, err = users.List(ctx, domain.UserFilter{}, math.MaxInt, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Empty(t, found)
}

func TestMemory_Contract(t *testing.T) {
	mem := repo.NewMemory()
	runStoreContract(t, mem.Users(), mem.Tasks())
}
