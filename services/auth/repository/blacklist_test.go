package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlacklistToken(t *testing.T) {
	repo, mr := setupAuthRepo(t)
	ctx := context.Background()

	token := "eyJhbGciOiJIUzI1NiJ9.fake.token"
	require.NoError(t, repo.BlacklistToken(ctx, token, time.Hour))

	blacklisted, err := repo.IsTokenBlacklisted(ctx, token)
	require.NoError(t, err)
	assert.True(t, blacklisted)

	other, err := repo.IsTokenBlacklisted(ctx, "some-other-token")
	require.NoError(t, err)
	assert.False(t, other)

	// the raw token never appears as a key
	assert.False(t, mr.Exists("blacklist:"+token))
}

func TestBlacklistToken_ExpiredTokenIsNoop(t *testing.T) {
	repo, mr := setupAuthRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.BlacklistToken(ctx, "already-expired", -time.Minute))
	assert.Empty(t, mr.Keys())

	blacklisted, err := repo.IsTokenBlacklisted(ctx, "already-expired")
	require.NoError(t, err)
	assert.False(t, blacklisted)
}

func TestBlacklistToken_EntryExpires(t *testing.T) {
	repo, mr := setupAuthRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.BlacklistToken(ctx, "short-lived", time.Minute))

	mr.FastForward(time.Minute + time.Second)

	blacklisted, err := repo.IsTokenBlacklisted(ctx, "short-lived")
	require.NoError(t, err)
	assert.False(t, blacklisted)
}
