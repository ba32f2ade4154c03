package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monohq/mono/internal/repository"
)

func TestBackupCreateAndList(t *testing.T) {
	env := newTestEnv(t)
	userID := env.signUp(t, "alice@example.com")

	backup, err := env.backup.Create(userID, json.RawMessage(`{"sections":[],"files":[]}`))
	require.NoError(t, err)
	assert.NotZero(t, backup.ID)

	own, err := env.backup.ListOwn(userID)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.JSONEq(t, `{"sections":[],"files":[]}`, string(own[0].Data))
}

func TestBackupCreate_EmptyData(t *testing.T) {
	env := newTestEnv(t)
	userID := env.signUp(t, "alice@example.com")

	_, err := env.backup.Create(userID, nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestBackupListByUser_EmptyIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	userID := env.signUp(t, "alice@example.com")

	_, err := env.backup.ListByUser(userID)
	assert.ErrorIs(t, err, repository.ErrBackupNotFound)

	_, err = env.backup.Create(userID, json.RawMessage(`{}`))
	require.NoError(t, err)

	backups, err := env.backup.ListByUser(userID)
	require.NoError(t, err)
	assert.Len(t, backups, 1)
}

func TestBackupDelete_OwnershipCheck(t *testing.T) {
	env := newTestEnv(t)
	aliceID := env.signUp(t, "alice@example.com")
	bobID := env.signUp(t, "bob@example.com")

	backup, err := env.backup.Create(aliceID, json.RawMessage(`{}`))
	require.NoError(t, err)

	// Another user's delete is forbidden, not masked as missing.
	_, err = env.backup.Delete(backup.ID, bobID)
	assert.ErrorIs(t, err, ErrBackupForbidden)

	deleted, err := env.backup.Delete(backup.ID, aliceID)
	require.NoError(t, err)
	assert.Equal(t, backup.ID, deleted.ID)

	_, err = env.backup.Delete(backup.ID, aliceID)
	assert.ErrorIs(t, err, repository.ErrBackupNotFound)
}

func TestAPIKeyVerify_SeedsDefaultKey(t *testing.T) {
	env := newTestEnv(t)

	// First verification seeds the configured default key.
	require.NoError(t, env.apiKey.Verify("test-api-key"))

	count, err := env.apiKeys.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	assert.ErrorIs(t, env.apiKey.Verify("wrong-key"), ErrInvalidAPIKey)
	assert.ErrorIs(t, env.apiKey.Verify(""), ErrInvalidAPIKey)
	require.NoError(t, env.apiKey.Verify("test-api-key"))
}
