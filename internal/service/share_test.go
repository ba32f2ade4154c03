package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShareSingle_NewFile(t *testing.T) {
	env := newTestEnv(t)
	userID := env.signUp(t, "alice@example.com")

	file, alreadyShared, err := env.share.Single(userID, fileInput("todo", "notes"))
	require.NoError(t, err)
	assert.False(t, alreadyShared)
	// An inserted file keeps the public flag from the input, which defaults
	// to false.
	assert.False(t, file.Public)
}

func TestShareSingle_FlipsPrivateFile(t *testing.T) {
	env := newTestEnv(t)
	userID := env.signUp(t, "alice@example.com")

	created, err := env.file.Create(userID, fileInput("todo", "notes"))
	require.NoError(t, err)
	assert.False(t, created.Public)

	file, alreadyShared, err := env.share.Single(userID, fileInput("todo", "notes"))
	require.NoError(t, err)
	assert.False(t, alreadyShared)
	assert.Equal(t, created.ID, file.ID)
	assert.True(t, file.Public)
}

func TestShareSingle_PublicFileIsNoop(t *testing.T) {
	env := newTestEnv(t)
	userID := env.signUp(t, "alice@example.com")

	in := fileInput("todo", "notes")
	public := true
	in.Public = &public
	created, err := env.file.Create(userID, in)
	require.NoError(t, err)

	file, alreadyShared, err := env.share.Single(userID, fileInput("todo", "notes"))
	require.NoError(t, err)
	assert.True(t, alreadyShared)
	assert.Equal(t, created.ID, file.ID)
}

func TestShareSingle_Validation(t *testing.T) {
	env := newTestEnv(t)
	userID := env.signUp(t, "alice@example.com")

	in := fileInput("todo", "notes")
	in.Filename = ""
	_, _, err := env.share.Single(userID, in)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestShareMultiple_EmptyInput(t *testing.T) {
	env := newTestEnv(t)
	userID := env.signUp(t, "alice@example.com")

	_, err := env.share.Multiple(userID, nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestShareMultiple_AllExisting(t *testing.T) {
	env := newTestEnv(t)
	userID := env.signUp(t, "alice@example.com")

	a, err := env.file.Create(userID, fileInput("a", "notes"))
	require.NoError(t, err)
	_, err = env.file.Create(userID, fileInput("b", "notes"))
	require.NoError(t, err)

	result, err := env.share.Multiple(userID, []*FileInput{
		fileInput("a", "notes"),
		fileInput("b", "notes"),
	})
	require.NoError(t, err)
	assert.Equal(t, a.SectionID, result.SectionID)
	require.Len(t, result.Files, 2)
	for _, file := range result.Files {
		assert.True(t, file.Public)
	}
}

func TestShareMultiple_MixedExistingAndNew(t *testing.T) {
	env := newTestEnv(t)
	userID := env.signUp(t, "alice@example.com")

	existing, err := env.file.Create(userID, fileInput("a", "notes"))
	require.NoError(t, err)

	result, err := env.share.Multiple(userID, []*FileInput{
		fileInput("a", "notes"),
		fileInput("b", "notes"),
	})
	require.NoError(t, err)
	require.Len(t, result.Files, 2)

	byPath := map[string]bool{}
	for _, file := range result.Files {
		byPath[file.Path] = file.Public
	}
	// The pre-existing file was flipped; the fresh insert keeps the input's
	// public flag, which defaults to false.
	assert.True(t, byPath["a"])
	assert.False(t, byPath["b"])

	assert.Equal(t, existing.SectionID, result.SectionID)
}

func TestShareMultiple_NewFilesBindToFirstSection(t *testing.T) {
	env := newTestEnv(t)
	userID := env.signUp(t, "alice@example.com")

	result, err := env.share.Multiple(userID, []*FileInput{
		fileInput("a", "articles"),
		fileInput("b", "journal"),
	})
	require.NoError(t, err)
	require.Len(t, result.Files, 2)

	// Everything lands in the first input's section.
	section, err := env.sections.ByNameAndAuthor("articles", userID)
	require.NoError(t, err)
	assert.Equal(t, section.ID, result.SectionID)
	for _, file := range result.Files {
		assert.Equal(t, section.ID, file.SectionID)
	}
}
