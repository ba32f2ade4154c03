package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monohq/mono/internal/model"
)

func seedFile(t *testing.T, files FileRepository, database *sqlx.DB, authorID, path string, public bool) *model.File {
	t.Helper()

	sections := NewSectionRepository(database)
	section, err := sections.GetOrCreate("notes", authorID)
	require.NoError(t, err)

	file := &model.File{
		ID:        uuid.New().String(),
		AuthorID:  authorID,
		Filename:  path + ".md",
		Path:      path,
		Section:   section.Name,
		SectionID: section.ID,
		Text:      "# " + path,
		Type:      model.FileTypeMarkdown,
		Public:    public,
	}
	require.NoError(t, files.Create(file))
	return file
}

func TestFileCreate_DuplicatePathPerAuthor(t *testing.T) {
	database := newTestDB(t)
	alice := seedUser(t, database, "alice@example.com")
	bob := seedUser(t, database, "bob@example.com")
	files := NewFileRepository(database)

	first := seedFile(t, files, database, alice.ID, "todo", false)

	dup := *first
	dup.ID = uuid.New().String()
	err := files.Create(&dup)
	assert.ErrorIs(t, err, ErrFileExists)

	// Same path under a different author is fine.
	seedFile(t, files, database, bob.ID, "todo", false)
}

func TestFileVisible(t *testing.T) {
	database := newTestDB(t)
	alice := seedUser(t, database, "alice@example.com")
	bob := seedUser(t, database, "bob@example.com")
	files := NewFileRepository(database)

	pub := seedFile(t, files, database, alice.ID, "shared", true)
	seedFile(t, files, database, alice.ID, "secret", false)

	got, err := files.Visible(nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, pub.ID, got[0].ID)

	got, err = files.Visible(&alice.ID)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = files.Visible(&bob.ID)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestFileOwnedByID_MasksOtherOwners(t *testing.T) {
	database := newTestDB(t)
	alice := seedUser(t, database, "alice@example.com")
	bob := seedUser(t, database, "bob@example.com")
	files := NewFileRepository(database)

	file := seedFile(t, files, database, alice.ID, "shared", true)

	// Public or not, a file owned by someone else reads as absent.
	_, err := files.OwnedByID(file.ID, bob.ID)
	assert.ErrorIs(t, err, ErrFileNotFound)

	got, err := files.OwnedByID(file.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, file.ID, got.ID)
}

func TestFileUpdate(t *testing.T) {
	database := newTestDB(t)
	alice := seedUser(t, database, "alice@example.com")
	files := NewFileRepository(database)

	file := seedFile(t, files, database, alice.ID, "todo", false)

	text := "# updated"
	public := true
	updated, err := files.Update(file.ID, alice.ID, &model.FilePatch{Text: &text, Public: &public})
	require.NoError(t, err)
	assert.Equal(t, "# updated", updated.Text)
	assert.True(t, updated.Public)
	// Untouched fields survive.
	assert.Equal(t, file.Filename, updated.Filename)

	// An empty patch is a no-op returning the current row.
	same, err := files.Update(file.ID, alice.ID, &model.FilePatch{})
	require.NoError(t, err)
	assert.Equal(t, updated.Text, same.Text)
}

func TestFileUpdate_PathConflict(t *testing.T) {
	database := newTestDB(t)
	alice := seedUser(t, database, "alice@example.com")
	files := NewFileRepository(database)

	seedFile(t, files, database, alice.ID, "todo", false)
	other := seedFile(t, files, database, alice.ID, "journal", false)

	path := "todo"
	_, err := files.Update(other.ID, alice.ID, &model.FilePatch{Path: &path})
	assert.ErrorIs(t, err, ErrFileExists)
}

func TestFileListingBySection_ExcludesContent(t *testing.T) {
	database := newTestDB(t)
	alice := seedUser(t, database, "alice@example.com")
	files := NewFileRepository(database)

	file := seedFile(t, files, database, alice.ID, "todo", false)

	listings, err := files.ListingBySection(file.SectionID)
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, file.ID, listings[0].ID)
	assert.Equal(t, file.Filename, listings[0].Filename)
	assert.Equal(t, file.Path, listings[0].Path)
}

func TestFilePublishByIDs(t *testing.T) {
	database := newTestDB(t)
	alice := seedUser(t, database, "alice@example.com")
	files := NewFileRepository(database)

	a := seedFile(t, files, database, alice.ID, "a", false)
	b := seedFile(t, files, database, alice.ID, "b", true)

	require.NoError(t, files.PublishByIDs([]string{a.ID, b.ID}))

	got, err := files.ByPathsAndAuthor([]string{"a", "b"}, alice.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, file := range got {
		assert.True(t, file.Public)
	}

	// Empty input short-circuits.
	require.NoError(t, files.PublishByIDs(nil))
}

func TestFileDelete(t *testing.T) {
	database := newTestDB(t)
	alice := seedUser(t, database, "alice@example.com")
	bob := seedUser(t, database, "bob@example.com")
	files := NewFileRepository(database)

	file := seedFile(t, files, database, alice.ID, "todo", false)

	_, err := files.Delete(file.ID, bob.ID)
	assert.ErrorIs(t, err, ErrFileNotFound)

	deleted, err := files.Delete(file.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, file.ID, deleted.ID)

	_, err = files.OwnedByID(file.ID, alice.ID)
	assert.ErrorIs(t, err, ErrFileNotFound)
}
