package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monohq/mono/internal/model"
)

func TestSectionCreate_DuplicateNamePerAuthor(t *testing.T) {
	database := newTestDB(t)
	alice := seedUser(t, database, "alice@example.com")
	bob := seedUser(t, database, "bob@example.com")
	sections := NewSectionRepository(database)

	require.NoError(t, sections.Create(&model.Section{
		ID:       uuid.New().String(),
		Name:     "notes",
		AuthorID: alice.ID,
	}))

	err := sections.Create(&model.Section{
		ID:       uuid.New().String(),
		Name:     "notes",
		AuthorID: alice.ID,
	})
	assert.ErrorIs(t, err, ErrSectionExists)

	// Same name under a different author is fine.
	require.NoError(t, sections.Create(&model.Section{
		ID:       uuid.New().String(),
		Name:     "notes",
		AuthorID: bob.ID,
	}))
}

func TestSectionVisible(t *testing.T) {
	database := newTestDB(t)
	alice := seedUser(t, database, "alice@example.com")
	bob := seedUser(t, database, "bob@example.com")
	sections := NewSectionRepository(database)

	pub := &model.Section{ID: uuid.New().String(), Name: "shared", AuthorID: alice.ID, Public: true}
	priv := &model.Section{ID: uuid.New().String(), Name: "drafts", AuthorID: alice.ID}
	require.NoError(t, sections.Create(pub))
	require.NoError(t, sections.Create(priv))

	// Anonymous sees only public sections.
	got, err := sections.Visible(nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, pub.ID, got[0].ID)

	// The owner additionally sees their private sections.
	got, err = sections.Visible(&alice.ID)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	// Another signed-in user does not.
	got, err = sections.Visible(&bob.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, pub.ID, got[0].ID)
}

func TestSectionVisibleByID(t *testing.T) {
	database := newTestDB(t)
	alice := seedUser(t, database, "alice@example.com")
	bob := seedUser(t, database, "bob@example.com")
	sections := NewSectionRepository(database)

	priv := &model.Section{ID: uuid.New().String(), Name: "drafts", AuthorID: alice.ID}
	require.NoError(t, sections.Create(priv))

	_, err := sections.VisibleByID(priv.ID, nil)
	assert.ErrorIs(t, err, ErrSectionNotFound)

	_, err = sections.VisibleByID(priv.ID, &bob.ID)
	assert.ErrorIs(t, err, ErrSectionNotFound)

	got, err := sections.VisibleByID(priv.ID, &alice.ID)
	require.NoError(t, err)
	assert.Equal(t, priv.ID, got.ID)
}

func TestSectionGetOrCreate(t *testing.T) {
	database := newTestDB(t)
	alice := seedUser(t, database, "alice@example.com")
	sections := NewSectionRepository(database)

	created, err := sections.GetOrCreate("notes", alice.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.Public)

	again, err := sections.GetOrCreate("notes", alice.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)
}

func TestSectionUpdateByName(t *testing.T) {
	database := newTestDB(t)
	alice := seedUser(t, database, "alice@example.com")
	sections := NewSectionRepository(database)

	section := &model.Section{ID: uuid.New().String(), Name: "notes", AuthorID: alice.ID}
	require.NoError(t, sections.Create(section))

	public := true
	updated, err := sections.UpdateByName("notes", alice.ID, &model.SectionPatch{Public: &public})
	require.NoError(t, err)
	assert.True(t, updated.Public)
	assert.Equal(t, "notes", updated.Name)

	name := "journal"
	updated, err = sections.UpdateByName("notes", alice.ID, &model.SectionPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "journal", updated.Name)
	assert.True(t, updated.Public)

	_, err = sections.UpdateByName("notes", alice.ID, &model.SectionPatch{})
	assert.ErrorIs(t, err, ErrSectionNotFound)
}

func TestSectionUpdateByName_NameConflict(t *testing.T) {
	database := newTestDB(t)
	alice := seedUser(t, database, "alice@example.com")
	sections := NewSectionRepository(database)

	require.NoError(t, sections.Create(&model.Section{ID: uuid.New().String(), Name: "notes", AuthorID: alice.ID}))
	require.NoError(t, sections.Create(&model.Section{ID: uuid.New().String(), Name: "journal", AuthorID: alice.ID}))

	name := "journal"
	_, err := sections.UpdateByName("notes", alice.ID, &model.SectionPatch{Name: &name})
	assert.ErrorIs(t, err, ErrSectionExists)
}

func TestSectionDeleteByName(t *testing.T) {
	database := newTestDB(t)
	alice := seedUser(t, database, "alice@example.com")
	bob := seedUser(t, database, "bob@example.com")
	sections := NewSectionRepository(database)

	section := &model.Section{ID: uuid.New().String(), Name: "notes", AuthorID: alice.ID}
	require.NoError(t, sections.Create(section))

	// Deleting someone else's section reports not found.
	_, err := sections.DeleteByName("notes", bob.ID)
	assert.ErrorIs(t, err, ErrSectionNotFound)

	deleted, err := sections.DeleteByName("notes", alice.ID)
	require.NoError(t, err)
	assert.Equal(t, section.ID, deleted.ID)

	_, err = sections.ByNameAndAuthor("notes", alice.ID)
	assert.ErrorIs(t, err, ErrSectionNotFound)
}
