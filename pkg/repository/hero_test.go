package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/latoulicious/GEMS/pkg/logging"
	"github.com/latoulicious/GEMS/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFactory() logging.LoggerFactory {
	return logging.NewLoggerFactory("error")
}

func TestHeroCreateMintsFromFloor(t *testing.T) {
	repo := NewHeroRepository(store.NewMemoryStore(), newTestFactory())

	first, err := repo.Create("Ana", "Platform")
	require.NoError(t, err)
	assert.Equal(t, 101, first.ID)
	assert.Equal(t, "Ana", first.Name)
	assert.Equal(t, "Platform", first.Team)
	assert.Equal(t, time.Now().Format(DateLayout), first.StartDate.Format(DateLayout))

	second, err := repo.Create("Bea", "Data")
	require.NoError(t, err)
	assert.Equal(t, 102, second.ID)
}

func TestHeroCreateRejectsDuplicateNameCaseInsensitive(t *testing.T) {
	repo := NewHeroRepository(store.NewMemoryStore(), newTestFactory())

	_, err := repo.Create("Ana Silva", "Platform")
	require.NoError(t, err)

	for _, name := range []string{"Ana Silva", "ana silva", "  ANA SILVA  "} {
		_, err := repo.Create(name, "Data")
		assert.ErrorIs(t, err, ErrDuplicateName, "name %q", name)
	}

	all, err := repo.All()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestHeroCreateRequiresFields(t *testing.T) {
	repo := NewHeroRepository(store.NewMemoryStore(), newTestFactory())

	_, err := repo.Create("", "Platform")
	assert.ErrorIs(t, err, ErrMissingField)
	_, err = repo.Create("Ana", "   ")
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestHeroByID(t *testing.T) {
	repo := NewHeroRepository(store.NewMemoryStore(), newTestFactory())

	created, err := repo.Create("Ana", "Platform")
	require.NoError(t, err)

	hero, err := repo.ByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", hero.Name)

	_, err = repo.ByID(999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHeroUpdate(t *testing.T) {
	repo := NewHeroRepository(store.NewMemoryStore(), newTestFactory())

	created, err := repo.Create("Ana", "Platform")
	require.NoError(t, err)

	require.NoError(t, repo.Update(created.ID, "Ana Souza", "Data"))

	hero, err := repo.ByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Souza", hero.Name)
	assert.Equal(t, "Data", hero.Team)

	assert.True(t, errors.Is(repo.Update(999, "Nobody", "Nowhere"), ErrNotFound))
}

func TestHeroDeleteLeavesNominationsInPlace(t *testing.T) {
	ms := store.NewMemoryStore()
	heroes := NewHeroRepository(ms, newTestFactory())
	nominations := NewNominationRepository(ms, t.TempDir(), newTestFactory())

	ana, err := heroes.Create("Ana", "Platform")
	require.NoError(t, err)
	bea, err := heroes.Create("Bea", "Data")
	require.NoError(t, err)

	_, err = nominations.Create(ana.ID, bea.ID, 1, "great work", nil)
	require.NoError(t, err)

	require.NoError(t, heroes.Delete(bea.ID))

	_, err = heroes.ByID(bea.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	remaining, err := nominations.All()
	require.NoError(t, err)
	assert.Len(t, remaining, 1, "nominations must survive hero deletion")
}
