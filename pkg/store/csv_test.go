package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/latoulicious/GEMS/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(t.TempDir(), logging.NewLoggerFactory("error"))
}

func TestFileStoreCreatesBackingFileOnFirstLoad(t *testing.T) {
	dir := t.TempDir()
	fs := NewFileStore(dir, logging.NewLoggerFactory("error"))

	table, err := fs.Load(EntityHero)
	require.NoError(t, err)
	assert.True(t, table.IsEmpty())

	columns, _ := Schema(EntityHero)
	assert.Equal(t, columns, table.Columns)

	// The header-only file must exist and survive a second load
	data, err := os.ReadFile(filepath.Join(dir, "dim_hero.csv"))
	require.NoError(t, err)
	assert.Equal(t, "id_hero;hero_name;hero_team;start_date;update_date\n", string(data))

	again, err := fs.Load(EntityHero)
	require.NoError(t, err)
	assert.True(t, again.IsEmpty())
	assert.Equal(t, columns, again.Columns)
}

func TestFileStoreRoundTrip(t *testing.T) {
	fs := newTestFileStore(t)

	table, err := fs.Load(EntityHero)
	require.NoError(t, err)

	table.Append(map[string]string{
		ColHeroID:     "101",
		ColHeroName:   "Ana; a semicolon lover",
		ColHeroTeam:   "Platform",
		ColStartDate:  "2026-08-01",
		ColUpdateDate: "2026-08-01",
	})
	require.NoError(t, fs.Save(EntityHero, table))

	loaded, err := fs.Load(EntityHero)
	require.NoError(t, err)
	require.Equal(t, 1, loaded.Len())
	assert.Equal(t, "Ana; a semicolon lover", loaded.Cell(0, ColHeroName))
	assert.Equal(t, "101", loaded.Cell(0, ColHeroID))
}

func TestFileStoreMalformedFileDegradesToEmpty(t *testing.T) {
	dir := t.TempDir()
	fs := NewFileStore(dir, logging.NewLoggerFactory("error"))

	// A structurally broken file: an unterminated quote
	path := filepath.Join(dir, "dim_map.csv")
	require.NoError(t, os.WriteFile(path, []byte("id_mission;\"broken\nno;closing"), 0o644))

	table, err := fs.Load(EntityMission)
	require.NoError(t, err)
	assert.True(t, table.IsEmpty())

	columns, _ := Schema(EntityMission)
	assert.Equal(t, columns, table.Columns)
}

func TestFileStoreBackfillsMissingColumns(t *testing.T) {
	dir := t.TempDir()
	fs := NewFileStore(dir, logging.NewLoggerFactory("error"))

	// An older file written before the attachment column existed
	path := filepath.Join(dir, "fact_nomeacao.csv")
	content := "id_nomeacao;data_submissao;id_nomeador;id_nomeado;id_missao;justificativa;status\n" +
		"1;2026-08-01;101;102;1;great work;Pendente\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	table, err := fs.Load(EntityNomination)
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())

	assert.True(t, table.HasColumn(ColAttachmentPath))
	assert.Equal(t, "", table.Cell(0, ColAttachmentPath))
	assert.Equal(t, "great work", table.Cell(0, ColJustification))
}

func TestFileStoreShortRecordsPadded(t *testing.T) {
	dir := t.TempDir()
	fs := NewFileStore(dir, logging.NewLoggerFactory("error"))

	path := filepath.Join(dir, "dim_hero.csv")
	content := "id_hero;hero_name;hero_team;start_date;update_date\n101;Ana\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	table, err := fs.Load(EntityHero)
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())
	assert.Equal(t, "Ana", table.Cell(0, ColHeroName))
	assert.Equal(t, "", table.Cell(0, ColHeroTeam))
}

func TestFileStoreUnknownEntity(t *testing.T) {
	fs := newTestFileStore(t)
	_, err := fs.Load(Entity("unknown"))
	assert.Error(t, err)
}

func TestMemoryStoreCopies(t *testing.T) {
	ms := NewMemoryStore()

	table, err := ms.Load(EntityHero)
	require.NoError(t, err)
	table.Append(map[string]string{ColHeroID: "101", ColHeroName: "Ana"})
	require.NoError(t, ms.Save(EntityHero, table))

	// Mutating the saved table must not leak into the store
	table.Rows[0][ColHeroName] = "changed"

	loaded, err := ms.Load(EntityHero)
	require.NoError(t, err)
	assert.Equal(t, "Ana", loaded.Cell(0, ColHeroName))
}
