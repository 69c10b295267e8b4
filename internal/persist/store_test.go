package persist

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRecord struct {
	ID   uint32 `json:"id"`
	Name string `json:"name"`
}

var (
	testData1 = []testRecord{
		{ID: 0, Name: "test1"},
		{ID: 1, Name: "test2"},
	}
	testData2 = []testRecord{
		{ID: 2, Name: "test2"},
		{ID: 3, Name: "test3"},
	}
)

func testPaths(t *testing.T) (path, backup string) {
	t.Helper()
	dir := t.TempDir()
	return filepath.Join(dir, "testdata.json"), filepath.Join(dir, "testdata.bak")
}

func TestSaveAndLoad(t *testing.T) {
	path, backup := testPaths(t)

	data, err := Load[[]testRecord](path)
	require.NoError(t, err, "load should succeed if no file exists yet")
	assert.Empty(t, data)

	require.NoError(t, Save(path, testData1))
	assert.FileExists(t, path)
	assert.NoFileExists(t, backup, "first save must not create a backup")

	data, err = Load[[]testRecord](path)
	require.NoError(t, err)
	assert.Equal(t, testData1, data)

	require.NoError(t, Save(path, testData2))
	assert.FileExists(t, backup, "second save must back up the previous generation")

	data, err = Load[[]testRecord](path)
	require.NoError(t, err)
	assert.Equal(t, testData2, data)
}

func TestLoadFallsBackToBackup(t *testing.T) {
	path, backup := testPaths(t)

	require.NoError(t, Save(path, testData1))
	require.NoError(t, Save(path, testData1))
	require.NoError(t, os.Remove(path))
	require.FileExists(t, backup)

	data, err := Load[[]testRecord](path)
	require.NoError(t, err)
	assert.Equal(t, testData1, data)
}

func TestLoadMissingBothIsEmpty(t *testing.T) {
	path, _ := testPaths(t)

	data, err := Load[[]testRecord](path)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestLoadCorruptPrimaryFails(t *testing.T) {
	path, _ := testPaths(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Load[[]testRecord](path)
	require.Error(t, err, "a corrupt primary without backup must not default to empty")
}

type unserializable struct{}

func (unserializable) MarshalJSON() ([]byte, error) {
	return nil, errors.New("boom")
}

func TestSaveSerializationFailureLeavesPrimaryUntouched(t *testing.T) {
	path, _ := testPaths(t)

	require.NoError(t, Save(path, testData1))
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	require.Error(t, Save(path, []unserializable{{}}))

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after, "failed save must not modify the primary file")
	assert.NoFileExists(t, filepath.Join(filepath.Dir(path), "testdata.tmp"))
}

func TestSaveToUnwritableDirFails(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}

	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0o400))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	err := Save(filepath.Join(dir, "testdata.json"), testData1)
	require.Error(t, err)
}
