package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/falldown/internal/storage"
)

type namedWindow string

func (w namedWindow) Name() string { return string(w) }

// inMenuRecorder records the in_menu flag seen by each backend call.
type inMenuRecorder struct {
	*storage.Memory
	mode   *Mode
	reads  []bool
	writes []bool
}

func (p *inMenuRecorder) Read(key Key) ([]byte, error) {
	p.reads = append(p.reads, p.mode.InMenu())
	return p.Memory.Read(key)
}

func (p *inMenuRecorder) Write(key Key, value []byte) error {
	p.writes = append(p.writes, p.mode.InMenu())
	return p.Memory.Write(key, value)
}

func TestInMenuLifecycle(t *testing.T) {
	app := NewApp(NewStore(storage.NewMemory(), nil))
	w := namedWindow("settings")

	assert.False(t, app.Mode.InMenu(), "before appear")

	app.HandleAppear(w)
	assert.True(t, app.Mode.InMenu(), "after appear")

	app.Store.AccelerometerControlCallback(RowAccelerometerControl, nil)
	assert.True(t, app.Mode.InMenu(), "during visit")

	app.HandleUnload(w)
	assert.False(t, app.Mode.InMenu(), "after unload")
}

func TestLifecycleOrdering(t *testing.T) {
	rec := &inMenuRecorder{Memory: storage.NewMemory()}
	app := NewApp(NewStore(rec, nil))
	rec.mode = app.Mode

	app.HandleAppear(namedWindow("settings"))
	app.HandleUnload(namedWindow("settings"))

	// Loaded after entering the menu, flushed before leaving it
	require.NotEmpty(t, rec.reads)
	require.NotEmpty(t, rec.writes)
	for _, inMenu := range rec.reads {
		assert.True(t, inMenu)
	}
	for _, inMenu := range rec.writes {
		assert.True(t, inMenu)
	}
}

func TestVisitPersistsAcrossRestart(t *testing.T) {
	backend := storage.NewMemory()

	app := NewApp(NewStore(backend, nil))
	app.HandleAppear(namedWindow("settings"))
	app.Store.AccelerometerControlCallback(RowAccelerometerControl, nil)
	app.HandleUnload(namedWindow("settings"))

	restarted := NewApp(NewStore(backend, nil))
	restarted.HandleAppear(namedWindow("settings"))
	assert.Equal(t, "On", restarted.Store.DisplaySettings()[0].Subtitle)
}

func TestSessionsShareStoreButNotMode(t *testing.T) {
	store := NewStore(storage.NewMemory(), nil)
	a := NewApp(store)
	b := NewApp(store)

	a.HandleAppear(namedWindow("a"))
	a.Store.AccelerometerControlCallback(RowAccelerometerControl, nil)

	assert.True(t, a.Mode.InMenu())
	assert.False(t, b.Mode.InMenu())
	assert.True(t, b.Store.Settings().AccelerometerControl)
}

func TestCloseFlushesOnlyAfterLoad(t *testing.T) {
	backend := storage.NewMemory()
	app := NewApp(NewStore(backend, nil))

	app.Close()
	_, err := backend.Read(KeyAccelerometerControl)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	app.Store.InitSettings()
	app.Close()
	data, err := backend.Read(KeyAccelerometerControl)
	require.NoError(t, err)
	assert.Equal(t, []byte{0}, data)
}
