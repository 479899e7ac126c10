package params

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-fireball/common"
	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeClampsRanges(t *testing.T) {
	c := Controls{
		Speed:              1.5,
		Shake:              -1,
		BaseTessellation:   12,
		RimTessellation:    -3,
		VortexTessellation: 9,
		PrimaryColor:       [4]float32{300, -5, 128, 2},
	}.Normalize()

	assert.Equal(t, float32(1), c.Speed)
	assert.Equal(t, float32(0), c.Shake)
	assert.Equal(t, MaxBaseTessellation, c.BaseTessellation)
	assert.Equal(t, 0, c.RimTessellation)
	assert.Equal(t, MaxVortexTessellation, c.VortexTessellation)
	assert.Equal(t, [4]float32{255, 0, 128, 1}, c.PrimaryColor)
}

func TestStoreSnapshotIsACopy(t *testing.T) {
	s := NewStore(DefaultControls())
	snap := s.Snapshot()
	snap.Speed = 0.9

	assert.Equal(t, float32(0), s.Snapshot().Speed)
}

func TestStoreUpdateNormalizes(t *testing.T) {
	s := NewStore(DefaultControls())
	got := s.Update(func(c *Controls) { c.Speed = 4 })

	assert.Equal(t, float32(1), got.Speed)
	assert.Equal(t, float32(1), s.Snapshot().Speed)
}

func TestApplyKeepsReloadGeneration(t *testing.T) {
	s := NewStore(DefaultControls())
	s.RequestReload()
	s.RequestReload()

	next := DefaultControls()
	next.Shake = 0.7
	s.Apply(next)

	snap := s.Snapshot()
	assert.Equal(t, uint64(2), snap.Reload)
	assert.Equal(t, float32(0.7), snap.Shake)
}

func TestHandleKey(t *testing.T) {
	s := NewStore(DefaultControls())
	keys := DefaultKeyMap(nil)

	assert.True(t, s.HandleKey(keys, common.KeyEqual))
	assert.InDelta(t, SpeedStep, s.Snapshot().Speed, 1e-6)

	assert.True(t, s.HandleKey(keys, common.Key2))
	assert.Equal(t, 6, s.Snapshot().BaseTessellation)

	assert.True(t, s.HandleKey(keys, common.KeyV))
	assert.False(t, s.Snapshot().ShowVortex)

	before := s.Snapshot()
	assert.True(t, s.HandleKey(keys, common.KeyC))
	after := s.Snapshot()
	assert.Equal(t, before.PrimaryColor, after.SecondaryColor)
	assert.Equal(t, before.SecondaryColor, after.PrimaryColor)

	assert.True(t, s.HandleKey(keys, common.KeyR))
	assert.Equal(t, uint64(1), s.Snapshot().Reload)

	assert.False(t, s.HandleKey(keys, common.KeyEsc))
}

func TestHandleKeyRespectsLimits(t *testing.T) {
	s := NewStore(DefaultControls())
	keys := DefaultKeyMap(nil)
	for i := 0; i < 20; i++ {
		s.HandleKey(keys, common.KeyMinus)
		s.HandleKey(keys, common.Key3)
	}
	assert.Equal(t, float32(0), s.Snapshot().Speed)
	assert.Equal(t, 0, s.Snapshot().RimTessellation)
}

func TestSpeedKeysStepFromLiveSpeed(t *testing.T) {
	s := NewStore(DefaultControls())
	live := float32(1)
	keys := DefaultKeyMap(func() float32 { return live })

	require.True(t, s.HandleKey(keys, common.KeyMinus))
	assert.InDelta(t, 1-SpeedStep, s.Snapshot().Speed, 1e-6)

	live = 0.4
	require.True(t, s.HandleKey(keys, common.KeyEqual))
	assert.InDelta(t, 0.4+SpeedStep, s.Snapshot().Speed, 1e-6)
	assert.Equal(t, uint64(2), s.Snapshot().SpeedEdits)
}

func TestApplyKeepsSpeedEdits(t *testing.T) {
	s := NewStore(DefaultControls())
	s.HandleKey(DefaultKeyMap(nil), common.KeyEqual)

	s.Apply(DefaultControls())
	assert.Equal(t, uint64(1), s.Snapshot().SpeedEdits)
}

func TestStoreConcurrentUpdates(t *testing.T) {
	s := NewStore(DefaultControls())
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.RequestReload()
		}()
	}
	wg.Wait()
	assert.Equal(t, uint64(50), s.Snapshot().Reload)
}

type controlsFile struct {
	Controls Controls `toml:"controls"`
}

func loadControls(path string) (Controls, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Controls{}, err
	}
	f := controlsFile{Controls: DefaultControls()}
	if err := toml.Unmarshal(data, &f); err != nil {
		return Controls{}, err
	}
	return f.Controls, nil
}

func TestWatcherAppliesFileChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fireball.toml")
	require.NoError(t, os.WriteFile(path, []byte("[controls]\nshake = 0.2\n"), 0o644))

	s := NewStore(DefaultControls())
	w, err := NewWatcher(path, s, loadControls, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer func() { assert.NoError(t, w.Stop()) }()

	require.NoError(t, os.WriteFile(path, []byte("[controls]\nshake = 0.6\nshow_rim = false\n"), 0o644))

	require.Eventually(t, func() bool {
		snap := s.Snapshot()
		return snap.Shake > 0.59 && !snap.ShowRim
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fireball.toml")
	require.NoError(t, os.WriteFile(path, []byte("[controls]\n"), 0o644))

	loads := make(chan string, 4)
	load := func(p string) (Controls, error) {
		loads <- p
		return DefaultControls(), nil
	}
	w, err := NewWatcher(path, NewStore(DefaultControls()), load, WithDebounce(10*time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x = 1\n"), 0o644))

	select {
	case p := <-loads:
		t.Fatalf("unexpected reload of %s", p)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWatcherStartFailureCanStopImmediately(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "fireball.toml")
	w, err := NewWatcher(path, NewStore(DefaultControls()), func(string) (Controls, error) {
		return DefaultControls(), nil
	})
	require.NoError(t, err)

	assert.Error(t, w.Start(context.Background()))
	assert.NoError(t, w.Stop())
}
