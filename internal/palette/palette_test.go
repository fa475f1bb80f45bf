package palette

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestColor_Fallback(t *testing.T) {
	p := Default()
	assert.Equal(t, "blue", p.Color("Parking"))
	assert.Equal(t, DefaultFallback, p.Color("Unmapped"))
	assert.Equal(t, DefaultFallback, p.Color(""))
}

func TestParse(t *testing.T) {
	p, err := Parse([]byte("fallback: black\ncolors:\n  ' Parking ': red\n  Accessibility: green\n"))
	require.NoError(t, err)
	assert.Equal(t, "red", p.Color("Parking"))
	assert.Equal(t, "black", p.Color("Lighting"))

	p, err = Parse([]byte("colors:\n  Parking: red\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultFallback, p.Fallback)

	_, err = Parse([]byte("fallback: red\n"))
	assert.Error(t, err)
	_, err = Parse([]byte("colors: [oops"))
	assert.Error(t, err)
}

func TestStore_NilUsesDefault(t *testing.T) {
	s := NewStore(nil)
	assert.Equal(t, "green", s.Color("Accessibility"))

	s.Replace(nil)
	assert.Equal(t, "green", s.Color("Accessibility"))

	s.Replace(&Palette{Fallback: "pink", Colors: map[string]string{"Accessibility": "purple"}})
	assert.Equal(t, "purple", s.Color("Accessibility"))
	assert.Equal(t, "pink", s.Color("Parking"))
}

func TestWatch_ReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "palette.yaml")
	require.NoError(t, os.WriteFile(path, []byte("colors:\n  Parking: blue\n"), 0o644))

	p, err := ReadFile(path)
	require.NoError(t, err)
	store := NewStore(p)

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, Watch(ctx, path, store, zap.NewNop()))
	}()
	defer func() {
		cancel()
		wg.Wait()
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("colors:\n  Parking: red\n"), 0o644))

	assert.Eventually(t, func() bool { return store.Color("Parking") == "red" }, 5*time.Second, 50*time.Millisecond)

	// A broken file keeps the previous table.
	require.NoError(t, os.WriteFile(path, []byte("colors: [oops"), 0o644))
	time.Sleep(2 * debounce)
	assert.Equal(t, "red", store.Color("Parking"))
}

func TestWatch_MissingDirectory(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "nope", "palette.yaml"), NewStore(nil), zap.NewNop())
	assert.Error(t, err)
}
