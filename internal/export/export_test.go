package export

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasaronina/MyDiary/internal/recordio"
)

func newDirStore(t *testing.T) (*Store, DirBackend, *test.Hook) {
	t.Helper()
	b := DirBackend{Dir: filepath.Join(t.TempDir(), "Documents"), Name: "health_report_export.bin"}
	log, hook := test.NewNullLogger()
	return New(b, log), b, hook
}

func TestEnsureLocation_CreatesDir(t *testing.T) {
	s, b, _ := newDirStore(t)
	loc, ok := s.EnsureLocation(context.Background())
	require.True(t, ok)
	assert.Equal(t, filepath.Join(b.Dir, b.Name), loc)

	info, err := os.Stat(b.Dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestWriteRead_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newDirStore(t)

	for _, text := range []string{
		"",
		"single line",
		"Health diary report\nDate and time: 01.01.2025 10:00\n\nSymptoms today: —\n",
	} {
		require.True(t, s.Write(ctx, text))
		got, ok := s.Read(ctx)
		require.True(t, ok)
		assert.Equal(t, text, got)
	}
}

func TestWrite_Overwrites(t *testing.T) {
	ctx := context.Background()
	s, b, _ := newDirStore(t)
	require.True(t, s.Write(ctx, strings.Repeat("long ", 100)))
	require.True(t, s.Write(ctx, "short"))

	got, ok := s.Read(ctx)
	require.True(t, ok)
	assert.Equal(t, "short", got)

	data, err := os.ReadFile(filepath.Join(b.Dir, b.Name))
	require.NoError(t, err)
	assert.Len(t, data, 2+len("short"))

	entries, err := os.ReadDir(b.Dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestRead_Missing(t *testing.T) {
	s, _, hook := newDirStore(t)
	_, ok := s.Read(context.Background())
	assert.False(t, ok)
	assert.Empty(t, hook.AllEntries())
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newDirStore(t)
	require.True(t, s.Write(ctx, "report"))
	require.True(t, s.Delete(ctx))

	_, ok := s.Read(ctx)
	assert.False(t, ok)

	assert.True(t, s.Delete(ctx), "deleting twice is a no-op")
}

func TestRead_Corrupt(t *testing.T) {
	ctx := context.Background()
	s, b, hook := newDirStore(t)
	_, ok := s.EnsureLocation(ctx)
	require.True(t, ok)
	require.NoError(t, os.WriteFile(filepath.Join(b.Dir, b.Name), []byte{0x00, 0x09, 'a'}, 0o644))

	_, ok = s.Read(ctx)
	assert.False(t, ok)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestRead_TrailingBytes(t *testing.T) {
	ctx := context.Background()
	for name, tail := range map[string][]byte{
		"partial frame": {0x00, 0x05, 'x'},
		"second record": {0x00, 0x01, 'b'},
		"stray byte":    {0x00},
	} {
		t.Run(name, func(t *testing.T) {
			s, b, hook := newDirStore(t)
			_, ok := s.EnsureLocation(ctx)
			require.True(t, ok)

			data, err := recordio.Encode("a")
			require.NoError(t, err)
			require.NoError(t, os.WriteFile(filepath.Join(b.Dir, b.Name), append(data, tail...), 0o644))

			text, ok := s.Read(ctx)
			assert.False(t, ok)
			assert.Empty(t, text)
			require.NotNil(t, hook.LastEntry())
			assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
		})
	}
}

func TestUnavailableLocation(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	blocker := filepath.Join(root, "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	log, _ := test.NewNullLogger()
	s := New(DirBackend{Dir: filepath.Join(blocker, "Documents"), Name: "r.bin"}, log)

	_, ok := s.EnsureLocation(ctx)
	assert.False(t, ok)
	assert.False(t, s.Write(ctx, "text"))
	_, ok = s.Read(ctx)
	assert.False(t, ok)
	assert.False(t, s.Delete(ctx))
}

func TestWrite_TooLong(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newDirStore(t)
	require.True(t, s.Write(ctx, "kept"))

	assert.False(t, s.Write(ctx, strings.Repeat("x", 70000)))
	got, ok := s.Read(ctx)
	require.True(t, ok)
	assert.Equal(t, "kept", got)
}
