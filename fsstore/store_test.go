package fsstore

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var storeSeq int

func newStore(t *testing.T) *Store {
	t.Helper()
	storeSeq++
	s, err := New(context.Background(), discardLogger(), Options{
		BaseURL:    fmt.Sprintf("mem://oskit-test-%d/fs", storeSeq),
		TotalBytes: 4096,
	})
	require.NoError(t, err)
	return s
}

func TestNewRequiresBaseURL(t *testing.T) {
	_, err := New(context.Background(), discardLogger(), Options{})
	require.Error(t, err)
}

func TestWriteReadRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	require.NoError(t, s.Write(ctx, "/boot.log", []byte("booted")))
	data, err := s.Read(ctx, "/boot.log")
	require.NoError(t, err)
	require.Equal(t, []byte("booted"), data)

	// Overwrite replaces the content.
	require.NoError(t, s.Write(ctx, "/boot.log", []byte("again")))
	data, err = s.Read(ctx, "/boot.log")
	require.NoError(t, err)
	require.Equal(t, []byte("again"), data)
}

func TestPathValidation(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	require.ErrorIs(t, s.Write(ctx, "", []byte("x")), ErrInvalidPath)
	require.ErrorIs(t, s.Write(ctx, "relative.txt", []byte("x")), ErrInvalidPath)
	require.ErrorIs(t, s.Write(ctx, "/"+strings.Repeat("y", 80), []byte("x")), ErrInvalidPath)
}

func TestReadMissingFile(t *testing.T) {
	s := newStore(t)
	_, err := s.Read(context.Background(), "/absent")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAppendCreatesAndExtends(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	require.NoError(t, s.Append(ctx, "/log", []byte("one\n")))
	require.NoError(t, s.Append(ctx, "/log", []byte("two\n")))

	data, err := s.Read(ctx, "/log")
	require.NoError(t, err)
	require.Equal(t, "one\ntwo\n", string(data))
}

func TestDeleteAndExists(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	require.NoError(t, s.Write(ctx, "/tmp", []byte("x")))
	require.True(t, s.Exists(ctx, "/tmp"))

	require.NoError(t, s.Delete(ctx, "/tmp"))
	require.False(t, s.Exists(ctx, "/tmp"))

	require.ErrorIs(t, s.Delete(ctx, "/tmp"), ErrNotFound)
}

func TestRename(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	require.NoError(t, s.Write(ctx, "/old", []byte("payload")))
	require.NoError(t, s.Rename(ctx, "/old", "/new"))

	require.False(t, s.Exists(ctx, "/old"))
	data, err := s.Read(ctx, "/new")
	require.NoError(t, err)
	require.Equal(t, []byte("payload"), data)

	require.ErrorIs(t, s.Rename(ctx, "/ghost", "/anywhere"), ErrNotFound)
}

func TestListSortedByName(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	require.NoError(t, s.Write(ctx, "/zeta", []byte("zz")))
	require.NoError(t, s.Write(ctx, "/alpha", []byte("a")))

	infos, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	require.Equal(t, "/alpha", infos[0].Name)
	require.Equal(t, 1, infos[0].Size)
	require.Equal(t, "/zeta", infos[1].Name)
	require.Equal(t, 2, infos[1].Size)
}

func TestInfo(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	require.NoError(t, s.Write(ctx, "/file", []byte("12345")))

	info, err := s.Info(ctx, "/file")
	require.NoError(t, err)
	require.Equal(t, "/file", info.Name)
	require.Equal(t, 5, info.Size)

	_, err = s.Info(ctx, "/ghost")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFormatWipesEverything(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	require.NoError(t, s.Write(ctx, "/a", []byte("a")))
	require.NoError(t, s.Write(ctx, "/b", []byte("b")))

	require.NoError(t, s.Format(ctx))

	infos, err := s.List(ctx)
	require.NoError(t, err)
	require.Empty(t, infos)

	// The store remains usable after a format.
	require.NoError(t, s.Write(ctx, "/c", []byte("c")))
}

func TestCheckWritesAndRemovesProbe(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	require.NoError(t, s.Check(ctx))
	require.False(t, s.Exists(ctx, "/.fsck"))
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	require.NoError(t, s.Write(ctx, "/a", make([]byte, 1024)))
	require.NoError(t, s.Write(ctx, "/b", make([]byte, 1024)))

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, 4096, stats.TotalBytes)
	require.Equal(t, 2048, stats.UsedBytes)
	require.Equal(t, 2048, stats.FreeBytes)
	require.Equal(t, 2, stats.Files)
	require.InDelta(t, 50.0, stats.UsagePercent(), 0.01)
}
