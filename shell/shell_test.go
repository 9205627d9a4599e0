package shell

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/embeddedos/oskit/config"
	"github.com/embeddedos/oskit/fsstore"
	"github.com/embeddedos/oskit/hal/sim"
	"github.com/embeddedos/oskit/kernel"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var shellSeq int

func newTestShell(t *testing.T) (*Shell, *sim.Board) {
	t.Helper()
	cfg := config.Default()

	sched := sim.NewScheduler(cfg.MaxTasks)
	t.Cleanup(sched.Shutdown)
	board := sim.NewBoard(nil)

	k, err := kernel.New(cfg, kernel.Deps{
		Logger:    discardLogger(),
		Heap:      sim.NewHeap(cfg.HeapSize),
		Scheduler: sched,
		Clock:     sim.NewClock(),
		Board:     board,
	})
	require.NoError(t, err)
	t.Cleanup(k.Shutdown)

	shellSeq++
	store, err := fsstore.New(context.Background(), discardLogger(), fsstore.Options{
		BaseURL:    fmt.Sprintf("mem://oskit-shell-%d/fs", shellSeq),
		TotalBytes: 4096,
	})
	require.NoError(t, err)

	return New(k, store, board, cfg), board
}

func execute(s *Shell, line string) string {
	var out bytes.Buffer
	s.Execute(context.Background(), &out, line)
	return out.String()
}

func TestParseLine(t *testing.T) {
	require.Equal(t, []string{"echo", "hello"}, parseLine("echo hello"))
	require.Equal(t, []string{"write", "/f", "two words"}, parseLine(`write /f "two words"`))
	require.Equal(t, []string{"a", "b"}, parseLine("  a \t b  "))
	require.Equal(t, []string{"x", ""}, parseLine(`x ""`))
	require.Nil(t, parseLine(""))
}

func TestUnknownCommand(t *testing.T) {
	s, _ := newTestShell(t)
	out := execute(s, "frobnicate")
	require.Contains(t, out, "Unknown command: frobnicate")
	require.Contains(t, out, "help")
}

func TestHelpListsEveryCommand(t *testing.T) {
	s, _ := newTestShell(t)
	out := execute(s, "help")
	for _, name := range []string{"info", "ps", "free", "mem", "ls", "cat", "write", "rm", "fs", "led", "reboot"} {
		require.Contains(t, out, name)
	}
}

func TestEcho(t *testing.T) {
	s, _ := newTestShell(t)
	require.Equal(t, "hello world\n", execute(s, `echo hello "world"`))
}

func TestInfoShowsSystemFields(t *testing.T) {
	s, _ := newTestShell(t)
	out := execute(s, "info")
	require.Contains(t, out, "Boot ID:")
	require.Contains(t, out, "Version:        "+config.Version)
	require.Contains(t, out, "Health:         OK")
}

func TestTasksListing(t *testing.T) {
	s, _ := newTestShell(t)

	require.Contains(t, execute(s, "ps"), "No tasks")

	err := s.kernel.CreateTask("blinker", func(ctx context.Context, _ any) {
		<-ctx.Done()
	}, 2048, nil, 3)
	require.NoError(t, err)

	out := execute(s, "tasks")
	require.Contains(t, out, "NAME")
	require.Contains(t, out, "blinker")
}

func TestFreeShowsHeapNumbers(t *testing.T) {
	s, _ := newTestShell(t)

	ptr, err := s.kernel.Allocate(1024, "shellbuf")
	require.NoError(t, err)

	out := execute(s, "free")
	require.Contains(t, out, "Free heap:")
	require.Contains(t, out, "1.00 KB in 1 blocks")

	require.NoError(t, s.kernel.Free(ptr))
}

func TestMemShowsMemoryMap(t *testing.T) {
	s, _ := newTestShell(t)

	require.Contains(t, execute(s, "mem"), "No live allocations")

	ptr, err := s.kernel.Allocate(64, "mapped")
	require.NoError(t, err)

	out := execute(s, "mem")
	require.Contains(t, out, "ADDRESS")
	require.Contains(t, out, "mapped")

	require.NoError(t, s.kernel.Free(ptr))
}

func TestFileCommands(t *testing.T) {
	s, _ := newTestShell(t)

	require.Contains(t, execute(s, "ls"), "No files")

	out := execute(s, `write /notes "first line"`)
	require.Contains(t, out, "Wrote 10 bytes to /notes")

	require.Contains(t, execute(s, "cat /notes"), "first line")
	require.Contains(t, execute(s, "ls"), "/notes")

	require.Contains(t, execute(s, "rm /notes"), "Deleted /notes")
	require.Contains(t, execute(s, "cat /notes"), "Error:")
}

func TestFsMaintenance(t *testing.T) {
	s, _ := newTestShell(t)

	require.Contains(t, execute(s, "fs check"), "File store OK")

	execute(s, `write /junk "x"`)
	require.Contains(t, execute(s, "fs format"), "File store formatted")
	require.Contains(t, execute(s, "ls"), "No files")

	out := execute(s, "fs stat")
	require.Contains(t, out, "Capacity:")
	require.Contains(t, out, "Files:    0")

	require.Contains(t, execute(s, "fs bogus"), "Usage: fs")
}

func TestLEDCommand(t *testing.T) {
	s, board := newTestShell(t)

	require.Contains(t, execute(s, "led on"), "LED is on")
	require.True(t, board.LED())

	require.Contains(t, execute(s, "led toggle"), "LED is off")
	require.False(t, board.LED())

	require.Contains(t, execute(s, "led sideways"), "Usage: led")
}

func TestSleepRejectsBadInput(t *testing.T) {
	s, _ := newTestShell(t)
	require.Contains(t, execute(s, "sleep soon"), "Invalid duration")
	require.Contains(t, execute(s, "sleep"), "Usage: sleep")
}

func TestRunPrintsBannerAndPrompt(t *testing.T) {
	s, _ := newTestShell(t)

	var out bytes.Buffer
	in := strings.NewReader("echo hi\n")
	require.NoError(t, s.Run(context.Background(), in, &out))

	text := out.String()
	require.Contains(t, text, "oskit shell v"+config.Version)
	require.Contains(t, text, "oskit> ")
	require.Contains(t, text, "hi")
}

func TestCommandNamesAreCaseInsensitive(t *testing.T) {
	s, _ := newTestShell(t)
	require.Equal(t, "hi\n", execute(s, "ECHO hi"))
}
