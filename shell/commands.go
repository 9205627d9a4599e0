package shell

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

func commandTable() []Command {
	return []Command{
		{Name: "help", Description: "List available commands", Run: cmdHelp},
		{Name: "info", Description: "Show system information", Run: cmdInfo},
		{Name: "uptime", Description: "Show time since boot", Run: cmdUptime},
		{Name: "ps", Description: "List tasks", Run: cmdTasks},
		{Name: "tasks", Description: "List tasks", Run: cmdTasks},
		{Name: "free", Description: "Show free memory", Run: cmdFree},
		{Name: "mem", Description: "Show memory map", Run: cmdMem},
		{Name: "ls", Description: "List files", Run: cmdList},
		{Name: "cat", Description: "Print file contents", Run: cmdCat},
		{Name: "write", Description: "Write text to a file", Run: cmdWrite},
		{Name: "rm", Description: "Delete a file", Run: cmdRemove},
		{Name: "fs", Description: "File store maintenance (format|check|stat)", Run: cmdFs},
		{Name: "echo", Description: "Print arguments", Run: cmdEcho},
		{Name: "clear", Description: "Clear the screen", Run: cmdClear},
		{Name: "sleep", Description: "Light-sleep for N milliseconds", Run: cmdSleep},
		{Name: "led", Description: "Control the LED (on|off|toggle)", Run: cmdLED},
		{Name: "reboot", Description: "Restart the system", Run: cmdReboot},
	}
}

func cmdHelp(_ context.Context, s *Shell, out io.Writer, _ []string) {
	fmt.Fprintln(out, "Available commands:")
	for i := range s.commands {
		fmt.Fprintf(out, "  %-8s %s\n", s.commands[i].Name, s.commands[i].Description)
	}
}

func cmdInfo(_ context.Context, s *Shell, out io.Writer, _ []string) {
	stats, err := s.kernel.Stats()
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(out, "Boot ID:        %s\n", stats.BootID)
	fmt.Fprintf(out, "Version:        %s\n", stats.Version)
	fmt.Fprintf(out, "Uptime:         %s\n", formatUptime(stats.UptimeSeconds))
	fmt.Fprintf(out, "Tasks:          %d\n", stats.TotalTasks)
	fmt.Fprintf(out, "Free memory:    %s\n", formatBytes(stats.FreeMemory))
	fmt.Fprintf(out, "Min free ever:  %s\n", formatBytes(stats.MinFreeMemory))
	if stats.Healthy {
		fmt.Fprintln(out, "Health:         OK")
	} else {
		fmt.Fprintln(out, "Health:         DEGRADED")
	}
}

func cmdUptime(_ context.Context, s *Shell, out io.Writer, _ []string) {
	stats, err := s.kernel.Stats()
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(out, "Up %s\n", formatUptime(stats.UptimeSeconds))
}

func cmdTasks(_ context.Context, s *Shell, out io.Writer, _ []string) {
	infos, err := s.kernel.ListTasks()
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return
	}
	if len(infos) == 0 {
		fmt.Fprintln(out, "No tasks")
		return
	}
	fmt.Fprintf(out, "%-16s %8s  %-9s %6s %8s\n", "NAME", "STACK", "STATE", "PRIO", "HWM")
	for _, info := range infos {
		fmt.Fprintf(out, "%-16s %8d  %-9s %6d %8d\n",
			info.Name, info.StackSize, info.State, info.Priority, info.StackHighWater)
	}
}

func cmdFree(_ context.Context, s *Shell, out io.Writer, _ []string) {
	stats, err := s.kernel.Memory().Statistics()
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(out, "Free heap:        %s\n", formatBytes(stats.AvailableHeap))
	fmt.Fprintf(out, "Largest block:    %s\n", formatBytes(stats.LargestFreeRun))
	fmt.Fprintf(out, "Tracked:          %s in %d blocks\n", formatBytes(stats.TotalAllocated), stats.LiveBlocks)
	fmt.Fprintf(out, "Peak tracked:     %s\n", formatBytes(stats.PeakAllocated))
	fmt.Fprintf(out, "Allocs / frees:   %d / %d\n", stats.AllocationCount, stats.FreeCount)
}

func cmdMem(_ context.Context, s *Shell, out io.Writer, _ []string) {
	blocks, err := s.kernel.Memory().MemoryMap()
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return
	}
	if len(blocks) == 0 {
		fmt.Fprintln(out, "No live allocations")
		return
	}
	fmt.Fprintf(out, "%-12s %8s  %-15s %10s\n", "ADDRESS", "SIZE", "TAG", "AGE")
	for _, block := range blocks {
		fmt.Fprintf(out, "0x%08X   %8d  %-15s %8dms\n",
			uint64(block.Pointer), block.Size, block.Tag, block.AgeMs)
	}
}

func cmdList(ctx context.Context, s *Shell, out io.Writer, _ []string) {
	if s.store == nil {
		fmt.Fprintln(out, "File store unavailable")
		return
	}
	infos, err := s.store.List(ctx)
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return
	}
	if len(infos) == 0 {
		fmt.Fprintln(out, "No files")
		return
	}
	for _, info := range infos {
		fmt.Fprintf(out, "%8d  %s\n", info.Size, info.Name)
	}
}

func cmdCat(ctx context.Context, s *Shell, out io.Writer, args []string) {
	if s.store == nil {
		fmt.Fprintln(out, "File store unavailable")
		return
	}
	if len(args) != 1 {
		fmt.Fprintln(out, "Usage: cat <path>")
		return
	}
	data, err := s.store.Read(ctx, args[0])
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return
	}
	out.Write(data)
	if len(data) > 0 && data[len(data)-1] != '\n' {
		fmt.Fprintln(out)
	}
}

func cmdWrite(ctx context.Context, s *Shell, out io.Writer, args []string) {
	if s.store == nil {
		fmt.Fprintln(out, "File store unavailable")
		return
	}
	if len(args) < 2 {
		fmt.Fprintln(out, "Usage: write <path> <text>")
		return
	}
	text := strings.Join(args[1:], " ")
	if err := s.store.Write(ctx, args[0], []byte(text)); err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(out, "Wrote %d bytes to %s\n", len(text), args[0])
}

func cmdRemove(ctx context.Context, s *Shell, out io.Writer, args []string) {
	if s.store == nil {
		fmt.Fprintln(out, "File store unavailable")
		return
	}
	if len(args) != 1 {
		fmt.Fprintln(out, "Usage: rm <path>")
		return
	}
	if err := s.store.Delete(ctx, args[0]); err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(out, "Deleted %s\n", args[0])
}

func cmdFs(ctx context.Context, s *Shell, out io.Writer, args []string) {
	if s.store == nil {
		fmt.Fprintln(out, "File store unavailable")
		return
	}
	if len(args) != 1 {
		fmt.Fprintln(out, "Usage: fs <format|check|stat>")
		return
	}
	switch args[0] {
	case "format":
		if err := s.store.Format(ctx); err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return
		}
		fmt.Fprintln(out, "File store formatted")
	case "check":
		if err := s.store.Check(ctx); err != nil {
			fmt.Fprintf(out, "Check failed: %v\n", err)
			return
		}
		fmt.Fprintln(out, "File store OK")
	case "stat":
		stats, err := s.store.Stats(ctx)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return
		}
		fmt.Fprintf(out, "Capacity: %s\n", formatBytes(stats.TotalBytes))
		fmt.Fprintf(out, "Used:     %s (%.1f%%)\n", formatBytes(stats.UsedBytes), stats.UsagePercent())
		fmt.Fprintf(out, "Free:     %s\n", formatBytes(stats.FreeBytes))
		fmt.Fprintf(out, "Files:    %d\n", stats.Files)
	default:
		fmt.Fprintln(out, "Usage: fs <format|check|stat>")
	}
}

func cmdEcho(_ context.Context, _ *Shell, out io.Writer, args []string) {
	fmt.Fprintln(out, strings.Join(args, " "))
}

func cmdClear(_ context.Context, _ *Shell, out io.Writer, _ []string) {
	fmt.Fprint(out, "\033[2J\033[H")
}

func cmdSleep(_ context.Context, s *Shell, out io.Writer, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(out, "Usage: sleep <milliseconds>")
		return
	}
	ms, err := strconv.Atoi(args[0])
	if err != nil || ms < 0 {
		fmt.Fprintf(out, "Invalid duration: %s\n", args[0])
		return
	}
	d := time.Duration(ms) * time.Millisecond
	if s.board != nil {
		s.board.LightSleep(d)
	} else {
		time.Sleep(d)
	}
}

func cmdLED(_ context.Context, s *Shell, out io.Writer, args []string) {
	if s.board == nil {
		fmt.Fprintln(out, "Board unavailable")
		return
	}
	if len(args) != 1 {
		fmt.Fprintln(out, "Usage: led <on|off|toggle>")
		return
	}
	switch args[0] {
	case "on":
		s.board.SetLED(true)
	case "off":
		s.board.SetLED(false)
	case "toggle":
		s.board.ToggleLED()
	default:
		fmt.Fprintln(out, "Usage: led <on|off|toggle>")
		return
	}
	if s.board.LED() {
		fmt.Fprintln(out, "LED is on")
	} else {
		fmt.Fprintln(out, "LED is off")
	}
}

func cmdReboot(_ context.Context, s *Shell, out io.Writer, _ []string) {
	fmt.Fprintln(out, "Rebooting...")
	s.kernel.Reboot()
}
