//go:build ignore

// Validate_frames replays the frames recorded in an xvgu JSON log file
// (written with --log-file at debug level) through the frame decoder and
// reports which ones fail structural validation.
//
// Usage:
//
//	go run tools/validate_frames.go <log-file-or-directory>
package main

import (
	"bufio"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/xvgu/xvguctl/internal/protocol"
)

// loggedFrame matches the fields logging.LogFrame writes.
type loggedFrame struct {
	Msg       string `json:"msg"`
	Direction string `json:"direction"`
	Length    int    `json:"length"`
	Hex       string `json:"hex"`
}

// Statistics tracks decoding results
type Statistics struct {
	TotalFiles  int
	TotalFrames int
	Decoded     int
	Failed      int
	Commands    map[string]int
	Failures    []Failure
	ByDirection map[string]int
}

// Failure stores one frame that did not decode
type Failure struct {
	File       string
	LineNumber int
	Direction  string
	Hex        string
	Error      string
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: validate_frames <log-file-or-directory>")
		fmt.Println("Example: validate_frames ~/.local/state/xvgu/xvgu.log")
		os.Exit(1)
	}

	path := os.Args[1]
	stats := Statistics{
		Commands:    make(map[string]int),
		ByDirection: make(map[string]int),
	}

	info, err := os.Stat(path)
	if err != nil {
		fmt.Printf("Error accessing path: %v\n", err)
		os.Exit(1)
	}

	files := []string{path}
	if info.IsDir() {
		// lumberjack keeps rotated backups next to the active file
		files, err = filepath.Glob(filepath.Join(path, "*.log"))
		if err != nil || len(files) == 0 {
			fmt.Printf("No .log files found in %s\n", path)
			os.Exit(1)
		}
	}

	for _, file := range files {
		processFile(file, &stats)
	}

	printStatistics(&stats)
	if stats.Failed > 0 {
		os.Exit(2)
	}
}

func processFile(filename string, stats *Statistics) {
	f, err := os.Open(filename)
	if err != nil {
		fmt.Printf("Error reading file %s: %v\n", filename, err)
		return
	}
	defer f.Close()
	stats.TotalFiles++

	scanner := bufio.NewScanner(f)
	// A maximal frame logs about 128 KiB of hex
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++

		var entry loggedFrame
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil || entry.Msg != "Frame" {
			continue
		}
		stats.TotalFrames++
		stats.ByDirection[entry.Direction]++

		data, err := hex.DecodeString(entry.Hex)
		if err != nil {
			stats.fail(filename, lineNum, entry, fmt.Sprintf("hex decode error: %v", err))
			continue
		}
		if len(data) != entry.Length {
			stats.fail(filename, lineNum, entry, fmt.Sprintf("logged %d bytes, length field says %d", len(data), entry.Length))
			continue
		}

		frame, err := protocol.DecodeFrame(data)
		if err != nil {
			stats.fail(filename, lineNum, entry, err.Error())
			continue
		}

		stats.Decoded++
		stats.Commands[frame.Command.String()]++
	}
	if err := scanner.Err(); err != nil {
		fmt.Printf("Error scanning %s: %v\n", filename, err)
	}
}

func (s *Statistics) fail(file string, line int, entry loggedFrame, msg string) {
	s.Failed++
	s.Failures = append(s.Failures, Failure{
		File:       file,
		LineNumber: line,
		Direction:  entry.Direction,
		Hex:        entry.Hex,
		Error:      msg,
	})
}

func printStatistics(stats *Statistics) {
	fmt.Printf("=== xvgu Frame Validator ===\n")
	fmt.Printf("Files:   %d\n", stats.TotalFiles)
	fmt.Printf("Frames:  %d (out %d, in %d)\n", stats.TotalFrames, stats.ByDirection["out"], stats.ByDirection["in"])
	fmt.Printf("Decoded: %d\n", stats.Decoded)
	fmt.Printf("Failed:  %d\n\n", stats.Failed)

	if len(stats.Commands) > 0 {
		names := make([]string, 0, len(stats.Commands))
		for name := range stats.Commands {
			names = append(names, name)
		}
		sort.Strings(names)

		fmt.Println("Commands:")
		for _, name := range names {
			fmt.Printf("  %-16s %d\n", name, stats.Commands[name])
		}
		fmt.Println()
	}

	for _, f := range stats.Failures {
		fmt.Printf("%s:%d [%s] %s\n    %s\n", f.File, f.LineNumber, f.Direction, f.Hex, f.Error)
	}
}
