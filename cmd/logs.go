package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/hpcloud/tail"
	"github.com/shopcanvas/shopcanvas/cli"
	"github.com/shopcanvas/shopcanvas/logging"
	"github.com/shopcanvas/shopcanvas/tui/theme"
	"github.com/spf13/cobra"
)

// NewLogsCmd creates the `logs` command.
func NewLogsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs [component]",
		Short: "Show shopcanvas log output",
		Long: `Prints log files written under the project-local log directory. Without a
component argument all components are shown.

Examples:
  # Last lines from every component
  shopcanvas logs

  # Follow the editor log
  shopcanvas logs editor -f
`,
		Args: cobra.MaximumNArgs(1),
		RunE: runLogsE,
	}

	cmd.Flags().BoolP("follow", "f", false, "Follow log output")
	cmd.Flags().Int("tail", 50, "Number of lines to show from the end of each log")

	return cmd
}

func runLogsE(cmd *cobra.Command, args []string) error {
	opts := cli.GetOptions(cmd)
	handler := cli.NewErrorHandler(opts.Verbose)

	component := ""
	if len(args) == 1 {
		component = args[0]
	}

	files, err := latestLogFiles(logging.LogDir(), component)
	if err != nil {
		return handler.Handle(err)
	}
	if len(files) == 0 {
		fmt.Println("No log files found.")
		return nil
	}

	follow, _ := cmd.Flags().GetBool("follow")
	tailN, _ := cmd.Flags().GetInt("tail")

	if !follow {
		for comp, path := range files {
			lines, err := lastLines(path, tailN)
			if err != nil {
				return handler.Handle(err)
			}
			for _, line := range lines {
				printLogLine(comp, line)
			}
		}
		return nil
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	for comp, path := range files {
		wg.Add(1)
		go func(comp, path string) {
			defer wg.Done()
			t, err := tail.TailFile(path, tail.Config{
				Follow: true,
				ReOpen: true,
				Location: &tail.SeekInfo{
					Offset: 0,
					Whence: io.SeekEnd,
				},
				Logger: tail.DiscardingLogger,
			})
			if err != nil {
				return
			}
			for line := range t.Lines {
				mu.Lock()
				printLogLine(comp, line.Text)
				mu.Unlock()
			}
		}(comp, path)
	}
	wg.Wait()
	return nil
}

// latestLogFiles maps component name to its newest log file. Files are named
// <component>-<date>.log by the logging package.
func latestLogFiles(dir, component string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".log") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	// Later date suffixes sort later, so the last file per component wins.
	files := make(map[string]string)
	for _, name := range names {
		base := strings.TrimSuffix(name, ".log")
		idx := strings.LastIndex(base, "-")
		comp := base
		if idx > 0 {
			comp = base[:idx]
		}
		if component != "" && comp != component {
			continue
		}
		files[comp] = filepath.Join(dir, name)
	}
	return files, nil
}

func lastLines(path string, n int) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if n > 0 && len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines, nil
}

func printLogLine(component, line string) {
	prefix := theme.DefaultTheme.Accent.Render(fmt.Sprintf("[%s]", component))
	fmt.Printf("%s %s\n", prefix, line)
}
