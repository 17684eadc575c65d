package commander

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"featureselect/internal/data"
	"featureselect/internal/jobs"
	"featureselect/internal/persistence"
	"featureselect/internal/search"

	"github.com/fatih/color"
)

type Commander struct {
	in     io.Reader
	out    io.Writer
	logger *slog.Logger

	dataset       *data.Dataset
	normalization string
	lastRun       *persistence.RunRecord
	jobManager    *jobs.Manager
	done          bool

	green  func(a ...any) string
	red    func(a ...any) string
	yellow func(a ...any) string
	cyan   func(a ...any) string
	blue   func(a ...any) string
}

func NewCommander(in io.Reader, out io.Writer) *Commander {
	return &Commander{
		in:         in,
		out:        out,
		logger:     slog.New(slog.DiscardHandler),
		jobManager: jobs.NewManager(),
		green:      color.New(color.FgGreen).SprintFunc(),
		red:        color.New(color.FgRed).SprintFunc(),
		yellow:     color.New(color.FgYellow).SprintFunc(),
		cyan:       color.New(color.FgCyan).SprintFunc(),
		blue:       color.New(color.FgBlue).SprintFunc(),
	}
}

// SetLogger routes search diagnostics to logger.
func (c *Commander) SetLogger(logger *slog.Logger) {
	if logger != nil {
		c.logger = logger
	}
}

func (c *Commander) printf(format string, a ...any) {
	fmt.Fprintf(c.out, format, a...)
}

func (c *Commander) println(a ...any) {
	fmt.Fprintln(c.out, a...)
}

// Start runs the read-eval loop until quit, end of input or ctx ends.
// Input is read on its own goroutine so cancellation does not wait for the
// next line.
func (c *Commander) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.printWelcome()
	lines, readErr := c.readLines(ctx)

	for !c.done {
		fmt.Fprint(c.out, c.yellow("\nfs> "))

		var line string
		select {
		case <-ctx.Done():
			c.println()
			return
		case l, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					c.printf("\n%s Scanner error: %v\n", c.red("✗"), err)
				}
				return
			}
			line = l
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		command := strings.ToLower(parts[0])
		args := parts[1:]

		c.ExecuteCommand(ctx, command, args)
	}
}

// readLines scans c.in until end of input or ctx ends. readErr receives the
// scanner error before lines is closed.
func (c *Commander) readLines(ctx context.Context) (<-chan string, <-chan error) {
	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		scanner := bufio.NewScanner(c.in)
		defer func() {
			readErr <- scanner.Err()
			close(lines)
		}()

		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	return lines, readErr
}

func (c *Commander) ExecuteCommand(ctx context.Context, command string, args []string) {
	switch command {
	case "help", "h":
		c.showHelp()
	case "load":
		if len(args) > 0 {
			method := "normalized"
			if len(args) > 1 {
				method = args[1]
			}
			c.loadData(args[0], method)
		} else {
			c.println(c.red("Usage: load <filename> [normalized|raw]"))
		}
	case "info":
		c.showDataInfo()
	case "forward", "backward", "bidirectional", "1", "2", "3":
		strategy, _ := search.ParseStrategy(command)
		c.runSearch(ctx, strategy)
	case "loocv":
		c.evaluateSubset(args)
	case "export":
		if len(args) >= 2 {
			c.exportProjection(args[0], args[1:])
		} else {
			c.println(c.red("Usage: export <filename> <feature> [feature...]"))
		}
	case "save":
		dir := "results"
		if len(args) > 0 {
			dir = args[0]
		}
		c.saveResults(dir)
	case "run-bg":
		if len(args) > 0 {
			c.searchBackground(ctx, args[0])
		} else {
			c.println(c.red("Usage: run-bg <forward|backward|bidirectional>"))
		}
	case "job-status":
		if len(args) > 0 {
			c.showJobStatus(args[0])
		} else {
			c.listAllJobs()
		}
	case "job-cancel":
		if len(args) > 0 {
			c.cancelJob(args[0])
		} else {
			c.println(c.red("Usage: job-cancel <job-id>"))
		}
	case "job-logs":
		if len(args) > 0 {
			c.showJobLogs(args[0])
		} else {
			c.println(c.red("Usage: job-logs <job-id>"))
		}
	case "clear":
		c.clearScreen()
	case "quit", "exit", "q":
		c.quit()
	default:
		c.printf("%s Unknown command: %s\n", c.red("✗"), command)
		c.println("Type 'help' for available commands")
	}
}

func (c *Commander) printWelcome() {
	c.println(c.cyan("╔══════════════════════════════════════════╗"))
	c.println(c.cyan("║        Feature Selection Commander        ║"))
	c.println(c.cyan("║   Nearest Neighbor + Leave-One-Out CV     ║"))
	c.println(c.cyan("╚══════════════════════════════════════════╝"))
	c.println()
	c.println("Type 'help' for available commands")
}

func (c *Commander) showHelp() {
	c.println(c.blue("\nAvailable Commands:"))

	c.println("\n" + c.cyan("Data Management:"))
	c.println("  load <file> [raw]      - Load a text or CSV dataset (min-max normalized unless raw)")
	c.println("  info                   - Show loaded data information")
	c.println("  export <file> <f...>   - Write the label and chosen features to CSV")

	c.println("\n" + c.cyan("Feature Search:"))
	c.println("  forward | 1            - Forward selection")
	c.println("  backward | 2           - Backward elimination")
	c.println("  bidirectional | 3      - Bidirectional search")
	c.println("  loocv [f...]           - Leave-one-out accuracy of a feature subset (default: all)")
	c.println("  save [dir]             - Save the last search trace and summary (default: results)")

	c.println("\n" + c.cyan("Job Management:"))
	c.println("  run-bg <strategy>      - Run a search in the background")
	c.println("  job-status [job-id]    - Show job status or list all jobs")
	c.println("  job-cancel <job-id>    - Cancel a running job")
	c.println("  job-logs <job-id>      - View job logs")

	c.println("\n" + c.cyan("System:"))
	c.println("  help                   - Show this help message")
	c.println("  clear                  - Clear screen")
	c.println("  quit                   - Exit program")
}

func (c *Commander) loadData(filename, method string) {
	startTime := time.Now()
	c.printf("Loading data from %s...\n", filename)

	ds, err := data.LoadDataset(filename, method)
	if err != nil {
		c.printf("%s Error: %v\n", c.red("✗"), err)
		return
	}

	c.dataset = ds
	c.normalization = method
	c.lastRun = nil

	stats := data.NewDataValidator().GetDatasetStats(ds)

	c.printf("%s Data loaded successfully!\n", c.green("✓"))
	c.println(strings.Repeat("─", 50))
	c.printf("Load time:     %.3fs\n", time.Since(startTime).Seconds())
	c.printf("Instances:     %d\n", stats.Samples)
	c.printf("Features:      %d\n", stats.Features)
	c.printf("Scaling:       %s\n", method)
	c.printf("Classes:       %d\n", len(stats.ClassDistribution))

	c.printf("Distribution:  ")
	for _, class := range stats.SortedClasses() {
		c.printf("%s:%d ", ds.ClassName(class), stats.ClassDistribution[class])
	}
	c.println()

	if stats.Samples < 2 {
		c.printf("%s Leave-one-out needs at least 2 instances\n", c.yellow("⚠"))
	}

	c.println(strings.Repeat("─", 50))
	c.printf("This dataset has %d features (not including the class attribute), with %d instances.\n",
		stats.Features, stats.Samples)
	c.println("Ready to search! Use 'forward', 'backward' or 'bidirectional'")
}

func (c *Commander) showDataInfo() {
	if c.dataset == nil {
		c.println(c.red("No data loaded. Use 'load <file>' first"))
		return
	}

	stats := data.NewDataValidator().GetDatasetStats(c.dataset)

	c.println(c.blue("\nDataset Information:"))
	c.println(strings.Repeat("─", 60))
	c.printf("Source:        %s\n", c.dataset.Source)
	c.printf("Instances:     %d\n", stats.Samples)
	c.printf("Features:      %d\n", stats.Features)
	c.printf("Scaling:       %s\n", c.normalization)

	c.println(c.cyan("\nClass Distribution:"))
	for _, class := range stats.SortedClasses() {
		count := stats.ClassDistribution[class]
		c.printf("  %-12s %5d  (%.1f%%)\n", c.dataset.ClassName(class), count,
			float64(count)/float64(stats.Samples)*100)
	}

	c.println(c.cyan("\nFeatures:"))
	c.printf("  %-4s %-18s %-10s %-10s %-10s\n", "#", "Name", "Min", "Max", "Mean")
	for i, fs := range stats.FeatureStats {
		c.printf("  %-4d %-18s %-10.4f %-10.4f %-10.4f\n", i+1, fs.Name, fs.Min, fs.Max, fs.Mean)
	}
}

func (c *Commander) clearScreen() {
	fmt.Fprint(c.out, "\033[H\033[2J")
	c.printWelcome()
}

func (c *Commander) quit() {
	for _, job := range c.jobManager.ListJobs() {
		if job.GetStatus() == jobs.JobRunning {
			c.jobManager.CancelJob(job.ID)
		}
	}
	c.println("Goodbye!")
	c.done = true
}
