// Package cmd implements the CLI command structure for tasker.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/tasker-cli/tasker/internal/config"
	"github.com/tasker-cli/tasker/internal/logging"
	"github.com/tasker-cli/tasker/internal/task"
	"github.com/tasker-cli/tasker/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the tasker CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("tasker", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	logger := logging.New(cfg)

	// Determine the subcommand
	remainingArgs := fs.Args()
	if len(remainingArgs) == 0 {
		printUsage(fs, os.Stdout)
		return nil
	}
	subcommand := remainingArgs[0]
	remainingArgs = remainingArgs[1:]

	// Execute the subcommand
	switch subcommand {
	case "add":
		return addCommand(cfg, logger, remainingArgs)
	case "list":
		return listCommand(cfg, logger, remainingArgs)
	case "complete":
		return completeCommand(cfg, logger, remainingArgs)
	case "delete":
		return deleteCommand(cfg, logger, remainingArgs)
	case "doctor":
		return doctorCommand(cfg, remainingArgs)
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs)
	case "version", "--version", "-v":
		return versionCommand()
	case "help", "--help", "-h":
		printUsage(fs, os.Stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// addCommand creates a new task.
func addCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("tasker add", flag.ContinueOnError)
	priorityFlag := fs.String("p", "", "Task priority (low|medium|high|urgent, default medium)")
	fs.StringVar(priorityFlag, "priority", "", "Task priority (low|medium|high|urgent, default medium)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("usage: tasker add [-p priority] <description>")
	}
	description := strings.Join(fs.Args(), " ")

	priority, err := task.ParsePriority(*priorityFlag)
	if err != nil {
		return err
	}

	store := task.NewStore(cfg.DataFile, cfg.SchemaFile)
	t, err := store.Add(description, priority)
	if err != nil {
		return err
	}

	logger.Debug("task added", "id", t.ID, "priority", t.Priority, "file", cfg.DataFile)
	fmt.Printf("✓ Task added: %s\n", formatTask(t))
	return nil
}

// listCommand prints tasks, active-only by default.
func listCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("tasker list", flag.ContinueOnError)
	all := fs.Bool("a", false, "Show completed tasks as well")
	fs.BoolVar(all, "all", false, "Show completed tasks as well")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	store := task.NewStore(cfg.DataFile, cfg.SchemaFile)
	tasks, err := store.List(*all)
	if err != nil {
		return err
	}

	logger.Debug("tasks loaded", "count", len(tasks), "file", cfg.DataFile)

	if len(tasks) == 0 {
		fmt.Println("No tasks found.")
		return nil
	}

	header := "Active Tasks"
	if *all {
		header = "All Tasks"
	}
	fmt.Printf("\n%s:\n", header)
	fmt.Println(strings.Repeat("-", 50))
	for _, t := range tasks {
		fmt.Println(formatTask(t))
	}
	fmt.Println(strings.Repeat("-", 50))
	fmt.Printf("Total: %d task(s)\n", len(tasks))
	return nil
}

// completeCommand marks a task as completed.
func completeCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	id, err := parseIDArg("complete", args)
	if err != nil {
		return err
	}

	store := task.NewStore(cfg.DataFile, cfg.SchemaFile)
	t, err := store.Complete(id)
	if err != nil {
		return err
	}

	logger.Debug("task completed", "id", t.ID, "completed_at", t.CompletedAt)
	fmt.Printf("✓ Task completed: %s\n", formatTask(t))
	return nil
}

// deleteCommand removes a task.
func deleteCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	id, err := parseIDArg("delete", args)
	if err != nil {
		return err
	}

	store := task.NewStore(cfg.DataFile, cfg.SchemaFile)
	if err := store.Delete(id); err != nil {
		return err
	}

	logger.Debug("task deleted", "id", id)
	fmt.Printf("✓ Task %d deleted.\n", id)
	return nil
}

// parseIDArg extracts the single integer task id argument.
func parseIDArg(command string, args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("usage: tasker %s <task-id>", command)
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, &task.InvalidInputError{Reason: fmt.Sprintf("task id must be an integer, got %q", args[0])}
	}
	return id, nil
}

// tuiCommand launches the TUI.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	return ui.RunTUI(ctx, cfg)
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Printf("tasker version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Tasker - Manage your tasks from the command line")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tasker [command] [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  add <description>   Add a new task")
	fmt.Fprintln(w, "  list                List tasks")
	fmt.Fprintln(w, "  complete <id>       Mark a task as completed")
	fmt.Fprintln(w, "  delete <id>         Delete a task")
	fmt.Fprintln(w, "  doctor              Check config and task file validity")
	fmt.Fprintln(w, "  tui                 Launch terminal UI")
	fmt.Fprintln(w, "  version             Show version information")
	fmt.Fprintln(w, "  help                Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Add Options (use with 'add' command):")
	fmt.Fprintln(w, "  -p, -priority string")
	fmt.Fprintln(w, "        Task priority (low|medium|high|urgent, default medium)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List Options (use with 'list' command):")
	fmt.Fprintln(w, "  -a, -all")
	fmt.Fprintln(w, "        Show completed tasks as well")
}
