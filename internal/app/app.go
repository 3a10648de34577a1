package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pranshuparmar/memtree/internal/completion"
	"github.com/pranshuparmar/memtree/internal/config"
	"github.com/pranshuparmar/memtree/internal/logging"
	"github.com/pranshuparmar/memtree/internal/output"
	"github.com/pranshuparmar/memtree/internal/proc"
	"github.com/pranshuparmar/memtree/internal/scan"
	"github.com/pranshuparmar/memtree/internal/tui"
)

var (
	version = "dev"

	flagJSON       bool
	flagDepth      int
	flagMinPercent float64
	flagNoColor    bool
	flagConfig     string
	flagVerbose    bool
	flagNoProgress bool
	flagPID        int
	flagExclude    []string
)

var rootCmd = &cobra.Command{
	Use:   "memtree",
	Short: "Show resident memory aggregated over the process tree",
	Long: `memtree scans every running process, rebuilds the parent/child tree and
adds up resident memory from the leaves to the root, so each entry shows what
it and everything it spawned are holding.`,
	Example: `  memtree                  # top three levels
  memtree --depth 0        # whole tree
  memtree --min-percent 5  # hide entries under 5% of their parent
  memtree --pid 1234       # only the subtree of one process
  memtree --exclude kworker
  memtree --json           # machine readable dump`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE:          runScan,
}

func init() {
	rootCmd.Flags().BoolVar(&flagJSON, "json", false, "print the tree as JSON")
	rootCmd.Flags().IntVar(&flagDepth, "depth", 3, "levels below the root to print (0 for all)")
	rootCmd.Flags().Float64Var(&flagMinPercent, "min-percent", 0, "hide entries below this percentage of their parent")
	rootCmd.Flags().BoolVar(&flagNoColor, "no-color", false, "disable colors")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "config file (default $XDG_CONFIG_HOME/memtree/config.yaml)")
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "log scan activity")
	rootCmd.Flags().BoolVar(&flagNoProgress, "no-progress", false, "do not show the progress line")
	rootCmd.Flags().IntVar(&flagPID, "pid", 0, "print only the subtree of this process")
	rootCmd.Flags().StringSliceVar(&flagExclude, "exclude", nil, "leave out processes by name or executable path prefix")

	rootCmd.RegisterFlagCompletionFunc("pid", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return completion.PIDs(context.Background(), proc.NewSource()), cobra.ShellCompDirectiveNoFileComp
	})
	rootCmd.RegisterFlagCompletionFunc("exclude", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return completion.ProcessNames(context.Background(), proc.NewSource()), cobra.ShellCompDirectiveNoFileComp
	})
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func runScan(cmd *cobra.Command, args []string) error {
	logging.Enable(flagVerbose)

	if flagDepth < 0 {
		return fmt.Errorf("--depth must not be negative")
	}

	path := flagConfig
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	ctrl := scan.NewController(scan.Options{
		Exclusions:      config.WithExtra(config.NewFileExclusions(path, cfg.Exclude), flagExclude),
		TickInterval:    cfg.Tick(),
		MaxNodesPerTick: cfg.MaxNodesPerTick,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	ctrl.Start(false)

	if !flagNoProgress && !flagJSON && isTerminal(cmd.OutOrStdout()) {
		p := tea.NewProgram(tui.New(ctrl, cfg.Tick()), tea.WithOutput(cmd.ErrOrStderr()), tea.WithContext(ctx))
		if _, err := p.Run(); err != nil {
			// the program may stop on ctx before the scan is torn down
			ctrl.Cancel()
		}
	} else {
		ctrl.Wait(ctx)
	}
	elapsed := time.Since(start)

	if err := ctrl.Err(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	root := ctrl.Root()
	if flagPID > 0 {
		if root = output.Find(root, strconv.Itoa(flagPID)); root == nil {
			return fmt.Errorf("process %d not found", flagPID)
		}
	}
	if flagJSON {
		s, err := output.ToJSON(root, flagDepth)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, s)
		return nil
	}

	colorEnabled := !flagNoColor && isTerminal(out)
	output.PrintTree(out, root, output.TreeOptions{
		ColorEnabled: colorEnabled,
		MaxDepth:     flagDepth,
		MinPercent:   flagMinPercent,
	})

	total, err := proc.TotalMemory(ctx)
	if err != nil {
		total = 0
	}
	output.RenderSummary(out, root, total, elapsed, colorEnabled)
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
