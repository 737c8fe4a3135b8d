// Command movr plans and executes bulk file renames/moves from a list of
// paths supplied on the command line, via stdin, via the clipboard, or from
// a file, optionally driven by a rename/filter hook instead of an explicit
// paired list.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/xuanyiying/movr/internal/clip"
	"github.com/xuanyiying/movr/internal/confirm"
	"github.com/xuanyiying/movr/internal/config"
	"github.com/xuanyiying/movr/internal/fsoracle"
	"github.com/xuanyiying/movr/internal/hooks"
	"github.com/xuanyiying/movr/internal/hooks/aihook"
	"github.com/xuanyiying/movr/internal/inputparse"
	"github.com/xuanyiying/movr/internal/output"
	"github.com/xuanyiying/movr/internal/pager"
	"github.com/xuanyiying/movr/internal/plan"
	"github.com/xuanyiying/movr/internal/problem"
	"github.com/xuanyiying/movr/internal/progress"
	"github.com/xuanyiying/movr/internal/translog"
	"github.com/xuanyiying/movr/internal/visualizer"
	mverrors "github.com/xuanyiying/movr/pkg/errors"
	"github.com/xuanyiying/movr/pkg/validator"
)

const version = "0.1.0"

var (
	configMgr *config.Manager

	flagClipboard bool
	flagStdin     bool
	flagFile      string

	flagParagraphs bool
	flagFlat       bool
	flagPairs      bool
	flagRows       bool

	flagRenameCode string
	flagFilterCode string
	flagAI         bool
	flagIndent     int

	flagSeq  int
	flagStep int

	flagSkip    []string
	flagKeep    []string
	flagCreate  []string
	flagClobber []string

	flagDryRun bool
	flagYes    bool
	flagNoLog  bool

	flagPager string
	flagLimit int

	flagConfigPath string
)

var rootCmd = &cobra.Command{
	Use:     "movr [paths...]",
	Short:   "Plan and execute bulk file renames",
	Long:    "movr assembles a renaming plan from a list of paths and either a paired new-path list or a rename/filter hook, validates it against the file system, and executes it once the plan is sound or every anomaly has an explicit control.",
	Version: version,
	Args:    cobra.ArbitraryArgs,
	RunE:    runRoot,
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter ~/.movrrc.yaml interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return config.RunWizard(config.NewManager(flagConfigPath))
	},
}

func init() {
	defaultConfigPath := config.DefaultPath()

	rootCmd.Flags().BoolVar(&flagClipboard, "clipboard", false, "Read input paths from the system clipboard")
	rootCmd.Flags().BoolVar(&flagStdin, "stdin", false, "Read input paths from standard input")
	rootCmd.Flags().StringVar(&flagFile, "file", "", "Read input paths from a file")

	rootCmd.Flags().BoolVar(&flagParagraphs, "paragraphs", false, "Interpret input as two blank-line-separated paragraphs of origs and news")
	rootCmd.Flags().BoolVar(&flagFlat, "flat", false, "Interpret input as a flat list split in half between origs and news")
	rootCmd.Flags().BoolVar(&flagPairs, "pairs", false, "Interpret input as alternating orig/new lines")
	rootCmd.Flags().BoolVar(&flagRows, "rows", false, "Interpret input as tab-separated orig/new rows")

	rootCmd.Flags().StringVar(&flagRenameCode, "rename", "", "Rename-hook template computing each new path from its original")
	rootCmd.Flags().StringVar(&flagFilterCode, "filter", "", "Filter-hook expression deciding which pairs survive")
	rootCmd.Flags().BoolVar(&flagAI, "ai", false, "Use the configured AI backend as the rename hook")
	rootCmd.Flags().IntVar(&flagIndent, "indent", 1, "Indent width used when rendering the plan preview")

	rootCmd.Flags().IntVar(&flagSeq, "seq", 1, "First sequence number handed to hooks")
	rootCmd.Flags().IntVar(&flagStep, "step", 1, "Sequence step between successive pairs")

	rootCmd.Flags().StringSliceVar(&flagSkip, "skip", nil, "Problem kinds (or \"all\") to skip rather than fail on")
	rootCmd.Flags().StringSliceVar(&flagKeep, "keep", nil, "Problem kinds (or \"all\") to keep rather than fail on")
	rootCmd.Flags().StringSliceVar(&flagCreate, "create", nil, "Problem kinds (or \"all\") to resolve by creating a parent directory")
	rootCmd.Flags().StringSliceVar(&flagClobber, "clobber", nil, "Problem kinds (or \"all\") to resolve by overwriting the target")

	rootCmd.Flags().BoolVar(&flagDryRun, "dryrun", false, "Preview the plan without executing it")
	rootCmd.Flags().BoolVar(&flagYes, "yes", false, "Execute without an interactive confirmation")
	rootCmd.Flags().BoolVar(&flagNoLog, "nolog", false, "Do not append to the execution log")

	rootCmd.Flags().StringVar(&flagPager, "pager", "", "External pager command for the plan preview")
	rootCmd.Flags().IntVar(&flagLimit, "limit", 0, "Maximum preview lines to show before summarizing the rest")

	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", defaultConfigPath, "Path to the movr configuration file")

	rootCmd.AddCommand(initCmd)
}

func runRoot(cmd *cobra.Command, args []string) error {
	configMgr = config.NewManager(flagConfigPath)
	cfg, err := configMgr.Load()
	if err != nil {
		return mverrors.WrapError(err, "loading configuration")
	}

	console := output.NewConsole(os.Stdout)

	lines, err := gatherInputLines(args)
	if err != nil {
		console.Error("%v", err)
		return err
	}

	structure, err := resolveStructure(cfg)
	if err != nil {
		console.Error("%v", err)
		return err
	}

	renameFn, renameSource, err := resolveRenameHook(cfg)
	if err != nil {
		console.Error("%v", err)
		return err
	}
	filterFn, err := resolveFilterHook()
	if err != nil {
		console.Error("%v", err)
		return err
	}

	bindings := resolveBindings(cfg)

	indent := cfg.Indent
	if cmd.Flags().Changed("indent") {
		indent = flagIndent
	}
	seqStart := cfg.SeqStart
	if cmd.Flags().Changed("seq") {
		seqStart = flagSeq
	}
	seqStep := cfg.SeqStep
	if cmd.Flags().Changed("step") {
		seqStep = flagStep
	}

	oracle := fsoracle.NewOSFileSystem()

	rp, err := plan.New(plan.Options{
		Inputs:       lines,
		Structure:    structure,
		RenameSource: renameSource,
		RenameFn:     renameFn,
		FilterSource: flagFilterCode,
		FilterFn:     filterFn,
		Indent:       indent,
		SeqStart:     seqStart,
		SeqStep:      seqStep,
		Bindings:     bindings,
		Oracle:       oracle,
	})
	if err != nil {
		console.Error("%v", err)
		return err
	}

	if err := rp.Prepare(); err != nil {
		console.Error("%v", err)
		return err
	}
	if rp.Failed() {
		reportUncontrolled(console, rp.Uncontrolled())
		return fmt.Errorf("plan has %d uncontrolled problem(s)", len(rp.Uncontrolled()))
	}

	if err := renderPreview(console, rp, oracle); err != nil {
		return err
	}

	if flagDryRun {
		console.Info("dry run: no changes made")
		return nil
	}

	if len(rp.Pairs()) == 0 {
		console.Info("nothing to do")
		return nil
	}

	if !flagYes {
		ok, err := confirm.Ask(fmt.Sprintf("Execute %d rename(s)?", len(rp.Pairs())))
		if err != nil {
			return fmt.Errorf("reading confirmation: %w", err)
		}
		if !ok {
			console.Info("aborted")
			return nil
		}
	}

	if err := executeWithProgress(console, rp); err != nil {
		return err
	}

	if !flagNoLog {
		if err := appendExecutionLog(cfg, rp); err != nil {
			console.Warning("failed to write execution log: %v", err)
		}
	}

	console.Success("renamed %d path(s)", len(rp.Pairs()))
	return nil
}

// gatherInputLines resolves the mutually exclusive input sources (spec.md
// §6) into a flat line sequence. Positional paths, if given, are used
// directly; otherwise exactly one of --clipboard/--stdin/--file must be
// set.
func gatherInputLines(args []string) ([]string, error) {
	sources := 0
	if flagClipboard {
		sources++
	}
	if flagStdin {
		sources++
	}
	if flagFile != "" {
		sources++
	}
	if len(args) > 0 {
		sources++
	}
	if sources == 0 {
		return nil, fmt.Errorf("no input source given: pass paths, or one of --clipboard/--stdin/--file")
	}
	if sources > 1 {
		return nil, fmt.Errorf("sources are mutually exclusive: pass paths, or exactly one of --clipboard/--stdin/--file")
	}

	if len(args) > 0 {
		return args, nil
	}
	if flagClipboard {
		text, err := clip.Read()
		if err != nil {
			return nil, err
		}
		return strings.Split(text, "\n"), nil
	}
	if flagStdin {
		return readLines(os.Stdin)
	}
	if err := validator.ValidatePath(flagFile); err != nil {
		return nil, mverrors.WrapError(err, "--file %q", flagFile)
	}
	data, err := os.ReadFile(flagFile)
	if err != nil {
		return nil, mverrors.WrapError(err, "reading %q", flagFile)
	}
	return strings.Split(string(data), "\n"), nil
}

func readLines(r *os.File) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading standard input: %w", err)
	}
	return lines, nil
}

// resolveStructure picks among the four CLI structure flags, falling back
// to the config default and finally to flat (spec.md §6). Giving a rename
// hook without naming a structure implies the input carries origs only,
// since a paired layout would be redundant with the hook computing New.
func resolveStructure(cfg *config.Config) (inputparse.Structure, error) {
	chosen := 0
	var structure inputparse.Structure
	if flagParagraphs {
		chosen++
		structure = inputparse.Paragraphs
	}
	if flagFlat {
		chosen++
		structure = inputparse.Flat
	}
	if flagPairs {
		chosen++
		structure = inputparse.Pairs
	}
	if flagRows {
		chosen++
		structure = inputparse.Rows
	}
	if chosen > 1 {
		return "", fmt.Errorf("structure flags are mutually exclusive: pass at most one of --paragraphs/--flat/--pairs/--rows")
	}
	if chosen == 1 {
		return structure, nil
	}
	if flagRenameCode != "" || flagAI {
		return inputparse.RenameOnly, nil
	}
	if cfg.Structure != "" {
		return inputparse.Structure(cfg.Structure), nil
	}
	return inputparse.Flat, nil
}

func resolveRenameHook(cfg *config.Config) (hooks.RenameFunc, string, error) {
	if flagRenameCode != "" && flagAI {
		return nil, "", fmt.Errorf("--rename and --ai are mutually exclusive")
	}
	if flagRenameCode != "" {
		fn, err := hooks.Template(flagRenameCode).Compile()
		if err != nil {
			return nil, "", err
		}
		return fn, flagRenameCode, nil
	}
	if flagAI {
		client, err := buildAIClient(cfg)
		if err != nil {
			return nil, "", err
		}
		return aihook.RenameFunc(context.Background(), client), "ai:" + cfg.AI.Backend, nil
	}
	return nil, "", nil
}

func buildAIClient(cfg *config.Config) (aihook.Client, error) {
	var backend aihook.Client
	switch cfg.AI.Backend {
	case "openai":
		backend = aihook.NewOpenAIClient(aihook.OpenAIConfig{
			APIKey:  cfg.AI.OpenAI.APIKey,
			BaseURL: cfg.AI.OpenAI.BaseURL,
			Model:   cfg.AI.OpenAI.Model,
		})
	case "ollama", "":
		backend = aihook.NewOllamaClient(aihook.OllamaConfig{
			BaseURL: cfg.AI.Ollama.BaseURL,
			Model:   cfg.AI.Ollama.Model,
			Timeout: cfg.AI.Ollama.Timeout,
		})
	default:
		return nil, fmt.Errorf("unknown ai backend %q", cfg.AI.Backend)
	}
	if err := backend.CheckHealth(context.Background()); err != nil {
		return nil, mverrors.WrapError(err, "ai backend unavailable")
	}
	return aihook.NewCachingClient(backend, aihook.NewCache(0)), nil
}

func resolveFilterHook() (hooks.FilterFunc, error) {
	if flagFilterCode == "" {
		return nil, nil
	}
	cond, err := parseFilterCode(flagFilterCode)
	if err != nil {
		return nil, err
	}
	return hooks.CompileFilter(cond)
}

// parseFilterCode compiles a small textual filter expression into the
// hooks.FilterCondition tree CompileFilter consumes, so --filter CODE can
// stay a single string on the command line. Leaves are "ext:go,txt",
// "ext!=go,txt", "glob:*.bak", or "regex:^tmp"; leaves combine with " && "
// or " || " (not both in the same expression).
func parseFilterCode(code string) (hooks.FilterCondition, error) {
	code = strings.TrimSpace(code)
	if strings.Contains(code, "&&") && strings.Contains(code, "||") {
		return hooks.FilterCondition{}, fmt.Errorf("filter: mixing && and || in one expression is not supported")
	}
	if strings.Contains(code, "&&") {
		return parseFilterJoin(code, "&&", "and")
	}
	if strings.Contains(code, "||") {
		return parseFilterJoin(code, "||", "or")
	}
	return parseFilterLeaf(code)
}

func parseFilterJoin(code, sep, joinType string) (hooks.FilterCondition, error) {
	parts := strings.Split(code, sep)
	sub := make([]hooks.FilterCondition, 0, len(parts))
	for _, part := range parts {
		leaf, err := parseFilterLeaf(strings.TrimSpace(part))
		if err != nil {
			return hooks.FilterCondition{}, err
		}
		sub = append(sub, leaf)
	}
	return hooks.FilterCondition{Type: joinType, Sub: sub}, nil
}

func parseFilterLeaf(code string) (hooks.FilterCondition, error) {
	switch {
	case strings.HasPrefix(code, "ext!="):
		return hooks.FilterCondition{Type: "extension", Operator: "ne", Value: strings.TrimPrefix(code, "ext!=")}, nil
	case strings.HasPrefix(code, "ext:"):
		return hooks.FilterCondition{Type: "extension", Operator: "eq", Value: strings.TrimPrefix(code, "ext:")}, nil
	case strings.HasPrefix(code, "glob:"):
		return hooks.FilterCondition{Type: "pattern", Operator: "glob", Value: strings.TrimPrefix(code, "glob:")}, nil
	case strings.HasPrefix(code, "regex:"):
		return hooks.FilterCondition{Type: "pattern", Operator: "regex", Value: strings.TrimPrefix(code, "regex:")}, nil
	}
	return hooks.FilterCondition{}, fmt.Errorf("filter: unrecognized expression %q", code)
}

// resolveBindings merges the config's saved control bindings with the CLI's
// --skip/--keep/--create/--clobber flags, the CLI taking precedence for any
// kind both name. Invalid (kind, control) combinations are not rejected
// here: problem.NewPolicy performs that validation when the planner is
// constructed from the result.
func resolveBindings(cfg *config.Config) []problem.Binding {
	merged := make(map[problem.Kind]problem.Control)
	for _, b := range cfg.Bindings() {
		merged[b.Kind] = b.Control
	}
	applyControlFlags(merged, flagSkip, problem.Skip)
	applyControlFlags(merged, flagKeep, problem.Keep)
	applyControlFlags(merged, flagCreate, problem.Create)
	applyControlFlags(merged, flagClobber, problem.Clobber)

	out := make([]problem.Binding, 0, len(merged))
	for kind, ctrl := range merged {
		out = append(out, problem.Binding{Kind: kind, Control: ctrl})
	}
	return out
}

func applyControlFlags(merged map[problem.Kind]problem.Control, values []string, ctrl problem.Control) {
	for _, v := range values {
		if v == "all" {
			for _, kind := range problem.ExpandAll(ctrl) {
				merged[kind] = ctrl
			}
			continue
		}
		merged[problem.Kind(v)] = ctrl
	}
}

func renderPreview(console *output.Console, rp *plan.RenamingPlan, oracle fsoracle.Oracle) error {
	diffResult := visualizer.Compare(rp.Pairs())
	diffRenderer := visualizer.NewDiffRenderer(console)
	lines := strings.Split(diffRenderer.Render(diffResult), "\n")
	lines = pager.Limit(lines, flagLimit)

	treeViz := visualizer.NewTreeVisualizer(console, &visualizer.TreeOptions{UseColor: true, UseUnicode: true, IndentSize: flagIndent})
	tree := treeViz.BuildAncestorTree(rp.Pairs(), oracle)

	var out strings.Builder
	out.WriteString(strings.Join(lines, "\n"))
	out.WriteString("\n\n")
	out.WriteString(diffRenderer.RenderSummary(diffResult))
	out.WriteString("\n")
	if rendered := treeViz.Render(tree); rendered != "" {
		out.WriteString("\nnew directories:\n")
		out.WriteString(rendered)
	}

	return pager.Show(out.String(), flagPager)
}

func reportUncontrolled(console *output.Console, problems []plan.Problem) {
	console.Error("plan failed with %d uncontrolled problem(s):", len(problems))
	for _, p := range problems {
		if p.Pair != nil {
			console.Error("  %s: %s (%s)", p.Kind, p.Message, p.Pair.Orig)
			continue
		}
		console.Error("  %s: %s", p.Kind, p.Message)
	}
}

// executeWithProgress runs rp.Execute() on a goroutine and polls
// rp.TrackingIndex() to drive a rate-limited progress bar, the way
// SPEC_FULL's progress section calls for.
func executeWithProgress(console *output.Console, rp *plan.RenamingPlan) error {
	total := int64(len(rp.Pairs()))
	bar := progress.NewBar(total, "renaming", os.Stdout)

	done := make(chan error, 1)
	go func() { done <- rp.Execute() }()

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case err := <-done:
			bar.Finish()
			if err != nil {
				reportExecuteFailure(console, rp, err)
				return err
			}
			return nil
		case <-ticker.C:
			idx := rp.TrackingIndex()
			if idx >= 0 {
				bar.Set(int64(idx))
			}
		}
	}
}

func reportExecuteFailure(console *output.Console, rp *plan.RenamingPlan, err error) {
	idx := rp.TrackingIndex()
	total := len(rp.Pairs())
	console.Error("execution failed: %v", err)
	if idx >= 0 && idx < total {
		console.Error("failing pair: %s -> %s", rp.Pairs()[idx].Orig, rp.Pairs()[idx].New)
		console.Error("completed: [0, %d), pending: [%d, %d)", idx, idx+1, total)
	}
}

func appendExecutionLog(cfg *config.Config, rp *plan.RenamingPlan) error {
	completed := rp.Pairs()
	if idx := rp.TrackingIndex(); idx != plan.TrackingDone && idx >= 0 {
		completed = completed[:idx]
	}
	ops := make([]translog.ExecutedOperation, 0, len(completed))
	for _, p := range completed {
		if p.CreateParent {
			ops = append(ops, translog.ExecutedOperation{Type: translog.OpMkdir, Target: fsoracle.ParentOf(p.New)})
		}
		ops = append(ops, translog.ExecutedOperation{Type: translog.OpRename, Source: p.Orig, Target: p.New})
	}
	now := time.Now()
	entry := translog.Entry{ID: translog.NewID(now), Timestamp: now, Operations: ops}
	return translog.New(cfg.ExecutionLogPath).Append(entry)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
