// Package main provides the CLI entrypoint for wordpool.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/wordpool/internal/config"
	"github.com/verte-zerg/wordpool/internal/logger"
	"github.com/verte-zerg/wordpool/internal/matcher"
	"github.com/verte-zerg/wordpool/internal/model"
	"github.com/verte-zerg/wordpool/internal/query"
	"github.com/verte-zerg/wordpool/internal/render"
	"github.com/verte-zerg/wordpool/internal/search"
	"github.com/verte-zerg/wordpool/internal/store"
	"github.com/verte-zerg/wordpool/internal/tui"
	"github.com/verte-zerg/wordpool/internal/wordlist"
)

const defaultWildcard = string(matcher.DefaultWildcard)

var (
	searchDict     string
	searchWildcard string
	searchPattern  string
	searchFoldCase bool
	searchClean    bool
	searchLimit    int
	searchColumns  bool
	searchStats    bool
	noHistory      bool
	verbose        bool

	checkExitCode bool

	historyLast   int
	historySince  string
	historySource string
	historyClear  bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "wordpool [letters]",
		Short:         "Find the words you can spell from a pool of letters",
		Long:          "Find dictionary words that can be spelled from a pool of letters.\nEach letter is used at most once; the wildcard stands in for any letter.\nWithout letters, an interactive search opens.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runSearchCmd,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.Flags().StringVar(&searchDict, "dict", "", "dictionary file path or http(s) URL")
	rootCmd.Flags().StringVar(&searchWildcard, "wildcard", defaultWildcard, "pool character that matches any letter")
	rootCmd.Flags().StringVarP(&searchPattern, "pattern", "p", "", "regular expression results must match")
	rootCmd.Flags().BoolVar(&searchFoldCase, "fold-case", false, "lowercase letters, pattern and dictionary")
	rootCmd.Flags().BoolVar(&searchClean, "clean", false, "drop dictionary entries that are not plain ASCII letters")
	rootCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "show at most N results (0 = all)")
	rootCmd.Flags().BoolVarP(&searchColumns, "columns", "c", false, "lay results out in columns")
	rootCmd.Flags().BoolVar(&searchStats, "stats", false, "print match counts per word length")
	rootCmd.Flags().BoolVar(&noHistory, "no-history", false, "do not record the search")

	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runSearchCmd(cmd *cobra.Command, args []string) error {
	lg := logger.New("wordpool", verbose)
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return runInteractive(cfg, lg)
	}

	q := query.Normalize(query.Query{Letters: args[0], Pattern: searchPattern}, cfg.FoldCase)
	re, err := query.CompilePattern(q.Pattern, cfg.FoldCase)
	if err != nil {
		return err
	}

	ctx := context.Background()
	begin := time.Now()
	words, err := loadDictionary(ctx, cfg)
	if err != nil {
		return wordListLoadError(cfg.Dict, err)
	}
	lg.Debug("dictionary loaded", "source", cfg.Dict, "words", len(words), "elapsed", time.Since(begin))

	begin = time.Now()
	pool := matcher.NewPool(q.Letters, cfg.Wildcard)
	var matches []string
	search.FindWordsFunc(words, pool, func(found []string) {
		matches = found
	})
	lg.Debug("words filtered", "pool", pool.String(), "matches", len(matches), "elapsed", time.Since(begin))

	filtered := query.Apply(matches, re)
	out := cmd.OutOrStdout()
	if searchStats {
		if err := render.RenderSummary(out, search.Summarize(filtered)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		if _, err := fmt.Fprintln(out); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	opts := render.Options{Limit: cfg.Limit, Columns: cfg.Columns, Width: render.TerminalWidth(0)}
	if err := render.RenderResults(out, filtered, opts); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if cfg.History {
		recordSearch(ctx, lg, cfg, q, filtered)
	}
	return nil
}

func runInteractive(cfg model.Config, lg *log.Logger) error {
	var st *store.Store
	if cfg.History {
		opened, err := store.Open(config.DefaultDBPath())
		if err != nil {
			lg.Warn("history disabled", "err", err)
		} else {
			st = opened
			defer func() {
				if cerr := st.Close(); cerr != nil {
					lg.Error("failed to close db", "err", cerr)
				}
			}()
		}
	}

	load := func(ctx context.Context) ([]string, error) {
		return loadDictionary(ctx, cfg)
	}
	m := tui.NewModel(cfg, st, cfg.Dict, load)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if err := m.LoadErr(); err != nil {
		return wordListLoadError(cfg.Dict, err)
	}
	lg.Debug("dictionary loaded", "source", cfg.Dict, "elapsed", m.LoadDuration())
	return nil
}

func loadDictionary(ctx context.Context, cfg model.Config) ([]string, error) {
	words, err := wordlist.Load(ctx, cfg.Dict)
	if err != nil {
		return nil, err
	}
	if cfg.Clean {
		words = wordlist.Filter(words, wordlist.FilterForLang("en"))
	}
	if cfg.FoldCase {
		words = wordlist.Lowercase(words)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word list is empty after filtering")
	}
	return words, nil
}

func recordSearch(ctx context.Context, lg *log.Logger, cfg model.Config, q query.Query, results []string) {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		lg.Warn("failed to open history", "err", err)
		return
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			lg.Error("failed to close db", "err", cerr)
		}
	}()
	rec := model.SearchRecord{
		SearchedAt: time.Now(),
		Letters:    q.Letters,
		Pattern:    q.Pattern,
		Wildcard:   string(cfg.Wildcard),
		Source:     cfg.Dict,
		Matches:    len(results),
	}
	if len(results) > 0 {
		rec.Top = results[0]
	}
	if _, err := st.InsertSearch(ctx, rec); err != nil {
		lg.Warn("failed to save search", "err", err)
	}
}

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <word> <letters>",
		Short: "Report whether a word can be spelled from letters",
		Args:  cobra.ExactArgs(2),
		RunE:  runCheckCmd,
	}
	cmd.Flags().StringVar(&searchWildcard, "wildcard", defaultWildcard, "pool character that matches any letter")
	cmd.Flags().BoolVar(&searchFoldCase, "fold-case", false, "lowercase word and letters")
	cmd.Flags().BoolVar(&checkExitCode, "exit-code", false, "exit with status 1 when the word does not fit")
	return cmd
}

func runCheckCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "wildcard", &searchWildcard, fileCfg.Search.Wildcard)
	applyBoolConfig(cmd, "fold-case", &searchFoldCase, fileCfg.Search.FoldCase)
	wildcard, err := parseWildcard(searchWildcard)
	if err != nil {
		return err
	}

	word := args[0]
	q := query.Normalize(query.Query{Letters: args[1]}, searchFoldCase)
	if searchFoldCase {
		word = strings.ToLower(word)
	}
	ok := matcher.NewPool(q.Letters, wildcard).Spells(word)
	answer := "no"
	if ok {
		answer = "yes"
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), answer); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if !ok && checkExitCode {
		cmd.SilenceErrors = true
		return fmt.Errorf("%q does not fit in %q", word, q.Letters)
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past searches",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().IntVar(&historyLast, "last", 20, "limit to last N searches (0 = all)")
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&historySource, "source", "", "dictionary source filter")
	cmd.Flags().BoolVar(&historyClear, "clear", false, "delete all saved searches")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if historySince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", historySince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if historyLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}

	lg := logger.New("wordpool", verbose)
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			lg.Error("failed to close db", "err", cerr)
		}
	}()

	ctx := context.Background()
	if historyClear {
		n, err := st.ClearSearches(ctx)
		if err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		lg.Info("history cleared", "removed", n)
		return nil
	}

	records, err := st.ListSearches(ctx, model.HistoryConfig{
		Source: historySource,
		Since:  sinceTime,
		Last:   historyLast,
	})
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}
	if err := render.RenderHistory(cmd.OutOrStdout(), records); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := ensureConfigFile(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func ensureConfigFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	return nil
}

// resolveConfig merges flags over the config file over defaults.
func resolveConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "dict", &searchDict, fileCfg.Search.Dict)
	applyStringConfig(cmd, "wildcard", &searchWildcard, fileCfg.Search.Wildcard)
	applyBoolConfig(cmd, "fold-case", &searchFoldCase, fileCfg.Search.FoldCase)
	applyBoolConfig(cmd, "clean", &searchClean, fileCfg.Search.Clean)
	applyIntConfig(cmd, "limit", &searchLimit, fileCfg.Search.Limit)
	applyBoolConfig(cmd, "columns", &searchColumns, fileCfg.Search.Columns)
	history := true
	applyBoolConfig(cmd, "no-history", &history, fileCfg.Search.History)
	if cmd.Flags().Changed("no-history") {
		history = !noHistory
	}

	wildcard, err := parseWildcard(searchWildcard)
	if err != nil {
		return model.Config{}, err
	}
	dict := searchDict
	if dict == "" {
		dict = config.DefaultDictPath()
	}
	cfg := model.Config{
		Dict:     dict,
		Wildcard: wildcard,
		FoldCase: searchFoldCase,
		Clean:    searchClean,
		Limit:    searchLimit,
		Columns:  searchColumns,
		History:  history,
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func parseWildcard(value string) (rune, error) {
	if utf8.RuneCountInString(value) != 1 {
		return 0, fmt.Errorf("--wildcard must be a single character")
	}
	r, _ := utf8.DecodeRuneInString(value)
	return r, nil
}

func validateConfig(cfg model.Config) error {
	if cfg.Limit < 0 {
		return fmt.Errorf("--limit must be >= 0")
	}
	if cfg.Wildcard == ' ' {
		return fmt.Errorf("--wildcard must not be a space")
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# wordpool configuration
# Uncomment a value to enable it. CLI flags override config values.

[search]
# dict = %q   # Dictionary file path or http(s) URL
# wildcard = %q              # Pool character that matches any letter
# fold-case = false           # Lowercase letters, pattern and dictionary
# clean = false               # Drop entries that are not plain ASCII letters
# limit = 0                   # Show at most N results (0 = all)
# columns = false             # Lay results out in columns
# history = true              # Record searches in the history database
`,
		config.DefaultDictPath(),
		defaultWildcard,
	)
}

func wordListLoadError(source string, err error) error {
	lines := []string{
		fmt.Sprintf("failed to load word list: %v", err),
		fmt.Sprintf("expected word list at: %s", source),
		"Pass one with: wordpool --dict <path-or-url>",
		"Or set it once: wordpool config",
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}
