package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// version is the application version, set via ldflags.
var version = "dev"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "filehunter [EXTENSIONS...]",
	Short: "filehunter compiles every file with the given extensions into one text file.",
	Long: `filehunter walks a directory tree (by default the directory holding the
executable), skipping node_modules, and concatenates every file whose name ends
with one of the given extensions into compiled_files_<exts>.txt.

Without arguments it prompts for a space-separated list of extensions.
Tokens such as @go or @web expand to a language's extensions.`,
	Version:       version,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogger(viper.GetBool("debug"))
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		defer func() { _ = logger.Sync() }()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		repo := viper.GetString("repo")
		if repo == "" && len(args) > 0 && isGitURL(args[0]) {
			repo, args = args[0], args[1:]
		}

		opts, err := optionsFromConfig()
		if err != nil {
			return err
		}
		if repo != "" {
			tempDir, err := cloneGitRepo(repo, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer os.RemoveAll(tempDir)
			opts.Root = tempDir
			if opts.OutputDir == "" {
				if opts.OutputDir, err = os.Getwd(); err != nil {
					return fmt.Errorf("error resolving working directory: %w", err)
				}
			}
		}

		langData, err := loadLanguageData(languageSearchPaths())
		if err != nil {
			logger.Warn("Could not load language definitions, using built-in presets", zap.Error(err))
			langData = nil
		}

		session := &Session{
			In:        cmd.InOrStdin(),
			Out:       cmd.OutOrStdout(),
			Args:      args,
			Languages: langData,
			Options:   opts,
			Extras: Extras{
				Tree:   viper.GetBool("tree"),
				Tokens: viper.GetBool("tokens"),
				Tokenizer: TokenizerConfig{
					Type:  viper.GetString("tokenizer"),
					Model: viper.GetString("model"),
					File:  viper.GetString("tokenizer_file"),
				},
				PDFPath:   viper.GetString("pdf"),
				Clipboard: viper.GetBool("clipboard"),
			},
			Wait: !viper.GetBool("no_wait") && term.IsTerminal(int(os.Stdin.Fd())),
		}
		if viper.GetBool("pick") && len(args) == 0 {
			session.Pick = func() (Extensions, error) {
				return pickExtensions(opts.Root, opts.ExcludeDirs)
			}
		}

		return session.Run(ctx)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/filehunter/config.toml)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))

	// Input
	rootCmd.Flags().StringP("dir", "d", "", "Directory to scan (default is the executable's directory)")
	viper.BindPFlag("dir", rootCmd.Flags().Lookup("dir"))
	rootCmd.Flags().String("repo", "", "Clone a Git repository and scan it instead of a local directory")
	viper.BindPFlag("repo", rootCmd.Flags().Lookup("repo"))
	rootCmd.Flags().Bool("pick", false, "Pick extensions interactively from those found under the directory")
	viper.BindPFlag("pick", rootCmd.Flags().Lookup("pick"))

	// Filtering
	rootCmd.Flags().StringSliceP("exclude-dir", "e", nil, "Directory names to skip (default node_modules)")
	viper.BindPFlag("exclude_dirs", rootCmd.Flags().Lookup("exclude-dir"))
	rootCmd.Flags().Bool("gitignore", false, "Respect the .gitignore at the root of the scanned directory")
	viper.BindPFlag("respect_gitignore", rootCmd.Flags().Lookup("gitignore"))

	// Output
	rootCmd.Flags().StringP("output-dir", "o", "", "Directory the compiled file is written to (default is the scanned directory)")
	viper.BindPFlag("output_dir", rootCmd.Flags().Lookup("output-dir"))
	rootCmd.Flags().Bool("tree", false, "Print a tree of the compiled files")
	viper.BindPFlag("tree", rootCmd.Flags().Lookup("tree"))
	rootCmd.Flags().String("pdf", "", "Also render the compiled files to this PDF")
	viper.BindPFlag("pdf", rootCmd.Flags().Lookup("pdf"))
	rootCmd.Flags().BoolP("clipboard", "c", false, "Copy the compiled output to the clipboard")
	viper.BindPFlag("clipboard", rootCmd.Flags().Lookup("clipboard"))
	rootCmd.Flags().Bool("no-wait", false, "Do not wait for Enter before exiting")
	viper.BindPFlag("no_wait", rootCmd.Flags().Lookup("no-wait"))

	// Token Counting
	rootCmd.Flags().Bool("tokens", false, "Count tokens of the compiled output")
	viper.BindPFlag("tokens", rootCmd.Flags().Lookup("tokens"))
	rootCmd.Flags().String("tokenizer", "tiktoken", "Tokenizer to use: tiktoken or huggingface")
	viper.BindPFlag("tokenizer", rootCmd.Flags().Lookup("tokenizer"))
	rootCmd.Flags().String("model", "", "Model name for tokenizer (e.g., gpt-4o, gpt2)")
	viper.BindPFlag("model", rootCmd.Flags().Lookup("model"))
	rootCmd.Flags().String("tokenizer-file", "", "Path to local tokenizer file")
	viper.BindPFlag("tokenizer_file", rootCmd.Flags().Lookup("tokenizer-file"))

	viper.SetDefault("exclude_dirs", defaultExcludeDirs)
	viper.SetDefault("respect_gitignore", false)
	viper.SetDefault("tokenizer", "tiktoken")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "filehunter"))
		}
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("toml")
	}

	viper.SetEnvPrefix("FILEHUNTER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv() // read in environment variables that match FILEHUNTER_*

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Error reading config file: %s\n", err)
		}
	}
}

// optionsFromConfig builds compile options from flags, env and config file.
func optionsFromConfig() (Options, error) {
	root := viper.GetString("dir")
	if root == "" {
		dir, err := executableDir()
		if err != nil {
			return Options{}, err
		}
		root = dir
	}
	return Options{
		Root:             root,
		OutputDir:        viper.GetString("output_dir"),
		ExcludeDirs:      viper.GetStringSlice("exclude_dirs"),
		RespectGitignore: viper.GetBool("respect_gitignore"),
	}, nil
}

// executableDir returns the directory holding the running binary, symlinks resolved.
func executableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("error locating executable: %w", err)
	}
	resolved, err := filepath.EvalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("error resolving executable path %s: %w", exe, err)
	}
	return filepath.Dir(resolved), nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		var reported reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
