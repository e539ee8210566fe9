package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

const extensionPrompt = "Enter file extensions to search for (separate with spaces, e.g. 'vue js css'): "

// Extras are the optional steps run after a successful compile.
type Extras struct {
	Tree      bool // Print a tree of the included files
	Tokens    bool // Count tokens of the output
	Tokenizer TokenizerConfig
	PDFPath   string // Render the included files to this PDF
	Clipboard bool   // Copy the output to the clipboard
}

// reportedError marks an error the session already printed to its output.
type reportedError struct {
	error
}

func (e reportedError) Unwrap() error { return e.error }

// Session is one interactive run: read extensions, compile, report.
type Session struct {
	In        io.Reader
	Out       io.Writer
	Args      []string                  // Extension tokens given on the command line; empty means prompt
	Pick      func() (Extensions, error) // Interactive picker used instead of the prompt when set
	Languages *LoadedLanguageData
	Options   Options // Everything but Extensions
	Extras    Extras
	Wait      bool // Show the "Press Enter to exit" gate
}

// Run performs the session. An empty extension list is not an error; a fatal
// compile error is reported on Out and returned.
func (s *Session) Run(ctx context.Context) error {
	reader := bufio.NewReader(s.In)
	st := newConsoleStyles(s.Out)

	fmt.Fprintln(s.Out, st.header.Render("File Content Compiler"))
	fmt.Fprintln(s.Out, "---------------------")

	exts, err := s.readExtensions(reader)
	if err != nil {
		fmt.Fprintln(s.Out, st.err.Render(fmt.Sprintf("Error: %v", err)))
		return reportedError{err}
	}
	if len(exts) == 0 {
		fmt.Fprintln(s.Out, st.warning.Render("No extensions provided."))
		s.waitForExit(reader)
		return nil
	}

	opts := s.Options
	opts.Extensions = exts

	fmt.Fprintf(s.Out, "\nSearching for files with extensions: %s\n", exts)
	if len(opts.ExcludeDirs) > 0 {
		fmt.Fprintf(s.Out, "(Skipping %s directories)\n", strings.Join(opts.ExcludeDirs, ", "))
	}

	result, err := Compile(ctx, opts)
	if err != nil {
		fmt.Fprintf(s.Out, "\n%s\n", st.err.Render(fmt.Sprintf("Error: %v", err)))
		s.waitForExit(reader)
		return reportedError{err}
	}

	if result.Count > 0 {
		fmt.Fprintf(s.Out, "\n%s\n", st.success.Render(fmt.Sprintf("Found %d files with extensions %s.", result.Count, exts)))
		fmt.Fprintf(s.Out, "Contents compiled to: %s\n", result.OutputPath)
		s.runExtras(result, st)
	} else {
		fmt.Fprintf(s.Out, "\n%s\n", st.warning.Render(fmt.Sprintf("No files with extensions %s found.", exts)))
	}

	s.waitForExit(reader)
	return nil
}

// readExtensions takes extensions from the picker, the command line or the prompt, in that order.
func (s *Session) readExtensions(reader *bufio.Reader) (Extensions, error) {
	if s.Pick != nil {
		return s.Pick()
	}
	if len(s.Args) > 0 {
		return parseExtensions(strings.Join(s.Args, " "), s.Languages), nil
	}

	fmt.Fprint(s.Out, extensionPrompt)
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("error reading input: %w", err)
	}
	return parseExtensions(line, s.Languages), nil
}

func (s *Session) waitForExit(reader *bufio.Reader) {
	if !s.Wait {
		return
	}
	fmt.Fprint(s.Out, "\nPress Enter to exit...")
	_, _ = reader.ReadString('\n')
}

// runExtras runs the optional post-compile steps. Their failures are warnings only.
func (s *Session) runExtras(result Result, st consoleStyles) {
	warn := func(err error) {
		fmt.Fprintln(s.Out, st.warning.Render(fmt.Sprintf("Warning: %v", err)))
	}

	if s.Extras.Tree {
		fmt.Fprintf(s.Out, "\n%s", printTree(buildTree(result.Files, result.Root)))
	}

	if s.Extras.Tokens || s.Extras.PDFPath != "" {
		summary, err := s.summarize(result)
		if err != nil {
			warn(err)
		} else {
			fmt.Fprintf(s.Out, "Total size: %d bytes\n", summary.TotalSize)
			if s.Extras.Tokens {
				fmt.Fprintf(s.Out, "Total tokens: %d\n", summary.TotalTokens)
			}
		}

		if s.Extras.PDFPath != "" {
			if err := generatePDF(result, summary, s.Extras.PDFPath); err != nil {
				warn(err)
			} else {
				fmt.Fprintln(s.Out, st.info.Render("PDF saved to: "+s.Extras.PDFPath))
			}
		}
	}

	if s.Extras.Clipboard {
		if err := copyToClipboard(result.OutputPath); err != nil {
			warn(err)
		} else {
			fmt.Fprintln(s.Out, st.info.Render("Output copied to clipboard."))
		}
	}
}

// summarize measures the output file, counting tokens when requested.
func (s *Session) summarize(result Result) (Summary, error) {
	if !s.Extras.Tokens {
		return summarizeOutput(result, nil)
	}
	tk, err := getTokenizer(s.Extras.Tokenizer)
	if err != nil {
		return Summary{}, fmt.Errorf("token counting disabled: %w", err)
	}
	defer tk.Close()
	return summarizeOutput(result, tk)
}
