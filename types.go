package main

// Extensions is the ordered list of file name suffixes used as the inclusion filter.
// Every entry starts with a dot once normalized. Duplicates are kept as entered.
type Extensions []string

// Options configures a single compile run.
type Options struct {
	Root             string     // Directory to walk
	OutputDir        string     // Where the output file is written (defaults to Root)
	Extensions       Extensions // Normalized suffixes
	ExcludeDirs      []string   // Directory names pruned at any depth below Root
	RespectGitignore bool       // Prune paths matched by Root/.gitignore
}

// Result holds what a compile run produced.
type Result struct {
	Root       string   // Absolute root that was walked
	Count      int      // Number of blocks written, unreadable files included
	OutputPath string   // Absolute path of the output file
	Files      []string // Included paths, in block order
}

// Summary holds aggregated information about the output file, printed after a run.
type Summary struct {
	TotalFiles  int
	TotalSize   int64
	TotalTokens int
}
