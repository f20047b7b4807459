package jscope

// ScopeOptions configures the Scope function.
type ScopeOptions struct {
	// Language specifies which language to use. Defaults to "java".
	Language string

	// File is the file to inspect (required). A bare file name that does
	// not exist in the working directory is looked up under Path.
	File string

	// Path is the root directory used to look up a bare file name.
	Path string

	// Line and Column give the 1-based position to resolve (required).
	Line   int
	Column int
}

// QueryOptions configures the Query function.
type QueryOptions struct {
	// Query is the tree-sitter query string to execute.
	Query string

	// Language specifies which language to use. Defaults to "java".
	Language string

	// Path is the root directory to scan for files.
	// If empty, current directory is used.
	Path string

	// File is a single file to query.
	// If set, Path is ignored.
	File string

	// Include and Exclude are glob patterns matched against paths relative
	// to Path. A file must match some Include pattern (if any) and no
	// Exclude pattern.
	Include []string
	Exclude []string

	// Jobs is the number of parallel workers.
	// If 0, defaults to number of CPUs.
	Jobs int

	// MaxBytes skips files larger than this size.
	// If 0, defaults to 2 MiB.
	MaxBytes int64
}

// OutlineOptions configures the Outline function.
type OutlineOptions struct {
	// Language specifies which language to use. Defaults to "java".
	Language string

	// File is the file to analyze (required).
	File string
}

// DeclarationsOptions configures the Declarations function.
type DeclarationsOptions struct {
	// Language specifies which language to use. Defaults to "java".
	Language string

	// Path is the root directory to scan for files.
	// If empty, current directory is used.
	Path string

	// File is a single file to analyze.
	// If set, Path is ignored.
	File string

	// Category keeps only declarations of this category: "class",
	// "interface", "annotation" or "method". Empty keeps all.
	Category string

	// Include and Exclude filter scanned files, as in QueryOptions.
	Include []string
	Exclude []string

	// Jobs is the number of parallel workers.
	// If 0, defaults to number of CPUs.
	Jobs int

	// MaxBytes skips files larger than this size.
	// If 0, defaults to 2 MiB.
	MaxBytes int64
}
