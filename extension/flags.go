// flags.go defines constants for all CLI flag names.
//
// Using constants instead of string literals prevents typos and enables
// compile-time checking when flag names are used in both Flags().Type()
// definitions and GetType() calls.
//
// Naming convention: Flag<PascalCaseName> where name matches the kebab-case
// CLI flag (e.g., "no-confirm" -> FlagNoConfirm).

package extension

// Flag name constants for CLI commands.
const (
	// Boolean flags

	FlagClean    = "clean"    // Drop directories that no longer exist
	FlagJSON     = "json"     // Print the mapping as JSON
	FlagParallel = "parallel" // Run jobs concurrently
	FlagPurge    = "purge"    // Remove every tag
	FlagReplace  = "replace"  // Replace tags instead of adding
	FlagReverse  = "reverse"  // Group by tag instead of directory
	FlagTagOnly  = "tag"      // Treat the argument as a tag only (d)
	FlagYes      = "yes"      // Apply without asking

	// String flags

	FlagCmd = "cmd" // Shell command line to run

	// String slice flags

	FlagTags = "tag" // Tag names to apply or filter by

	// Integer flags

	FlagJobs = "jobs" // Maximum concurrent jobs
)
