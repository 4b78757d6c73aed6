// Package cli implements natcalc's terminal front end: operand parsing,
// single-operation evaluation, self-check progress and summaries, the
// interactive REPL and shell completion scripts.
//
// # Naming Conventions
//
//   - Display* functions write formatted output to an [io.Writer].
//     Examples: [DisplayOutcome], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatQuietOutcome].
//
//   - Parse* functions turn user input into kernel operands and report
//     failures as validation errors.
package cli
