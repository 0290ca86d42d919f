// Package shellspec holds small constants shared across the shell's
// subsystems (builtins, resolver, REPL) so each one draws
// from a single definition instead of repeating literals.
package shellspec

// Prompt is the literal string printed before every command line.
const Prompt = "$ "

// BuiltinNames is the fixed set of builtin command names, matched
// case-insensitively for dispatch.
var BuiltinNames = []string{"echo", "exit", "quit", "type", "pwd", "cd", "history"}

// CompletionBuiltins is the subset of BuiltinNames the line editor offers
// for Tab completion. It deliberately does not match BuiltinNames — only
// echo and exit complete as builtins; the rest only ever appear typed in
// full.
var CompletionBuiltins = []string{"echo", "exit"}

// DefaultPathext is the PATHEXT value used on Windows hosts when the
// environment does not define one.
const DefaultPathext = ".EXE;.BAT;.CMD;.COM"
