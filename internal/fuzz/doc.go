// Package fuzztests houses Go fuzz harnesses that exercise the front
// end pipeline (source -> lexer -> parser). Its goal is to smoke test
// robustness and guard against panics, hangs or allocator explosions on
// arbitrary inputs.
//
// It does not generate corpora, write files or run the CLI.
package fuzztests
