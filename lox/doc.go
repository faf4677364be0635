// Package lox implements a small dynamically-typed scripting language: a
// scanner, a recursive-descent parser and a tree-walking evaluator.
// The language supports:
//   - Literals for numbers, strings, booleans and nil.
//   - Arithmetic and comparison expressions (+, -, *, /, <, <=, >, >=, ==, !=),
//     with + concatenating when either operand is a string.
//   - Short-circuiting `and`/`or`, unary `-` and `!`, and parentheses.
//   - `var` declarations, assignment, `print`, `{}` blocks with lexical scope,
//     `if`/`else`, C-style `for`, `while`, `break` and `continue`.
//
// Line comments start with `//`; block comments `/* ... */` nest. Scan and
// parse problems are reported together as Diagnostics before anything runs;
// the first runtime error stops the run and is returned as a *RuntimeError.
package lox
