// Package compiler turns command templates into ready-to-use command files.
//
// A run lists the templates in the template directory, splices the contents
// of every @{path} include directive into each one, and writes the result to
// the output directory. Skills under the skills root that have no explicit
// template get a generated one that includes their SKILL.md. Output files
// that no longer belong to a template or skill are removed at the end of
// every run.
//
// Expansion is a single pass: included text is inserted verbatim and never
// scanned for further directives.
package compiler
