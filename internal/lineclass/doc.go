// Package lineclass defines the closed sets of Python block keywords the
// reindent engine cares about: block openers (headers that end with a colon
// and introduce a nested suite) and block continuers (clauses like else or
// except that reopen an existing block at its opener's depth). The
// continuer→opener compatibility table lives here so the depth inferencer
// never does string matching of its own.
package lineclass
