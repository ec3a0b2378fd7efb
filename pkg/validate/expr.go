package validate

import "github.com/expr-lang/expr"

// checkExprSyntax best-effort compiles a condition string as an expr-lang
// expression, the same library the engine uses to evaluate edge conditions
// at runtime. The validator never executes anything, so a compile failure
// is reported as a message to attach to a warning, never an error — a
// corpus author may intend a different condition language entirely.
func checkExprSyntax(condition string) string {
	if condition == "" {
		return ""
	}
	if _, err := expr.Compile(condition); err != nil {
		return err.Error()
	}
	return ""
}
