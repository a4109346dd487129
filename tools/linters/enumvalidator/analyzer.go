package enumvalidator

import (
	"go/ast"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/analysis"
)

// Analyzer checks the string enums of internal/model.
var Analyzer = New()

// New returns an analyzer that also treats the named types in extra as enums.
func New(extra ...string) *analysis.Analyzer {
	enums := make(map[string]bool, len(enumTypes)+len(extra))
	for name := range enumTypes {
		enums[name] = true
	}
	for _, name := range extra {
		enums[name] = true
	}
	c := checker{enums: enums}
	return &analysis.Analyzer{
		Name: "enumvalidator",
		Doc:  "checks that enum fields only use defined constants, not string literals",
		Run:  c.run,
	}
}

// enumTypes are the string enums of internal/model. Their values are stored
// in Postgres and sent over the event stream, so a typo is a silent bug.
var enumTypes = map[string]bool{
	"ActivityType":     true,
	"EventType":        true,
	"InvitationStatus": true,
	"MemberRole":       true,
	"NotificationType": true,
	"Priority":         true,
	"Provider":         true,
	"SearchKind":       true,
}

type checker struct {
	enums map[string]bool
}

func (c checker) run(pass *analysis.Pass) (interface{}, error) {
	for _, file := range pass.Files {
		ast.Inspect(file, func(n ast.Node) bool {
			switch node := n.(type) {
			case *ast.AssignStmt:
				c.checkAssign(pass, node)
			case *ast.CompositeLit:
				c.checkCompositeLit(pass, node)
			}
			return true
		})
	}
	return nil, nil
}

func (c checker) checkAssign(pass *analysis.Pass, assign *ast.AssignStmt) {
	for i, lhs := range assign.Lhs {
		if i >= len(assign.Rhs) {
			continue
		}

		sel, ok := lhs.(*ast.SelectorExpr)
		if !ok || !c.isEnum(pass.TypesInfo.TypeOf(sel)) {
			continue
		}
		if isStringLiteral(assign.Rhs[i]) {
			pass.Reportf(assign.Pos(),
				"enum field %s assigned string literal; use defined constant instead",
				sel.Sel.Name)
		}
	}
}

// checkCompositeLit covers struct literals such as Task{Priority: "high"}.
func (c checker) checkCompositeLit(pass *analysis.Pass, lit *ast.CompositeLit) {
	for _, elt := range lit.Elts {
		kv, ok := elt.(*ast.KeyValueExpr)
		if !ok || !isStringLiteral(kv.Value) {
			continue
		}
		key, ok := kv.Key.(*ast.Ident)
		if !ok {
			continue
		}
		if c.isEnum(pass.TypesInfo.TypeOf(kv.Value)) {
			pass.Reportf(kv.Pos(),
				"enum field %s assigned string literal; use defined constant instead",
				key.Name)
		}
	}
}

func (c checker) isEnum(t types.Type) bool {
	named, ok := t.(*types.Named)
	return ok && c.enums[named.Obj().Name()]
}

func isStringLiteral(expr ast.Expr) bool {
	lit, ok := expr.(*ast.BasicLit)
	return ok && lit.Kind == token.STRING
}
