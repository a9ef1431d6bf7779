package interp

import (
	"github.com/escript/escript/internal/ast"
	"github.com/escript/escript/internal/lexer"
)

// evalStatement evaluates one statement and normalizes the two error
// channels: an engine error pending in the cell is converted into a throw
// completion at the statement boundary, so statement-level control flow
// only ever deals in completions.
func (i *Interpreter) evalStatement(stmt ast.Statement) Completion {
	c := i.dispatchStatement(stmt)
	if i.err != nil {
		c = Throw(i.errorValue())
		i.clearError()
	}
	return c
}

func (i *Interpreter) dispatchStatement(stmt ast.Statement) Completion {
	// Any statement other than a loop, switch or label consumes the
	// pending label set: `l: { }` makes break l target the block, not
	// some outer loop.
	switch stmt.(type) {
	case *ast.LabelledStatement, *ast.WhileStatement, *ast.DoWhileStatement,
		*ast.ForStatement, *ast.ForInStatement, *ast.SwitchStatement:
	default:
		i.pendingLabels = nil
	}

	switch s := stmt.(type) {
	case *ast.EmptyStatement, *ast.DebuggerStatement:
		return Normal(nil)
	case *ast.BlockStatement:
		return i.evalBlockStatement(s)
	case *ast.VarStatement:
		return i.evalVarStatement(s)
	case *ast.ExpressionStatement:
		v := i.GetValue(i.evalExpression(s.Expr))
		if !i.ok() {
			return Normal(nil)
		}
		return Normal(v)
	case *ast.IfStatement:
		return i.evalIfStatement(s)
	case *ast.DoWhileStatement:
		return i.evalDoWhileStatement(s)
	case *ast.WhileStatement:
		return i.evalWhileStatement(s)
	case *ast.ForStatement:
		return i.evalForStatement(s)
	case *ast.ForInStatement:
		return i.evalForInStatement(s)
	case *ast.ContinueStatement:
		return Completion{Type: ContinueCompletion, Target: labelText(s.Label)}
	case *ast.BreakStatement:
		return Completion{Type: BreakCompletion, Target: labelText(s.Label)}
	case *ast.ReturnStatement:
		return i.evalReturnStatement(s)
	case *ast.WithStatement:
		return i.evalWithStatement(s)
	case *ast.SwitchStatement:
		return i.evalSwitchStatement(s)
	case *ast.ThrowStatement:
		return i.evalThrowStatement(s)
	case *ast.TryStatement:
		return i.evalTryStatement(s)
	case *ast.LabelledStatement:
		return i.evalLabelledStatement(s)
	}
	i.throwSyntaxError("unexpected statement node")
	return Normal(nil)
}

func labelText(t lexer.Token) string {
	if t.Type != lexer.IDENT {
		return ""
	}
	return t.Text()
}

// evalBlockStatement folds the statement completions, keeping the last
// non-empty value; an abrupt completion short-circuits the rest.
func (i *Interpreter) evalBlockStatement(s *ast.BlockStatement) Completion {
	head := Normal(nil)
	for _, stmt := range s.Statements {
		tail := i.evalStatement(stmt)
		if tail.Value == nil {
			tail.Value = head.Value
		}
		head = tail
		if head.IsAbrupt() {
			break
		}
	}
	return head
}

// evalVarStatement runs the initializers; the bindings themselves were
// hoisted at declaration binding instantiation.
func (i *Interpreter) evalVarStatement(s *ast.VarStatement) Completion {
	for _, decl := range s.Decls {
		i.evalVarDecl(decl)
		if !i.ok() {
			break
		}
	}
	return Normal(nil)
}

func (i *Interpreter) evalVarDecl(decl *ast.VarDecl) {
	if decl.Init == nil {
		return
	}
	v := i.GetValue(i.evalExpression(decl.Init))
	if !i.ok() {
		return
	}
	ctx := i.ctx()
	ref := GetIdentifierReference(ctx.LexicalEnv, decl.Name.Text(), ctx.Strict)
	i.PutValue(ref, v)
}

func (i *Interpreter) evalIfStatement(s *ast.IfStatement) Completion {
	cond := i.GetValue(i.evalExpression(s.Cond))
	if !i.ok() {
		return Normal(nil)
	}
	if ToBoolean(cond) {
		return i.evalStatement(s.Then)
	}
	if s.Else != nil {
		return i.evalStatement(s.Else)
	}
	return Normal(nil)
}

// loopIteration folds one body completion into the loop state. It reports
// whether the loop should keep running, and fills done with the loop's own
// completion when not.
func loopIteration(c Completion, labels []string, v *Value, done *Completion) bool {
	if c.Value != nil {
		*v = c.Value
	}
	switch c.Type {
	case ContinueCompletion:
		if c.Target == "" || hasLabel(labels, c.Target) {
			return true
		}
		*done = Completion{Type: c.Type, Value: *v, Target: c.Target}
		return false
	case BreakCompletion:
		if c.Target == "" || hasLabel(labels, c.Target) {
			*done = Normal(*v)
			return false
		}
		*done = Completion{Type: c.Type, Value: *v, Target: c.Target}
		return false
	case ReturnCompletion, ThrowCompletion:
		*done = c
		return false
	}
	return true
}

func (i *Interpreter) evalDoWhileStatement(s *ast.DoWhileStatement) Completion {
	labels := i.takeLabels()
	var v Value
	for {
		var done Completion
		if !loopIteration(i.evalStatement(s.Body), labels, &v, &done) {
			return done
		}
		cond := i.GetValue(i.evalExpression(s.Cond))
		if !i.ok() {
			return Normal(v)
		}
		if !ToBoolean(cond) {
			return Normal(v)
		}
	}
}

func (i *Interpreter) evalWhileStatement(s *ast.WhileStatement) Completion {
	labels := i.takeLabels()
	var v Value
	for {
		cond := i.GetValue(i.evalExpression(s.Cond))
		if !i.ok() {
			return Normal(v)
		}
		if !ToBoolean(cond) {
			return Normal(v)
		}
		var done Completion
		if !loopIteration(i.evalStatement(s.Body), labels, &v, &done) {
			return done
		}
	}
}

func (i *Interpreter) evalForStatement(s *ast.ForStatement) Completion {
	labels := i.takeLabels()

	for _, init := range s.Init {
		switch n := init.(type) {
		case *ast.VarDecl:
			i.evalVarDecl(n)
		case ast.Expression:
			i.GetValue(i.evalExpression(n))
		}
		if !i.ok() {
			return Normal(nil)
		}
	}

	var v Value
	for {
		if s.Test != nil {
			cond := i.GetValue(i.evalExpression(s.Test))
			if !i.ok() {
				return Normal(v)
			}
			if !ToBoolean(cond) {
				return Normal(v)
			}
		}
		var done Completion
		if !loopIteration(i.evalStatement(s.Body), labels, &v, &done) {
			return done
		}
		if s.Update != nil {
			i.GetValue(i.evalExpression(s.Update))
			if !i.ok() {
				return Normal(v)
			}
		}
	}
}

// evalForInStatement enumerates the enumerable properties of the
// right-hand side object: own properties first in insertion order, then
// inherited ones whose names are not shadowed. Properties deleted during
// the walk are skipped.
func (i *Interpreter) evalForInStatement(s *ast.ForInStatement) Completion {
	labels := i.takeLabels()

	rhs := i.GetValue(i.evalExpression(s.Right))
	if !i.ok() {
		return Normal(nil)
	}
	obj := i.ToObject(rhs)
	if !i.ok() {
		return Normal(nil)
	}

	var v Value
	visited := make(map[string]bool)
	for cur := obj; cur != nil; {
		for _, name := range cur.OwnKeys() {
			if visited[name] {
				continue
			}
			visited[name] = true
			desc := cur.GetOwnProperty(name)
			if desc == nil || !desc.Enumerable {
				continue
			}

			i.assignForInTarget(s.Left, NewString(name))
			if !i.ok() {
				return Normal(v)
			}
			var done Completion
			if !loopIteration(i.evalStatement(s.Body), labels, &v, &done) {
				return done
			}
		}
		next, ok := cur.Prototype.(*Object)
		if !ok {
			break
		}
		cur = next
	}
	return Normal(v)
}

func (i *Interpreter) assignForInTarget(left ast.Node, v Value) {
	ctx := i.ctx()
	switch lhs := left.(type) {
	case *ast.VarDecl:
		ref := GetIdentifierReference(ctx.LexicalEnv, lhs.Name.Text(), ctx.Strict)
		i.PutValue(ref, v)
	case ast.Expression:
		ref := i.evalExpression(lhs)
		if !i.ok() {
			return
		}
		i.PutValue(ref, v)
	}
}

func (i *Interpreter) evalReturnStatement(s *ast.ReturnStatement) Completion {
	if s.Expr == nil {
		return Completion{Type: ReturnCompletion, Value: Undefined}
	}
	v := i.GetValue(i.evalExpression(s.Expr))
	if !i.ok() {
		return Normal(nil)
	}
	return Completion{Type: ReturnCompletion, Value: v}
}

// evalWithStatement pushes an object environment onto the lexical chain
// only; the variable environment is untouched, so var declarations inside
// still land in the function scope. The scope pops on every exit path.
func (i *Interpreter) evalWithStatement(s *ast.WithStatement) Completion {
	val := i.GetValue(i.evalExpression(s.Object))
	if !i.ok() {
		return Normal(nil)
	}
	obj := i.ToObject(val)
	if !i.ok() {
		return Normal(nil)
	}

	ctx := i.ctx()
	saved := ctx.LexicalEnv
	ctx.LexicalEnv = NewObjectEnvironment(obj, true, saved)
	defer func() { ctx.LexicalEnv = saved }()

	return i.evalStatement(s.Body)
}

// evalSwitchStatement compares the discriminant against the case
// expressions with strict equality in textual order (skipping default);
// execution starts at the first match, or at default, and falls through
// until a break.
func (i *Interpreter) evalSwitchStatement(s *ast.SwitchStatement) Completion {
	labels := i.takeLabels()

	disc := i.GetValue(i.evalExpression(s.Disc))
	if !i.ok() {
		return Normal(nil)
	}

	// Textual clause order with the default's position marked.
	type entry struct {
		clause    ast.CaseClause
		isDefault bool
	}
	var entries []entry
	for _, c := range s.Before {
		entries = append(entries, entry{clause: c})
	}
	defaultPos := -1
	if s.Default != nil {
		defaultPos = len(entries)
		entries = append(entries, entry{clause: *s.Default, isDefault: true})
	}
	for _, c := range s.After {
		entries = append(entries, entry{clause: c})
	}

	start := -1
	for idx, en := range entries {
		if en.isDefault {
			continue
		}
		test := i.GetValue(i.evalExpression(en.clause.Expr))
		if !i.ok() {
			return Normal(nil)
		}
		if StrictEquals(disc, test) {
			start = idx
			break
		}
	}
	if start < 0 {
		start = defaultPos
	}
	if start < 0 {
		return Normal(nil)
	}

	var v Value
	for _, en := range entries[start:] {
		for _, stmt := range en.clause.Statements {
			c := i.evalStatement(stmt)
			if c.Value != nil {
				v = c.Value
			}
			switch c.Type {
			case BreakCompletion:
				if c.Target == "" || hasLabel(labels, c.Target) {
					return Normal(v)
				}
				return Completion{Type: c.Type, Value: v, Target: c.Target}
			case ContinueCompletion, ReturnCompletion, ThrowCompletion:
				return Completion{Type: c.Type, Value: c.Value, Target: c.Target}
			}
		}
	}
	return Normal(v)
}

func (i *Interpreter) evalThrowStatement(s *ast.ThrowStatement) Completion {
	if s.Expr == nil {
		return Throw(Undefined)
	}
	v := i.GetValue(i.evalExpression(s.Expr))
	if !i.ok() {
		return Normal(nil)
	}
	return Throw(v)
}

// evalTryStatement runs the protected block, routes a throw into the catch
// clause (binding the value in a fresh declarative scope holding only the
// parameter), and always runs finally, whose abrupt completion overrides
// whatever preceded it.
func (i *Interpreter) evalTryStatement(s *ast.TryStatement) Completion {
	b := i.evalStatement(s.Block)

	if b.Type == ThrowCompletion && s.Catch != nil {
		ctx := i.ctx()
		saved := ctx.LexicalEnv
		catchEnv := NewDeclarativeEnvironment(saved)
		catchEnv.Record.CreateMutableBinding(i, s.CatchParam.Text(), false)
		catchEnv.Record.SetMutableBinding(i, s.CatchParam.Text(), b.Value, false)
		ctx.LexicalEnv = catchEnv
		b = i.evalStatement(s.Catch)
		ctx.LexicalEnv = saved
	}

	if s.Finally != nil {
		f := i.evalStatement(s.Finally)
		if f.IsAbrupt() {
			b = f
		}
	}
	return b
}

func (i *Interpreter) evalLabelledStatement(s *ast.LabelledStatement) Completion {
	label := s.Label.Text()
	i.pendingLabels = append(i.pendingLabels, label)
	c := i.evalStatement(s.Stmt)
	if c.Type == BreakCompletion && c.Target == label {
		return Normal(c.Value)
	}
	return c
}
