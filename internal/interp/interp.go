package interp

import (
	"github.com/escript/escript/internal/ast"
)

// Object class tags. Internal-method dispatch keys off these rather than a
// type hierarchy.
const (
	classObject    = "Object"
	classFunction  = "Function"
	classArray     = "Array"
	classString    = "String"
	classNumber    = "Number"
	classBoolean   = "Boolean"
	classError     = "Error"
	classArguments = "Arguments"
	classRegExp    = "RegExp"
	classGlobal    = "global"
)

// ExecutionContext is one entry of the context stack. VariableEnv and
// LexicalEnv coincide except inside with and catch, which push a lexical
// scope without changing where var declarations land.
type ExecutionContext struct {
	VariableEnv *LexicalEnvironment
	LexicalEnv  *LexicalEnvironment
	This        Value
	Strict      bool
}

// Interpreter evaluates parsed programs. It owns the global object, the
// execution-context stack and the engine error cell. A single Interpreter
// is not safe for concurrent use; evaluation is strictly single-threaded.
type Interpreter struct {
	global    *Object
	globalEnv *LexicalEnvironment
	contexts  []*ExecutionContext
	err       *RuntimeError

	// pendingLabels carries the label set of enclosing labelled statements
	// down to the loop or switch that consumes it.
	pendingLabels []string

	objectProto   *Object
	functionProto *Object
	arrayProto    *Object
	stringProto   *Object
	numberProto   *Object
	booleanProto  *Object
	errorProtos   map[ErrorKind]*Object
}

// New creates an interpreter with a fresh global object and the built-in
// library installed.
func New() *Interpreter {
	i := &Interpreter{
		errorProtos: make(map[ErrorKind]*Object),
	}
	i.setupBuiltins()
	i.globalEnv = NewObjectEnvironment(i.global, false, nil)
	return i
}

// Global returns the global object.
func (i *Interpreter) Global() *Object { return i.global }

// ctx returns the running execution context.
func (i *Interpreter) ctx() *ExecutionContext {
	return i.contexts[len(i.contexts)-1]
}

func (i *Interpreter) pushContext(c *ExecutionContext) {
	i.contexts = append(i.contexts, c)
}

func (i *Interpreter) popContext() {
	i.contexts = i.contexts[:len(i.contexts)-1]
}

// EnterGlobalCode pushes the global execution context for ast and performs
// declaration binding instantiation for it.
func (i *Interpreter) EnterGlobalCode(node ast.Node) {
	prog, ok := node.(*ast.Program)
	if !ok {
		i.throwSyntaxError("malformed program")
		return
	}
	i.pushContext(&ExecutionContext{
		VariableEnv: i.globalEnv,
		LexicalEnv:  i.globalEnv,
		This:        i.global,
		Strict:      prog.Strict,
	})
	i.instantiateDeclarationBindings(prog, nil, nil)
}

// LeaveGlobalCode pops the context pushed by EnterGlobalCode. Embedders
// that run several programs against one engine bracket each evaluation
// with the pair.
func (i *Interpreter) LeaveGlobalCode() {
	if len(i.contexts) > 0 {
		i.popContext()
	}
}

// EvalProgram evaluates global code or a function body. The completion of
// the program is the fold of its statement completions, keeping the last
// non-empty value. A return statement outside a function body is rejected
// up front by syntactic scan.
func (i *Interpreter) EvalProgram(node ast.Node) Completion {
	prog, ok := node.(*ast.Program)
	if !ok {
		return Throw(i.newErrorObject(KindSyntaxError, "malformed program"))
	}
	if !prog.FunctionBody {
		for _, stmt := range prog.Statements {
			if containsReturn(stmt) {
				return Throw(i.newErrorObject(KindSyntaxError, "return outside of function"))
			}
		}
	}

	head := Normal(nil)
	for _, stmt := range prog.Statements {
		if head.IsAbrupt() {
			break
		}
		tail := i.evalStatement(stmt)
		if tail.Value == nil {
			tail.Value = head.Value
		}
		head = tail
	}
	return head
}

// containsReturn scans a statement subtree for a return statement without
// descending into function literals, whose bodies are legal homes for one.
func containsReturn(stmt ast.Statement) bool {
	switch s := stmt.(type) {
	case *ast.ReturnStatement:
		return true
	case *ast.BlockStatement:
		for _, inner := range s.Statements {
			if containsReturn(inner) {
				return true
			}
		}
	case *ast.IfStatement:
		return containsReturn(s.Then) || (s.Else != nil && containsReturn(s.Else))
	case *ast.DoWhileStatement:
		return containsReturn(s.Body)
	case *ast.WhileStatement:
		return containsReturn(s.Body)
	case *ast.ForStatement:
		return containsReturn(s.Body)
	case *ast.ForInStatement:
		return containsReturn(s.Body)
	case *ast.WithStatement:
		return containsReturn(s.Body)
	case *ast.SwitchStatement:
		for _, clause := range s.Before {
			if clauseContainsReturn(clause) {
				return true
			}
		}
		if s.Default != nil && clauseContainsReturn(*s.Default) {
			return true
		}
		for _, clause := range s.After {
			if clauseContainsReturn(clause) {
				return true
			}
		}
	case *ast.TryStatement:
		if containsReturn(s.Block) {
			return true
		}
		if s.Catch != nil && containsReturn(s.Catch) {
			return true
		}
		if s.Finally != nil && containsReturn(s.Finally) {
			return true
		}
	case *ast.LabelledStatement:
		return containsReturn(s.Stmt)
	}
	return false
}

func clauseContainsReturn(clause ast.CaseClause) bool {
	for _, stmt := range clause.Statements {
		if containsReturn(stmt) {
			return true
		}
	}
	return false
}

// takeLabels consumes the pending label set for the statement that is about
// to run. Loops and switches claim their labels this way so that labelled
// continue and break can find them.
func (i *Interpreter) takeLabels() []string {
	labels := i.pendingLabels
	i.pendingLabels = nil
	return labels
}

func hasLabel(labels []string, target string) bool {
	for _, l := range labels {
		if l == target {
			return true
		}
	}
	return false
}
