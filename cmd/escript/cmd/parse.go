package cmd

import (
	"fmt"
	"strings"

	"github.com/escript/escript/internal/ast"
	"github.com/escript/escript/pkg/escript"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a script and dump the AST",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		input, filename, err := readInput(args)
		if err != nil {
			return err
		}
		prog, err := escript.CompileFile(input, filename)
		if err != nil {
			return err
		}
		dumpNode(prog.AST(), 0)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "parse inline code instead of reading from file")
}

// dumpNode prints one node per line, children indented, with a shortened
// source excerpt for the leaves.
func dumpNode(n ast.Node, depth int) {
	if n == nil {
		return
	}
	indent := strings.Repeat("  ", depth)
	fmt.Printf("%s%s %s\n", indent, nodeName(n), excerpt(n))

	for _, child := range childNodes(n) {
		dumpNode(child, depth+1)
	}
}

func nodeName(n ast.Node) string {
	name := fmt.Sprintf("%T", n)
	if idx := strings.LastIndexByte(name, '.'); idx >= 0 {
		name = name[idx+1:]
	}
	return name
}

func excerpt(n ast.Node) string {
	src := n.Source().String()
	src = strings.Join(strings.Fields(src), " ")
	if len(src) > 40 {
		src = src[:37] + "..."
	}
	return src
}

func childNodes(n ast.Node) []ast.Node {
	var out []ast.Node
	add := func(children ...ast.Node) {
		out = append(out, children...)
	}
	switch t := n.(type) {
	case *ast.Program:
		for _, d := range t.Declarations {
			add(d)
		}
		for _, s := range t.Statements {
			add(s)
		}
	case *ast.BlockStatement:
		for _, s := range t.Statements {
			add(s)
		}
	case *ast.VarStatement:
		for _, d := range t.Decls {
			add(d)
		}
	case *ast.VarDecl:
		if t.Init != nil {
			add(t.Init)
		}
	case *ast.ExpressionStatement:
		add(t.Expr)
	case *ast.IfStatement:
		add(t.Cond, t.Then)
		if t.Else != nil {
			add(t.Else)
		}
	case *ast.DoWhileStatement:
		add(t.Body, t.Cond)
	case *ast.WhileStatement:
		add(t.Cond, t.Body)
	case *ast.ForStatement:
		for _, init := range t.Init {
			add(init)
		}
		if t.Test != nil {
			add(t.Test)
		}
		if t.Update != nil {
			add(t.Update)
		}
		add(t.Body)
	case *ast.ForInStatement:
		add(t.Left, t.Right, t.Body)
	case *ast.ReturnStatement:
		if t.Expr != nil {
			add(t.Expr)
		}
	case *ast.WithStatement:
		add(t.Object, t.Body)
	case *ast.SwitchStatement:
		add(t.Disc)
		for _, c := range t.Before {
			addClause(&out, c)
		}
		if t.Default != nil {
			addClause(&out, *t.Default)
		}
		for _, c := range t.After {
			addClause(&out, c)
		}
	case *ast.ThrowStatement:
		if t.Expr != nil {
			add(t.Expr)
		}
	case *ast.TryStatement:
		add(t.Block)
		if t.Catch != nil {
			add(t.Catch)
		}
		if t.Finally != nil {
			add(t.Finally)
		}
	case *ast.LabelledStatement:
		add(t.Stmt)
	case *ast.ParenExpression:
		add(t.Expr)
	case *ast.BinaryExpression:
		add(t.Left, t.Right)
	case *ast.UnaryExpression:
		add(t.Operand)
	case *ast.ConditionalExpression:
		add(t.Cond, t.Then, t.Else)
	case *ast.SequenceExpression:
		for _, e := range t.Elements {
			add(e)
		}
	case *ast.FunctionLiteral:
		add(t.Body)
	case *ast.ArrayLiteral:
		for _, el := range t.Elements {
			add(el.Value)
		}
	case *ast.ObjectLiteral:
		for _, p := range t.Properties {
			add(p.Value)
		}
	case *ast.LHSExpression:
		add(t.Base)
		for _, pf := range t.Postfix {
			switch pf.Kind {
			case ast.PostfixCall:
				add(pf.Args)
			case ast.PostfixIndex:
				add(pf.Index)
			}
		}
	case *ast.Arguments:
		for _, a := range t.List {
			add(a)
		}
	}
	return out
}

func addClause(out *[]ast.Node, c ast.CaseClause) {
	if c.Expr != nil {
		*out = append(*out, c.Expr)
	}
	for _, s := range c.Statements {
		*out = append(*out, s)
	}
}
