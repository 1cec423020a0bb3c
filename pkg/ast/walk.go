package ast

// Walk visits node and then its children in source order.
func Walk(node Node, visitor func(Node)) {
	if node == nil {
		return
	}

	visitor(node)

	switch n := node.(type) {
	case *Program:
		for _, stmt := range n.Statements {
			Walk(stmt, visitor)
		}
	case *BlockStatement:
		for _, stmt := range n.Statements {
			Walk(stmt, visitor)
		}
	case *DeclarationStatement:
		Walk(n.Name, visitor)
	case *AssignmentStatement:
		Walk(n.Name, visitor)
		if n.Value != nil {
			Walk(n.Value, visitor)
		}
	case *IfStatement:
		Walk(n.Condition, visitor)
		Walk(n.Consequence, visitor)
		if n.Alternative != nil {
			Walk(n.Alternative, visitor)
		}
	case *WhileStatement:
		Walk(n.Condition, visitor)
		Walk(n.Body, visitor)
	case *PrintStatement:
		Walk(n.Value, visitor)
	case *InfixExpression:
		Walk(n.Left, visitor)
		Walk(n.Right, visitor)
	}
}
