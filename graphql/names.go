package graphql

import (
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/schemac/schemac/naming"
)

// Operation/fragment entry naming. Keyed off the declared operation or
// fragment name, PascalCased.

func QueryVariablesName(op string) string    { return naming.ToPascalCase(op) + "QueryVariables" }
func MutationVariablesName(op string) string { return naming.ToPascalCase(op) + "MutationVariables" }
func SubscriptionVariablesName(op string) string {
	return naming.ToPascalCase(op) + "SubscriptionVariables"
}

func QueryResponseName(op string) string    { return naming.ToPascalCase(op) + "QueryResponse" }
func MutationResponseName(op string) string { return naming.ToPascalCase(op) + "MutationResponse" }
func SubscriptionResponseName(op string) string {
	return naming.ToPascalCase(op) + "SubscriptionResponse"
}

func FragmentName(name string) string { return naming.ToPascalCase(name) + "Fragment" }

func variablesName(kind ast.Operation, op string) string {
	switch kind {
	case ast.Mutation:
		return MutationVariablesName(op)
	case ast.Subscription:
		return SubscriptionVariablesName(op)
	default:
		return QueryVariablesName(op)
	}
}

func responseName(kind ast.Operation, op string) string {
	switch kind {
	case ast.Mutation:
		return MutationResponseName(op)
	case ast.Subscription:
		return SubscriptionResponseName(op)
	default:
		return QueryResponseName(op)
	}
}
