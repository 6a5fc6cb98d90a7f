// Package validator provides lint checks for parsed declarations.
//
// The validator performs two types of validation:
//
// 1. Structural Validation: identifier names, duplicate members, positional
// fields outside tuple payloads
//
// 2. Signature Validation: receiver position, duplicate parameters, the
// receiver type used by ordinary parameters
//
// Neither pass resolves types or scopes.
//
// # Basic Usage
//
//	node, err := parser.Parse(input)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := validator.NewValidator().Validate(node); err != nil {
//	    if errList, ok := err.(*errors.ErrorList); ok {
//	        for _, e := range errList.Errors {
//	            fmt.Println(e.Error())
//	        }
//	    }
//	}
//
// Parser.WithStrictMode(true) runs the validator after every parse.
package validator
