// Package lint runs semantic checks over a loaded data sheet.
//
// Loading a data sheet with package eds already rejects anything that is
// malformed. The rules here look for things that parse fine but are
// probably wrong: a missing mandatory object, a default value outside its
// limits, PDO counts that disagree with the communication objects, and so on.
//
// Rules are registered in a Registry, which controls which rules run and
// with what severity. Package rules provides the built-in rule set:
//
//	registry := rules.NewDefaultRegistry()
//	result := lint.NewValidator(registry).Validate(file, lint.Options{})
//	if !result.Valid {
//	    for _, v := range result.Errors {
//	        fmt.Println(v)
//	    }
//	}
//
// Rule IDs use a category prefix:
//
//	MAN  mandatory objects
//	RNG  index ranges per object list
//	CON  consistency between fields and objects
package lint
