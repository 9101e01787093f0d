// Package builtin provides the host functions available to twig programs.
//
// [Register] installs them into a [lang.FunctionTable]:
//
//	print(v...)                 write values separated by spaces
//	print_int(n)                write an Int
//	print_str(s)                write a String
//	len(s)                      byte length of a String
//	str(v)                      any value as a String
//	int(s)                      parse a decimal String
//	expr(src, args...)          evaluate an expr-lang expression; args are a0, a1, ...
//	path_prefix(list, items...) prefix items onto a PATH-like list
//	getenv(name)                read a process environment variable
//
// Argument errors derive from [lang.ErrBuiltin].
package builtin
