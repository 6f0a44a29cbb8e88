// Package input turns shell command lines into dispatcher actions.
//
// A command line is a verb followed by arguments:
//
//	open ./hello.py
//	insert "print('hi')\n"
//	replace foo bar
//	font 14
//
// Arguments are separated by whitespace. An argument starting with a double
// quote is parsed as a Go string literal, so escapes such as \n and \t work.
// Verbs map to namespaced action names such as "file.open" or "edit.insert".
package input
