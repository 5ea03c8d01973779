// Command coal is the CLI collaborator around Coal's compiler core: it
// reads a source file, drives lex/parse/check/emit, and either prints an
// intermediate representation or hands the generated IR to an external C
// compiler driver.
package main

import "github.com/coal-lang/coal/cmd/coal/commands"

func main() {
	commands.Execute()
}
