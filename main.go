package main

import "github.com/macroprep/macroprep-cli/cmd/macroprep"

func main() {
	macroprep.Execute()
}
