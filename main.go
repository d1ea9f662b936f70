package main

import "github.com/ridoystarlord/modelgen/cmd"

func main() {
	cmd.Execute()
}
