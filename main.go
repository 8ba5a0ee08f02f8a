package main

import "github.com/inovacc/supergraph/cmd"

func main() {
	cmd.Execute()
}
