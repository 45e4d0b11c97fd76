package main

import "github.com/civicgraph/civicgraph/cmd"

func main() {
	cmd.Execute()
}
