package main

import "github.com/kyubxy/simai-analyzer/cmd"

func main() {
	cmd.Execute()
}
