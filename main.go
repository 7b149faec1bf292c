package main

import "github.com/worksync/worksync/cmd"

func main() {
	cmd.Execute()
}
