package main

import "github.com/KostasZigo/gitcas/cmd"

func main() {
	cmd.Execute()
}
