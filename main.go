package main

import "github.com/dead10ck/rowsh/cmd"

func main() {
	cmd.Execute()
}
