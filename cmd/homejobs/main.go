package main

import "github.com/nfrund/homejobs/cmd/homejobs/cmd"

func main() {
	cmd.Execute()
}
