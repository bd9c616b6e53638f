package main

import "github.com/MeKo-Tech/colorsync/internal/cmd"

func main() {
	cmd.Execute()
}
