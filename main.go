package main

import "github.com/frahmantamala/cash-pro/cmd"

func main() {
	cmd.Execute()
}
