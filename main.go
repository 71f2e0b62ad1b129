package main

import "boacompra-loader/cmd"

func main() {
	cmd.Execute()
}
