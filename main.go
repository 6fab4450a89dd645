package main

import "interview-service/cmd"

func main() {
	cmd.Execute()
}
