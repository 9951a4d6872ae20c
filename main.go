package main

import "github.com/brzaa/math-practice-kids/cmd"

func main() {
	cmd.Execute()
}
