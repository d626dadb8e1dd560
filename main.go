package main

import "github.com/naka-gawa/github-stats-dashboard/cmd"

func main() {
	cmd.Execute()
}
