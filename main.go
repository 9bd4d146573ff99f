package main

import "github.com/llehouerou/scrob/internal/cli"

func main() {
	cli.Execute()
}
