package main

import "github.com/information-sharing-networks/xs2a-demo/app/internal/cli"

func main() {
	cli.Execute()
}
