package main

import "github.com/ubnt/ucrm-plugin-sdk-go/internal/cli"

func main() {
	cli.Execute()
}
