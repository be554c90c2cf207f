package main

import "github.com/noah-isme/edu-portal-api/internal/cli"

func main() {
	cli.Execute()
}
