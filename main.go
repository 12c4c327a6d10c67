package main

import "overterm/internal/cli"

func main() { cli.Execute() }
