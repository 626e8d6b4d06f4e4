/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/wandermap/traveld/cmd"

func main() {
	cmd.Execute()
}
