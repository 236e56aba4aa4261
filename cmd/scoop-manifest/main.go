package main

import "github.com/oshokin/scoop-manifest/cmd/scoop-manifest/cmd"

func main() {
	cmd.Execute()
}
