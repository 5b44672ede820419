package main

import "github.com/LegacyCodeHQ/bagsakan/cmd"

func main() {
	cmd.Execute()
}
