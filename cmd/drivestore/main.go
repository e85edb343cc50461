// Command drivestore reads and writes path-addressed documents in Google Drive.
package main

import "github.com/Jumpaku/go-drivestore/cmd/drivestore/cmd"

func main() {
	cmd.Execute()
}
