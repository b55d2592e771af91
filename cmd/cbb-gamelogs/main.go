// Command cbb-gamelogs scrapes college basketball game logs and builds
// leakage-free training rows from them.
package main

import "github.com/pfrederiksen/cbb-gamelogs/internal/cli"

func main() {
	cli.Execute()
}
