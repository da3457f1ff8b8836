// Command ringctl validates, inspects and renders progress ring
// configurations without opening a window.
package main

import "progressring/internal/cli"

func main() {
	cli.Execute()
}
