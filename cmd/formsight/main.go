// Command formsight analyzes exercise pose sequences and serves the
// analysis API.
package main

func main() {
	Execute()
}
