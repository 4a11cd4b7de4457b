// Command rvext-cli drives the extension entry points in-process the way the
// Host would, for local development without the Host.
package main

func main() {
	Execute()
}
