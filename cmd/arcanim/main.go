// Command arcanim renders and serves the built-in animation scenes.
package main

func main() {
	Execute()
}
