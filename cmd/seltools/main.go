// Command seltools drives scripted browser sessions and installs the browser
// driver executables they need.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
