package main

import "os"

func main() {
	os.Exit(run(newApp(), os.Args[1:]))
}

// run executes the CLI and returns the process exit code.
func run(a *app, args []string) int {
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	err := cmd.Execute()
	a.close()
	if err != nil {
		a.ui.Error("%v", err)
		return 1
	}
	return 0
}
