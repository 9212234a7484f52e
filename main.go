package main

import "github.com/nikogura/checkin-scorer/cmd"

func main() {
	cmd.Execute()
}
