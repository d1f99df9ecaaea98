package main

import "github.com/frahmantamala/hospital-careers/cmd"

func main() {
	cmd.Execute()
}
