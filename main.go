package main

import "seo-web/cmd"

func main() {
	cmd.Execute()
}
