package main

import "github.com/nguyentranbao-ct/product-store/cmd"

func main() {
	cmd.Execute()
}
