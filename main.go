package main

import "github.com/opencatalog/excel-ingest/cmd"

func main() {
	cmd.Execute()
}
