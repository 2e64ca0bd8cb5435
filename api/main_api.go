package main

import "github.com/CPU-commits/Intranet_BAcademix/api/server"

// @title       Academix API
// @version     1.0
// @description Course catalog and enrollment service

// @host     localhost:3000
// @BasePath /

// @accept  json
// @produce json
func main() {
	server.Init()
}
