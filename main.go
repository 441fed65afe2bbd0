package main

import "github.com/adsc/report-system/cmd"

// @title                       Daily Report API
// @version                     1.0
// @description                 Daily revenue and expense reports with role-based access.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cmd.Execute()
}
