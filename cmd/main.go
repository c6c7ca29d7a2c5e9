package main

import (
	"os"

	_ "file_vault/docs" // swagger spec registration
)

// @title        file_vault API
// @version      1.0
// @description  Authentication, user management and file storage.
// @BasePath     /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the session token.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
