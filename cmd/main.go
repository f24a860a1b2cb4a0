// @title                       SecureWatch API
// @version                     1.0
// @description                 Incident console backend: dashboard, incidents, dialogs and the apply-fix progress stream.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"os"
)

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
