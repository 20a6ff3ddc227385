package main

import (
	"hospicore/config"
	"hospicore/di"
	"hospicore/shared/logger"
)

// @title HospiCore API
// @version 1.0
// @description Hospital record keeping service covering patients, staff, rooms, pharmacy stock, admissions and billing.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
