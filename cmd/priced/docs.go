package main

// General API documentation for swaggo. Run `swag init -g cmd/priced/docs.go`
// and build with -tags=swagger to serve it.
//
// @title           priced API
// @version         1.0
// @description     HTTP API for car price estimation from a trained regression model.
//
// @contact.name   priced maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
