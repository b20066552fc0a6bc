package config

import "go.uber.org/zap"

// NewLogger returns a console logger for development and a JSON
// production logger otherwise.
func NewLogger(environment string) (*zap.Logger, error) {
	if environment == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
