package middleware

import (
	"os"
	"testing"

	"github.com/GarageLog/garage-log-backend/logger"
)

func TestMain(m *testing.M) {
	logger.IsTest = true
	os.Exit(m.Run())
}
