package utils_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/repoweight/repoweight/internal/utils"
)

func TestLoggerFactoryCreateLogger(testInstance *testing.T) {
	testCases := []struct {
		name        string
		logLevel    utils.LogLevel
		logFormat   utils.LogFormat
		expectError bool
	}{
		{name: "structured_info", logLevel: utils.LogLevelInfo, logFormat: utils.LogFormatStructured},
		{name: "console_debug", logLevel: utils.LogLevelDebug, logFormat: utils.LogFormatConsole},
		{name: "warn_level", logLevel: utils.LogLevelWarn, logFormat: utils.LogFormatStructured},
		{name: "error_level", logLevel: utils.LogLevelError, logFormat: utils.LogFormatConsole},
		{name: "unsupported_level", logLevel: utils.LogLevel("verbose"), logFormat: utils.LogFormatStructured, expectError: true},
		{name: "unsupported_format", logLevel: utils.LogLevelInfo, logFormat: utils.LogFormat("plain"), expectError: true},
	}

	loggerFactory := utils.NewLoggerFactory()

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtestInstance *testing.T) {
			logger, creationError := loggerFactory.CreateLogger(testCase.logLevel, testCase.logFormat)
			if testCase.expectError {
				require.Error(subtestInstance, creationError)
				require.Nil(subtestInstance, logger)
				return
			}
			require.NoError(subtestInstance, creationError)
			require.NotNil(subtestInstance, logger)
		})
	}
}
