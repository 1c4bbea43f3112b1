/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package log

import (
	"bytes"
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zapcore"

	"github.com/relieflink/cachestore/internal/system/constants"
)

type LogTestSuite struct {
	suite.Suite
	originalLogLevel string
}

func TestLogSuite(t *testing.T) {
	suite.Run(t, new(LogTestSuite))
}

func (suite *LogTestSuite) SetupTest() {
	suite.originalLogLevel = os.Getenv(constants.LogLevelEnvironmentVariable)
}

func (suite *LogTestSuite) TearDownTest() {
	err := os.Setenv(constants.LogLevelEnvironmentVariable, suite.originalLogLevel)
	if err != nil {
		suite.T().Errorf("Failed to restore environment variable: %v", err)
	}

	// Reset logger singleton for next test
	logger = nil
	once = sync.Once{}
}

func (suite *LogTestSuite) TestInitLoggerWithEnvironmentVariable() {
	testCases := []struct {
		name     string
		logLevel string
		isValid  bool
	}{
		{"DefaultLevel", "", true},
		{"DebugLevel", "debug", true},
		{"InfoLevel", "info", true},
		{"WarnLevel", "warn", true},
		{"ErrorLevel", "error", true},
		{"InvalidLevel", "unknown", false},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			logger = nil
			once = sync.Once{}

			if tc.logLevel != "" {
				assert.NoError(t, os.Setenv(constants.LogLevelEnvironmentVariable, tc.logLevel))
			} else {
				assert.NoError(t, os.Unsetenv(constants.LogLevelEnvironmentVariable))
			}

			if tc.isValid {
				assert.NotPanics(t, func() {
					_ = GetLogger()
				})
			} else {
				assert.Panics(t, func() {
					_ = GetLogger()
				})
			}
		})
	}
}

func (suite *LogTestSuite) TestParseLogLevel() {
	testCases := []struct {
		name      string
		logLevel  string
		expected  zapcore.Level
		expectErr bool
	}{
		{"Debug", "debug", zapcore.DebugLevel, false},
		{"Info", "info", zapcore.InfoLevel, false},
		{"Warn", "warn", zapcore.WarnLevel, false},
		{"Error", "error", zapcore.ErrorLevel, false},
		{"Invalid", "invalid", zapcore.ErrorLevel, true},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			level, err := parseLogLevel(tc.logLevel)
			if tc.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.expected, level)
		})
	}
}

func (suite *LogTestSuite) TestLogMethods() {
	var buf bytes.Buffer
	log := newLogger(zapcore.AddSync(&buf), zapcore.DebugLevel)

	log.Debug("Debug message", String("test", "debug"))
	log.Info("Info message", Int("count", 42))
	log.Warn("Warning message", Bool("flag", true))
	log.Error("Error message", Error(errors.New("boom")))

	output := buf.String()
	assert.Contains(suite.T(), output, "Debug message")
	assert.Contains(suite.T(), output, "Info message")
	assert.Contains(suite.T(), output, "Warning message")
	assert.Contains(suite.T(), output, "Error message")

	assert.Contains(suite.T(), output, `"test": "debug"`)
	assert.Contains(suite.T(), output, `"count": 42`)
	assert.Contains(suite.T(), output, `"flag": true`)
	assert.Contains(suite.T(), output, "boom")
	assert.True(suite.T(), log.IsDebugEnabled())
}

func (suite *LogTestSuite) TestLevelFiltering() {
	var buf bytes.Buffer
	log := newLogger(zapcore.AddSync(&buf), zapcore.WarnLevel)

	log.Debug("hidden debug")
	log.Info("hidden info")
	log.Warn("visible warn")

	output := buf.String()
	assert.NotContains(suite.T(), output, "hidden")
	assert.Contains(suite.T(), output, "visible warn")
	assert.False(suite.T(), log.IsDebugEnabled())
}

func (suite *LogTestSuite) TestLoggerWith() {
	var buf bytes.Buffer
	log := newLogger(zapcore.AddSync(&buf), zapcore.DebugLevel)

	contextLogger := log.With(String(LoggerKeyComponentName, "CacheEngine"))
	assert.NotNil(suite.T(), contextLogger)

	contextLogger.Info("Context log message")

	output := buf.String()
	assert.Contains(suite.T(), output, `"component": "CacheEngine"`)
	assert.Contains(suite.T(), output, "Context log message")
}

func (suite *LogTestSuite) TestConvertFields() {
	fields := []Field{
		String("string", "value"),
		Int64("int", 42),
		Any("any", []string{"a"}),
	}

	zapFields := convertFields(fields)
	assert.Len(suite.T(), zapFields, 3)
	assert.Equal(suite.T(), "string", zapFields[0].Key)
	assert.Equal(suite.T(), "int", zapFields[1].Key)
	assert.Equal(suite.T(), "any", zapFields[2].Key)
}
