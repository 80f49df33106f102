// SPDX-License-Identifier: Apache-2.0

package mocks

import (
	loglib "github.com/maskstream/csvmask/pkg/log"
)

type Logger struct {
	DebugFn func(msg string, fields ...loglib.Fields)
	InfoFn  func(msg string, fields ...loglib.Fields)
	WarnFn  func(err error, msg string, fields ...loglib.Fields)
	ErrorFn func(err error, msg string, fields ...loglib.Fields)
}

func (m *Logger) Debug(msg string, fields ...loglib.Fields) {
	if m.DebugFn != nil {
		m.DebugFn(msg, fields...)
	}
}

func (m *Logger) Info(msg string, fields ...loglib.Fields) {
	if m.InfoFn != nil {
		m.InfoFn(msg, fields...)
	}
}

func (m *Logger) Warn(err error, msg string, fields ...loglib.Fields) {
	if m.WarnFn != nil {
		m.WarnFn(err, msg, fields...)
	}
}

func (m *Logger) Error(err error, msg string, fields ...loglib.Fields) {
	if m.ErrorFn != nil {
		m.ErrorFn(err, msg, fields...)
	}
}

func (m *Logger) WithFields(fields loglib.Fields) loglib.Logger {
	return m
}
