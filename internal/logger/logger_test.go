package logger

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorLoggerEmitsAfterInit(t *testing.T) {
	Init()
	defer Init() // restore stderr output

	var buf bytes.Buffer
	Error.SetOutput(&buf)
	Error.Errorf("store write failed: %v", errors.New("boom"))

	assert.Contains(t, buf.String(), "store write failed: boom",
		"graceful-failure logging must survive Init's level configuration")
}

func TestInfoLoggerEmitsAfterInit(t *testing.T) {
	Init()
	defer Init()

	var buf bytes.Buffer
	Info.SetOutput(&buf)
	Info.Printf("listening on %s", ":8080")

	assert.Contains(t, buf.String(), "listening on :8080")
}
