package view

import (
	"fmt"
	"io"
	"time"
)

const TimeLayout = "2006-01-02 15:04:05"

// ErrorMessageHandler shows error messages to the cashier.
type ErrorMessageHandler struct {
	out io.Writer
	now func() time.Time
}

func NewErrorMessageHandler(out io.Writer) *ErrorMessageHandler {
	return &ErrorMessageHandler{out: out, now: time.Now}
}

func (h *ErrorMessageHandler) DisplayErrorMessage(message string) {
	fmt.Fprintf(h.out, "====== ERROR ======\n%s\nERROR: %s\n===================\n",
		h.now().Format(TimeLayout), message)
}
