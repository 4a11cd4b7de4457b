package extension

import "fmt"

// HostRejectedError reports a negative return value from the Host callback,
// which the Host uses to signal that it dropped the message.
type HostRejectedError struct {
	Function string
	Result   int
}

func (e *HostRejectedError) Error() string {
	return fmt.Sprintf("Host rejected callback %s with result %d", e.Function, e.Result)
}
