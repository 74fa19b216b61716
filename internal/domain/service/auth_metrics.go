package service

import "time"

// Auth operations reported to AuthMetrics.
const (
	OperationRegister = "register"
	OperationLogin    = "login"
	OperationVerify   = "verify"
)

// AuthMetrics records the outcome of authentication operations.
type AuthMetrics interface {
	// ObserveRequest counts one finished operation. Outcome is "success" or an error code.
	ObserveRequest(operation, outcome string)

	// ObservePasswordHash records how long one bcrypt hash or compare took.
	ObservePasswordHash(operation string, elapsed time.Duration)
}
