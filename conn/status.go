package conn

import (
	"fmt"
	"sync"
)

// The status table maps symbolic names to integer codes. It ships with a
// conventional default vocabulary; callers with their own status scheme can
// extend or overwrite entries with RegisterStatus before building pipelines.
var (
	statusMu    sync.RWMutex
	statusCodes = map[string]int{
		"continue":              100,
		"ok":                    200,
		"created":               201,
		"accepted":              202,
		"no_content":            204,
		"moved_permanently":     301,
		"found":                 302,
		"see_other":             303,
		"not_modified":          304,
		"temporary_redirect":    307,
		"bad_request":           400,
		"unauthorized":          401,
		"forbidden":             403,
		"not_found":             404,
		"method_not_allowed":    405,
		"conflict":              409,
		"gone":                  410,
		"unprocessable_entity":  422,
		"too_many_requests":     429,
		"internal_server_error": 500,
		"not_implemented":       501,
		"bad_gateway":           502,
		"service_unavailable":   503,
		"gateway_timeout":       504,
	}
)

// RegisterStatus adds or overwrites a symbolic status name. Safe for
// concurrent use, but intended for program init, before pipelines run.
func RegisterStatus(name string, code int) {
	statusMu.Lock()
	defer statusMu.Unlock()
	statusCodes[name] = code
}

// StatusCode resolves status to an integer code. An int passes through
// unchanged; a string is looked up in the status table. Any other type, or
// an unknown name, is an error.
func StatusCode(status any) (int, error) {
	switch s := status.(type) {
	case int:
		return s, nil
	case string:
		statusMu.RLock()
		code, ok := statusCodes[s]
		statusMu.RUnlock()
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrUnknownStatus, s)
		}
		return code, nil
	default:
		return 0, fmt.Errorf("%w: %v (%T)", ErrUnknownStatus, status, status)
	}
}
