package commands

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"todocli/internal/api"
	"todocli/internal/exitcode"
)

// printError writes err in the standard "error: ..." form and maps it to
// an exit code: 401 is an auth error, other 4xx are user errors,
// everything else (5xx, transport failures) is a backend error.
func printError(errOut io.Writer, err error) int {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		fmt.Fprintf(errOut, "error: %s\n", apiErr.Detail)
		switch {
		case apiErr.IsUnauthorized():
			return exitcode.AuthError
		case apiErr.Status >= 400 && apiErr.Status < http.StatusInternalServerError:
			return exitcode.UserError
		default:
			return exitcode.BackendError
		}
	}
	fmt.Fprintf(errOut, "error: %v\n", err)
	return exitcode.BackendError
}
