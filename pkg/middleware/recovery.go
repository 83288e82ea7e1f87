package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"compliance-hub-backend/pkg/config"
	"compliance-hub-backend/pkg/utils"
)

// Recovery turns panics into a 500 envelope instead of a dropped
// connection. Development responses include the stack.
func Recovery(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					stack := debug.Stack()
					RequestLogger(cfg).WithField("panic", fmt.Sprintf("%v", err)).Error(string(stack))

					if cfg.IsDevelopment() {
						utils.WriteErrorResponseWithCode(w, http.StatusInternalServerError,
							"INTERNAL_SERVER_ERROR",
							fmt.Sprintf("Internal server error: %v", err),
							string(stack))
					} else {
						utils.WriteInternalServerErrorResponse(w, "Internal server error occurred")
					}
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
